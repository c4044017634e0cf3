package main

import "testing"

func strptr(s string) *string { return &s }

func TestBuildTableDescription_SinglePrimaryKey(t *testing.T) {
	table := Table{
		Name: "users",
		Columns: []Column{
			{Name: "id", DBType: "int(11)", PrimaryKey: true, AutoIncrement: true},
			{Name: "name", DBType: "varchar(50)"},
		},
	}

	desc := buildTableDescription(table, mysqlDialect, DumpOptions{Indexes: true}, defaultIndexName)

	if desc.PrimaryKey == nil || desc.PrimaryKey.Name != "id" {
		t.Fatalf("expected id in the primary-key slot, got %+v", desc.PrimaryKey)
	}
	for _, cd := range desc.Columns {
		if cd.Name == "id" {
			t.Error("single PK column must not appear in the generic column list")
		}
	}
	if len(desc.CompositeKey) != 0 {
		t.Errorf("unexpected composite key %v", desc.CompositeKey)
	}
}

func TestBuildTableDescription_CompositePrimaryKey(t *testing.T) {
	table := Table{
		Name: "memberships",
		Columns: []Column{
			{Name: "org_id", DBType: "int", PrimaryKey: true},
			{Name: "user_id", DBType: "int", PrimaryKey: true},
			{Name: "role", DBType: "varchar(20)"},
		},
	}

	desc := buildTableDescription(table, mysqlDialect, DumpOptions{Indexes: true}, defaultIndexName)

	if desc.PrimaryKey != nil {
		t.Errorf("composite key must not fill the single-PK slot, got %+v", desc.PrimaryKey)
	}
	if len(desc.CompositeKey) != 2 || desc.CompositeKey[0] != "org_id" || desc.CompositeKey[1] != "user_id" {
		t.Errorf("CompositeKey = %v", desc.CompositeKey)
	}
	// member columns stay in the generic list
	if len(desc.Columns) != 3 {
		t.Errorf("expected 3 generic columns, got %d", len(desc.Columns))
	}
}

func TestBuildTableDescription_IndexNameConvention(t *testing.T) {
	table := Table{
		Name:    "posts",
		Columns: []Column{{Name: "title", DBType: "varchar(100)"}},
		Indexes: []Index{
			{Name: "posts_title_index", Columns: []string{"title"}},
			{Name: "title_custom_idx", Columns: []string{"title"}, Unique: true},
		},
	}

	desc := buildTableDescription(table, mysqlDialect, DumpOptions{Indexes: true}, defaultIndexName)

	if len(desc.Indexes) != 2 {
		t.Fatalf("expected 2 indexes, got %d", len(desc.Indexes))
	}
	if desc.Indexes[0].Name != "" {
		t.Errorf("convention-derived name should be omitted, got %q", desc.Indexes[0].Name)
	}
	if desc.Indexes[1].Name != "title_custom_idx" {
		t.Errorf("deviating name should be preserved, got %q", desc.Indexes[1].Name)
	}
	if !desc.Indexes[1].Unique {
		t.Error("unique flag should be copied through")
	}
}

func TestBuildTableDescription_IndexOrderIsLexicographic(t *testing.T) {
	table := Table{
		Name:    "t",
		Columns: []Column{{Name: "a", DBType: "int"}, {Name: "b", DBType: "int"}},
		Indexes: []Index{
			{Name: "zz_idx", Columns: []string{"b"}},
			{Name: "aa_idx", Columns: []string{"a"}},
		},
	}

	desc := buildTableDescription(table, mysqlDialect, DumpOptions{Indexes: true}, defaultIndexName)
	if desc.Indexes[0].Name != "aa_idx" || desc.Indexes[1].Name != "zz_idx" {
		t.Errorf("indexes not sorted by name: %+v", desc.Indexes)
	}
}

func TestBuildTableDescription_ExpressionIndexSkipped(t *testing.T) {
	table := Table{
		Name:    "t",
		Columns: []Column{{Name: "a", DBType: "int"}},
		Indexes: []Index{{Name: "expr_idx", HasExpression: true}},
	}

	desc := buildTableDescription(table, mysqlDialect, DumpOptions{Indexes: true}, defaultIndexName)
	if len(desc.Indexes) != 0 {
		t.Errorf("expression index should be skipped, got %+v", desc.Indexes)
	}
}

func TestBuildColumnDescriptor(t *testing.T) {
	d := mysqlDialect

	// NOT NULL inverted from the nullable fact
	cd := buildColumnDescriptor(Column{Name: "a", DBType: "int", Nullable: false}, d, DumpOptions{})
	if !cd.NotNull {
		t.Error("non-nullable column should set NotNull")
	}
	cd = buildColumnDescriptor(Column{Name: "a", DBType: "int", Nullable: true}, d, DumpOptions{})
	if cd.NotNull {
		t.Error("nullable column should not set NotNull")
	}

	// default only attached when parseable
	cd = buildColumnDescriptor(Column{Name: "a", DBType: "int", Default: strptr("5")}, d, DumpOptions{})
	if cd.Default == nil || cd.Default.Kind != ValueInt || cd.Default.Int != 5 {
		t.Errorf("Default = %+v", cd.Default)
	}
	cd = buildColumnDescriptor(Column{Name: "a", DBType: "int", Default: strptr("junk")}, d, DumpOptions{})
	if cd.Default != nil {
		t.Errorf("unparseable default should be dropped cross-engine, got %+v", cd.Default)
	}

	// same_db carries the vendor type verbatim
	cd = buildColumnDescriptor(Column{Name: "a", DBType: "enum('x','y')"}, d, DumpOptions{SameDB: true})
	if cd.Type.Kind != TypeRaw || cd.Type.Raw != "enum('x','y')" {
		t.Errorf("same_db type = %+v", cd.Type)
	}
}

func TestBuildTableDescription_IgnoreErrorsFlag(t *testing.T) {
	table := Table{
		Name:    "t",
		Columns: []Column{{Name: "a", DBType: "int"}},
		Indexes: []Index{{Name: "t_a_index", Columns: []string{"a"}}},
	}

	desc := buildTableDescription(table, mysqlDialect, DumpOptions{Indexes: true}, defaultIndexName)
	if !desc.Indexes[0].IgnoreErrors {
		t.Error("cross-engine dump should mark indexes ignore-errors")
	}

	desc = buildTableDescription(table, mysqlDialect, DumpOptions{Indexes: true, SameDB: true}, defaultIndexName)
	if desc.Indexes[0].IgnoreErrors {
		t.Error("same_db dump should not mark indexes ignore-errors")
	}
}

func TestDefaultIndexName(t *testing.T) {
	if got := defaultIndexName("users", []string{"email"}); got != "users_email_index" {
		t.Errorf("defaultIndexName = %q", got)
	}
	if got := defaultIndexName("users", []string{"a", "b"}); got != "users_a_b_index" {
		t.Errorf("defaultIndexName = %q", got)
	}
}
