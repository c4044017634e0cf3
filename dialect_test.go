package main

import "testing"

func TestDialectFor(t *testing.T) {
	for _, engine := range []string{"mysql", "postgres", "sqlite"} {
		d, err := dialectFor(engine)
		if err != nil {
			t.Fatalf("dialectFor(%s) error: %v", engine, err)
		}
		if d.Name != engine {
			t.Errorf("dialectFor(%s).Name = %s", engine, d.Name)
		}
	}
	if _, err := dialectFor("oracle"); err == nil {
		t.Error("dialectFor(oracle) expected error")
	}
}

func TestUnwrapDefault(t *testing.T) {
	tests := []struct {
		name string
		d    *Dialect
		in   string
		want string
	}{
		{"mysql charset introducer", mysqlDialect, "_utf8mb4'héllo'", "'héllo'"},
		{"mysql mariadb parens", mysqlDialect, "('abc')", "'abc'"},
		{"mysql plain untouched", mysqlDialect, "'abc'", "'abc'"},
		{"pg cast", postgresDialect, "'abc'::text", "'abc'"},
		{"pg cast with size", postgresDialect, "'ab'::character varying(10)", "'ab'"},
		{"pg array cast", postgresDialect, "'{}'::integer[]", "'{}'"},
		{"pg nested paren and cast", postgresDialect, "('42'::text)", "'42'"},
		{"pg paren number", postgresDialect, "(0)", "0"},
		{"pg bit string", postgresDialect, "B'101'", "'101'"},
		{"sqlite parens", sqliteDialect, "(0)", "0"},
		{"sqlite double parens", sqliteDialect, "((0))", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.unwrapDefault(tt.in); got != tt.want {
				t.Errorf("unwrapDefault(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimestampSentinels(t *testing.T) {
	tests := []struct {
		d    *Dialect
		lit  string
		want bool
	}{
		{mysqlDialect, "CURRENT_TIMESTAMP", true},
		{mysqlDialect, "current_timestamp()", true},
		{mysqlDialect, "CURRENT_TIMESTAMP(6)", true},
		{mysqlDialect, "now()", true},
		{mysqlDialect, "localtimestamp", true},
		{mysqlDialect, "'2024-01-01 00:00:00'", false},
		{postgresDialect, "now()", true},
		{postgresDialect, "transaction_timestamp()", true},
		{postgresDialect, "CURRENT_DATE", true},
		{sqliteDialect, "CURRENT_TIMESTAMP", true},
		{sqliteDialect, "datetime('now')", true},
		{sqliteDialect, "'10:00:00'", false},
	}
	for _, tt := range tests {
		if got := tt.d.isTimestampSentinel(tt.lit); got != tt.want {
			t.Errorf("%s.isTimestampSentinel(%q) = %t, want %t", tt.d.Name, tt.lit, got, tt.want)
		}
	}
}
