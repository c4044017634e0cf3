package main

import "sort"

// ColumnDescriptor is a single translated column ready for rendering.
type ColumnDescriptor struct {
	Name    string
	Type    PortableType
	Default *PortableValue // nil when the column has no renderable default
	NotNull bool           // emitted only when the column is NOT NULL
}

// IndexDescriptor is a single translated index ready for rendering.
type IndexDescriptor struct {
	Columns      []string
	Name         string // empty when the stored name matches the convention
	Unique       bool
	IgnoreErrors bool
}

// TableDescription is the rendered unit for one table: the single-PK
// slot, ordinary columns in catalog order, an optional composite key,
// constraints, and lexicographically ordered indexes.
type TableDescription struct {
	Name         string
	PrimaryKey   *ColumnDescriptor
	CompositeKey []string
	Columns      []ColumnDescriptor
	Constraints  []Constraint
	Indexes      []IndexDescriptor
}

// buildTableDescription translates one table's raw facts into a
// TableDescription. Translation is a pure function of the facts and the
// options; no state is shared across tables.
func buildTableDescription(t Table, d *Dialect, opts DumpOptions, namer IndexNamer) *TableDescription {
	desc := &TableDescription{Name: t.Name}

	var pkCols []string
	for _, col := range t.Columns {
		if col.PrimaryKey {
			pkCols = append(pkCols, col.Name)
		}
	}

	for _, col := range t.Columns {
		cd := buildColumnDescriptor(col, d, opts)
		// A lone primary-key column fills the dedicated slot instead of
		// the generic column list. Composite keys keep their member
		// columns in the list and add a separate key declaration.
		if col.PrimaryKey && len(pkCols) == 1 {
			desc.PrimaryKey = &cd
			continue
		}
		desc.Columns = append(desc.Columns, cd)
	}
	if len(pkCols) > 1 {
		desc.CompositeKey = pkCols
	}

	desc.Constraints = append(desc.Constraints, t.Constraints...)

	for _, idx := range sortedIndexes(t.Indexes) {
		if idx.HasExpression || len(idx.Columns) == 0 {
			continue // not representable as a plain column list; reported separately
		}
		id := IndexDescriptor{
			Columns:      idx.Columns,
			Unique:       idx.Unique,
			IgnoreErrors: opts.IgnoreIndexErrors || !opts.SameDB,
		}
		if idx.Name != namer(t.Name, idx.Columns) {
			id.Name = idx.Name
		}
		desc.Indexes = append(desc.Indexes, id)
	}

	return desc
}

func buildColumnDescriptor(col Column, d *Dialect, opts DumpOptions) ColumnDescriptor {
	cd := ColumnDescriptor{
		Name:    col.Name,
		NotNull: !col.Nullable,
	}
	if opts.SameDB {
		cd.Type = rawType(col.DBType)
	} else {
		cd.Type = translateType(col.DBType, opts)
	}
	if col.Default != nil {
		v := translateDefault(*col.Default, cd.Type, d, opts.SameDB)
		if v.Kind != ValueNone {
			cd.Default = &v
		}
	}
	return cd
}

// sortedIndexes returns the indexes ordered lexicographically by name,
// the enumeration order required for deterministic output.
func sortedIndexes(indexes []Index) []Index {
	out := make([]Index, len(indexes))
	copy(out, indexes)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
