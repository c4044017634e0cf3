package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// indexRenderMode selects how an index descriptor is emitted.
type indexRenderMode int

const (
	indexGeneric indexRenderMode = iota // index [...] inside create_table
	indexAdd                            // add_index :table, [...]
	indexDrop                           // drop_index :table, [...]
)

// renderTable renders one TableDescription as a create_table block.
// The primary-key slot comes first, then columns in catalog order,
// composite key, constraints, and indexes. A check constraint whose
// condition is not recoverable as a static expression fails the whole
// table: silently dropping it would change data-integrity semantics on
// replay.
func renderTable(desc *TableDescription, opts DumpOptions) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "create_table(%s) do\n", rubySymbol(desc.Name))

	if desc.PrimaryKey != nil {
		b.WriteString("  " + renderPrimaryKey(*desc.PrimaryKey) + "\n")
	}
	for _, col := range desc.Columns {
		b.WriteString("  " + renderColumn(col) + "\n")
	}
	if len(desc.CompositeKey) > 0 {
		fmt.Fprintf(&b, "  primary_key %s\n", symbolArray(desc.CompositeKey))
	}
	for _, c := range desc.Constraints {
		line, err := renderConstraint(c)
		if err != nil {
			return "", fmt.Errorf("table %s: %w", desc.Name, err)
		}
		b.WriteString("  " + line + "\n")
	}
	if opts.Indexes {
		for _, idx := range desc.Indexes {
			b.WriteString("  " + renderIndex(desc.Name, idx, indexGeneric) + "\n")
		}
	}

	b.WriteString("end")
	return b.String(), nil
}

// renderPrimaryKey emits the dedicated single-column primary key form.
func renderPrimaryKey(cd ColumnDescriptor) string {
	line := fmt.Sprintf("primary_key %s", rubySymbol(cd.Name))
	if cd.Type.Kind != TypeInteger {
		line += fmt.Sprintf(", :type=>%s", typeMethod(cd.Type.Kind))
	}
	return line + typeOpts(cd.Type)
}

func renderColumn(cd ColumnDescriptor) string {
	var line string
	if cd.Type.Kind == TypeRaw {
		line = fmt.Sprintf("column %s, %s", rubySymbol(cd.Name), rubyString(cd.Type.Raw))
	} else {
		line = fmt.Sprintf("%s %s%s", typeMethod(cd.Type.Kind), rubySymbol(cd.Name), typeOpts(cd.Type))
	}
	if cd.Default != nil {
		line += fmt.Sprintf(", :default=>%s", renderValue(*cd.Default))
	}
	if cd.NotNull {
		line += ", :null=>false"
	}
	return line
}

// typeMethod returns the portable type's constructor method name.
func typeMethod(k TypeKind) string {
	switch k {
	case TypeInteger:
		return "Integer"
	case TypeBigInt:
		return "Bignum"
	case TypeFloat:
		return "Float"
	case TypeDecimal:
		return "BigDecimal"
	case TypeBoolean:
		return "TrueClass"
	case TypeDate:
		return "Date"
	case TypeDateTime:
		return "DateTime"
	case TypeTime:
		return "Time"
	case TypeBlob:
		return "File"
	default:
		return "String"
	}
}

// typeOpts renders the type modifier options in a fixed order so output
// never depends on map iteration.
func typeOpts(pt PortableType) string {
	var opts []string
	switch pt.Kind {
	case TypeDecimal:
		if pt.HasPrecision && pt.HasScale {
			opts = append(opts, fmt.Sprintf(":size=>[%d, %d]", pt.Precision, pt.Scale))
		} else if pt.HasPrecision {
			opts = append(opts, fmt.Sprintf(":size=>%d", pt.Precision))
		}
	case TypeString, TypeBlob:
		if pt.Size > 0 {
			opts = append(opts, fmt.Sprintf(":size=>%d", pt.Size))
		}
		if pt.Fixed {
			opts = append(opts, ":fixed=>true")
		}
		if pt.Text {
			opts = append(opts, ":text=>true")
		}
	case TypeTime:
		opts = append(opts, ":only_time=>true")
	}
	if len(opts) == 0 {
		return ""
	}
	return ", " + strings.Join(opts, ", ")
}

// renderValue emits a default value through its type-specific literal
// constructor so the dumped description stays re-parseable. Raw
// literals get a uniform ".lit" marker suffix instead of per-value
// formatting tricks.
func renderValue(v PortableValue) string {
	switch v.Kind {
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		s := strconv.FormatFloat(v.Float, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case ValueDecimal:
		return fmt.Sprintf("BigDecimal(%s)", rubyString(v.Decimal.String()))
	case ValueString:
		return rubyString(v.Str)
	case ValueDate:
		return fmt.Sprintf("Date.parse(%s)", rubyString(v.Time.Format("2006-01-02")))
	case ValueDateTime:
		return fmt.Sprintf("DateTime.parse(%s)", rubyString(v.Time.Format("2006-01-02 15:04:05.999999999")))
	case ValueTime:
		return fmt.Sprintf("Sequel::SQLTime.parse(%s)", rubyString(v.Time.Format("15:04:05.999999999")))
	case ValueBlob:
		return fmt.Sprintf("Sequel.blob(%s)", rubyString(string(v.Blob)))
	case ValueRaw:
		return rubyString(v.Raw) + ".lit"
	default:
		return "nil"
	}
}

func renderConstraint(c Constraint) (string, error) {
	switch c.Kind {
	case ConstraintCheck:
		if c.Opaque {
			return "", fmt.Errorf("check constraint %q is not expressible as a static condition", c.Name)
		}
		conds := make([]string, len(c.Checks))
		for i, cc := range c.Checks {
			conds[i] = renderCheckCondition(cc)
		}
		if c.Name == "" {
			return "check " + strings.Join(conds, ", "), nil
		}
		return fmt.Sprintf("constraint %s, %s", rubySymbol(c.Name), strings.Join(conds, ", ")), nil

	case ConstraintUnique:
		line := "unique " + symbolArray(c.Columns)
		if c.Name != "" {
			line += fmt.Sprintf(", :name=>%s", rubySymbol(c.Name))
		}
		return line, nil

	case ConstraintForeignKey:
		line := fmt.Sprintf("foreign_key %s, %s", symbolArray(c.Columns), rubySymbol(c.RefTable))
		if len(c.RefColumns) > 0 {
			line += fmt.Sprintf(", :key=>%s", symbolArray(c.RefColumns))
		}
		if c.Name != "" {
			line += fmt.Sprintf(", :name=>%s", rubySymbol(c.Name))
		}
		if sym := refActionSymbol(c.OnDelete); sym != "" {
			line += fmt.Sprintf(", :on_delete=>%s", sym)
		}
		if sym := refActionSymbol(c.OnUpdate); sym != "" {
			line += fmt.Sprintf(", :on_update=>%s", sym)
		}
		return line, nil
	}
	return "", fmt.Errorf("unknown constraint kind %d", c.Kind)
}

// renderCheckCondition renders a mapping-style condition as :col=>value
// (the shorthand form) and anything else as a quoted SQL expression.
func renderCheckCondition(cc CheckCondition) string {
	if cc.Column == "" {
		return rubyString(cc.Expr)
	}
	val := cc.Value
	if _, err := strconv.ParseFloat(val, 64); err != nil {
		val = rubyString(strings.Trim(val, "'"))
	}
	return fmt.Sprintf("%s=>%s", rubySymbol(cc.Column), val)
}

func refActionSymbol(rule string) string {
	switch strings.ToUpper(strings.TrimSpace(rule)) {
	case "CASCADE":
		return ":cascade"
	case "SET NULL":
		return ":set_null"
	case "SET DEFAULT":
		return ":set_default"
	case "RESTRICT":
		return ":restrict"
	default:
		// NO ACTION and empty are the engine default; omit
		return ""
	}
}

// renderIndex emits one index in the requested mode. Drop mode still
// carries the column list because the emission format requires it, even
// though a drop only needs the name on most engines.
func renderIndex(table string, idx IndexDescriptor, mode indexRenderMode) string {
	var line string
	switch mode {
	case indexAdd:
		line = fmt.Sprintf("add_index %s, %s", rubySymbol(table), symbolArray(idx.Columns))
	case indexDrop:
		line = fmt.Sprintf("drop_index %s, %s", rubySymbol(table), symbolArray(idx.Columns))
	default:
		line = "index " + symbolArray(idx.Columns)
	}
	if idx.Name != "" {
		line += fmt.Sprintf(", :name=>%s", rubySymbol(idx.Name))
	}
	if idx.Unique && mode != indexDrop {
		line += ", :unique=>true"
	}
	if idx.IgnoreErrors && mode != indexGeneric {
		line += ", :ignore_errors=>true"
	}
	return line
}

var plainSymbolRe = regexp.MustCompile(`\A[A-Za-z_][A-Za-z0-9_]*\z`)

// rubySymbol renders an identifier as a symbol, quoting when the name
// is not a plain identifier.
func rubySymbol(name string) string {
	if plainSymbolRe.MatchString(name) {
		return ":" + name
	}
	return `:"` + strings.ReplaceAll(name, `"`, `\"`) + `"`
}

func symbolArray(names []string) string {
	syms := make([]string, len(names))
	for i, n := range names {
		syms[i] = rubySymbol(n)
	}
	return "[" + strings.Join(syms, ", ") + "]"
}

// rubyString renders a double-quoted string literal, escaping
// non-printable bytes so blob payloads survive round-tripping.
func rubyString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '#':
			// bare # is fine, #{ starts interpolation
			if i+1 < len(s) && s[i+1] == '{' {
				b.WriteString(`\#`)
			} else {
				b.WriteByte(c)
			}
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
