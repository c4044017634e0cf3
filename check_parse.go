package main

import (
	"regexp"
	"strconv"
	"strings"
)

// mappingCondRe matches a simple `column = literal` comparison, with
// optional engine quoting around the column name.
var mappingCondRe = regexp.MustCompile("\\A[`\"]?(\\w+)[`\"]?\\s*=\\s*(.+)\\z")

// checkConditionsFromClause turns a catalog check clause into portable
// conditions. A single column-equals-literal comparison becomes a
// mapping-style condition so the renderer can use the shorthand form;
// anything else is carried as a raw expression.
func checkConditionsFromClause(clause string, d *Dialect) []CheckCondition {
	expr := stripOuterParens(strings.TrimSpace(clause))
	if m := mappingCondRe.FindStringSubmatch(expr); m != nil {
		val := strings.TrimSpace(d.unwrapDefault(m[2]))
		if isSimpleLiteral(val) {
			return []CheckCondition{{Column: m[1], Value: val}}
		}
	}
	return []CheckCondition{{Expr: expr}}
}

// stripOuterParens removes balanced wrapping parentheses.
func stripOuterParens(s string) string {
	for len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		depth := 0
		balanced := true
		for i := 0; i < len(s)-1; i++ {
			switch s[i] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 {
				balanced = false
				break
			}
		}
		if !balanced {
			return s
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// isSimpleLiteral reports whether a comparison operand is a bare
// numeric or single-quoted string literal.
func isSimpleLiteral(s string) bool {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return !strings.Contains(s[1:len(s)-1], "'")
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
