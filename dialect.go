package main

import (
	"fmt"
	"regexp"
)

// unwrapRule strips one layer of engine-specific decoration from a
// default literal. When the pattern matches, the literal is replaced by
// the named submatch.
type unwrapRule struct {
	re    *regexp.Regexp
	group int
}

// Dialect holds the declarative per-engine rules used while translating
// default literals: decoration unwrapping and current-timestamp
// sentinel detection. The rules are plain data so each engine's quirks
// stay testable in isolation from the renderer.
type Dialect struct {
	Name     string
	unwraps  []unwrapRule
	sentinel *regexp.Regexp
}

var (
	mysqlDialect = &Dialect{
		Name: "mysql",
		unwraps: []unwrapRule{
			// charset introducer: _utf8mb4'abc' → 'abc'
			{regexp.MustCompile(`\A_[a-z0-9]+\s*('.*')\z`), 1},
			// MariaDB wraps string defaults in parentheses
			{regexp.MustCompile(`\A\((.*)\)\z`), 1},
		},
		sentinel: regexp.MustCompile(`(?i)\A(?:current_timestamp(?:\(\d*\))?|now\(\)|localtime(?:stamp)?(?:\(\))?|current_date(?:\(\))?|current_time(?:\(\))?)\z`),
	}

	postgresDialect = &Dialect{
		Name: "postgres",
		unwraps: []unwrapRule{
			// cast suffix: 'abc'::character varying → 'abc'
			{regexp.MustCompile(`\A(.*?)::[a-z_][a-z0-9_ ]*(?:\(\d+(?:,\s*\d+)?\))?(?:\[\])?\z`), 1},
			// parenthesized literal: ('abc') or (42)
			{regexp.MustCompile(`\A\((.*)\)\z`), 1},
			// bit-string literal: B'101' → '101'
			{regexp.MustCompile(`\AB('.*')\z`), 1},
		},
		sentinel: regexp.MustCompile(`(?i)\A(?:now\(\)|current_timestamp(?:\(\d*\))?|current_date|current_time(?:\(\d*\))?|localtimestamp(?:\(\d*\))?|(?:statement|transaction|clock)_timestamp\(\)|timeofday\(\))\z`),
	}

	sqliteDialect = &Dialect{
		Name: "sqlite",
		unwraps: []unwrapRule{
			{regexp.MustCompile(`\A\((.*)\)\z`), 1},
		},
		sentinel: regexp.MustCompile(`(?i)\A(?:current_timestamp|current_date|current_time|datetime\('now'[^)]*\)|strftime\(.*\))\z`),
	}
)

// dialectFor returns the Dialect for a source engine identifier.
func dialectFor(engine string) (*Dialect, error) {
	switch engine {
	case "mysql":
		return mysqlDialect, nil
	case "postgres":
		return postgresDialect, nil
	case "sqlite":
		return sqliteDialect, nil
	default:
		return nil, fmt.Errorf("unsupported source engine %q (must be mysql, postgres or sqlite)", engine)
	}
}

// unwrapDefault repeatedly strips decoration until no rule applies.
func (d *Dialect) unwrapDefault(lit string) string {
	for {
		stripped := false
		for _, rule := range d.unwraps {
			if m := rule.re.FindStringSubmatch(lit); m != nil && m[rule.group] != lit {
				lit = m[rule.group]
				stripped = true
			}
		}
		if !stripped {
			return lit
		}
	}
}

// isTimestampSentinel reports whether a literal is a "current time"
// marker rather than a static value.
func (d *Dialect) isTimestampSentinel(lit string) bool {
	return d.sentinel.MatchString(lit)
}
