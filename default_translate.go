package main

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValueKind enumerates the portable default-value variants.
type ValueKind int

const (
	ValueNone ValueKind = iota // default dropped / absent
	ValueBool
	ValueInt
	ValueFloat
	ValueDecimal
	ValueString
	ValueDate
	ValueDateTime
	ValueTime
	ValueBlob
	ValueRaw // vendor literal preserved verbatim (same_db mode)
)

// PortableValue is an engine-independent default value. Exactly one
// payload field is meaningful, selected by Kind.
type PortableValue struct {
	Kind    ValueKind
	Bool    bool
	Int     int64
	Float   float64
	Decimal decimal.Decimal
	Str     string
	Time    time.Time
	Blob    []byte
	Raw     string
}

func noneValue() PortableValue { return PortableValue{Kind: ValueNone} }

// quotedLiteralRe matches a single-quoted SQL string literal. Embedded
// quotes are escaped by doubling.
var quotedLiteralRe = regexp.MustCompile(`(?s)\A'(.*)'\z`)

var datetimeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
}

// translateDefault parses a vendor default literal into a PortableValue
// for the given portable type. It never fails: anything that cannot be
// parsed safely becomes a raw literal in same_db mode (replayable
// against the identical engine) or is dropped otherwise, since an empty
// default is safer than a wrong one when porting across engines.
func translateDefault(lit string, pt PortableType, d *Dialect, sameDB bool) PortableValue {
	fallback := func() PortableValue {
		if sameDB {
			return PortableValue{Kind: ValueRaw, Raw: lit}
		}
		return noneValue()
	}

	unwrapped := strings.TrimSpace(d.unwrapDefault(strings.TrimSpace(lit)))
	if unwrapped == "" || strings.EqualFold(unwrapped, "null") {
		return noneValue()
	}

	switch pt.Kind {
	case TypeDate, TypeDateTime, TypeTime:
		// current-timestamp sentinels have no static representation
		if d.isTimestampSentinel(unwrapped) {
			return fallback()
		}
		unwrapped = unquoteLiteral(unwrapped)

	case TypeString, TypeBlob:
		// string-likes must re-derive from a quoted literal
		m := quotedLiteralRe.FindStringSubmatch(unwrapped)
		if m == nil {
			return fallback()
		}
		unwrapped = strings.ReplaceAll(m[1], "''", "'")

	case TypeRaw:
		return fallback()
	}

	switch pt.Kind {
	case TypeBoolean:
		switch strings.ToLower(unquoteLiteral(unwrapped)) {
		case "t", "true", "1":
			return PortableValue{Kind: ValueBool, Bool: true}
		case "f", "false", "0":
			return PortableValue{Kind: ValueBool, Bool: false}
		}
		return fallback()

	case TypeInteger, TypeBigInt:
		n, err := strconv.ParseInt(unquoteLiteral(unwrapped), 10, 64)
		if err != nil {
			return fallback()
		}
		return PortableValue{Kind: ValueInt, Int: n}

	case TypeFloat:
		f, err := strconv.ParseFloat(unquoteLiteral(unwrapped), 64)
		if err != nil {
			return fallback()
		}
		return PortableValue{Kind: ValueFloat, Float: f}

	case TypeDecimal:
		dec, err := decimal.NewFromString(unquoteLiteral(unwrapped))
		if err != nil {
			return fallback()
		}
		return PortableValue{Kind: ValueDecimal, Decimal: dec}

	case TypeDate:
		t, err := time.Parse("2006-01-02", unwrapped)
		if err != nil {
			return fallback()
		}
		return PortableValue{Kind: ValueDate, Time: t}

	case TypeDateTime:
		for _, layout := range datetimeLayouts {
			if t, err := time.Parse(layout, unwrapped); err == nil {
				return PortableValue{Kind: ValueDateTime, Time: t}
			}
		}
		return fallback()

	case TypeTime:
		t, err := time.Parse("15:04:05.999999999", unwrapped)
		if err != nil {
			return fallback()
		}
		return PortableValue{Kind: ValueTime, Time: t}

	case TypeString:
		return PortableValue{Kind: ValueString, Str: unwrapped}

	case TypeBlob:
		return PortableValue{Kind: ValueBlob, Blob: []byte(unwrapped)}
	}

	return fallback()
}

// unquoteLiteral strips one layer of single quotes if present.
func unquoteLiteral(s string) string {
	if m := quotedLiteralRe.FindStringSubmatch(s); m != nil {
		return strings.ReplaceAll(m[1], "''", "'")
	}
	return s
}
