package entity

import (
	"math"
	"strconv"
	"strings"
)

type valueKind uint8

const (
	kindMissing valueKind = iota
	kindNumber
	kindString
)

// Value is one table cell: a number, a string, or missing.
//
// The zero Value is missing, which is distinct from 0 and from "".
type Value struct {
	kind valueKind
	num  float64
	str  string
}

// Missing returns the missing marker.
func Missing() Value {
	return Value{}
}

// Number wraps f. NaN and infinities are stored as missing.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{kind: kindNumber, num: f}
}

// String wraps s. An empty string is a real value, not missing.
func String(s string) Value {
	return Value{kind: kindString, str: s}
}

// IsMissing reports whether v is the missing marker.
func (v Value) IsMissing() bool {
	return v.kind == kindMissing
}

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool {
	return v.kind == kindNumber
}

// Float returns the numeric value and whether v holds a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == kindNumber
}

// Text renders v for display and text containers; missing renders as "".
func (v Value) Text() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case kindString:
		return v.str
	default:
		return ""
	}
}

// String implements fmt.Stringer; missing renders as "NaN" like a data frame.
func (v Value) String() string {
	if v.kind == kindMissing {
		return "NaN"
	}
	return v.Text()
}

// missingTokens are the raw cell spellings that load as missing.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
	"#n/a": {},
	"<na>": {},
	"-nan": {},
}

// IsMissingToken reports whether a raw cell should be read as missing.
func IsMissingToken(raw string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// ParseNumber converts a raw cell to a number Value. Missing tokens yield missing.
func ParseNumber(raw string) (Value, error) {
	if IsMissingToken(raw) {
		return Missing(), nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Missing(), err
	}
	return Number(f), nil
}

// ParseString converts a raw cell to a string Value. Missing tokens yield missing.
func ParseString(raw string) Value {
	if IsMissingToken(raw) {
		return Missing()
	}
	return String(raw)
}

// Equal reports whether v and o hold the same kind and content.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind && v.num == o.num && v.str == o.str
}
