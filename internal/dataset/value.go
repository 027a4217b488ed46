package dataset

import (
	"strconv"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindMissing Kind = iota
	KindString
	KindNumber
	KindBool
	KindTime
)

// Value is a single table cell. Source files carry heterogeneous encodings
// (string flags, string-typed numeric IDs, free-text dates), so every cell is
// a tagged union at ingestion; the deriver converts columns to their canonical
// kind in one pass.
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
	t    time.Time
}

// Missing returns the missing/null value.
func Missing() Value {
	return Value{kind: KindMissing}
}

// Str returns a string value.
func Str(s string) Value {
	return Value{kind: KindString, s: s}
}

// Num returns a numeric value.
func Num(n float64) Value {
	return Value{kind: KindNumber, n: n}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Timestamp returns a time value.
func Timestamp(t time.Time) Value {
	return Value{kind: KindTime, t: t}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the value is null.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// AsString returns the string payload if the value is a string.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsNum returns the numeric payload if the value is a number.
func (v Value) AsNum() (float64, bool) {
	return v.n, v.kind == KindNumber
}

// AsBool returns the boolean payload if the value is a bool.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsTime returns the time payload if the value is a timestamp.
func (v Value) AsTime() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// String renders the value in its canonical string form: numbers drop float
// artifacts ("10" rather than "10.0"), bools are "true"/"false", timestamps
// are RFC 3339, missing is empty. Used for grouping keys and predicate
// matching so that a Number 10 and the canonical ID "10" compare equal.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return ""
	}
}
