package mappaint

import (
	"strconv"
)

type ValueKind int

const (
	ValueKindString ValueKind = 0
	ValueKindNumber ValueKind = 1
)

func (k ValueKind) String() string {
	switch k {
	case ValueKindString:
		return "string"
	case ValueKindNumber:
		return "number"
	default:
		return "unknown (" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a runtime data value to resolve against color rules. It is either
// a string category or a numeric measurement; other shapes are not
// representable. The zero Value is the empty string.
type Value struct {
	kind ValueKind
	str  string
	num  float64
}

func StringValue(s string) Value {
	return Value{kind: ValueKindString, str: s}
}

func NumberValue(n float64) Value {
	return Value{kind: ValueKindNumber, num: n}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

// Str returns the string payload. It is the zero string for number values.
func (v Value) Str() string {
	return v.str
}

// Num returns the numeric payload. It is 0 for string values.
func (v Value) Num() float64 {
	return v.num
}

func (v Value) String() string {
	switch v.kind {
	case ValueKindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return strconv.Quote(v.str)
	}
}
