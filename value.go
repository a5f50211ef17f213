package atri

import (
	"strconv"
)

// Value is a runtime value: a number, a boolean, or undefined. The zero Value
// is Undefined.
type Value struct {
	kind ValueKind
	num  float64
	b    bool
}

// ValueKind is the type of a runtime value.
type ValueKind int8

const (
	// ValueUndefined is the type of a variable that is declared but not
	// assigned, or not declared at all.
	ValueUndefined ValueKind = iota
	ValueNumber
	ValueBool
)

func (k ValueKind) String() string {
	switch k {
	case ValueUndefined:
		return "undefined"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "boolean"
	default:
		return "ValueKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Undefined is the undefined value.
var Undefined Value

// Number creates a number value.
func Number(x float64) Value {
	return Value{kind: ValueNumber, num: x}
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	return Value{kind: ValueBool, b: b}
}

// Kind returns the type of v.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Num returns v's number. It is 0 if v is not a number.
func (v Value) Num() float64 {
	return v.num
}

// Bool returns v's boolean. It is false if v is not a boolean.
func (v Value) Bool() bool {
	return v.b
}

// Equal reports whether v and w have the same type and value. Numbers compare
// by IEEE 754 equality.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case ValueNumber:
		return v.num == w.num
	case ValueBool:
		return v.b == w.b
	default:
		return true
	}
}

// Truthy coerces v to a boolean. Numbers are true unless zero; undefined is
// false.
func (v Value) Truthy() bool {
	switch v.kind {
	case ValueBool:
		return v.b
	case ValueNumber:
		return v.num != 0
	default:
		return false
	}
}

// String formats v for display. Numbers use the shortest decimal
// representation that round-trips, without an exponent.
func (v Value) String() string {
	switch v.kind {
	case ValueNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.b)
	default:
		return "undefined"
	}
}
