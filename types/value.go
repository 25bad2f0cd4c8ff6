package types

import "strconv"

// ValueType names the declared type of a Value. The wire spelling matches
// the project file format.
type ValueType string

const (
	TypeBool   ValueType = "boolean"
	TypeInt    ValueType = "integer"
	TypeFloat  ValueType = "float"
	TypeString ValueType = "string"
	TypeEnum   ValueType = "enum"
)

// ValidValueType reports whether t is a known type tag.
func ValidValueType(t ValueType) bool {
	switch t {
	case TypeBool, TypeInt, TypeFloat, TypeString, TypeEnum:
		return true
	}
	return false
}

// Value is a tagged scalar: exactly one of the payload fields is meaningful,
// selected by Type. The zero Value has an empty Type and compares equal to
// nothing.
type Value struct {
	Type  ValueType
	Bool  bool
	Int   int64
	Float float64
	Str   string // string and enum payloads
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{Type: TypeBool, Bool: b} }

// IntValue returns an integer Value.
func IntValue(n int64) Value { return Value{Type: TypeInt, Int: n} }

// FloatValue returns a float Value.
func FloatValue(f float64) Value { return Value{Type: TypeFloat, Float: f} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{Type: TypeString, Str: s} }

// EnumValue returns an enum Value carrying the given member name.
func EnumValue(s string) Value { return Value{Type: TypeEnum, Str: s} }

// IsNumeric reports whether the value carries an ordered numeric payload.
func (v Value) IsNumeric() bool {
	return v.Type == TypeInt || v.Type == TypeFloat
}

// AsFloat returns the numeric payload widened to float64. Zero for
// non-numeric values.
func (v Value) AsFloat() float64 {
	switch v.Type {
	case TypeInt:
		return float64(v.Int)
	case TypeFloat:
		return v.Float
	}
	return 0
}

// Equals compares two values by payload. Integers and floats compare
// numerically across the two types; otherwise the type tags must match.
func (v Value) Equals(o Value) bool {
	if v.IsNumeric() && o.IsNumeric() {
		return v.AsFloat() == o.AsFloat()
	}
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case TypeBool:
		return v.Bool == o.Bool
	case TypeString, TypeEnum:
		return v.Str == o.Str
	}
	return false
}

// Compare orders two numeric values. Returns -1, 0, or 1 and true, or
// (0, false) if either side is non-numeric. Ordering is never defined for
// strings, enums, or booleans.
func (v Value) Compare(o Value) (int, bool) {
	if !v.IsNumeric() || !o.IsNumeric() {
		return 0, false
	}
	a, b := v.AsFloat(), o.AsFloat()
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	}
	return 0, true
}

// String renders the payload for display and search.
func (v Value) String() string {
	switch v.Type {
	case TypeBool:
		return strconv.FormatBool(v.Bool)
	case TypeInt:
		return strconv.FormatInt(v.Int, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case TypeString, TypeEnum:
		return v.Str
	}
	return ""
}

// Operator is a comparison operator in condition nodes and rule predicates.
type Operator string

const (
	OpEQ Operator = "EQ"
	OpNE Operator = "NE"
	OpGT Operator = "GT"
	OpLT Operator = "LT"
	OpGE Operator = "GE"
	OpLE Operator = "LE"
)

// ValidOperator reports whether op is a known operator token.
func ValidOperator(op Operator) bool {
	switch op {
	case OpEQ, OpNE, OpGT, OpLT, OpGE, OpLE:
		return true
	}
	return false
}

// Ordering reports whether op requires numeric operands. EQ and NE compare
// by value equality on any type; the rest are only legal on numbers.
func (op Operator) Ordering() bool {
	switch op {
	case OpGT, OpLT, OpGE, OpLE:
		return true
	}
	return false
}

// Eval applies the operator to (left, right). Ordering operators on
// non-numeric operands evaluate false; they are flagged at validation time,
// never coerced here.
func (op Operator) Eval(left, right Value) bool {
	switch op {
	case OpEQ:
		return left.Equals(right)
	case OpNE:
		return !left.Equals(right)
	}
	c, ok := left.Compare(right)
	if !ok {
		return false
	}
	switch op {
	case OpGT:
		return c > 0
	case OpLT:
		return c < 0
	case OpGE:
		return c >= 0
	case OpLE:
		return c <= 0
	}
	return false
}
