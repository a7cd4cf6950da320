package expr

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// Kind identifies the runtime type of a Value.
type Kind int

// The four runtime kinds of the filter language.
const (
	KindEmpty Kind = iota
	KindInt
	KindStr
	KindBool
)

// String returns the stable lowercase type name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindStr:
		return "str"
	case KindBool:
		return "bool"
	default:
		return "empty"
	}
}

// Value is a runtime value of the filter language: an int, a string,
// a bool, or empty (the explicit absence of a value). Values are
// immutable and cheap to copy; the zero Value is Empty.
type Value struct {
	kind Kind
	i    int64
	s    string
	b    bool
}

// Int creates an int Value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Str creates a string Value.
func Str(v string) Value { return Value{kind: KindStr, s: v} }

// Bool creates a bool Value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Empty creates the empty Value.
func Empty() Value { return Value{kind: KindEmpty} }

// Kind returns the runtime kind of the value.
func (v Value) Kind() Kind { return v.kind }

// TypeStr returns the stable lowercase type name ("int", "str",
// "bool", "empty").
func (v Value) TypeStr() string { return v.kind.String() }

// AsInt returns the int payload and whether the value is an int.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsStr returns the string payload and whether the value is a string.
func (v Value) AsStr() (string, bool) { return v.s, v.kind == KindStr }

// AsBool returns the bool payload and whether the value is a bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// IsEmpty reports whether the value is empty.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// String renders the value in its literal form: integers in decimal,
// strings verbatim (no quoting), booleans as true/false, empty as the
// literal text "empty". Callers display this directly to end users.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindStr:
		return v.s
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	default:
		return "empty"
	}
}

// valueJSON is the wire form of a Value: a tagged union keyed by the
// stable type name. Empty carries no payload.
type valueJSON struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	out := valueJSON{Type: v.TypeStr()}
	var err error
	switch v.kind {
	case KindInt:
		out.Value, err = json.Marshal(v.i)
	case KindStr:
		out.Value, err = json.Marshal(v.s)
	case KindBool:
		out.Value, err = json.Marshal(v.b)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var in valueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Type {
	case "int":
		var i int64
		if err := json.Unmarshal(in.Value, &i); err != nil {
			return err
		}
		*v = Int(i)
	case "str":
		var s string
		if err := json.Unmarshal(in.Value, &s); err != nil {
			return err
		}
		*v = Str(s)
	case "bool":
		var b bool
		if err := json.Unmarshal(in.Value, &b); err != nil {
			return err
		}
		*v = Bool(b)
	case "empty":
		*v = Empty()
	default:
		return fmt.Errorf("unknown value type %q", in.Type)
	}
	return nil
}

// Not implements logical negation. Defined for bool only.
func (v Value) Not() (Value, error) {
	if v.kind == KindBool {
		return Bool(!v.b), nil
	}
	return Value{}, &UnaryOpError{Value: v, Operator: OpNot}
}

// And implements logical conjunction. Defined for bool×bool only.
func (v Value) And(other Value) (Value, error) {
	if v.kind == KindBool && other.kind == KindBool {
		return Bool(v.b && other.b), nil
	}
	return Value{}, &BinaryOpError{Left: v, Operator: OpAnd, Right: other}
}

// AndShortCircuit reports whether the left operand alone decides an
// "and": false when the left is Bool(false).
func (v Value) AndShortCircuit() (Value, bool) {
	if v.kind == KindBool && !v.b {
		return Bool(false), true
	}
	return Value{}, false
}

// Nand implements negated conjunction. Defined for bool×bool only.
func (v Value) Nand(other Value) (Value, error) {
	if v.kind == KindBool && other.kind == KindBool {
		return Bool(!(v.b && other.b)), nil
	}
	return Value{}, &BinaryOpError{Left: v, Operator: OpNand, Right: other}
}

// NandShortCircuit reports whether the left operand alone decides a
// "nand": true when the left is Bool(false).
func (v Value) NandShortCircuit() (Value, bool) {
	if v.kind == KindBool && !v.b {
		return Bool(true), true
	}
	return Value{}, false
}

// Or implements logical disjunction. Defined for bool×bool only.
func (v Value) Or(other Value) (Value, error) {
	if v.kind == KindBool && other.kind == KindBool {
		return Bool(v.b || other.b), nil
	}
	return Value{}, &BinaryOpError{Left: v, Operator: OpOr, Right: other}
}

// OrShortCircuit reports whether the left operand alone decides an
// "or": true when the left is Bool(true).
func (v Value) OrShortCircuit() (Value, bool) {
	if v.kind == KindBool && v.b {
		return Bool(true), true
	}
	return Value{}, false
}

// Nor implements negated disjunction. Defined for bool×bool only.
func (v Value) Nor(other Value) (Value, error) {
	if v.kind == KindBool && other.kind == KindBool {
		return Bool(!(v.b || other.b)), nil
	}
	return Value{}, &BinaryOpError{Left: v, Operator: OpNor, Right: other}
}

// NorShortCircuit reports whether the left operand alone decides a
// "nor": false when the left is Bool(true).
func (v Value) NorShortCircuit() (Value, bool) {
	if v.kind == KindBool && v.b {
		return Bool(false), true
	}
	return Value{}, false
}

// Xor implements exclusive disjunction. Defined for bool×bool only;
// never short-circuits.
func (v Value) Xor(other Value) (Value, error) {
	if v.kind == KindBool && other.kind == KindBool {
		return Bool(v.b != other.b), nil
	}
	return Value{}, &BinaryOpError{Left: v, Operator: OpXor, Right: other}
}

// Equal implements "=". Defined for same-kind pairs, plus the one
// cross-type case the language allows: comparing anything against
// empty (empty = empty is true, empty = x is false).
func (v Value) Equal(other Value) (Value, error) {
	if v.kind == KindEmpty || other.kind == KindEmpty {
		return Bool(v.kind == other.kind), nil
	}
	if v.kind != other.kind {
		return Value{}, &BinaryOpError{Left: v, Operator: OpEqual, Right: other}
	}
	switch v.kind {
	case KindInt:
		return Bool(v.i == other.i), nil
	case KindStr:
		return Bool(v.s == other.s), nil
	default:
		return Bool(v.b == other.b), nil
	}
}

// NotEqual implements "!=" with the same typing rules as Equal,
// negated.
func (v Value) NotEqual(other Value) (Value, error) {
	eq, err := v.Equal(other)
	if err != nil {
		return Value{}, &BinaryOpError{Left: v, Operator: OpNotEqual, Right: other}
	}
	return Bool(!eq.b), nil
}

// Plus implements binary "+": int addition or string concatenation.
func (v Value) Plus(other Value) (Value, error) {
	if v.kind == KindInt && other.kind == KindInt {
		return Int(v.i + other.i), nil
	}
	if v.kind == KindStr && other.kind == KindStr {
		return Str(v.s + other.s), nil
	}
	return Value{}, &BinaryOpError{Left: v, Operator: OpPlus, Right: other}
}

// UnaryPlus implements unary "+": identity on int.
func (v Value) UnaryPlus() (Value, error) {
	if v.kind == KindInt {
		return Int(v.i), nil
	}
	return Value{}, &UnaryOpError{Value: v, Operator: OpPlus}
}

// Minus implements binary "-" on int×int.
func (v Value) Minus(other Value) (Value, error) {
	if v.kind == KindInt && other.kind == KindInt {
		return Int(v.i - other.i), nil
	}
	return Value{}, &BinaryOpError{Left: v, Operator: OpMinus, Right: other}
}

// UnaryMinus implements unary "-": negation on int.
func (v Value) UnaryMinus() (Value, error) {
	if v.kind == KindInt {
		return Int(-v.i), nil
	}
	return Value{}, &UnaryOpError{Value: v, Operator: OpMinus}
}

// Multiply implements "*" on int×int.
func (v Value) Multiply(other Value) (Value, error) {
	if v.kind == KindInt && other.kind == KindInt {
		return Int(v.i * other.i), nil
	}
	return Value{}, &BinaryOpError{Left: v, Operator: OpMultiply, Right: other}
}

// Divide implements "/" on int×int with truncation toward zero.
// A zero divisor fails with DivisionByZeroError.
func (v Value) Divide(other Value) (Value, error) {
	if v.kind == KindInt && other.kind == KindInt {
		if other.i == 0 {
			return Value{}, &DivisionByZeroError{Value: v}
		}
		return Int(v.i / other.i), nil
	}
	return Value{}, &BinaryOpError{Left: v, Operator: OpDivide, Right: other}
}

// Matches implements "matches" on str×str: the right operand is
// compiled as a regular expression and tested for a match anywhere in
// the left operand. The pattern is compiled fresh on every call; a
// pattern that does not compile fails with InvalidRegexError.
func (v Value) Matches(other Value) (Value, error) {
	if v.kind == KindStr && other.kind == KindStr {
		re, err := regexp.Compile(other.s)
		if err != nil {
			return Value{}, &InvalidRegexError{Pattern: other.s, Message: err.Error()}
		}
		return Bool(re.MatchString(v.s)), nil
	}
	return Value{}, &BinaryOpError{Left: v, Operator: OpMatches, Right: other}
}
