package expr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_TypeStr(t *testing.T) {
	assert.Equal(t, "int", Int(1).TypeStr())
	assert.Equal(t, "str", Str("x").TypeStr())
	assert.Equal(t, "bool", Bool(true).TypeStr())
	assert.Equal(t, "empty", Empty().TypeStr())
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "-7", Int(-7).String())
	assert.Equal(t, "hello world", Str("hello world").String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "false", Bool(false).String())
	assert.Equal(t, "empty", Empty().String())
}

func TestValue_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		got  func() (Value, error)
		want Value
	}{
		{"int plus", func() (Value, error) { return Int(40).Plus(Int(2)) }, Int(42)},
		{"str plus concatenates", func() (Value, error) { return Str("foo").Plus(Str("bar")) }, Str("foobar")},
		{"minus", func() (Value, error) { return Int(7).Minus(Int(10)) }, Int(-3)},
		{"multiply", func() (Value, error) { return Int(6).Multiply(Int(7)) }, Int(42)},
		{"divide truncates", func() (Value, error) { return Int(7).Divide(Int(2)) }, Int(3)},
		{"divide negative truncates toward zero", func() (Value, error) { return Int(-7).Divide(Int(2)) }, Int(-3)},
		{"unary plus", func() (Value, error) { return Int(5).UnaryPlus() }, Int(5)},
		{"unary minus", func() (Value, error) { return Int(5).UnaryMinus() }, Int(-5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.got()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue_DivisionByZero(t *testing.T) {
	_, err := Int(5).Divide(Int(0))
	require.Error(t, err)

	var dbz *DivisionByZeroError
	require.ErrorAs(t, err, &dbz)
	assert.Equal(t, Int(5), dbz.Value)
	assert.Equal(t, "division by zero (5 / 0)", err.Error())
}

func TestValue_TypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		got  func() (Value, error)
		msg  string
	}{
		{"int plus str", func() (Value, error) { return Int(1).Plus(Str("x")) }, "unsupported operation int + str"},
		{"str minus str", func() (Value, error) { return Str("a").Minus(Str("b")) }, "unsupported operation str - str"},
		{"bool multiply", func() (Value, error) { return Bool(true).Multiply(Int(2)) }, "unsupported operation bool * int"},
		{"int and int", func() (Value, error) { return Int(1).And(Int(1)) }, "unsupported operation int and int"},
		{"bool or str", func() (Value, error) { return Bool(true).Or(Str("x")) }, "unsupported operation bool or str"},
		{"int equal str", func() (Value, error) { return Int(1).Equal(Str("1")) }, "unsupported operation int = str"},
		{"bool not equal int", func() (Value, error) { return Bool(true).NotEqual(Int(1)) }, "unsupported operation bool != int"},
		{"int matches str", func() (Value, error) { return Int(1).Matches(Str(".*")) }, "unsupported operation int matches str"},
		{"str matches int", func() (Value, error) { return Str("abc").Matches(Int(1)) }, "unsupported operation str matches int"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.got()
			require.Error(t, err)

			var binErr *BinaryOpError
			require.ErrorAs(t, err, &binErr)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestValue_UnaryTypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		got  func() (Value, error)
		msg  string
	}{
		{"not int", func() (Value, error) { return Int(1).Not() }, "unsupported operation not int"},
		{"unary plus str", func() (Value, error) { return Str("x").UnaryPlus() }, "unsupported operation + str"},
		{"unary minus bool", func() (Value, error) { return Bool(true).UnaryMinus() }, "unsupported operation - bool"},
		{"unary minus empty", func() (Value, error) { return Empty().UnaryMinus() }, "unsupported operation - empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.got()
			require.Error(t, err)

			var unErr *UnaryOpError
			require.ErrorAs(t, err, &unErr)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestValue_BooleanOperators(t *testing.T) {
	tests := []struct {
		op   Operator
		l, r bool
		want bool
	}{
		{OpAnd, true, true, true},
		{OpAnd, true, false, false},
		{OpNand, true, true, false},
		{OpNand, false, true, true},
		{OpOr, false, false, false},
		{OpOr, false, true, true},
		{OpNor, false, false, true},
		{OpNor, true, false, false},
		{OpXor, true, true, false},
		{OpXor, true, false, true},
		{OpXor, false, false, false},
	}
	for _, tt := range tests {
		var got Value
		var err error
		switch tt.op {
		case OpAnd:
			got, err = Bool(tt.l).And(Bool(tt.r))
		case OpNand:
			got, err = Bool(tt.l).Nand(Bool(tt.r))
		case OpOr:
			got, err = Bool(tt.l).Or(Bool(tt.r))
		case OpNor:
			got, err = Bool(tt.l).Nor(Bool(tt.r))
		case OpXor:
			got, err = Bool(tt.l).Xor(Bool(tt.r))
		}
		require.NoError(t, err)
		assert.Equal(t, Bool(tt.want), got, "%v %s %v", tt.l, tt.op, tt.r)
	}

	got, err := Bool(false).Not()
	require.NoError(t, err)
	assert.Equal(t, Bool(true), got)
}

func TestValue_ShortCircuitProbes(t *testing.T) {
	v, ok := Bool(false).AndShortCircuit()
	require.True(t, ok)
	assert.Equal(t, Bool(false), v)

	v, ok = Bool(false).NandShortCircuit()
	require.True(t, ok)
	assert.Equal(t, Bool(true), v)

	v, ok = Bool(true).OrShortCircuit()
	require.True(t, ok)
	assert.Equal(t, Bool(true), v)

	v, ok = Bool(true).NorShortCircuit()
	require.True(t, ok)
	assert.Equal(t, Bool(false), v)

	// The opposite operand never decides alone.
	_, ok = Bool(true).AndShortCircuit()
	assert.False(t, ok)
	_, ok = Bool(false).OrShortCircuit()
	assert.False(t, ok)

	// Non-bool operands defer to the full operator for the error.
	_, ok = Int(0).AndShortCircuit()
	assert.False(t, ok)
	_, ok = Str("").OrShortCircuit()
	assert.False(t, ok)
}

func TestValue_Equality(t *testing.T) {
	tests := []struct {
		name string
		l, r Value
		want bool
	}{
		{"int equal", Int(3), Int(3), true},
		{"int unequal", Int(3), Int(4), false},
		{"str equal", Str("a"), Str("a"), true},
		{"str unequal", Str("a"), Str("b"), false},
		{"bool equal", Bool(true), Bool(true), true},
		{"bool unequal", Bool(true), Bool(false), false},
		{"empty equals empty", Empty(), Empty(), true},
		{"int never equals empty", Int(0), Empty(), false},
		{"empty never equals str", Empty(), Str(""), false},
		{"empty never equals bool", Empty(), Bool(false), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eq, err := tt.l.Equal(tt.r)
			require.NoError(t, err)
			assert.Equal(t, Bool(tt.want), eq)

			ne, err := tt.l.NotEqual(tt.r)
			require.NoError(t, err)
			assert.Equal(t, Bool(!tt.want), ne)
		})
	}
}

func TestValue_Matches(t *testing.T) {
	got, err := Str("abc").Matches(Str("a.c"))
	require.NoError(t, err)
	assert.Equal(t, Bool(true), got)

	// Match anywhere in the subject, not anchored.
	got, err = Str("xx spam xx").Matches(Str("spam"))
	require.NoError(t, err)
	assert.Equal(t, Bool(true), got)

	got, err = Str("abc").Matches(Str("^b"))
	require.NoError(t, err)
	assert.Equal(t, Bool(false), got)
}

func TestValue_MatchesInvalidRegex(t *testing.T) {
	_, err := Str("abc").Matches(Str("["))
	require.Error(t, err)

	var reErr *InvalidRegexError
	require.ErrorAs(t, err, &reErr)
	assert.Equal(t, "[", reErr.Pattern)
	assert.Contains(t, err.Error(), `invalid regex "["`)
}

func TestValue_JSONRoundTrip(t *testing.T) {
	for _, v := range []Value{Int(-12), Str("hi there"), Bool(true), Bool(false), Empty()} {
		data, err := json.Marshal(v)
		require.NoError(t, err)

		var back Value
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, v, back)
	}
}

func TestValue_JSONTaggedForm(t *testing.T) {
	data, err := json.Marshal(Int(41))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"int","value":41}`, string(data))

	data, err = json.Marshal(Empty())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"empty"}`, string(data))

	var v Value
	require.Error(t, json.Unmarshal([]byte(`{"type":"float","value":1}`), &v))
}
