package expr

import (
	"encoding/json"
	"fmt"
)

// Operator is an operator token of the filter language. Its text is
// the source-level spelling and is what error messages render.
type Operator string

// The operator vocabulary. OpNot, OpPlus and OpMinus are valid in
// unary position; everything except OpNot is valid in binary position.
const (
	OpNot      Operator = "not"
	OpAnd      Operator = "and"
	OpNand     Operator = "nand"
	OpOr       Operator = "or"
	OpNor      Operator = "nor"
	OpXor      Operator = "xor"
	OpEqual    Operator = "="
	OpNotEqual Operator = "!="
	OpPlus     Operator = "+"
	OpMinus    Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
	OpMatches  Operator = "matches"
)

// Valid reports whether o is a known operator token.
func (o Operator) Valid() bool {
	switch o {
	case OpNot, OpAnd, OpNand, OpOr, OpNor, OpXor, OpEqual, OpNotEqual,
		OpPlus, OpMinus, OpMultiply, OpDivide, OpMatches:
		return true
	}
	return false
}

// String returns the source spelling of the operator.
func (o Operator) String() string { return string(o) }

// Expression is a node of the expression tree. Trees are immutable
// after construction and may be shared read-only across evaluations;
// a persisted filter is this tree serialized as JSON.
type Expression interface {
	exprNode()
}

// Identifier is a reference to a variable by name.
type Identifier struct {
	Name string
}

// Literal is a value written directly in source syntax.
type Literal struct {
	Value Value
}

// BinaryOp applies a binary operator to two subexpressions.
type BinaryOp struct {
	Left     Expression
	Operator Operator
	Right    Expression
}

// UnaryOp applies a unary operator to a subexpression.
type UnaryOp struct {
	Expression Expression
	Operator   Operator
}

func (*Identifier) exprNode() {}
func (*Literal) exprNode()    {}
func (*BinaryOp) exprNode()   {}
func (*UnaryOp) exprNode()    {}

// Assignment binds an identifier to the result of evaluating an
// expression ("ident := expr" in source syntax). It is a directive
// consumed by Variables.SetFromAssignment or a typed-setter record,
// not itself an expression.
type Assignment struct {
	Identifier string
	Expression Expression
}

// exprJSON is the wire form of an Expression node: a tagged union
// keyed on "type". Only the fields for the tagged variant are set.
type exprJSON struct {
	Type     string          `json:"type"`
	Name     string          `json:"name,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`
	Operator Operator        `json:"operator,omitempty"`
	Left     json.RawMessage `json:"left,omitempty"`
	Right    json.RawMessage `json:"right,omitempty"`
	Expr     json.RawMessage `json:"expr,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e *Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(exprJSON{Type: "identifier", Name: e.Name})
}

// MarshalJSON implements json.Marshaler.
func (e *Literal) MarshalJSON() ([]byte, error) {
	value, err := json.Marshal(e.Value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(exprJSON{Type: "literal", Value: value})
}

// MarshalJSON implements json.Marshaler.
func (e *BinaryOp) MarshalJSON() ([]byte, error) {
	left, err := json.Marshal(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := json.Marshal(e.Right)
	if err != nil {
		return nil, err
	}
	return json.Marshal(exprJSON{Type: "binary_op", Operator: e.Operator, Left: left, Right: right})
}

// MarshalJSON implements json.Marshaler.
func (e *UnaryOp) MarshalJSON() ([]byte, error) {
	inner, err := json.Marshal(e.Expression)
	if err != nil {
		return nil, err
	}
	return json.Marshal(exprJSON{Type: "unary_op", Operator: e.Operator, Expr: inner})
}

// MarshalExpression serializes an expression tree to its JSON wire
// form.
func MarshalExpression(e Expression) ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalExpression deserializes an expression tree from its JSON
// wire form. The decoded tree evaluates identically to the tree that
// was serialized.
func UnmarshalExpression(data []byte) (Expression, error) {
	var in exprJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	switch in.Type {
	case "identifier":
		if in.Name == "" {
			return nil, fmt.Errorf("identifier node without name")
		}
		return &Identifier{Name: in.Name}, nil
	case "literal":
		var v Value
		if err := json.Unmarshal(in.Value, &v); err != nil {
			return nil, err
		}
		return &Literal{Value: v}, nil
	case "binary_op":
		if !in.Operator.Valid() || in.Operator == OpNot {
			return nil, fmt.Errorf("invalid binary operator %q", in.Operator)
		}
		left, err := UnmarshalExpression(in.Left)
		if err != nil {
			return nil, err
		}
		right, err := UnmarshalExpression(in.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryOp{Left: left, Operator: in.Operator, Right: right}, nil
	case "unary_op":
		switch in.Operator {
		case OpNot, OpPlus, OpMinus:
		default:
			return nil, fmt.Errorf("invalid unary operator %q", in.Operator)
		}
		inner, err := UnmarshalExpression(in.Expr)
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Expression: inner, Operator: in.Operator}, nil
	default:
		return nil, fmt.Errorf("unknown expression node type %q", in.Type)
	}
}

// MarshalJSON implements json.Marshaler.
func (a Assignment) MarshalJSON() ([]byte, error) {
	expr, err := json.Marshal(a.Expression)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Identifier string          `json:"identifier"`
		Expression json.RawMessage `json:"expression"`
	}{a.Identifier, expr})
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Assignment) UnmarshalJSON(data []byte) error {
	var in struct {
		Identifier string          `json:"identifier"`
		Expression json.RawMessage `json:"expression"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	expr, err := UnmarshalExpression(in.Expression)
	if err != nil {
		return err
	}
	a.Identifier = in.Identifier
	a.Expression = expr
	return nil
}
