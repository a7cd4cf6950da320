package expr

import "fmt"

// Evaluate walks an expression tree against an environment and
// returns the resulting value. Evaluation is strictly left-to-right
// and sequential; the short-circuiting boolean operators skip their
// right operand when the left alone decides the result, so an error
// hiding there (an undeclared identifier, say) is never surfaced.
// The first error aborts evaluation. Evaluate never mutates the
// environment.
//
// Operator errors are wrapped with a "value error:" prefix; use
// errors.As to reach the typed error underneath.
//
// An operator token in the wrong arity position is a construction
// bug in the caller (the parser never emits one) and panics.
func Evaluate(e Expression, v *Variables) (Value, error) {
	switch node := e.(type) {
	case *Identifier:
		value, ok := v.Get(node.Name)
		if !ok {
			return Value{}, &UndeclaredIdentifierError{Name: node.Name}
		}
		return value, nil

	case *Literal:
		return node.Value, nil

	case *BinaryOp:
		left, err := Evaluate(node.Left, v)
		if err != nil {
			return Value{}, err
		}

		switch node.Operator {
		case OpAnd:
			if result, ok := left.AndShortCircuit(); ok {
				return result, nil
			}
		case OpNand:
			if result, ok := left.NandShortCircuit(); ok {
				return result, nil
			}
		case OpOr:
			if result, ok := left.OrShortCircuit(); ok {
				return result, nil
			}
		case OpNor:
			if result, ok := left.NorShortCircuit(); ok {
				return result, nil
			}
		}

		right, err := Evaluate(node.Right, v)
		if err != nil {
			return Value{}, err
		}

		var result Value
		switch node.Operator {
		case OpAnd:
			result, err = left.And(right)
		case OpNand:
			result, err = left.Nand(right)
		case OpOr:
			result, err = left.Or(right)
		case OpNor:
			result, err = left.Nor(right)
		case OpXor:
			result, err = left.Xor(right)
		case OpEqual:
			result, err = left.Equal(right)
		case OpNotEqual:
			result, err = left.NotEqual(right)
		case OpPlus:
			result, err = left.Plus(right)
		case OpMinus:
			result, err = left.Minus(right)
		case OpMultiply:
			result, err = left.Multiply(right)
		case OpDivide:
			result, err = left.Divide(right)
		case OpMatches:
			result, err = left.Matches(right)
		default:
			panic(fmt.Sprintf("expr: invalid binary operator %q", node.Operator))
		}
		if err != nil {
			return Value{}, fmt.Errorf("value error: %w", err)
		}
		return result, nil

	case *UnaryOp:
		value, err := Evaluate(node.Expression, v)
		if err != nil {
			return Value{}, err
		}

		var result Value
		switch node.Operator {
		case OpNot:
			result, err = value.Not()
		case OpPlus:
			result, err = value.UnaryPlus()
		case OpMinus:
			result, err = value.UnaryMinus()
		default:
			panic(fmt.Sprintf("expr: invalid unary operator %q", node.Operator))
		}
		if err != nil {
			return Value{}, fmt.Errorf("value error: %w", err)
		}
		return result, nil

	default:
		panic(fmt.Sprintf("expr: unknown expression node %T", e))
	}
}
