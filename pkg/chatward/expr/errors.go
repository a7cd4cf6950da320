package expr

import "fmt"

// BinaryOpError indicates a binary operator is not defined for the
// runtime kinds of its operands.
type BinaryOpError struct {
	// Left and Right are the offending operands.
	Left  Value
	Right Value
	// Operator is the operator token that was applied.
	Operator Operator
}

// Error implements the error interface.
func (e *BinaryOpError) Error() string {
	return fmt.Sprintf("unsupported operation %s %s %s", e.Left.TypeStr(), e.Operator, e.Right.TypeStr())
}

// UnaryOpError indicates a unary operator is not defined for the
// runtime kind of its operand.
type UnaryOpError struct {
	// Value is the offending operand.
	Value Value
	// Operator is the operator token that was applied.
	Operator Operator
}

// Error implements the error interface.
func (e *UnaryOpError) Error() string {
	return fmt.Sprintf("unsupported operation %s %s", e.Operator, e.Value.TypeStr())
}

// DivisionByZeroError indicates an integer division by zero.
type DivisionByZeroError struct {
	// Value is the dividend.
	Value Value
}

// Error implements the error interface.
func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero (%s / 0)", e.Value)
}

// InvalidRegexError indicates the right-hand side of "matches" did
// not compile as a regular expression.
type InvalidRegexError struct {
	// Pattern is the pattern text that failed to compile.
	Pattern string
	// Message is the compiler's diagnostic.
	Message string
}

// Error implements the error interface.
func (e *InvalidRegexError) Error() string {
	return fmt.Sprintf("invalid regex %q: %s", e.Pattern, e.Message)
}

// UndeclaredIdentifierError indicates an identifier with no binding
// in the evaluation environment, or an assignment naming a field the
// target record does not have.
type UndeclaredIdentifierError struct {
	// Name is the identifier that failed to resolve.
	Name string
}

// Error implements the error interface.
func (e *UndeclaredIdentifierError) Error() string {
	return fmt.Sprintf("undeclared identifier %q", e.Name)
}

// FieldTypeError indicates a typed-setter assignment produced a value
// whose kind does not match the field's declared type.
type FieldTypeError struct {
	// Field is the record field being assigned.
	Field string
	// Want is the declared kind of the field.
	Want Kind
}

// Error implements the error interface.
func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("variable %s should be of type %s", e.Field, e.Want)
}

// FieldEmptyError indicates a typed-setter assignment produced empty
// for a field that is not nullable.
type FieldEmptyError struct {
	// Field is the record field being assigned.
	Field string
}

// Error implements the error interface.
func (e *FieldEmptyError) Error() string {
	return fmt.Sprintf("variable %s cannot be empty", e.Field)
}
