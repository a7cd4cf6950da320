/*
Package expr implements the chatward filter language: a small, pure
expression language used to describe per-chat message filters and
typed configuration values.

# Values

Every expression evaluates to a Value of one of four kinds:

	int      64-bit signed integer
	str      UTF-8 text
	bool     true / false
	empty    the explicit absence of a value

There is no implicit coercion between kinds: "1 + true" is an error,
not a conversion. Empty participates in exactly one cross-kind
operation, equality:

	empty = empty      true
	empty = <other>    false
	empty != <other>   true

# Operators

	not                 bool → bool
	and nand or nor xor bool × bool → bool
	= !=                same kind, or anything × empty → bool
	+                   int × int → int, str × str → str, unary int
	- * /               int × int → int, unary - on int
	matches             str × str → bool (right side is a regex)

and/nand short-circuit when the left side is false; or/nor when it is
true. xor always evaluates both sides. Division by zero and invalid
regex patterns are reported as typed errors, never panics.

The "matches" pattern is compiled fresh on every evaluation; there is
no pattern cache.

# Trees and environments

Expression trees are immutable after construction and serialize to a
tagged JSON form — a stored filter is exactly this serialization. An
evaluation reads a Variables environment; nothing in this package
mutates one during evaluation.

	vars := expr.NewVariables()
	vars.Put("n", expr.Int(41))
	tree := &expr.BinaryOp{
		Left:     &expr.Identifier{Name: "n"},
		Operator: expr.OpPlus,
		Right:    &expr.Literal{Value: expr.Int(1)},
	}
	v, err := expr.Evaluate(tree, vars) // Int(42)

# Typed setters

Structured records expose their fields to the language through a
field-descriptor table: MaterializeFields turns a record into a
readable environment, AssignFields applies an "ident := expr"
directive with per-field type and non-null enforcement. See the
chatward package's Settings for a worked example.
*/
package expr
