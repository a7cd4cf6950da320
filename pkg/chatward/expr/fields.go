package expr

// ToVariables is implemented by record types whose fields should be
// readable inside expressions. The returned environment has one
// binding per field, with empty standing in for null/absent fields.
type ToVariables interface {
	ToVariables() *Variables
}

// AssignmentTarget is implemented by anything that can consume an
// assignment directive: a plain Variables environment, or a
// structured record enforcing per-field types.
type AssignmentTarget interface {
	SetFromAssignment(a Assignment, read *Variables) error
}

// Field describes one typed field of a structured record for the
// setter protocol. Load reads the field's current value (empty when a
// nullable field is unset); Store writes a value whose kind has
// already been checked against Kind, or empty to clear a nullable
// field.
type Field struct {
	Name     string
	Kind     Kind
	Nullable bool
	Load     func() Value
	Store    func(Value)
}

// MaterializeFields builds an environment with one binding per field.
// This is how a structured record becomes readable inside
// expressions.
func MaterializeFields(fields []Field) *Variables {
	vars := NewVariables()
	for _, f := range fields {
		vars.Put(f.Name, f.Load())
	}
	return vars
}

// AssignFields resolves an assignment against a field table. The
// expression is evaluated against read, then stored into the named
// field, enforcing the field's declared type: a kind mismatch fails
// with FieldTypeError, an empty value for a non-nullable field fails
// with FieldEmptyError, and an empty value for a nullable field
// clears it. An identifier that names no field fails with
// UndeclaredIdentifierError. On error no field is modified.
func AssignFields(fields []Field, a Assignment, read *Variables) error {
	var target *Field
	for i := range fields {
		if fields[i].Name == a.Identifier {
			target = &fields[i]
			break
		}
	}
	if target == nil {
		return &UndeclaredIdentifierError{Name: a.Identifier}
	}

	value, err := Evaluate(a.Expression, read)
	if err != nil {
		return err
	}

	if value.IsEmpty() {
		if !target.Nullable {
			return &FieldEmptyError{Field: target.Name}
		}
		target.Store(Empty())
		return nil
	}
	if value.Kind() != target.Kind {
		return &FieldTypeError{Field: target.Name, Want: target.Kind}
	}
	target.Store(value)
	return nil
}

// ContainsField reports whether a field table has a field with the
// given name.
func ContainsField(fields []Field, name string) bool {
	for i := range fields {
		if fields[i].Name == name {
			return true
		}
	}
	return false
}
