package expr

import (
	"encoding/json"
	"sort"
	"strings"
)

// Variables is the environment an expression is evaluated against: a
// mapping from identifier to Value. It is not safe for concurrent
// use; each evaluation assumes exclusive access for its duration.
type Variables struct {
	values map[string]Value
}

// NewVariables creates an empty environment.
func NewVariables() *Variables {
	return &Variables{values: make(map[string]Value)}
}

// Count returns the number of bindings.
func (v *Variables) Count() int { return len(v.values) }

// Put inserts or overwrites a binding.
func (v *Variables) Put(name string, value Value) {
	v.values[name] = value
}

// Get returns the bound value and whether a binding exists.
func (v *Variables) Get(name string) (Value, bool) {
	value, ok := v.values[name]
	return value, ok
}

// Remove deletes a binding, reporting whether one existed.
func (v *Variables) Remove(name string) bool {
	if _, ok := v.values[name]; !ok {
		return false
	}
	delete(v.values, name)
	return true
}

// Contains reports whether a binding exists without exposing its
// value. Callers use it to protect reserved names from being
// shadowed by user-set variables.
func (v *Variables) Contains(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Extend merges other into v. On key collision the binding from
// other wins.
func (v *Variables) Extend(other *Variables) {
	if other == nil {
		return
	}
	for name, value := range other.values {
		v.values[name] = value
	}
}

// Clone returns an independent copy of the environment.
func (v *Variables) Clone() *Variables {
	out := &Variables{values: make(map[string]Value, len(v.values))}
	for name, value := range v.values {
		out.values[name] = value
	}
	return out
}

// Show renders one "name = value" line per binding, sorted by name
// for deterministic output. Bindings whose value is empty are skipped
// when omitEmpty is true. The exact format is displayed to end users
// and must stay stable.
func (v *Variables) Show(omitEmpty bool) string {
	names := make([]string, 0, len(v.values))
	for name := range v.values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		value := v.values[name]
		if omitEmpty && value.IsEmpty() {
			continue
		}
		b.WriteString(name)
		b.WriteString(" = ")
		b.WriteString(value.String())
		b.WriteString("\n")
	}
	return b.String()
}

// String renders the environment with empty bindings omitted.
func (v *Variables) String() string { return v.Show(true) }

// MarshalJSON implements json.Marshaler.
func (v *Variables) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.values)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Variables) UnmarshalJSON(data []byte) error {
	values := make(map[string]Value)
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	v.values = values
	return nil
}

// SetFromAssignment evaluates the assignment's expression against the
// read environment and stores the result under the assignment's
// identifier in v. Read and write environments are separate so an
// assignment can, for example, read message-derived variables while
// writing into a persisted user-variable store. On error v is left
// untouched.
func (v *Variables) SetFromAssignment(a Assignment, read *Variables) error {
	value, err := Evaluate(a.Expression, read)
	if err != nil {
		return err
	}
	v.Put(a.Identifier, value)
	return nil
}
