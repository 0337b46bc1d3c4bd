// Package record describes record kinds as explicit schemas.
//
// A Schema enumerates every field of a kind together with its column
// position, its scalar type and whether persistence requires it. The tabular
// codec and the record service consume the schema; nothing is discovered by
// reflection.
package record

import (
	"fmt"
	"strings"
)

// FieldType identifies the scalar type of a field
type FieldType int

const (
	String FieldType = iota
	Decimal
	Integer
)

func (t FieldType) String() string {
	switch t {
	case String:
		return "string"
	case Decimal:
		return "decimal"
	case Integer:
		return "integer"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// Field binds one member of V to a fixed column
type Field[V any] struct {
	Name     string
	Column   int
	Type     FieldType
	Required bool

	// Format renders the field as cell text. ok is false when the value is null.
	Format func(v *V) (text string, ok bool)

	// Parse assigns the field from cell text with leading whitespace removed.
	Parse func(v *V, text string) error
}

// Validator reports whether a record carries every field needed for persistence
type Validator[V any] interface {
	IsComplete(v *V) bool
}

// Schema is the static description of one record kind
type Schema[V any] struct {
	kind   string
	fields []Field[V]
	id     func(v *V) string
	setID  func(v *V, id string)
}

// NewSchema builds a schema and checks that the columns are exactly 0..n-1
func NewSchema[V any](kind string, id func(*V) string, setID func(*V, string), fields ...Field[V]) (*Schema[V], error) {
	if kind == "" {
		return nil, fmt.Errorf("schema kind cannot be empty")
	}
	if id == nil || setID == nil {
		return nil, fmt.Errorf("schema %s: id accessors are required", kind)
	}

	ordered := make([]Field[V], len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Column < 0 || f.Column >= len(fields) {
			return nil, fmt.Errorf("schema %s: field %q has column %d out of range", kind, f.Name, f.Column)
		}
		if ordered[f.Column].Name != "" {
			return nil, fmt.Errorf("schema %s: column %d bound twice", kind, f.Column)
		}
		key := strings.ToLower(f.Name)
		if f.Name == "" || seen[key] {
			return nil, fmt.Errorf("schema %s: field name %q is empty or duplicated", kind, f.Name)
		}
		if f.Format == nil || f.Parse == nil {
			return nil, fmt.Errorf("schema %s: field %q needs Format and Parse", kind, f.Name)
		}
		seen[key] = true
		ordered[f.Column] = f
	}

	return &Schema[V]{kind: kind, fields: ordered, id: id, setID: setID}, nil
}

// MustSchema is NewSchema for package-level schema definitions
func MustSchema[V any](kind string, id func(*V) string, setID func(*V, string), fields ...Field[V]) *Schema[V] {
	s, err := NewSchema(kind, id, setID, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Kind returns the record kind name
func (s *Schema[V]) Kind() string {
	return s.kind
}

// Fields returns the fields in column order
func (s *Schema[V]) Fields() []Field[V] {
	return s.fields
}

// Header returns the column names in column order
func (s *Schema[V]) Header() []string {
	header := make([]string, len(s.fields))
	for i, f := range s.fields {
		header[i] = f.Name
	}
	return header
}

// Lookup finds a field by name, ignoring case
func (s *Schema[V]) Lookup(name string) (Field[V], bool) {
	for _, f := range s.fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field[V]{}, false
}

// ID returns the record identifier
func (s *Schema[V]) ID(v *V) string {
	return s.id(v)
}

// SetID assigns the record identifier
func (s *Schema[V]) SetID(v *V, id string) {
	s.setID(v, id)
}

// IsComplete implements Validator. A required field must be non-null and,
// when it is a string, non-blank.
func (s *Schema[V]) IsComplete(v *V) bool {
	if v == nil {
		return false
	}
	for _, f := range s.fields {
		if !f.Required {
			continue
		}
		text, ok := f.Format(v)
		if !ok {
			return false
		}
		if f.Type == String && strings.TrimSpace(text) == "" {
			return false
		}
	}
	return true
}
