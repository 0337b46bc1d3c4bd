// Package service implements create, read, update and delete over a record
// store, enforcing the completeness rules of the record kind.
package service

import (
	"fmt"
	"strings"

	"github.com/ssargent/dataprov/pkg/ids"
	"github.com/ssargent/dataprov/pkg/record"
	"github.com/ssargent/dataprov/pkg/store"
)

// Service owns the store and validator of one record kind
type Service[V any] struct {
	schema    *record.Schema[V]
	validator record.Validator[V]
	store     store.Store[string, V]
	newID     ids.Generator
}

// Option customizes a Service
type Option[V any] func(*Service[V])

// WithValidator replaces the schema's own completeness check
func WithValidator[V any](validator record.Validator[V]) Option[V] {
	return func(s *Service[V]) {
		s.validator = validator
	}
}

// WithIDGenerator sets how identifiers are minted for records created without one
func WithIDGenerator[V any](newID ids.Generator) Option[V] {
	return func(s *Service[V]) {
		s.newID = newID
	}
}

// New creates a service for the schema's kind backed by st
func New[V any](schema *record.Schema[V], st store.Store[string, V], opts ...Option[V]) *Service[V] {
	s := &Service[V]{
		schema:    schema,
		validator: schema,
		store:     st,
		newID:     ids.UUID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind returns the record kind served
func (s *Service[V]) Kind() string {
	return s.schema.Kind()
}

// Schema returns the record schema
func (s *Service[V]) Schema() *record.Schema[V] {
	return s.schema
}

// Len returns the number of stored records
func (s *Service[V]) Len() int {
	return s.store.Len()
}

// Create stores v, minting an id when v has none. An existing record with the
// same id is overwritten.
func (s *Service[V]) Create(v *V) (V, error) {
	var zero V
	if v == nil {
		return zero, fmt.Errorf("%w: %s record cannot be nil", record.ErrInvalidInput, s.Kind())
	}

	created := *v
	if strings.TrimSpace(s.schema.ID(&created)) == "" {
		s.schema.SetID(&created, s.newID())
	}
	if !s.validator.IsComplete(&created) {
		return zero, fmt.Errorf("%w: %s record %s", record.ErrValidationFailed, s.Kind(), s.schema.ID(&created))
	}

	s.store.Put(s.schema.ID(&created), created)
	return created, nil
}

// Get returns the record stored under id
func (s *Service[V]) Get(id string) (V, bool) {
	return s.store.Get(id)
}

// GetAll returns every stored record in unspecified order
func (s *Service[V]) GetAll() []V {
	return s.store.GetAll()
}

// Update replaces the record stored under id. v must be complete as sent,
// including its own id, which is then overwritten with id. Nothing is written
// unless a record already exists under id.
func (s *Service[V]) Update(id string, v *V) (V, error) {
	var zero V
	if v == nil {
		return zero, fmt.Errorf("%w: %s record cannot be nil", record.ErrInvalidInput, s.Kind())
	}

	updated := *v
	if !s.validator.IsComplete(&updated) {
		return zero, fmt.Errorf("%w: %s record %s", record.ErrValidationFailed, s.Kind(), id)
	}
	s.schema.SetID(&updated, id)

	result, ok := s.store.UpdateIfPresent(id, updated)
	if !ok {
		return zero, fmt.Errorf("%w: %s record %s", record.ErrNotFound, s.Kind(), id)
	}
	return result, nil
}

// Delete removes the record stored under id and reports whether it existed
func (s *Service[V]) Delete(id string) bool {
	return s.store.Delete(id)
}

// FindBy returns the records whose field equals value, ignoring case and
// surrounding whitespace
func (s *Service[V]) FindBy(field, value string) ([]V, error) {
	f, ok := s.schema.Lookup(field)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %q", record.ErrInvalidInput, s.Kind(), field)
	}

	target := strings.TrimSpace(value)
	matches := []V{}
	for _, v := range s.store.GetAll() {
		text, ok := f.Format(&v)
		if ok && strings.EqualFold(strings.TrimSpace(text), target) {
			matches = append(matches, v)
		}
	}
	return matches, nil
}

// Seed stores an initial batch of records. Records without a non-blank id
// are skipped and counted; nothing else is checked.
func (s *Service[V]) Seed(records []V) (loaded, skipped int) {
	for i := range records {
		id := s.schema.ID(&records[i])
		if strings.TrimSpace(id) == "" {
			skipped++
			continue
		}
		s.store.Put(id, records[i])
		loaded++
	}
	return loaded, skipped
}
