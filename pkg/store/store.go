// Package store provides the concurrent keyed collections that own the
// records of one kind for the lifetime of the process.
package store

// Store is a concurrency-safe associative container keyed by record id.
//
// Writes to the same key are linearizable. GetAll may observe a mix of
// concurrently completing writes but never a torn record.
type Store[K comparable, V any] interface {
	// GetAll returns every stored record in unspecified order
	GetAll() []V

	// Get returns the record for id, or false if absent
	Get(id K) (V, bool)

	// Put inserts or overwrites unconditionally
	Put(id K, v V)

	// UpdateIfPresent replaces the value for id only if one exists,
	// returning the new value. The check and the write are a single step.
	UpdateIfPresent(id K, v V) (V, bool)

	// Delete removes id and reports whether it was present
	Delete(id K) bool

	// Len returns the number of stored records
	Len() int
}
