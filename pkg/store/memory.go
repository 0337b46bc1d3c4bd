package store

import "sync"

// MemoryStore is a mutex-guarded map. Reads share the lock; every write,
// including the test-and-set in UpdateIfPresent, holds it exclusively.
type MemoryStore[K comparable, V any] struct {
	entries map[K]V
	mutex   sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore[K comparable, V any]() *MemoryStore[K, V] {
	return &MemoryStore[K, V]{
		entries: make(map[K]V),
	}
}

// GetAll returns a snapshot of the stored values
func (m *MemoryStore[K, V]) GetAll() []V {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	values := make([]V, 0, len(m.entries))
	for _, v := range m.entries {
		values = append(values, v)
	}
	return values
}

// Get retrieves the value for a key
func (m *MemoryStore[K, V]) Get(id K) (V, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	v, exists := m.entries[id]
	return v, exists
}

// Put adds or overwrites the value for a key
func (m *MemoryStore[K, V]) Put(id K, v V) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.entries[id] = v
}

// UpdateIfPresent replaces the value only when the key already exists
func (m *MemoryStore[K, V]) UpdateIfPresent(id K, v V) (V, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.entries[id]; !exists {
		var zero V
		return zero, false
	}
	m.entries[id] = v
	return v, true
}

// Delete removes a key and reports whether it existed
func (m *MemoryStore[K, V]) Delete(id K) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.entries[id]; !exists {
		return false
	}
	delete(m.entries, id)
	return true
}

// Len returns the number of keys in the store
func (m *MemoryStore[K, V]) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.entries)
}
