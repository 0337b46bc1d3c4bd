package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

// PebbleStore keeps JSON-encoded records in a pebble instance backed by an
// in-memory filesystem, so nothing outlives the process.
//
// Pebble has no compare-and-set, so writes are serialized by mutex to make
// UpdateIfPresent and Delete single steps. Reads go straight to pebble and
// GetAll iterates a consistent snapshot.
type PebbleStore[V any] struct {
	db     *pebble.DB
	logger *slog.Logger
	mutex  sync.Mutex
	count  int
}

// NewPebbleStore opens an empty pebble-backed store
func NewPebbleStore[V any](name string, logger *slog.Logger) (*PebbleStore[V], error) {
	if name == "" {
		name = "records"
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := pebble.Open(name, &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble store %s: %w", name, err)
	}

	return &PebbleStore[V]{
		db:     db,
		logger: logger.With("store", name, "backend", BackendPebble),
	}, nil
}

// GetAll returns every record in key order
func (p *PebbleStore[V]) GetAll() []V {
	iter, err := p.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		p.logger.Error("failed to create iterator", "error", err)
		return nil
	}
	defer iter.Close()

	var values []V
	for iter.First(); iter.Valid(); iter.Next() {
		var v V
		if err := json.Unmarshal(iter.Value(), &v); err != nil {
			p.logger.Error("failed to decode record", "key", string(iter.Key()), "error", err)
			continue
		}
		values = append(values, v)
	}
	return values
}

// Get retrieves the record for a key
func (p *PebbleStore[V]) Get(id string) (V, bool) {
	return p.get(id)
}

// Put inserts or overwrites the record for a key
func (p *PebbleStore[V]) Put(id string, v V) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	_, exists := p.get(id)
	if p.set(id, v) && !exists {
		p.count++
	}
}

// UpdateIfPresent replaces the record only when the key already exists
func (p *PebbleStore[V]) UpdateIfPresent(id string, v V) (V, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	var zero V
	if _, exists := p.get(id); !exists {
		return zero, false
	}
	if !p.set(id, v) {
		return zero, false
	}
	return v, true
}

// Delete removes a key and reports whether it existed
func (p *PebbleStore[V]) Delete(id string) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, exists := p.get(id); !exists {
		return false
	}
	if err := p.db.Delete([]byte(id), pebble.NoSync); err != nil {
		p.logger.Error("failed to delete record", "id", id, "error", err)
		return false
	}
	p.count--
	return true
}

// Len returns the number of stored records
func (p *PebbleStore[V]) Len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.count
}

// Close releases the pebble instance
func (p *PebbleStore[V]) Close() error {
	return p.db.Close()
}

func (p *PebbleStore[V]) get(id string) (V, bool) {
	var v V
	data, closer, err := p.db.Get([]byte(id))
	if err != nil {
		if !errors.Is(err, pebble.ErrNotFound) {
			p.logger.Error("failed to read record", "id", id, "error", err)
		}
		return v, false
	}
	defer closer.Close()

	if err := json.Unmarshal(data, &v); err != nil {
		p.logger.Error("failed to decode record", "id", id, "error", err)
		return v, false
	}
	return v, true
}

func (p *PebbleStore[V]) set(id string, v V) bool {
	data, err := json.Marshal(v)
	if err != nil {
		p.logger.Error("failed to encode record", "id", id, "error", err)
		return false
	}
	if err := p.db.Set([]byte(id), data, pebble.NoSync); err != nil {
		p.logger.Error("failed to write record", "id", id, "error", err)
		return false
	}
	return true
}
