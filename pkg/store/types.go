package store

import (
	"fmt"
	"log/slog"
)

// Backend names accepted by New
const (
	BackendMemory = "memory"
	BackendPebble = "pebble"
)

// Config selects and configures a store backend
type Config struct {
	Backend string // memory (default) or pebble
	Name    string // collection name, used for the pebble directory
	Logger  *slog.Logger
}

// New opens a string-keyed store for V on the configured backend. Stores that
// hold resources also implement io.Closer.
func New[V any](config Config) (Store[string, V], error) {
	switch config.Backend {
	case "", BackendMemory:
		return NewMemoryStore[string, V](), nil
	case BackendPebble:
		ps, err := NewPebbleStore[V](config.Name, config.Logger)
		if err != nil {
			return nil, err
		}
		return ps, nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", config.Backend)
	}
}
