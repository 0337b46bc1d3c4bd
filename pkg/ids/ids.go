// Package ids mints record identifiers.
package ids

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

// Strategy names accepted by New
const (
	StrategyUUID  = "uuid"
	StrategyKSUID = "ksuid"
)

// Generator returns a fresh unique identifier on every call
type Generator func() string

// New returns the generator for a strategy. An empty strategy selects UUIDs.
func New(strategy string) (Generator, error) {
	switch strategy {
	case "", StrategyUUID:
		return UUID, nil
	case StrategyKSUID:
		return KSUID, nil
	default:
		return nil, fmt.Errorf("unknown id strategy: %s", strategy)
	}
}

// UUID returns a random version 4 UUID
func UUID() string {
	return uuid.NewString()
}

// KSUID returns a time-ordered K-Sortable Unique IDentifier
func KSUID() string {
	return ksuid.New().String()
}
