package ids

import (
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("uuid by default", func(t *testing.T) {
		gen, err := New("")
		require.NoError(t, err)

		_, err = uuid.Parse(gen())
		assert.NoError(t, err)
	})

	t.Run("ksuid", func(t *testing.T) {
		gen, err := New(StrategyKSUID)
		require.NoError(t, err)

		_, err = ksuid.Parse(gen())
		assert.NoError(t, err)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		gen, err := New("sequence")
		assert.Error(t, err)
		assert.Nil(t, gen)
	})
}

func TestGenerators_Unique(t *testing.T) {
	for _, gen := range []Generator{UUID, KSUID} {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := gen()
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	}
}
