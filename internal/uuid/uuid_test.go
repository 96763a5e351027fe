package uuid_test

import (
	"testing"

	googleuuid "github.com/google/uuid"

	"github.com/KirkDiggler/battle-arena/internal/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleUUIDGenerator(t *testing.T) {
	gen := uuid.NewGoogleUUIDGenerator()

	first := gen.New()
	second := gen.New()

	_, err := googleuuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestSequentialGenerator(t *testing.T) {
	gen := uuid.NewSequentialGenerator("duel")

	assert.Equal(t, "duel-1", gen.New())
	assert.Equal(t, "duel-2", gen.New())
	assert.Equal(t, "duel-3", gen.New())
}
