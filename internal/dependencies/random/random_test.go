package random

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntnStaysInRange(t *testing.T) {
	r := New()
	for i := 0; i < 200; i++ {
		n := r.Intn(7)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
	}
	assert.Equal(t, 0, r.Intn(0))
}

func TestStringUsesAlphabet(t *testing.T) {
	s := New().String(16, "ab")
	assert.Len(t, s, 16)
	assert.NotContains(t, s, "c")
	assert.Empty(t, New().String(4, ""))
}

func TestUUIDIsParseable(t *testing.T) {
	r := New()
	id := r.UUID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, r.UUID())
}
