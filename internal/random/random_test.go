package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForIsDeterministic(t *testing.T) {
	a := For(42, "prismatic:%s:%d", "(T)Axe", 1)
	b := For(42, "prismatic:%s:%d", "(T)Axe", 1)
	for i := 0; i < 8; i++ {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestFromLabelDiffersByLabel(t *testing.T) {
	assert.NotEqual(t, FromLabel(7, "restock:24:1"), FromLabel(7, "restock:24:2"))
	assert.GreaterOrEqual(t, FromLabel(7, "x"), int64(0))
}

func TestPick(t *testing.T) {
	_, ok := Pick[string](New(1), nil)
	assert.False(t, ok)

	got, ok := Pick(New(1), []string{"only"})
	assert.True(t, ok)
	assert.Equal(t, "only", got)
}

func TestChanceBounds(t *testing.T) {
	rng := New(3)
	assert.False(t, Chance(rng, 0))
	assert.True(t, Chance(rng, 1))
	assert.False(t, Chance(nil, 0.5))
}
