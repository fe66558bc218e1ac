package xoroshiro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_SameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Next(), b.Next(), "sequence diverged at step %d", i)
	}
}

func TestSource_DifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	same := 0
	for i := 0; i < 64; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	assert.Less(t, same, 2, "distinct seeds should not produce matching streams")
}

func TestSource_SeedResets(t *testing.T) {
	src := New(7)
	first := src.Next()
	src.Next()
	src.Next()

	src.Seed(7)
	assert.Equal(t, first, src.Next())
}

func TestSource_JumpIsDeterministic(t *testing.T) {
	a := New(99)
	b := New(99)
	a.Jump()
	b.Jump()
	assert.Equal(t, a.State(), b.State())
	assert.Equal(t, a.Next(), b.Next())
}

func TestSource_JumpProducesSeparateStream(t *testing.T) {
	base := New(99)
	jumped := New(99)
	jumped.Jump()

	assert.NotEqual(t, base.State(), jumped.State())

	seen := make(map[uint64]bool, 256)
	for i := 0; i < 256; i++ {
		seen[base.Next()] = true
	}
	overlap := 0
	for i := 0; i < 256; i++ {
		if seen[jumped.Next()] {
			overlap++
		}
	}
	assert.Zero(t, overlap, "jumped stream should not replay the base stream")
}

func TestSource_StateNeverZero(t *testing.T) {
	for seed := uint64(0); seed < 32; seed++ {
		st := New(seed).State()
		assert.False(t, st[0] == 0 && st[1] == 0, "seed %d produced zero state", seed)
	}
}

func TestSource_IntnRange(t *testing.T) {
	src := New(5)
	counts := make([]int, 16)
	for i := 0; i < 16000; i++ {
		v := src.Intn(16)
		require.GreaterOrEqual(t, v, 0)
		require.Less(t, v, 16)
		counts[v]++
	}
	for i, c := range counts {
		assert.Greater(t, c, 0, "value %d never drawn", i)
	}
}

func TestSource_IntnPanicsOnNonPositive(t *testing.T) {
	src := New(5)
	assert.Panics(t, func() { src.Intn(0) })
	assert.Panics(t, func() { src.Intn(-3) })
}
