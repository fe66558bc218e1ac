package zobrist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kxo/internal/game"
)

func TestNew_SameSeedIdenticalTables(t *testing.T) {
	a := New(0x1234)
	b := New(0x1234)

	for cell := 0; cell < game.NGrids; cell++ {
		for occ := 0; occ < Occupants; occ++ {
			require.Equal(t, a.Key(cell, occ), b.Key(cell, occ), "cell=%d occ=%d", cell, occ)
		}
	}
	assert.Equal(t, uint64(0x1234), a.Seed())
}

func TestNew_DifferentSeedsDifferentTables(t *testing.T) {
	a := New(1)
	b := New(2)

	differing := 0
	for cell := 0; cell < game.NGrids; cell++ {
		for occ := 0; occ < Occupants; occ++ {
			if a.Key(cell, occ) != b.Key(cell, occ) {
				differing++
			}
		}
	}
	assert.Equal(t, game.NGrids*Occupants, differing)
}

func TestNew_KeysNonZeroAndDistinct(t *testing.T) {
	tbl := New(77)
	seen := make(map[uint64]bool)
	for cell := 0; cell < game.NGrids; cell++ {
		for occ := 0; occ < Occupants; occ++ {
			k := tbl.Key(cell, occ)
			require.NotZero(t, k)
			require.False(t, seen[k], "duplicate key at cell=%d occ=%d", cell, occ)
			seen[k] = true
		}
	}
}

func TestKey_OutOfRange(t *testing.T) {
	tbl := New(3)
	assert.Zero(t, tbl.Key(-1, 0))
	assert.Zero(t, tbl.Key(game.NGrids, 0))
	assert.Zero(t, tbl.Key(0, Occupants))
	assert.Zero(t, tbl.Key(0, -1))
}

func TestToggle_IncrementalMatchesFullHash(t *testing.T) {
	tbl := New(2024)
	b := game.NewBoard()
	var h uint64

	moves := []struct {
		cell   int
		player game.Cell
	}{
		{5, game.O}, {0, game.X}, {10, game.O}, {15, game.X}, {3, game.O},
	}
	for _, mv := range moves {
		b[mv.cell] = mv.player
		h = tbl.Toggle(h, mv.cell, mv.player)
		require.Equal(t, tbl.Hash(&b), h)
	}

	// Undo in reverse order returns to the empty-board key.
	for i := len(moves) - 1; i >= 0; i-- {
		h = tbl.Toggle(h, moves[i].cell, moves[i].player)
	}
	assert.Zero(t, h)
}

func TestToggle_EmptyIsNoop(t *testing.T) {
	tbl := New(9)
	assert.Equal(t, uint64(42), tbl.Toggle(42, 3, game.Empty))
}

func TestHash_EmptyBoardIsZero(t *testing.T) {
	tbl := New(9)
	b := game.NewBoard()
	assert.Zero(t, tbl.Hash(&b))
}

func TestSeedFromTime(t *testing.T) {
	now := time.Unix(1700000000, 0)
	assert.Equal(t, SeedFromTime(now), SeedFromTime(now))
	assert.NotEqual(t, SeedFromTime(now), SeedFromTime(now.Add(time.Nanosecond)))
}
