// Package zobrist provides the position hash service: one random 64-bit value
// per (cell, occupant) pair, generated once from a seeded xoroshiro source and
// read-only afterwards.
//
// Consumers derive a position fingerprint by XOR-accumulating the values of
// the occupied cells. Hash and Toggle implement that convention, but the
// accumulation rule is owned by the consumer; search code may fold in extra
// terms (for example the side to move).
//
// Re-initializing with a new seed yields a different table and invalidates
// every key computed from the old one. Callers must not do that mid-game.
package zobrist

import (
	"math/bits"
	"time"

	"github.com/roach88/kxo/internal/game"
	"github.com/roach88/kxo/internal/xoroshiro"
)

// Occupants is the number of distinguishable occupant classes (O and X).
const Occupants = 2

// Table is the immutable per-(cell, occupant) key table.
type Table struct {
	seed uint64
	keys [game.NGrids][Occupants]uint64
}

// New builds a table from seed. The same seed always yields the same table.
func New(seed uint64) *Table {
	t := &Table{}
	t.initialize(seed)
	return t
}

func (t *Table) initialize(seed uint64) {
	src := xoroshiro.New(seed)
	t.seed = seed
	for cell := 0; cell < game.NGrids; cell++ {
		for occ := 0; occ < Occupants; occ++ {
			// Zero would make the XOR step a no-op for that cell.
			v := src.Next()
			for v == 0 {
				v = src.Next()
			}
			t.keys[cell][occ] = v
		}
	}
}

// Seed returns the seed the table was built from.
func (t *Table) Seed() uint64 {
	return t.seed
}

// Key returns the value for an occupant class at cell.
// Out-of-range arguments return 0.
func (t *Table) Key(cell, occupant int) uint64 {
	if cell < 0 || cell >= game.NGrids || occupant < 0 || occupant >= Occupants {
		return 0
	}
	return t.keys[cell][occupant]
}

// Toggle XORs the key for player at cell into h. Applying it twice restores h.
func (t *Table) Toggle(h uint64, cell int, player game.Cell) uint64 {
	return h ^ t.Key(cell, player.Index())
}

// Hash computes the full fingerprint of b from scratch.
func (t *Table) Hash(b *game.Board) uint64 {
	var h uint64
	for cell, c := range b {
		if idx := c.Index(); idx >= 0 {
			h ^= t.keys[cell][idx]
		}
	}
	return h
}

// SeedFromTime derives a production seed from a timestamp with one wyhash
// mixing round, so consecutive runs started within the same second still
// spread across the seed space.
func SeedFromTime(now time.Time) uint64 {
	seed := uint64(now.UnixNano())
	return wyhash64(&seed)
}

// wyhash64 is the stateless wyhash step: bump the seed, then two rounds of
// 128-bit multiply and fold.
func wyhash64(seed *uint64) uint64 {
	*seed += 0x60bee2bee120fc15
	hi, lo := bits.Mul64(*seed, 0xa3b195354a39b70d)
	m1 := hi ^ lo
	hi, lo = bits.Mul64(m1, 0x1b03738712fad5c9)
	return hi ^ lo
}
