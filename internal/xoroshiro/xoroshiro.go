// Package xoroshiro implements the xoroshiro128+ pseudo-random generator.
//
// The generator is the seeded source behind the Zobrist tables and the MCTS
// rollouts. Given the same seed, Next reproduces the same sequence, which the
// tests rely on. Jump advances the state by 2^64 steps so that independent
// consumers can draw decorrelated sub-streams from one seed.
//
// Thread-safety: a Source is NOT safe for concurrent use. In the cooperative
// runtime only one task runs at a time, so no locking is needed.
package xoroshiro

import "math/bits"

// jumpPoly is the xoroshiro128+ (24, 16, 37) jump polynomial.
var jumpPoly = [2]uint64{0xdf900294d8f554a5, 0x170865df4b3201fc}

// Source holds the 128-bit generator state.
type Source struct {
	s [2]uint64
}

// New creates a source whose state is expanded from seed with splitmix64.
func New(seed uint64) *Source {
	src := &Source{}
	src.Seed(seed)
	return src
}

// Seed resets the state from seed.
// The all-zero state is a fixed point of the generator and is never produced.
func (x *Source) Seed(seed uint64) {
	sm := seed
	x.s[0] = splitmix64(&sm)
	x.s[1] = splitmix64(&sm)
	if x.s[0] == 0 && x.s[1] == 0 {
		x.s[1] = 1
	}
}

// Next returns the next 64-bit value in the sequence.
func (x *Source) Next() uint64 {
	s0, s1 := x.s[0], x.s[1]
	result := s0 + s1

	s1 ^= s0
	x.s[0] = bits.RotateLeft64(s0, 24) ^ s1 ^ (s1 << 16)
	x.s[1] = bits.RotateLeft64(s1, 37)

	return result
}

// Jump advances the state by 2^64 calls to Next.
func (x *Source) Jump() {
	var s0, s1 uint64
	for _, word := range jumpPoly {
		for b := 0; b < 64; b++ {
			if word&(uint64(1)<<b) != 0 {
				s0 ^= x.s[0]
				s1 ^= x.s[1]
			}
			x.Next()
		}
	}
	x.s[0], x.s[1] = s0, s1
}

// Intn returns a value in [0, n). It panics if n <= 0.
// Uses Lemire's multiply-shift reduction; the bias is negligible for the
// small n used by move selection.
func (x *Source) Intn(n int) int {
	if n <= 0 {
		panic("xoroshiro: Intn called with non-positive n")
	}
	hi, _ := bits.Mul64(x.Next(), uint64(n))
	return int(hi)
}

// State returns a copy of the raw state. Useful for checkpointing in tests.
func (x *Source) State() [2]uint64 {
	return x.s
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
