// Package core provides fundamental types and utilities for the arena
// simulation. It contains no external dependencies to keep game logic pure
// and testable.
package core

// Rand is a deterministic pseudo-random number generator with 32-bit state.
// The map layout a client derives from a seed must match the server's
// byte for byte, so we do not rely on math/rand (its stream is not
// guaranteed stable across Go releases) and use a fixed mixing function
// instead. Not cryptographic.
type Rand struct {
	state uint32
}

// NewRand creates a generator from a numeric seed.
func NewRand(seed uint32) *Rand {
	return &Rand{state: seed}
}

// NewRandString creates a generator from an arbitrary string seed.
// The string is folded into a 32-bit state with FNV-1a.
func NewRandString(seed string) *Rand {
	return &Rand{state: HashSeed(seed)}
}

// HashSeed folds a string seed into a 32-bit integer (FNV-1a).
func HashSeed(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// Next advances the generator and returns the next 32-bit value.
// The mixer is mulberry32, chosen for its tiny state and good avalanche.
func (r *Rand) Next() uint32 {
	r.state += 0x6D2B79F5
	z := r.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return z ^ (z >> 14)
}

// Float64 returns a random float64 in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Next()) / float64(1<<32)
}

// Intn returns a random int in [0, n). Returns 0 for n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint32(n))
}
