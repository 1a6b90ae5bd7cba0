// Package rng provides the seeded random source used by the sculptor.
package rng

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// RNG wraps a PCG generator so its state can be snapshotted and restored
// around a generation run.
type RNG struct {
	pcg *rand.PCG
	r   *rand.Rand
}

// New creates a deterministic RNG using the provided seed.
func New(seed int64) *RNG {
	pcg := rand.NewPCG(uint64(seed), 0)
	return &RNG{pcg: pcg, r: rand.New(pcg)}
}

// Seed resets the generator to the stream for seed.
func (r *RNG) Seed(seed int64) {
	r.pcg.Seed(uint64(seed), 0)
}

// Value returns a float in [0, 1).
func (r *RNG) Value() float64 { return r.r.Float64() }

// Chance reports whether a draw from Value falls below p.
func (r *RNG) Chance(p float64) bool { return r.r.Float64() < p }

// IntN returns an int in [0, n). It panics if n <= 0.
func (r *RNG) IntN(n int) int { return r.r.IntN(n) }

// Range returns an int in [lo, hi). It returns lo when hi <= lo.
func (r *RNG) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo)
}

// State returns an opaque snapshot of the generator.
func (r *RNG) State() ([]byte, error) {
	b, err := r.pcg.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("rng: snapshot state: %w", err)
	}
	return b, nil
}

// Restore rewinds the generator to a snapshot taken by State.
func (r *RNG) Restore(state []byte) error {
	if err := r.pcg.UnmarshalBinary(state); err != nil {
		return fmt.Errorf("rng: restore state: %w", err)
	}
	return nil
}

// DeriveSeed mixes a draw from r with the wall clock and the process
// uptime into a non-negative 31-bit seed.
func DeriveSeed(r *RNG, now time.Time, uptime time.Duration) int64 {
	seed := int64(r.IntN(math.MaxInt32))
	seed ^= int64(int32(now.UnixNano() / 100))
	seed ^= int64(int32(uptime / time.Second))
	return seed & math.MaxInt32
}
