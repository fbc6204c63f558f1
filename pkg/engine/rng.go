package engine

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrCorruptRNGState is returned when a captured RNG token cannot be restored.
var ErrCorruptRNGState = errors.New("corrupt rng state")

// RNG is the single source of randomness for all stochastic engine decisions
// (hyperspace rolls, rebellion rolls). Every draw goes through the one instance
// owned by the Game aggregate, in a fixed call order per phase, so replaying the
// same seed with the same order batches reproduces the same trajectory exactly.
type RNG struct {
	pcg *rand.PCG
	rnd *rand.Rand
}

// NewRNG creates a deterministic generator from a seed.
func NewRNG(seed int64) *RNG {
	pcg := rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
	return &RNG{pcg: pcg, rnd: rand.New(pcg)}
}

// Float64 returns a uniform float in [0, 1).
func (r *RNG) Float64() float64 {
	return r.rnd.Float64()
}

// IntN returns a uniform integer in [a, b] inclusive.
func (r *RNG) IntN(a, b int) int {
	if b < a {
		a, b = b, a
	}
	return a + r.rnd.IntN(b-a+1)
}

// Shuffle shuffles n elements in place using the provided swap function.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.rnd.Shuffle(n, swap)
}

// Choice returns a uniformly chosen element of xs. Panics on an empty slice,
// which indicates a caller bug.
func Choice[T any](r *RNG, xs []T) T {
	return xs[r.rnd.IntN(len(xs))]
}

// CaptureState returns an opaque token encoding the full generator state.
// The token round-trips through RestoreState for save/load.
func (r *RNG) CaptureState() string {
	b, err := r.pcg.MarshalBinary()
	if err != nil {
		// PCG marshaling cannot fail; keep the signature token-only.
		panic(err)
	}
	return hex.EncodeToString(b)
}

// RestoreState replaces the generator state with a previously captured token.
// A malformed token fails with ErrCorruptRNGState and leaves the current
// state untouched; the generator is never silently reseeded.
func (r *RNG) RestoreState(token string) error {
	b, err := hex.DecodeString(token)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCorruptRNGState, err)
	}
	probe := rand.NewPCG(0, 0)
	if err := probe.UnmarshalBinary(b); err != nil {
		return fmt.Errorf("%w: %s", ErrCorruptRNGState, err)
	}
	if err := r.pcg.UnmarshalBinary(b); err != nil {
		return fmt.Errorf("%w: %s", ErrCorruptRNGState, err)
	}
	return nil
}
