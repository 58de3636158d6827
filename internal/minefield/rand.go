package minefield

import (
	"hash/maphash"
	"math/rand/v2"
)

// Rand is the source of uniform integers used to place mines.
// [*rand.Rand] satisfies it.
type Rand interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// NewRand returns a PCG-backed generator. A zero seed picks a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return rand.New(rand.NewPCG(seed, seed))
}
