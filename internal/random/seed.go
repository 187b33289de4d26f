// Package random provides the randomness used to draw monthly events.
//
// Production draws come from a math/rand generator seeded from crypto/rand;
// tests replace it with a Sequence so every draw is known in advance.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source yields uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a deterministic source for the given seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewFromSeedOrEntropy uses seed when non-zero, otherwise a fresh crypto seed.
// The seed actually used is returned so a run can be replayed.
func NewFromSeedOrEntropy(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		var err error
		seed, err = NewSeed()
		if err != nil {
			return nil, 0, err
		}
	}
	return New(seed), seed, nil
}
