// Package random provides the uniform random sources used to draw the
// computer's move. Sources are injected so tests can script the draw.
package random

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Random provides random number generation that can be mocked for testing.
type Random interface {
	// Intn returns a random int in [0, n).
	Intn(n int) int
}

// CryptoRandom implements Random using crypto/rand.
type CryptoRandom struct{}

// New creates a new CryptoRandom.
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n).
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand does not fail on supported platforms
		return 0
	}
	return int(result.Int64())
}

// SeededRandom implements Random with a deterministic math/rand source.
// Used when a --seed is given so a whole session can be replayed.
// Not safe for concurrent use; callers serialize access.
type SeededRandom struct {
	rng *mrand.Rand
}

// NewSeeded creates a SeededRandom for the given seed.
func NewSeeded(seed int64) *SeededRandom {
	return &SeededRandom{rng: mrand.New(mrand.NewSource(seed))}
}

// Intn returns a pseudo-random int in [0, n).
func (r *SeededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}
