package brackets

import (
	"math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// RandSource is the randomness a shuffle draws from. *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// NewSeededRand returns a *rand.Rand seeded deterministically from seed, so a bracket can
// be replayed exactly.
func NewSeededRand(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Shuffle returns a Fisher-Yates permutation of items without touching the input slice.
// A nil src uses the global math/rand/v2 source.
func Shuffle[T any](items []T, src RandSource) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	intN := rand.IntN
	if src != nil {
		intN = src.IntN
	}

	for i := len(shuffled) - 1; i > 0; i-- {
		j := intN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
