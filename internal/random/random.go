// Package random derives deterministic generators from the session seed so that
// forge rolls and shop restocks replay identically for the same seed.
package random

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// New returns a PCG generator for seed.
func New(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic replays.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

// For returns a generator for one labelled roll, e.g. For(seed, "restock:%s:%d", id, n).
func For(seed int64, format string, args ...any) *rand.Rand {
	return New(FromLabel(seed, fmt.Sprintf(format, args...)))
}

func FromLabel(seed int64, label string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, label)))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

// Pick returns a uniformly chosen element of pool.
func Pick[T any](rng *rand.Rand, pool []T) (T, bool) {
	var zero T
	if rng == nil || len(pool) == 0 {
		return zero, false
	}
	return pool[rng.IntN(len(pool))], true
}

// Chance rolls a probability in [0,1].
func Chance(rng *rand.Rand, p float64) bool {
	switch {
	case p <= 0:
		return false
	case p >= 1:
		return true
	case rng == nil:
		return false
	}
	return rng.Float64() < p
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
