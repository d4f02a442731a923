package swiss

import (
	"hash/maphash"
	"math/rand/v2"

	farm "github.com/dgryski/go-farm"
)

// HashFunc hashes a key to 64 bits.
type HashFunc[K comparable] func(K) uint64

// DefaultHash returns a per-table seeded hash function. String keys use
// farmhash over the raw bytes; everything else goes through maphash.
func DefaultHash[K comparable]() HashFunc[K] {
	var zero K
	if _, ok := any(zero).(string); ok {
		seed := rand.Uint64()
		return func(k K) uint64 {
			return farm.Hash64WithSeed([]byte(any(k).(string)), seed)
		}
	}
	seed := maphash.MakeSeed()
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// HashSplit splits a hash into the probe position part (h1) and the 7-bit
// control byte part (h2).
func HashSplit(hash uint64) (uintptr, uint8) {
	h1 := uintptr(hash >> 7)
	h2 := uint8(hash & 0x7F)

	return h1, h2
}
