package core

import (
	"math/rand"
	"time"
)

// RNG is the only source of randomness the gameplay core consumes.
// *math/rand.Rand satisfies it; tests inject seeded or scripted sources.
type RNG interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n). n must be > 0.
	Intn(n int) int
}

// NewRNG returns a math/rand generator for the seed.
// Seed 0 means "seed from the wall clock".
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// MixSeed derives a per-item seed from a base seed so that item n always sees
// the same stream no matter in which order items are generated.
func MixSeed(seed int64, n int) int64 {
	x := uint64(seed) ^ (uint64(n) * 0x9E3779B97F4A7C15)
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	s := int64(x & 0x7FFFFFFFFFFFFFFF)
	if s == 0 {
		s = 1
	}
	return s
}
