package vmath

import (
	"math"
	"math/rand/v2"
)

// RoundHalfUp rounds to the nearest integer with halves rounded toward +Inf
// Differs from math.Round for negative halves: RoundHalfUp(-2.5) == -2
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// RandomInt returns a uniform integer in [min, max], both inclusive
func RandomInt(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.IntN(max-min+1)
}

// RandomFloat returns a uniform float in [min, max)
func RandomFloat(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// NewRand returns a PCG-backed generator, seeded randomly when seed is 0
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}
