package genetic

import (
	"math/rand/v2"

	"github.com/lixenwraith/vi-runner/vmath"
)

// ParameterBounds defines min/max for a single parameter
type ParameterBounds struct {
	Min, Max float64
}

// Draw returns a uniform value in [Min, Max)
func (b ParameterBounds) Draw(rng *rand.Rand) float64 {
	return vmath.RandomFloat(rng, b.Min, b.Max)
}

// UniformBounds repeats the same bounds for n genes
func UniformBounds(n int, lo, hi float64) []ParameterBounds {
	bounds := make([]ParameterBounds, n)
	for i := range bounds {
		bounds[i] = ParameterBounds{Min: lo, Max: hi}
	}
	return bounds
}

// RandomChromosome draws every gene uniformly within its bounds
func RandomChromosome(bounds []ParameterBounds, rng *rand.Rand) Chromosome {
	c := make(Chromosome, len(bounds))
	for i, b := range bounds {
		c[i] = b.Draw(rng)
	}
	return c
}

// SingleGenePerturbator overwrites one random gene with a fresh draw from its bounds
type SingleGenePerturbator struct {
	Bounds []ParameterBounds
}

// Perturb implements the Perturbator interface; rate gates the whole chromosome
func (sp *SingleGenePerturbator) Perturb(solution *Chromosome, rate float64, rng *rand.Rand) {
	if solution == nil || len(*solution) == 0 {
		return
	}
	if rng.Float64() >= rate {
		return
	}

	i := rng.IntN(len(*solution))
	bounds := ParameterBounds{Min: -1, Max: 1}
	if i < len(sp.Bounds) {
		bounds = sp.Bounds[i]
	}
	(*solution)[i] = bounds.Draw(rng)
}
