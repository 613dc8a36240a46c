package genetic

import (
	"math/rand/v2"
)

// --- Core Type Constraints ---

// Solution represents any type that can be used as a solution encoding
type Solution any

// Numeric constrains types to numeric values for fitness scores
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Chromosome is the evolvable parameter vector of a policy
type Chromosome []float64

// Clone returns an unaliased copy
func (c Chromosome) Clone() Chromosome {
	if c == nil {
		return nil
	}
	out := make(Chromosome, len(c))
	copy(out, c)
	return out
}

// --- Core Data Structures ---

// Candidate pairs a solution with its evaluated score
type Candidate[S Solution, F Numeric] struct {
	// Data holds the encoded solution
	Data S
	// Score is higher for better candidates
	Score F
}

// Pool is the set of candidates of one generation, in population slot order
type Pool[S Solution, F Numeric] struct {
	Members    []Candidate[S, F]
	Generation int
	Stats      PoolStats[F]
}

// PoolStats contains statistical information about a candidate pool
type PoolStats[F Numeric] struct {
	BestScore    F
	WorstScore   F
	AverageScore float64
	Diversity    float64 // Mean per-gene spread normalized by gene range (0-1)
}

// --- Core Operators as Interfaces ---

// Selector chooses parents from the pool
type Selector[S Solution, F Numeric] interface {
	// Select returns size candidates; callers must not mutate their Data
	Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F]
}

// Combiner recombines parents into offspring
type Combiner[S Solution, F Numeric] interface {
	// Combine returns fresh offspring encodings that do not alias the parents
	Combine(parents []Candidate[S, F], rng *rand.Rand) []S
}

// Perturbator mutates a solution in place
type Perturbator[S Solution] interface {
	// Perturb applies variation with probability rate (0-1)
	Perturb(solution *S, rate float64, rng *rand.Rand)
}
