package genetic

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/vi-runner/parameter"
	"github.com/lixenwraith/vi-runner/vmath"
)

// ErrMalformedChromosome is returned when a pool member has the wrong arity
var ErrMalformedChromosome = errors.New("malformed chromosome")

// Selection modes
const (
	SelectionFixed = parameter.GASelectionFixed
	SelectionRank  = parameter.GASelectionRank
)

// TrainerConfig holds configuration parameters for the trainer
type TrainerConfig struct {
	// GeneCount is the fixed chromosome arity
	GeneCount int
	// MutationRate is the probability each outgoing chromosome is mutated (0-1)
	MutationRate float64
	// Selection is SelectionFixed (positions 0 and 1) or SelectionRank (two best scores)
	Selection string
	// Bounds limits every gene; shorter lists fall back to GeneMin/GeneMax
	Bounds []ParameterBounds
	// Seed for random number generation (0 for random seed)
	Seed uint64
}

// DefaultTrainerConfig returns the classic runner settings
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		GeneCount:    parameter.GeneCount,
		MutationRate: parameter.GAMutationRate,
		Selection:    SelectionFixed,
		Bounds:       UniformBounds(parameter.GeneCount, parameter.GeneMin, parameter.GeneMax),
	}
}

// Trainer turns one generation's chromosomes into the next
// Not safe for concurrent use
type Trainer struct {
	config      TrainerConfig
	rng         *rand.Rand
	selector    Selector[Chromosome, float64]
	combiner    Combiner[Chromosome, float64]
	perturbator Perturbator[Chromosome]
}

// NewTrainer wires the operators for the configured selection mode
func NewTrainer(config TrainerConfig) (*Trainer, error) {
	if config.GeneCount <= 0 {
		return nil, fmt.Errorf("trainer gene count must be positive, got %d", config.GeneCount)
	}
	if config.MutationRate < 0 || config.MutationRate > 1 {
		return nil, fmt.Errorf("trainer mutation rate %v outside [0, 1]", config.MutationRate)
	}
	for len(config.Bounds) < config.GeneCount {
		config.Bounds = append(config.Bounds, ParameterBounds{Min: parameter.GeneMin, Max: parameter.GeneMax})
	}

	var selector Selector[Chromosome, float64]
	switch config.Selection {
	case "", SelectionFixed:
		config.Selection = SelectionFixed
		selector = &FixedSelector[Chromosome, float64]{Indices: []int{0, 1}}
	case SelectionRank:
		selector = &RankSelector[Chromosome, float64]{}
	default:
		return nil, fmt.Errorf("unknown selection mode %q", config.Selection)
	}

	return &Trainer{
		config:      config,
		rng:         vmath.NewRand(config.Seed),
		selector:    selector,
		combiner:    &SinglePointCombiner[Chromosome, float64, float64]{},
		perturbator: &SingleGenePerturbator{Bounds: config.Bounds},
	}, nil
}

// Config returns the effective configuration
func (t *Trainer) Config() TrainerConfig {
	return t.config
}

// Random draws a fresh chromosome within the gene bounds
func (t *Trainer) Random() Chromosome {
	return RandomChromosome(t.config.Bounds[:t.config.GeneCount], t.rng)
}

// Evolve produces one chromosome per pool member, in slot order
// Parents are combined into the last two slots, then every chromosome may be mutated
// Pool data is never modified
func (t *Trainer) Evolve(pool *Pool[Chromosome, float64]) ([]Chromosome, error) {
	if pool == nil || len(pool.Members) == 0 {
		return nil, nil
	}
	for i, m := range pool.Members {
		if len(m.Data) != t.config.GeneCount {
			return nil, fmt.Errorf("%w: slot %d has %d genes, want %d", ErrMalformedChromosome, i, len(m.Data), t.config.GeneCount)
		}
		for _, g := range m.Data {
			if math.IsNaN(g) || math.IsInf(g, 0) {
				return nil, fmt.Errorf("%w: slot %d has non-finite gene", ErrMalformedChromosome, i)
			}
		}
	}

	pool.Stats = ComputeStats(pool, t.config.Bounds)

	n := len(pool.Members)
	out := make([]Chromosome, n)
	for i, m := range pool.Members {
		out[i] = m.Data.Clone()
	}

	if n >= 2 {
		parents := t.selector.Select(pool, 2, t.rng)
		children := t.combiner.Combine(parents, t.rng)
		if len(children) == 2 {
			out[n-1] = children[0]
			out[n-2] = children[1]
		}
	}

	for i := range out {
		t.perturbator.Perturb(&out[i], t.config.MutationRate, t.rng)
	}
	return out, nil
}

// ComputeStats summarizes scores and gene spread of a pool
func ComputeStats(pool *Pool[Chromosome, float64], bounds []ParameterBounds) PoolStats[float64] {
	var stats PoolStats[float64]
	if pool == nil || len(pool.Members) == 0 {
		return stats
	}

	stats.BestScore = pool.Members[0].Score
	stats.WorstScore = pool.Members[0].Score
	sum := 0.0
	for _, m := range pool.Members {
		stats.BestScore = max(stats.BestScore, m.Score)
		stats.WorstScore = min(stats.WorstScore, m.Score)
		sum += m.Score
	}
	stats.AverageScore = sum / float64(len(pool.Members))

	genes := len(pool.Members[0].Data)
	if genes == 0 || len(pool.Members) < 2 {
		return stats
	}
	spread := 0.0
	for g := 0; g < genes; g++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, m := range pool.Members {
			if g < len(m.Data) {
				lo = min(lo, m.Data[g])
				hi = max(hi, m.Data[g])
			}
		}
		span := 2.0
		if g < len(bounds) && bounds[g].Max > bounds[g].Min {
			span = bounds[g].Max - bounds[g].Min
		}
		spread += min((hi-lo)/span, 1)
	}
	stats.Diversity = spread / float64(genes)
	return stats
}
