package policy

import (
	"fmt"

	"github.com/lixenwraith/vi-runner/parameter"
)

// Linear is a single threshold unit: jump when w·x + b is negative
type Linear struct {
	Weights Input
	Bias    float64
}

// NewLinear creates a linear policy from a chromosome of weights followed by bias
func NewLinear(chromosome []float64) (*Linear, error) {
	l := &Linear{}
	if err := l.LoadChromosome(chromosome); err != nil {
		return nil, err
	}
	return l, nil
}

// Score returns the raw unit output for a state
func (l *Linear) Score(s State) float64 {
	in := s.Vector()
	sum := l.Bias
	for i, x := range in {
		sum += l.Weights[i] * x
	}
	return sum
}

// Decide jumps on a negative score and otherwise does nothing
func (l *Linear) Decide(s State) Action {
	if l.Score(s) < 0 {
		return Jump
	}
	return NoOp
}

// Chromosome returns the weights followed by the bias
func (l *Linear) Chromosome() []float64 {
	out := make([]float64, 0, parameter.GeneCount)
	out = append(out, l.Weights[:]...)
	return append(out, l.Bias)
}

// LoadChromosome overwrites weights and bias in place
func (l *Linear) LoadChromosome(v []float64) error {
	if len(v) != parameter.GeneCount {
		return fmt.Errorf("%w: linear policy wants %d genes, got %d", ErrInvalidChromosome, parameter.GeneCount, len(v))
	}
	copy(l.Weights[:], v[:len(l.Weights)])
	l.Bias = v[len(l.Weights)]
	return nil
}
