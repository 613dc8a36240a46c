// Package policy maps an observed obstacle state to a runner action
package policy

import (
	"errors"

	"github.com/lixenwraith/vi-runner/parameter"
)

// ErrInvalidChromosome is returned when a parameter vector has the wrong arity
var ErrInvalidChromosome = errors.New("invalid chromosome")

// Action is a per-tick runner command
type Action int8

const (
	DuckOrFastFall Action = -1
	NoOp           Action = 0
	Jump           Action = 1
)

func (a Action) String() string {
	switch a {
	case DuckOrFastFall:
		return "duck"
	case NoOp:
		return "noop"
	case Jump:
		return "jump"
	default:
		return "invalid"
	}
}

// State is what a runner observes about the lead obstacle
// ObstacleX is measured from the runner's own x
type State struct {
	ObstacleX     float64
	ObstacleY     float64
	ObstacleWidth float64
	Speed         float64
}

// Input is the normalized policy input vector
type Input [3]float64

// Vector normalizes the state into policy input units
func (s State) Vector() Input {
	return Input{
		s.ObstacleX / parameter.PolicyScaleX,
		s.ObstacleWidth / parameter.PolicyScaleWidth,
		s.Speed / parameter.PolicyScaleSpeed,
	}
}

// Direct is implemented by policies that act on every tick,
// including ticks with no obstacle in view
type Direct interface {
	Direct() bool
}

// Policy decides an action from a state and exposes its evolvable parameters
type Policy interface {
	Decide(State) Action
	// Chromosome returns a copy of the parameter vector
	Chromosome() []float64
	// LoadChromosome replaces the parameters; on error nothing is changed
	LoadChromosome([]float64) error
}
