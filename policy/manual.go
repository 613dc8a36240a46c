package policy

import (
	"fmt"
	"sync"
)

// Manual relays keyboard actions to the population as a policy
// Safe for concurrent use; input handlers queue while the tick drains
type Manual struct {
	mu      sync.Mutex
	pending Action
}

// Queue sets the action returned by the next Decide
func (m *Manual) Queue(a Action) {
	m.mu.Lock()
	m.pending = a
	m.mu.Unlock()
}

// Decide returns the queued action once, then NoOp
func (m *Manual) Decide(State) Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.pending
	m.pending = NoOp
	return a
}

// Direct reports true; keyboard input must not wait for an obstacle
func (m *Manual) Direct() bool { return true }

// Chromosome returns nil; a human has no evolvable genes
func (m *Manual) Chromosome() []float64 {
	return nil
}

// LoadChromosome accepts only an empty vector
func (m *Manual) LoadChromosome(v []float64) error {
	if len(v) != 0 {
		return fmt.Errorf("%w: manual policy has no genes, got %d", ErrInvalidChromosome, len(v))
	}
	return nil
}
