package engine

import (
	"context"
	"errors"
	"fmt"
)

// ErrManualHeadless is returned when a keyboard driven simulation is run without a terminal
var ErrManualHeadless = errors.New("manual simulation cannot run headless")

// RunHeadless ticks sim with a fixed step until the given number of generations
// have rolled over or ctx is cancelled; generations <= 0 runs until cancelled
func RunHeadless(ctx context.Context, sim *Simulation, step float64, generations int) (Summary, error) {
	if step <= 0 {
		return sim.Summary(), fmt.Errorf("headless step must be positive, got %v", step)
	}
	if sim.manual != nil {
		return sim.Summary(), ErrManualHeadless
	}

	target := sim.Summary().Generation + generations
	for generations <= 0 || sim.generation < target {
		select {
		case <-ctx.Done():
			return sim.Summary(), ctx.Err()
		default:
		}
		sim.Tick(step)
	}
	return sim.Summary(), nil
}
