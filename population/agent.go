package population

import (
	"github.com/lixenwraith/vi-runner/physics"
	"github.com/lixenwraith/vi-runner/policy"
)

// Agent is one population slot; it is reset, never replaced, between generations
type Agent struct {
	ID       int
	Runner   *physics.Runner
	Policy   policy.Policy // Nil for a directly driven runner
	Crashed  bool
	Distance float64 // Canvas pixels travelled before crashing
}

func (a *Agent) reset() {
	a.Runner.Reset()
	a.Crashed = false
	a.Distance = 0
}
