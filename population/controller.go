// Package population steps every runner of a generation against the shared lead obstacle
package population

import (
	"fmt"
	"sync"

	"github.com/lixenwraith/vi-runner/genetic"
	"github.com/lixenwraith/vi-runner/obstacle"
	"github.com/lixenwraith/vi-runner/parameter"
	"github.com/lixenwraith/vi-runner/physics"
	"github.com/lixenwraith/vi-runner/policy"
)

// Config tunes a controller
type Config struct {
	Profile *physics.JumpProfile
	FrameMs float64

	// ParallelDecisions queries policies concurrently and waits for all before applying any
	ParallelDecisions bool
}

// DefaultConfig returns the sequential classic setup
func DefaultConfig() Config {
	return Config{
		Profile: &physics.DefaultJumpProfile,
		FrameMs: parameter.MsPerFrame,
	}
}

// Controller owns the agents of a generation and their crash order
// Not safe for concurrent use; Tick and Reset run on the simulation goroutine
type Controller struct {
	config   Config
	agents   []*Agent
	ranks    RankList
	detector physics.Detector

	// Hooks fire synchronously inside Tick
	OnCrash func(a *Agent)
	OnJump  func(a *Agent)

	pending []pendingDecision
	actions []policy.Action
}

type pendingDecision struct {
	agent *Agent
	state policy.State
}

// NewController creates one agent per policy; a nil policy yields an agent no policy drives
func NewController(config Config, policies []policy.Policy) *Controller {
	if config.Profile == nil {
		config.Profile = &physics.DefaultJumpProfile
	}
	if config.FrameMs <= 0 {
		config.FrameMs = parameter.MsPerFrame
	}
	c := &Controller{config: config}
	for i, p := range policies {
		c.agents = append(c.agents, &Agent{
			ID:     i,
			Runner: physics.NewRunner(config.Profile),
			Policy: p,
		})
	}
	return c
}

// SetProbe attaches a collision phase counter
func (c *Controller) SetProbe(p *physics.Probe) {
	c.detector.Probe = p
}

// Agents returns the agents in slot order
func (c *Controller) Agents() []*Agent {
	return c.agents
}

// Size returns the number of slots
func (c *Controller) Size() int {
	return len(c.agents)
}

// RankList returns the crash order of the current generation
func (c *Controller) RankList() *RankList {
	return &c.ranks
}

// LivingCount returns the number of agents that have not crashed
func (c *Controller) LivingCount() int {
	n := 0
	for _, a := range c.agents {
		if !a.Crashed {
			n++
		}
	}
	return n
}

// GenerationOver reports whether every agent has crashed
func (c *Controller) GenerationOver() bool {
	return c.LivingCount() == 0
}

// Tick advances every live agent by dt milliseconds against the frozen lead
// Collisions are resolved for all agents before any policy action is applied
func (c *Controller) Tick(dt float64, lead *obstacle.Obstacle, speed float64) {
	c.pending = c.pending[:0]

	for _, a := range c.agents {
		if a.Crashed {
			continue
		}
		a.Runner.Update(dt)

		if lead == nil {
			if isDirect(a.Policy) {
				c.pending = append(c.pending, pendingDecision{agent: a, state: policy.State{Speed: speed}})
			}
			continue
		}
		if c.detector.Check(a.Runner, lead) {
			c.crash(a)
			continue
		}
		if a.Policy != nil {
			c.pending = append(c.pending, pendingDecision{agent: a, state: c.observe(a, lead, speed)})
		}
	}

	c.decide()

	for i, d := range c.pending {
		c.apply(d.agent, c.actions[i], speed)
	}

	for _, a := range c.agents {
		a.Runner.Animate(dt)
		if !a.Crashed {
			a.Distance += speed * dt / c.config.FrameMs
		}
	}
}

func isDirect(p policy.Policy) bool {
	d, ok := p.(policy.Direct)
	return ok && d.Direct()
}

func (c *Controller) observe(a *Agent, lead *obstacle.Obstacle, speed float64) policy.State {
	return policy.State{
		ObstacleX:     float64(lead.X - a.Runner.Pose().X),
		ObstacleY:     float64(lead.Y),
		ObstacleWidth: float64(lead.Width),
		Speed:         speed,
	}
}

// decide fills actions for every pending decision
func (c *Controller) decide() {
	if cap(c.actions) < len(c.pending) {
		c.actions = make([]policy.Action, len(c.pending))
	}
	c.actions = c.actions[:len(c.pending)]

	if !c.config.ParallelDecisions || len(c.pending) < 2 {
		for i, d := range c.pending {
			c.actions[i] = d.agent.Policy.Decide(d.state)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(c.pending))
	for i, d := range c.pending {
		go func() {
			defer wg.Done()
			c.actions[i] = d.agent.Policy.Decide(d.state)
		}()
	}
	wg.Wait()
}

func (c *Controller) apply(a *Agent, action policy.Action, speed float64) {
	switch action {
	case policy.Jump:
		wasJumping := a.Runner.Pose().Airborne()
		a.Runner.StartJump(speed)
		if !wasJumping && a.Runner.Pose().Airborne() && c.OnJump != nil {
			c.OnJump(a)
		}
	case policy.DuckOrFastFall:
		if a.Runner.Pose().Airborne() {
			a.Runner.SetSpeedDrop()
		} else {
			a.Runner.SetDuck(true)
		}
	}
}

func (c *Controller) crash(a *Agent) {
	a.Crashed = true
	a.Runner.Crash()
	if c.ranks.Push(a) && c.OnCrash != nil {
		c.OnCrash(a)
	}
}

// Reset grounds every runner, revives every agent and clears the crash order
func (c *Controller) Reset() {
	for _, a := range c.agents {
		a.reset()
	}
	c.ranks.Clear()
}

// Chromosomes returns a copy of every agent's chromosome in slot order
func (c *Controller) Chromosomes() []genetic.Chromosome {
	out := make([]genetic.Chromosome, len(c.agents))
	for i, a := range c.agents {
		if a.Policy != nil {
			out[i] = a.Policy.Chromosome()
		}
	}
	return out
}

// LoadChromosomes distributes chromosomes by slot
// Arity is checked for every slot before any policy is changed
func (c *Controller) LoadChromosomes(chromosomes []genetic.Chromosome) error {
	if len(chromosomes) != len(c.agents) {
		return fmt.Errorf("%w: got %d chromosomes for %d agents", policy.ErrInvalidChromosome, len(chromosomes), len(c.agents))
	}
	for i, a := range c.agents {
		if a.Policy == nil {
			continue
		}
		if want := len(a.Policy.Chromosome()); len(chromosomes[i]) != want {
			return fmt.Errorf("%w: slot %d has %d genes, want %d", policy.ErrInvalidChromosome, i, len(chromosomes[i]), want)
		}
	}
	for i, a := range c.agents {
		if a.Policy == nil {
			continue
		}
		if err := a.Policy.LoadChromosome(chromosomes[i]); err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
	}
	return nil
}

// Scores returns each slot's crash rank, 1 for the first crash and 0 when unranked
func (c *Controller) Scores() []float64 {
	scores := make([]float64, len(c.agents))
	for i, a := range c.agents {
		scores[i] = float64(c.ranks.Rank(a))
	}
	return scores
}

// Pool packages chromosomes and crash ranks for the trainer
func (c *Controller) Pool(generation int) *genetic.Pool[genetic.Chromosome, float64] {
	chromosomes := c.Chromosomes()
	scores := c.Scores()
	pool := &genetic.Pool[genetic.Chromosome, float64]{Generation: generation}
	for i := range c.agents {
		pool.Members = append(pool.Members, genetic.Candidate[genetic.Chromosome, float64]{
			Data:  chromosomes[i],
			Score: scores[i],
		})
	}
	return pool
}
