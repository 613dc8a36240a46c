package engine

import (
	"errors"
	"fmt"
	"log"

	"github.com/lixenwraith/vi-runner/genetic"
	"github.com/lixenwraith/vi-runner/obstacle"
	"github.com/lixenwraith/vi-runner/parameter"
	"github.com/lixenwraith/vi-runner/physics"
	"github.com/lixenwraith/vi-runner/policy"
	"github.com/lixenwraith/vi-runner/population"
	"github.com/lixenwraith/vi-runner/render"
	"github.com/lixenwraith/vi-runner/vmath"
)

// Config holds everything needed to build a simulation
type Config struct {
	// Population is the number of agents; forced to 1 in manual mode
	Population int
	// Manual drives a single runner from keyboard entry points instead of evolved policies
	Manual bool

	InitialSpeed float64
	MaxSpeed     float64
	Acceleration float64 // Added to speed every tick until MaxSpeed
	ClearTimeMs  float64 // Obstacles start after this much running time
	FPS          float64

	Generator obstacle.Config
	Catalog   obstacle.Catalog
	Trainer   genetic.TrainerConfig
	Profile   *physics.JumpProfile

	// ParallelDecisions queries agent policies concurrently behind a barrier
	ParallelDecisions bool

	// InitialChromosomes seeds the first generation instead of random draws
	InitialChromosomes []genetic.Chromosome

	// Seed drives obstacle and chromosome draws (0 for random seed)
	Seed uint64
}

// DefaultConfig returns the classic runner setup
func DefaultConfig() Config {
	return Config{
		Population:   parameter.PopulationSize,
		InitialSpeed: parameter.RunSpeedInitial,
		MaxSpeed:     parameter.RunSpeedMax,
		Acceleration: parameter.RunSpeedAcceleration,
		ClearTimeMs:  parameter.RunClearTimeMs,
		FPS:          parameter.FPS,
		Generator:    obstacle.DefaultConfig(),
		Catalog:      obstacle.DefaultCatalog(),
		Trainer:      genetic.DefaultTrainerConfig(),
		Profile:      &physics.DefaultJumpProfile,
	}
}

// Hooks are called synchronously from Tick; nil hooks are skipped
type Hooks struct {
	OnJump     func(agentID int)
	OnCrash    func(agentID, rank int)
	OnRollover func(result GenerationResult)
}

// GenerationResult describes a finished generation
type GenerationResult struct {
	Generation   int
	Distances    []float64 // Per slot, canvas pixels
	BestDistance float64
	MeanDistance float64
	Score        int
	RankList     []int // Agent ids, first crash first
	Chromosomes  []genetic.Chromosome
	Next         []genetic.Chromosome // Nil when training was skipped
	Stats        genetic.PoolStats[float64]
	Aborted      bool
	Err          error
}

// Summary is the host-visible simulation state after a tick
type Summary struct {
	Generation   int
	LivingCount  int
	Population   int
	Distance     float64
	BestDistance float64
	Score        int
	HighScore    int
	Speed        float64
	Started      bool
	GameOver     bool
	Paused       bool
	Aborted      bool // Last rollover was forced by a fault
}

// Simulation is the run loop state of one population against one obstacle stream
// Not safe for concurrent use; Tick and the manual entry points must share a goroutine
type Simulation struct {
	config Config

	generator  *obstacle.Generator
	population *population.Controller
	trainer    *genetic.Trainer
	manual     *policy.Manual

	sink  render.Sink
	hooks Hooks

	speed        float64
	distance     float64
	runningTime  float64
	generation   int
	bestDistance float64
	highScore    int

	started  bool
	gameOver bool
	paused   bool
	aborted  bool
}

// NewSimulation builds the generator, population and trainer
// A nil sink disables drawing
func NewSimulation(config Config, sink render.Sink, hooks Hooks) (*Simulation, error) {
	if config.Manual {
		config.Population = 1
	}
	if config.Population <= 0 {
		return nil, fmt.Errorf("population must be positive, got %d", config.Population)
	}
	if config.FPS <= 0 {
		config.FPS = parameter.FPS
	}
	if config.Profile == nil {
		config.Profile = &physics.DefaultJumpProfile
	}
	if config.Catalog == nil {
		config.Catalog = obstacle.DefaultCatalog()
	}
	config.Generator.FPS = config.FPS

	generator, err := obstacle.NewGenerator(config.Generator, config.Catalog, vmath.NewRand(config.Seed))
	if err != nil {
		return nil, fmt.Errorf("obstacle generator: %w", err)
	}

	trainerConfig := config.Trainer
	if trainerConfig.Seed == 0 && config.Seed != 0 {
		trainerConfig.Seed = config.Seed + 1
	}
	trainer, err := genetic.NewTrainer(trainerConfig)
	if err != nil {
		return nil, fmt.Errorf("trainer: %w", err)
	}

	s := &Simulation{
		config:     config,
		generator:  generator,
		trainer:    trainer,
		sink:       sink,
		hooks:      hooks,
		generation: 1,
	}

	policies := make([]policy.Policy, config.Population)
	if config.Manual {
		s.manual = &policy.Manual{}
		policies[0] = s.manual
	} else {
		if err := s.seedPolicies(policies); err != nil {
			return nil, err
		}
	}

	popConfig := population.DefaultConfig()
	popConfig.Profile = config.Profile
	popConfig.FrameMs = 1000 / config.FPS
	popConfig.ParallelDecisions = config.ParallelDecisions
	s.population = population.NewController(popConfig, policies)
	s.population.OnCrash = s.handleCrash
	s.population.OnJump = s.handleJump

	s.resetRun()
	if config.Manual {
		s.population.Agents()[0].Runner.Wait()
	} else {
		s.started = true
	}
	return s, nil
}

// seedPolicies fills policies with linear units from the initial or random chromosomes
func (s *Simulation) seedPolicies(policies []policy.Policy) error {
	initial := s.config.InitialChromosomes
	if initial != nil && len(initial) != len(policies) {
		return fmt.Errorf("%w: %d initial chromosomes for population %d", policy.ErrInvalidChromosome, len(initial), len(policies))
	}
	for i := range policies {
		genes := s.trainer.Random()
		if initial != nil {
			genes = initial[i]
		}
		l, err := policy.NewLinear(genes)
		if err != nil {
			return fmt.Errorf("slot %d: %w", i, err)
		}
		policies[i] = l
	}
	return nil
}

// Population exposes the controller for inspection
func (s *Simulation) Population() *population.Controller {
	return s.population
}

// Generator exposes the obstacle stream for inspection
func (s *Simulation) Generator() *obstacle.Generator {
	return s.generator
}

// Trainer exposes the evolutionary trainer
func (s *Simulation) Trainer() *genetic.Trainer {
	return s.trainer
}

// SetPaused freezes physics; frames are still drawn
func (s *Simulation) SetPaused(paused bool) {
	s.paused = paused
}

// Summary returns the current host-visible state
func (s *Simulation) Summary() Summary {
	return Summary{
		Generation:   s.generation,
		LivingCount:  s.population.LivingCount(),
		Population:   s.population.Size(),
		Distance:     s.distance,
		BestDistance: s.bestDistance,
		Score:        s.score(),
		HighScore:    s.highScore,
		Speed:        s.speed,
		Started:      s.started,
		GameOver:     s.gameOver,
		Paused:       s.paused,
		Aborted:      s.aborted,
	}
}

func (s *Simulation) score() int {
	return vmath.RoundHalfUp(s.distance * parameter.DistanceScoreCoefficient)
}

// Tick advances the simulation by dt milliseconds
func (s *Simulation) Tick(dt float64) {
	if dt <= 0 || s.paused || !s.started || s.gameOver {
		s.draw()
		return
	}

	s.runningTime += dt
	if s.runningTime > s.config.ClearTimeMs {
		if err := s.generator.Advance(dt, s.speed); err != nil {
			s.fault(err)
			return
		}
	}

	s.population.Tick(dt, s.generator.Lead(), s.speed)

	over := s.population.GenerationOver()
	if !over {
		s.distance += s.speed * dt / (1000 / s.config.FPS)
		if s.speed < s.config.MaxSpeed {
			s.speed = min(s.speed+s.config.Acceleration, s.config.MaxSpeed)
		}
	}

	s.draw()

	if over {
		if s.manual != nil {
			s.endManualGame()
			return
		}
		s.rollover(nil)
	}
}

// fault aborts the generation without training
func (s *Simulation) fault(err error) {
	log.Printf("generation %d aborted: %v", s.generation, err)
	if s.manual != nil {
		s.endManualGame()
		s.aborted = true
		return
	}
	s.rollover(err)
}

// rollover trains on the finished generation and starts the next
func (s *Simulation) rollover(fault error) {
	result := s.result(fault)

	if fault == nil {
		pool := s.population.Pool(s.generation)
		next, err := s.trainer.Evolve(pool)
		if err == nil {
			err = s.population.LoadChromosomes(next)
		}
		if err != nil {
			log.Printf("generation %d training failed: %v", s.generation, err)
			result.Aborted = true
			result.Err = err
		} else {
			result.Next = next
			result.Stats = pool.Stats
		}
	}

	if result.Aborted {
		// Give the next generation a fresh spawn history
		s.generator.History().Clear()
	}

	log.Printf("generation %d over: best %.0f mean %.0f score %d aborted %v",
		result.Generation, result.BestDistance, result.MeanDistance, result.Score, result.Aborted)

	s.aborted = result.Aborted
	s.generation++
	s.resetRun()

	if s.hooks.OnRollover != nil {
		s.hooks.OnRollover(result)
	}
}

// result snapshots the current generation before reset
func (s *Simulation) result(fault error) GenerationResult {
	agents := s.population.Agents()
	result := GenerationResult{
		Generation:  s.generation,
		Distances:   make([]float64, len(agents)),
		Score:       s.score(),
		Chromosomes: s.population.Chromosomes(),
		Aborted:     fault != nil,
		Err:         fault,
	}
	sum := 0.0
	for i, a := range agents {
		result.Distances[i] = a.Distance
		result.BestDistance = max(result.BestDistance, a.Distance)
		sum += a.Distance
	}
	result.MeanDistance = sum / float64(len(agents))
	for _, a := range s.population.RankList().Agents() {
		result.RankList = append(result.RankList, a.ID)
	}

	s.bestDistance = max(s.bestDistance, result.BestDistance)
	s.highScore = max(s.highScore, result.Score)
	return result
}

// resetRun clears obstacles, agents and run counters
func (s *Simulation) resetRun() {
	s.generator.Reset()
	s.population.Reset()
	s.speed = s.config.InitialSpeed
	s.distance = 0
	s.runningTime = 0
	s.gameOver = false
}

func (s *Simulation) endManualGame() {
	result := s.result(nil)
	s.gameOver = true
	log.Printf("game %d over: score %d", result.Generation, result.Score)
	if s.hooks.OnRollover != nil {
		s.hooks.OnRollover(result)
	}
}

func (s *Simulation) handleCrash(a *population.Agent) {
	if s.hooks.OnCrash != nil {
		s.hooks.OnCrash(a.ID, s.population.RankList().Rank(a))
	}
}

func (s *Simulation) handleJump(a *population.Agent) {
	if s.hooks.OnJump != nil {
		s.hooks.OnJump(a.ID)
	}
}

func (s *Simulation) draw() {
	if s.sink == nil {
		return
	}
	frameSink, framed := s.sink.(render.FrameSink)
	if framed {
		frameSink.BeginFrame()
	}

	s.sink.DrawObstacleLine()
	for _, o := range s.generator.Obstacles() {
		s.sink.DrawObstacle(o)
	}
	for _, a := range s.population.Agents() {
		if a.Crashed && s.manual == nil {
			continue
		}
		pose := a.Runner.Pose()
		s.sink.DrawAgent(a.ID, pose, pose.Frame)
	}

	if framed {
		frameSink.EndFrame(render.HUD{
			Generation: s.generation,
			Lives:      s.population.LivingCount(),
			Population: s.population.Size(),
			Score:      s.score(),
			HighScore:  s.highScore,
			Speed:      s.speed,
			Manual:     s.manual != nil,
			Waiting:    s.manual != nil && !s.started,
			GameOver:   s.gameOver,
			Paused:     s.paused,
		})
	}
}

// --- Manual entry points ---

// ErrNotManual is returned by manual entry points on an evolved population
var ErrNotManual = errors.New("simulation is not in manual mode")

func (s *Simulation) manualRunner() (*physics.Runner, error) {
	if s.manual == nil {
		return nil, ErrNotManual
	}
	return s.population.Agents()[0].Runner, nil
}

// Start begins a manual game; evolved populations start on construction
func (s *Simulation) Start() {
	if s.started && !s.gameOver {
		return
	}
	if s.gameOver {
		if s.aborted {
			s.generator.History().Clear()
		}
		s.generation++
		s.aborted = false
	}
	s.resetRun()
	s.started = true
}

// OnJumpPressed jumps, starting or restarting the game when needed
func (s *Simulation) OnJumpPressed() error {
	if _, err := s.manualRunner(); err != nil {
		return err
	}
	if !s.started || s.gameOver {
		s.Start()
	}
	s.manual.Queue(policy.Jump)
	return nil
}

// OnJumpReleased cuts a jump short once it reached its minimum height
func (s *Simulation) OnJumpReleased() error {
	r, err := s.manualRunner()
	if err != nil {
		return err
	}
	r.EndJump()
	return nil
}

// OnDuckPressed ducks on the ground or fast-falls in the air
func (s *Simulation) OnDuckPressed() error {
	if _, err := s.manualRunner(); err != nil {
		return err
	}
	if s.started && !s.gameOver {
		s.manual.Queue(policy.DuckOrFastFall)
	}
	return nil
}

// OnDuckReleased stands the runner back up
func (s *Simulation) OnDuckReleased() error {
	r, err := s.manualRunner()
	if err != nil {
		return err
	}
	r.SetDuck(false)
	return nil
}
