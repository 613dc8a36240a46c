// Package config loads vi-runner settings from YAML over embedded defaults
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-runner/audio"
	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/genetic"
	"github.com/lixenwraith/vi-runner/obstacle"
	"github.com/lixenwraith/vi-runner/parameter"
	"github.com/lixenwraith/vi-runner/physics"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config mirrors defaults.yaml, one field per top-level section
type Config struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Runner     RunnerConfig     `yaml:"runner"`
	TRex       TRexConfig       `yaml:"trex"`
	Obstacles  ObstaclesConfig  `yaml:"obstacles"`
	Population PopulationConfig `yaml:"population"`
	Genetic    GeneticConfig    `yaml:"genetic"`
	Render     RenderConfig     `yaml:"render"`
	Audio      AudioConfig      `yaml:"audio"`
	Report     ReportConfig     `yaml:"report"`
}

// CanvasConfig sets the playfield geometry
type CanvasConfig struct {
	Width         int  `yaml:"width"`
	SmallViewport bool `yaml:"small_viewport"` // Use the low pterodactyl heights
}

// RunnerConfig holds the speed ramp, frame rate and RNG seed
type RunnerConfig struct {
	InitialSpeed float64 `yaml:"initial_speed"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Acceleration float64 `yaml:"acceleration"`
	ClearTimeMs  float64 `yaml:"clear_time_ms"`
	FPS          float64 `yaml:"fps"`
	Seed         uint64  `yaml:"seed"` // 0 = random
}

// TRexConfig tunes the jump integrator
type TRexConfig struct {
	InitialVelocity      float64 `yaml:"initial_velocity"`
	DropVelocity         float64 `yaml:"drop_velocity"`
	Gravity              float64 `yaml:"gravity"`
	SpeedDropCoefficient float64 `yaml:"speed_drop_coefficient"`
	SpeedDropVelocity    float64 `yaml:"speed_drop_velocity"`
	SpeedDivisor         float64 `yaml:"speed_divisor"`
	MaxJumpHeight        int     `yaml:"max_jump_height"`
	MinJumpHeight        int     `yaml:"min_jump_height"`
}

// ObstaclesConfig tunes obstacle spacing and the catalog source
type ObstaclesConfig struct {
	Catalog           string  `yaml:"catalog"` // TOML catalog path, empty for the built-in set
	GapCoefficient    float64 `yaml:"gap_coefficient"`
	MaxGapCoefficient float64 `yaml:"max_gap_coefficient"`
	MaxDuplication    int     `yaml:"max_duplication"` // 0 = unlimited
	MaxSpawnAttempts  int     `yaml:"max_spawn_attempts"`
	MaxSize           int     `yaml:"max_size"`
}

// PopulationConfig selects agent count and manual play
type PopulationConfig struct {
	Size              int  `yaml:"size"`
	Manual            bool `yaml:"manual"`
	ParallelDecisions bool `yaml:"parallel_decisions"`
}

// GeneticConfig tunes the trainer; chromosome length is fixed by the linear policy
type GeneticConfig struct {
	GeneMin            float64     `yaml:"gene_min"`
	GeneMax            float64     `yaml:"gene_max"`
	MutationRate       float64     `yaml:"mutation_rate"`
	Selection          string      `yaml:"selection"`
	InitialChromosomes [][]float64 `yaml:"initial_chromosomes"`
}

// RenderConfig holds terminal loop timing
type RenderConfig struct {
	KeyHoldTimeoutMs int     `yaml:"key_hold_timeout_ms"`
	MaxFrameDeltaMs  float64 `yaml:"max_frame_delta_ms"`
}

// AudioConfig holds speaker settings
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// ReportConfig names the files written on exit
type ReportConfig struct {
	Plot string `yaml:"plot"` // PNG/SVG path for the distance plot, empty disables
	YAML string `yaml:"yaml"` // Generation history dump, empty disables
}

// Load reads path over the embedded defaults and validates the result
// An empty path yields the defaults
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only keys present in the file overwrite defaults
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges the simulation cannot recover from
func (c *Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0:
		return fmt.Errorf("%w: canvas.width %d", ErrInvalidConfig, c.Canvas.Width)
	case c.Runner.FPS <= 0:
		return fmt.Errorf("%w: runner.fps %v", ErrInvalidConfig, c.Runner.FPS)
	case c.Runner.InitialSpeed < 0 || c.Runner.MaxSpeed < c.Runner.InitialSpeed:
		return fmt.Errorf("%w: runner speed %v..%v", ErrInvalidConfig, c.Runner.InitialSpeed, c.Runner.MaxSpeed)
	case c.TRex.Gravity <= 0:
		return fmt.Errorf("%w: trex.gravity %v", ErrInvalidConfig, c.TRex.Gravity)
	case c.Obstacles.MaxDuplication < 0:
		return fmt.Errorf("%w: obstacles.max_duplication %d", ErrInvalidConfig, c.Obstacles.MaxDuplication)
	case c.Population.Size <= 0:
		return fmt.Errorf("%w: population.size %d", ErrInvalidConfig, c.Population.Size)
	case c.Genetic.GeneMax <= c.Genetic.GeneMin:
		return fmt.Errorf("%w: genetic gene bounds [%v, %v)", ErrInvalidConfig, c.Genetic.GeneMin, c.Genetic.GeneMax)
	case c.Genetic.MutationRate < 0 || c.Genetic.MutationRate > 1:
		return fmt.Errorf("%w: genetic.mutation_rate %v", ErrInvalidConfig, c.Genetic.MutationRate)
	case c.Genetic.Selection != genetic.SelectionFixed && c.Genetic.Selection != genetic.SelectionRank:
		return fmt.Errorf("%w: genetic.selection %q", ErrInvalidConfig, c.Genetic.Selection)
	case c.Render.KeyHoldTimeoutMs <= 0:
		return fmt.Errorf("%w: render.key_hold_timeout_ms %d", ErrInvalidConfig, c.Render.KeyHoldTimeoutMs)
	}

	if n := len(c.Genetic.InitialChromosomes); n > 0 && !c.Population.Manual && n != c.Population.Size {
		return fmt.Errorf("%w: %d initial chromosomes for population %d", ErrInvalidConfig, n, c.Population.Size)
	}
	for i, ch := range c.Genetic.InitialChromosomes {
		if len(ch) != parameter.GeneCount {
			return fmt.Errorf("%w: initial chromosome %d has %d genes, want %d",
				ErrInvalidConfig, i, len(ch), parameter.GeneCount)
		}
	}
	return nil
}

// Profile builds the jump profile from the trex section
func (c *Config) Profile() *physics.JumpProfile {
	p := physics.DefaultJumpProfile
	p.InitialVelocity = c.TRex.InitialVelocity
	p.DropVelocity = c.TRex.DropVelocity
	p.Gravity = c.TRex.Gravity
	p.SpeedDropCoefficient = c.TRex.SpeedDropCoefficient
	p.SpeedDropVelocity = c.TRex.SpeedDropVelocity
	p.SpeedDivisor = c.TRex.SpeedDivisor
	p.MaxJumpHeight = c.TRex.MaxJumpHeight
	p.MinJumpHeight = c.TRex.MinJumpHeight
	p.FrameMs = 1000 / c.Runner.FPS
	return &p
}

// Catalog loads the configured TOML catalog or returns the built-in one
func (c *Config) Catalog() (obstacle.Catalog, error) {
	if c.Obstacles.Catalog == "" {
		return obstacle.DefaultCatalog(), nil
	}
	return obstacle.LoadCatalogFile(c.Obstacles.Catalog)
}

// Simulation maps the file layout onto an engine config
func (c *Config) Simulation() (engine.Config, error) {
	catalog, err := c.Catalog()
	if err != nil {
		return engine.Config{}, err
	}

	cfg := engine.DefaultConfig()
	cfg.Population = c.Population.Size
	cfg.Manual = c.Population.Manual
	if cfg.Manual {
		cfg.Population = 1
	}
	cfg.ParallelDecisions = c.Population.ParallelDecisions
	cfg.InitialSpeed = c.Runner.InitialSpeed
	cfg.MaxSpeed = c.Runner.MaxSpeed
	cfg.Acceleration = c.Runner.Acceleration
	cfg.ClearTimeMs = c.Runner.ClearTimeMs
	cfg.FPS = c.Runner.FPS
	cfg.Seed = c.Runner.Seed
	cfg.Profile = c.Profile()
	cfg.Catalog = catalog

	cfg.Generator = obstacle.Config{
		ViewportWidth:     c.Canvas.Width,
		FPS:               c.Runner.FPS,
		GapCoefficient:    c.Obstacles.GapCoefficient,
		MaxGapCoefficient: c.Obstacles.MaxGapCoefficient,
		MaxDuplication:    c.Obstacles.MaxDuplication,
		MaxSpawnAttempts:  c.Obstacles.MaxSpawnAttempts,
		MaxSize:           c.Obstacles.MaxSize,
		SmallViewport:     c.Canvas.SmallViewport,
	}

	cfg.Trainer = genetic.TrainerConfig{
		GeneCount:    parameter.GeneCount,
		MutationRate: c.Genetic.MutationRate,
		Selection:    c.Genetic.Selection,
		Bounds:       genetic.UniformBounds(parameter.GeneCount, c.Genetic.GeneMin, c.Genetic.GeneMax),
	}

	for _, ch := range c.Genetic.InitialChromosomes {
		cfg.InitialChromosomes = append(cfg.InitialChromosomes, genetic.Chromosome(ch).Clone())
	}
	return cfg, nil
}

// AudioSettings maps the audio section onto the sound manager settings
func (c *Config) AudioSettings() audio.Config {
	return audio.Config{
		Enabled:    c.Audio.Enabled,
		SampleRate: c.Audio.SampleRate,
		Volume:     c.Audio.Volume,
	}
}

// KeyHoldTimeout is the synthesized key release delay
func (c *Config) KeyHoldTimeout() time.Duration {
	return time.Duration(c.Render.KeyHoldTimeoutMs) * time.Millisecond
}

// WriteYAML saves the effective configuration
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
