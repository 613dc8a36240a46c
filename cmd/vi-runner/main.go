package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/lixenwraith/vi-runner/audio"
	"github.com/lixenwraith/vi-runner/config"
	"github.com/lixenwraith/vi-runner/core"
	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/parameter"
	"github.com/lixenwraith/vi-runner/report"
)

var (
	configFlag      = flag.String("config", "", "YAML config file merged over the defaults")
	catalogFlag     = flag.String("catalog", "", "TOML obstacle catalog (overrides obstacles.catalog)")
	headlessFlag    = flag.Bool("headless", false, "Train without a terminal")
	generationsFlag = flag.Int("generations", 50, "Generations to train headless, 0 runs until interrupted")
	populationFlag  = flag.Int("population", 0, "Override population.size")
	manualFlag      = flag.Bool("manual", false, "Play a single runner from the keyboard")
	seedFlag        = flag.Uint64("seed", 0, "Override runner.seed, 0 keeps the configured seed")
	muteFlag        = flag.Bool("mute", false, "Disable audio")
	debugFlag       = flag.Bool("debug", false, "Write logs to logs/vi-runner.log")
	plotFlag        = flag.String("plot", "", "Write a distance plot on exit (overrides report.plot)")
	reportFlag      = flag.String("report", "", "Write the generation history as YAML on exit (overrides report.yaml)")
	dumpConfigFlag  = flag.String("dump-config", "", "Write the effective config to this path and exit")
)

// soundSystem is the part of audio.SoundManager the run modes drive
type soundSystem interface {
	Initialize() error
	Cleanup()
	Muted() bool
	ToggleMute() bool
	PlayJump()
	PlayCrash()
	PlayRollover()
}

// app carries everything the run modes share
type app struct {
	cfg       *config.Config
	simConfig engine.Config
	sounds    soundSystem
	history   *report.History
}

func (a *app) hooks() engine.Hooks {
	return engine.Hooks{
		OnJump: func(int) {
			if a.simConfig.Manual {
				a.sounds.PlayJump()
			}
		},
		OnCrash: func(_, rank int) {
			// One cue per generation end, not per agent; manual play has a single agent
			if rank == a.agents() {
				a.sounds.PlayCrash()
			}
		},
		OnRollover: func(r engine.GenerationResult) {
			a.history.Record(r)
			a.sounds.PlayRollover()
		},
	}
}

// agents is the number of runners the simulation will build
func (a *app) agents() int {
	if a.simConfig.Manual {
		return 1
	}
	return a.simConfig.Population
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vi-runner: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if *dumpConfigFlag != "" {
		return cfg.WriteYAML(*dumpConfigFlag)
	}

	simConfig, err := cfg.Simulation()
	if err != nil {
		return err
	}

	a := &app{
		cfg:       cfg,
		simConfig: simConfig,
		sounds:    audio.NewSoundManager(cfg.AudioSettings()),
		history:   report.NewHistory(),
	}
	log.Printf("run %s: population %d manual %v", a.history.RunID, simConfig.Population, simConfig.Manual)

	if *headlessFlag {
		err = runHeadless(a)
	} else {
		if !a.sounds.Muted() {
			if err := a.sounds.Initialize(); err != nil {
				log.Printf("audio initialization failed: %v (continuing without audio)", err)
			} else {
				defer a.sounds.Cleanup()
			}
		}
		err = runInteractive(a)
	}

	if werr := writeReports(a); werr != nil {
		err = errors.Join(err, werr)
	}
	return err
}

// applyFlags copies explicit command line overrides into cfg
func applyFlags(cfg *config.Config) {
	if *catalogFlag != "" {
		cfg.Obstacles.Catalog = *catalogFlag
	}
	if *populationFlag > 0 {
		cfg.Population.Size = *populationFlag
	}
	if *manualFlag {
		cfg.Population.Manual = true
	}
	if *seedFlag != 0 {
		cfg.Runner.Seed = *seedFlag
	}
	if *muteFlag {
		cfg.Audio.Enabled = false
	}
	if *plotFlag != "" {
		cfg.Report.Plot = *plotFlag
	}
	if *reportFlag != "" {
		cfg.Report.YAML = *reportFlag
	}
}

func runHeadless(a *app) error {
	sim, err := engine.NewSimulation(a.simConfig, nil, a.hooks())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := engine.RunHeadless(ctx, sim, parameter.MsPerFrame, *generationsFlag)
	fmt.Printf("run %s: %d generations, best distance %.0f, high score %d\n",
		a.history.RunID, a.history.Len(), summary.BestDistance, summary.HighScore)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func writeReports(a *app) error {
	if a.history.Len() == 0 {
		return nil
	}
	var errs []error
	if path := a.cfg.Report.YAML; path != "" {
		errs = append(errs, a.history.WriteYAML(path))
	}
	if path := a.cfg.Report.Plot; path != "" {
		errs = append(errs, a.history.WritePlot(path))
	}
	return errors.Join(errs...)
}
