package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/vi-runner/audio"
	"github.com/lixenwraith/vi-runner/config"
	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/report"
)

func TestApplyFlags(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	*populationFlag = 3
	*manualFlag = true
	*seedFlag = 42
	*muteFlag = true
	*plotFlag = "out.png"
	defer func() {
		*populationFlag, *manualFlag, *seedFlag, *muteFlag, *plotFlag = 0, false, 0, false, ""
	}()

	applyFlags(cfg)

	if cfg.Population.Size != 3 || !cfg.Population.Manual || cfg.Runner.Seed != 42 {
		t.Errorf("overrides not applied: %+v %+v", cfg.Population, cfg.Runner)
	}
	if cfg.Audio.Enabled || cfg.Report.Plot != "out.png" {
		t.Errorf("audio/report overrides not applied: %+v %+v", cfg.Audio, cfg.Report)
	}
	if cfg.Obstacles.Catalog != "" || cfg.Report.YAML != "" {
		t.Error("unset flags must keep config values")
	}
}

func TestHeadlessRunRecordsHistory(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Population.Size = 4
	cfg.Runner.Seed = 3
	cfg.Audio.Enabled = false
	// Non-negative weights never jump, so every generation ends at the first obstacle
	cfg.Genetic.MutationRate = 0
	cfg.Genetic.InitialChromosomes = [][]float64{
		{0.1, 0.2, 0.3, 0.4},
		{0.2, 0.3, 0.4, 0.5},
		{0.3, 0.4, 0.5, 0.6},
		{0.4, 0.5, 0.6, 0.7},
	}
	dir := t.TempDir()
	cfg.Report.YAML = filepath.Join(dir, "history.yaml")
	cfg.Report.Plot = filepath.Join(dir, "history.png")

	simConfig, err := cfg.Simulation()
	if err != nil {
		t.Fatal(err)
	}
	a := &app{
		cfg:       cfg,
		simConfig: simConfig,
		sounds:    audio.NewSoundManager(cfg.AudioSettings()),
		history:   report.NewHistory(),
	}

	*generationsFlag = 2
	defer func() { *generationsFlag = 50 }()

	if err := runHeadless(a); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
	if a.history.Len() != 2 {
		t.Fatalf("recorded %d generations, want 2", a.history.Len())
	}
	if err := writeReports(a); err != nil {
		t.Fatalf("writeReports: %v", err)
	}
	for _, p := range []string{cfg.Report.YAML, cfg.Report.Plot} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("report %s missing: %v", p, err)
		}
	}
}

// cueCounter records cues instead of playing them
type cueCounter struct {
	jumps, crashes, rollovers int
	muted                     bool
}

func (c *cueCounter) Initialize() error { return nil }
func (c *cueCounter) Cleanup()          {}
func (c *cueCounter) Muted() bool       { return c.muted }
func (c *cueCounter) ToggleMute() bool  { c.muted = !c.muted; return c.muted }
func (c *cueCounter) PlayJump()         { c.jumps++ }
func (c *cueCounter) PlayCrash()        { c.crashes++ }
func (c *cueCounter) PlayRollover()     { c.rollovers++ }

func TestHooksCues(t *testing.T) {
	tests := []struct {
		name        string
		manual      bool
		crashRanks  []int
		wantJumps   int
		wantCrashes int
	}{
		{"population plays crash on last agent only", false, []int{1, 2, 3}, 0, 1},
		{"manual plays crash and jump", true, []int{1}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Load("")
			if err != nil {
				t.Fatal(err)
			}
			cfg.Population.Size = 3
			cfg.Population.Manual = tt.manual
			simConfig, err := cfg.Simulation()
			if err != nil {
				t.Fatal(err)
			}
			// A config built by hand may still carry the population size
			simConfig.Population = 3

			cues := &cueCounter{}
			a := &app{cfg: cfg, simConfig: simConfig, sounds: cues, history: report.NewHistory()}
			h := a.hooks()

			h.OnJump(0)
			for id, rank := range tt.crashRanks {
				h.OnCrash(id, rank)
			}
			h.OnRollover(engine.GenerationResult{Generation: 1, BestDistance: 10})

			if cues.jumps != tt.wantJumps || cues.crashes != tt.wantCrashes || cues.rollovers != 1 {
				t.Errorf("cues jump=%d crash=%d rollover=%d, want %d/%d/1",
					cues.jumps, cues.crashes, cues.rollovers, tt.wantJumps, tt.wantCrashes)
			}
			if a.history.Len() != 1 {
				t.Errorf("history len = %d, want 1", a.history.Len())
			}
		})
	}
}
