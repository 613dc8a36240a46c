package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/genetic"
)

func sampleResult(gen int) engine.GenerationResult {
	return engine.GenerationResult{
		Generation:   gen,
		Distances:    []float64{100, 250, 175},
		BestDistance: 250,
		MeanDistance: 175,
		Score:        6,
		RankList:     []int{0, 2, 1},
		Chromosomes: []genetic.Chromosome{
			{0.1, 0.2, 0.3, 0.4},
			{0.5, 0.6, 0.7, 0.8},
			{-0.1, -0.2, -0.3, -0.4},
		},
		Stats: genetic.PoolStats[float64]{Diversity: 0.25},
	}
}

func TestRecord(t *testing.T) {
	h := NewHistory()
	if _, err := uuid.Parse(h.RunID); err != nil {
		t.Fatalf("RunID %q is not a uuid: %v", h.RunID, err)
	}

	r := sampleResult(1)
	h.Record(r)
	aborted := sampleResult(2)
	aborted.Aborted = true
	aborted.Err = errors.New("starved")
	h.Record(aborted)

	entries := h.Snapshot()
	if len(entries) != 2 || h.Len() != 2 {
		t.Fatalf("recorded %d entries", len(entries))
	}
	e := entries[0]
	if e.Generation != 1 || e.BestDistance != 250 || e.Score != 6 || e.Diversity != 0.25 {
		t.Errorf("entry = %+v", e)
	}
	if len(e.Leader) != 4 || e.Leader[0] != 0.5 {
		t.Errorf("leader = %v, want the last crashed agent's chromosome", e.Leader)
	}

	// Stored chromosomes must not alias the result
	r.Chromosomes[1][0] = 9
	if h.Snapshot()[0].Chromosomes[1][0] != 0.5 {
		t.Error("history aliases result chromosomes")
	}
	if !entries[1].Aborted || entries[1].Error != "starved" {
		t.Errorf("aborted entry = %+v", entries[1])
	}
}

func TestWriteYAML(t *testing.T) {
	h := NewHistory()
	h.Record(sampleResult(1))
	h.Record(sampleResult(2))

	path := filepath.Join(t.TempDir(), "history.yaml")
	if err := h.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), h.RunID) {
		t.Error("run id missing from dump")
	}

	var back struct {
		RunID   string  `yaml:"run_id"`
		Entries []Entry `yaml:"generations"`
	}
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.RunID != h.RunID || len(back.Entries) != 2 || back.Entries[1].Generation != 2 {
		t.Errorf("decoded %+v", back)
	}
}

func TestWritePlot(t *testing.T) {
	h := NewHistory()
	dir := t.TempDir()

	if err := h.WritePlot(filepath.Join(dir, "empty.png")); !errors.Is(err, ErrEmptyHistory) {
		t.Errorf("empty plot = %v, want ErrEmptyHistory", err)
	}

	for g := 1; g <= 3; g++ {
		r := sampleResult(g)
		r.BestDistance *= float64(g)
		h.Record(r)
	}

	for _, name := range []string{"run.png", "run.svg"} {
		path := filepath.Join(dir, name)
		if err := h.WritePlot(path); err != nil {
			t.Fatalf("WritePlot(%s): %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}
