// Package report records per-generation results and exports them as YAML
// and distance plots
package report

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/parameter"
)

// ErrEmptyHistory is returned when exporting a history with no generations
var ErrEmptyHistory = errors.New("no generations recorded")

// Entry is one finished generation
type Entry struct {
	Generation   int         `yaml:"generation"`
	BestDistance float64     `yaml:"best_distance"`
	MeanDistance float64     `yaml:"mean_distance"`
	Score        int         `yaml:"score"`
	Diversity    float64     `yaml:"diversity"`
	Aborted      bool        `yaml:"aborted,omitempty"`
	Error        string      `yaml:"error,omitempty"`
	Leader       []float64   `yaml:"leader,omitempty"` // Chromosome of the last agent to crash
	Chromosomes  [][]float64 `yaml:"chromosomes,omitempty"`
}

// History accumulates entries for one run
// Safe for concurrent use
type History struct {
	RunID   string    `yaml:"run_id"`
	Started time.Time `yaml:"started"`
	Entries []Entry   `yaml:"generations"`

	mu sync.Mutex
}

// NewHistory creates an empty history with a fresh run id
func NewHistory() *History {
	return &History{
		RunID:   uuid.NewString(),
		Started: time.Now().UTC(),
	}
}

// Record appends a generation result; usable directly as engine.Hooks.OnRollover
func (h *History) Record(r engine.GenerationResult) {
	e := Entry{
		Generation:   r.Generation,
		BestDistance: r.BestDistance,
		MeanDistance: r.MeanDistance,
		Score:        r.Score,
		Diversity:    r.Stats.Diversity,
		Aborted:      r.Aborted,
	}
	if r.Err != nil {
		e.Error = r.Err.Error()
	}
	for _, c := range r.Chromosomes {
		e.Chromosomes = append(e.Chromosomes, []float64(c.Clone()))
	}
	if n := len(r.RankList); n > 0 {
		if id := r.RankList[n-1]; id >= 0 && id < len(r.Chromosomes) {
			e.Leader = []float64(r.Chromosomes[id].Clone())
		}
	}

	h.mu.Lock()
	h.Entries = append(h.Entries, e)
	h.mu.Unlock()
}

// Len returns the number of recorded generations
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.Entries)
}

// Snapshot copies the recorded entries
func (h *History) Snapshot() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Entry, len(h.Entries))
	copy(out, h.Entries)
	return out
}

// WriteYAML dumps the history to path
func (h *History) WriteYAML(path string) error {
	h.mu.Lock()
	data, err := yaml.Marshal(h)
	h.mu.Unlock()
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// WritePlot draws best and mean distance per generation
// The image format follows the path extension (png, svg, pdf)
func (h *History) WritePlot(path string) error {
	entries := h.Snapshot()
	if len(entries) == 0 {
		return ErrEmptyHistory
	}

	p := plot.New()
	p.Title.Text = "Run " + h.RunID
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Distance"

	best := make(plotter.XYs, len(entries))
	mean := make(plotter.XYs, len(entries))
	for i, e := range entries {
		best[i].X, best[i].Y = float64(e.Generation), e.BestDistance
		mean[i].X, mean[i].Y = float64(e.Generation), e.MeanDistance
	}

	bestLine, err := plotter.NewLine(best)
	if err != nil {
		return err
	}
	meanLine, err := plotter.NewLine(mean)
	if err != nil {
		return err
	}
	bestLine.Color = color.RGBA{R: 200, A: 255}
	meanLine.Color = color.RGBA{B: 200, A: 255}

	p.Add(plotter.NewGrid(), bestLine, meanLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("mean", meanLine)
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(parameter.ReportPlotWidthInch*vg.Inch, parameter.ReportPlotHeightInch*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
