package obstacle

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/vi-runner/core"
	"github.com/lixenwraith/vi-runner/parameter"
	"github.com/lixenwraith/vi-runner/vmath"
)

// ErrSpawnStarvation is returned when no catalog type may be spawned
var ErrSpawnStarvation = errors.New("obstacle spawn starvation")

// Config tunes obstacle spacing and placement
type Config struct {
	ViewportWidth     int
	FPS               float64
	GapCoefficient    float64
	MaxGapCoefficient float64
	MaxDuplication    int // Consecutive identical kinds allowed, 0 disables the check
	MaxSpawnAttempts  int
	MaxSize           int
	SmallViewport     bool // Selects YPosSmall where a type defines it
}

// DefaultConfig returns the classic runner spacing
func DefaultConfig() Config {
	return Config{
		ViewportWidth:     parameter.CanvasWidth,
		FPS:               parameter.FPS,
		GapCoefficient:    parameter.GapCoefficient,
		MaxGapCoefficient: parameter.MaxGapCoefficient,
		MaxDuplication:    parameter.MaxObstacleDuplication,
		MaxSpawnAttempts:  parameter.MaxSpawnAttempts,
		MaxSize:           parameter.MaxObstacleSize,
	}
}

// Generator owns the shared obstacle stream of one simulation
type Generator struct {
	cfg       Config
	catalog   Catalog
	rng       *rand.Rand
	obstacles []*Obstacle
	history   *History
}

// NewGenerator validates the catalog and creates an empty stream
func NewGenerator(cfg Config, catalog Catalog, rng *rand.Rand) (*Generator, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	if cfg.ViewportWidth <= 0 || cfg.FPS <= 0 {
		return nil, fmt.Errorf("invalid generator viewport %d at %v fps", cfg.ViewportWidth, cfg.FPS)
	}
	if cfg.MaxSpawnAttempts <= 0 {
		cfg.MaxSpawnAttempts = parameter.MaxSpawnAttempts
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 1
	}
	if cfg.MaxGapCoefficient < 1 {
		cfg.MaxGapCoefficient = 1
	}
	if rng == nil {
		rng = vmath.NewRand(0)
	}
	return &Generator{
		cfg:     cfg,
		catalog: catalog,
		rng:     rng,
		history: NewHistory(cfg.MaxDuplication),
	}, nil
}

// Obstacles returns the live obstacles, oldest first
func (g *Generator) Obstacles() []*Obstacle {
	return g.obstacles
}

// Lead returns the oldest live obstacle, nil before the first spawn
func (g *Generator) Lead() *Obstacle {
	for _, o := range g.obstacles {
		if !o.Remove {
			return o
		}
	}
	return nil
}

// History returns the recent spawn history
func (g *Generator) History() *History {
	return g.history
}

// Reset drops every obstacle; spawn history carries over
func (g *Generator) Reset() {
	g.obstacles = nil
}

// Advance moves the stream by dt milliseconds at the given run speed and spawns
// a follower once the newest obstacle has scrolled its gap into view
func (g *Generator) Advance(dt, speed float64) error {
	live := g.obstacles[:0]
	for _, o := range g.obstacles {
		o.update(dt, speed, g.cfg.FPS)
		if !o.Remove {
			live = append(live, o)
		}
	}
	for i := len(live); i < len(g.obstacles); i++ {
		g.obstacles[i] = nil
	}
	g.obstacles = live

	if len(g.obstacles) == 0 {
		_, err := g.SpawnNext(speed)
		return err
	}

	last := g.obstacles[len(g.obstacles)-1]
	if !last.FollowerCreated && last.Visible() && last.X+last.Width+last.Gap < g.cfg.ViewportWidth {
		if _, err := g.SpawnNext(speed); err != nil {
			return err
		}
		last.FollowerCreated = true
	}
	return nil
}

// eligible reports whether t may be spawned now
func (g *Generator) eligible(t *Type, speed float64) bool {
	return speed >= t.MinSpeed && !g.history.Saturated(t.Kind)
}

// pickType draws a uniform type among those eligible at speed
func (g *Generator) pickType(speed float64) (*Type, error) {
	var candidates []*Type
	for i := range g.catalog {
		if g.eligible(&g.catalog[i], speed) {
			candidates = append(candidates, &g.catalog[i])
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no eligible type at speed %.2f after %v", ErrSpawnStarvation, speed, g.history.Kinds())
	}

	for attempt := 0; attempt < g.cfg.MaxSpawnAttempts; attempt++ {
		t := &g.catalog[g.rng.IntN(len(g.catalog))]
		if g.eligible(t, speed) {
			return t, nil
		}
	}
	// Rejection sampling ran out; a direct draw keeps the distribution uniform
	return candidates[g.rng.IntN(len(candidates))], nil
}

// SpawnNext stamps a new obstacle at the right edge of the viewport
func (g *Generator) SpawnNext(speed float64) (*Obstacle, error) {
	t, err := g.pickType(speed)
	if err != nil {
		return nil, err
	}

	o := g.stamp(t, speed)
	g.obstacles = append(g.obstacles, o)
	g.history.Push(t.Kind)
	return o, nil
}

func (g *Generator) stamp(t *Type, speed float64) *Obstacle {
	o := &Obstacle{
		Type:  t,
		Size:  vmath.RandomInt(g.rng, 1, g.cfg.MaxSize),
		X:     g.cfg.ViewportWidth + t.Width,
		Boxes: core.CloneBoxes(t.Boxes),
	}

	if o.Size > 1 && t.MultipleSpeed > speed {
		o.Size = 1
	}
	o.Width = t.Width * o.Size

	ys := t.YPos
	if g.cfg.SmallViewport && len(t.YPosSmall) > 0 {
		ys = t.YPosSmall
	}
	o.Y = ys[g.rng.IntN(len(ys))]

	if o.Size > 1 && len(o.Boxes) >= 3 {
		o.Boxes[1].Width = o.Width - o.Boxes[0].Width - o.Boxes[2].Width
		o.Boxes[2].X = o.Width - o.Boxes[2].Width
	}

	if t.SpeedOffset != 0 {
		if g.rng.Float64() > 0.5 {
			o.SpeedOffset = t.SpeedOffset
		} else {
			o.SpeedOffset = -t.SpeedOffset
		}
	}

	o.Gap = g.gap(o, speed)
	return o
}

// GapBounds returns the inclusive gap range for an obstacle width at speed
func (g *Generator) GapBounds(t *Type, width int, speed float64) (int, int) {
	minGap := vmath.RoundHalfUp(float64(width)*speed + t.MinGap*g.cfg.GapCoefficient)
	maxGap := vmath.RoundHalfUp(float64(minGap) * g.cfg.MaxGapCoefficient)
	return minGap, maxGap
}

func (g *Generator) gap(o *Obstacle, speed float64) int {
	minGap, maxGap := g.GapBounds(o.Type, o.Width, speed)
	return vmath.RandomInt(g.rng, minGap, maxGap)
}
