package obstacle

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/vi-runner/core"
)

// ErrMalformedObstacleType is returned for catalog entries that cannot be stamped
var ErrMalformedObstacleType = errors.New("malformed obstacle type")

// Obstacle kinds of the default catalog
const (
	KindCactusSmall = "CACTUS_SMALL"
	KindCactusLarge = "CACTUS_LARGE"
	KindPterodactyl = "PTERODACTYL"
)

// Type is an obstacle template; instances copy its boxes
type Type struct {
	Kind   string
	Width  int // Width of a single unit, multiplied by instance size
	Height int

	YPos      []int // Candidate y positions, one is drawn per instance
	YPosSmall []int // Used instead of YPos on small viewports when set

	MinGap        float64 // Base gap before speed and coefficient scaling
	MinSpeed      float64 // Type is ineligible below this run speed
	MultipleSpeed float64 // Instances wider than one unit need at least this speed
	SpeedOffset   float64 // Drift magnitude added to run speed, sign drawn per instance

	NumFrames int     // Animation frames, 0 or 1 for static sprites
	FrameRate float64 // Milliseconds per animation frame

	Boxes []core.Box // Hitboxes local to the instance footprint
}

// Animated reports whether the type cycles sprite frames
func (t *Type) Animated() bool {
	return t.NumFrames > 1 && t.FrameRate > 0
}

// Validate checks that a type can be stamped into obstacles
func (t *Type) Validate() error {
	switch {
	case t.Kind == "":
		return fmt.Errorf("%w: missing kind", ErrMalformedObstacleType)
	case t.Width <= 0 || t.Height <= 0:
		return fmt.Errorf("%w: %s: non-positive size %dx%d", ErrMalformedObstacleType, t.Kind, t.Width, t.Height)
	case len(t.YPos) == 0:
		return fmt.Errorf("%w: %s: empty y position list", ErrMalformedObstacleType, t.Kind)
	case len(t.Boxes) == 0:
		return fmt.Errorf("%w: %s: no collision boxes", ErrMalformedObstacleType, t.Kind)
	case t.NumFrames < 0 || t.FrameRate < 0:
		return fmt.Errorf("%w: %s: negative animation settings", ErrMalformedObstacleType, t.Kind)
	case t.MinGap < 0:
		return fmt.Errorf("%w: %s: negative min gap", ErrMalformedObstacleType, t.Kind)
	}
	return nil
}

// Catalog is the ordered set of types the generator draws from
type Catalog []Type

// Validate checks every entry and rejects an empty catalog or duplicate kinds
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: empty catalog", ErrMalformedObstacleType)
	}
	seen := make(map[string]bool, len(c))
	for i := range c {
		if err := c[i].Validate(); err != nil {
			return err
		}
		if seen[c[i].Kind] {
			return fmt.Errorf("%w: duplicate kind %s", ErrMalformedObstacleType, c[i].Kind)
		}
		seen[c[i].Kind] = true
	}
	return nil
}

// Find returns the type with the given kind or nil
func (c Catalog) Find(kind string) *Type {
	for i := range c {
		if c[i].Kind == kind {
			return &c[i]
		}
	}
	return nil
}

// DefaultCatalog returns a fresh copy of the classic cactus and pterodactyl set
func DefaultCatalog() Catalog {
	return Catalog{
		{
			Kind:          KindCactusSmall,
			Width:         17,
			Height:        35,
			YPos:          []int{105},
			MinGap:        120,
			MultipleSpeed: 4,
			Boxes: []core.Box{
				{X: 0, Y: 7, Width: 5, Height: 27},
				{X: 4, Y: 0, Width: 6, Height: 34},
				{X: 10, Y: 4, Width: 7, Height: 14},
			},
		},
		{
			Kind:          KindCactusLarge,
			Width:         25,
			Height:        50,
			YPos:          []int{90},
			MinGap:        120,
			MultipleSpeed: 7,
			Boxes: []core.Box{
				{X: 0, Y: 12, Width: 7, Height: 38},
				{X: 8, Y: 0, Width: 7, Height: 49},
				{X: 13, Y: 10, Width: 10, Height: 38},
			},
		},
		{
			Kind:          KindPterodactyl,
			Width:         46,
			Height:        40,
			YPos:          []int{100, 75, 50},
			YPosSmall:     []int{100, 50},
			MinGap:        150,
			MinSpeed:      8.5,
			MultipleSpeed: 999,
			SpeedOffset:   0.8,
			NumFrames:     2,
			FrameRate:     1000.0 / 6,
			Boxes: []core.Box{
				{X: 15, Y: 15, Width: 16, Height: 5},
				{X: 18, Y: 21, Width: 24, Height: 6},
				{X: 2, Y: 14, Width: 4, Height: 3},
				{X: 6, Y: 10, Width: 4, Height: 7},
				{X: 10, Y: 8, Width: 6, Height: 9},
			},
		},
	}
}
