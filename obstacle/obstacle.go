package obstacle

import (
	"math"

	"github.com/lixenwraith/vi-runner/core"
)

// Obstacle is a stamped instance of a Type moving across the canvas
type Obstacle struct {
	Type  *Type
	Size  int // Units placed side by side, 1..3
	X, Y  int
	Width int // Type width times size

	Boxes       []core.Box // Private copy of the type boxes, adjusted for size
	Gap         int        // Distance the next obstacle trails behind this one
	SpeedOffset float64

	Remove          bool
	FollowerCreated bool
	Frame           int

	frameTimer float64
}

// Kind returns the type kind or an empty string
func (o *Obstacle) Kind() string {
	if o == nil || o.Type == nil {
		return ""
	}
	return o.Type.Kind
}

// Height returns the type height
func (o *Obstacle) Height() int {
	if o == nil || o.Type == nil {
		return 0
	}
	return o.Type.Height
}

// Visible reports whether any part of the obstacle is on the canvas
func (o *Obstacle) Visible() bool {
	return o.X+o.Width > 0
}

// update moves the obstacle left by the frame's travel and steps its animation
func (o *Obstacle) update(dt, speed, fps float64) {
	if o.Remove {
		return
	}
	speed += o.SpeedOffset
	o.X -= int(math.Floor(speed * fps * dt / 1000))

	if o.Type.Animated() {
		o.frameTimer += dt
		if o.frameTimer >= o.Type.FrameRate {
			o.Frame = (o.Frame + 1) % o.Type.NumFrames
			o.frameTimer = 0
		}
	}

	if !o.Visible() {
		o.Remove = true
	}
}

// Bounds returns the footprint in canvas coordinates
func (o *Obstacle) Bounds() core.Box {
	if o == nil {
		return core.Box{}
	}
	return core.Box{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height()}
}

// Hitboxes returns the instance's private hitboxes
func (o *Obstacle) Hitboxes() []core.Box {
	if o == nil {
		return nil
	}
	return o.Boxes
}
