package physics

import (
	"github.com/lixenwraith/vi-runner/core"
	"github.com/lixenwraith/vi-runner/parameter"
)

// JumpProfile holds the integrator constants and footprint of a runner
// Profiles are shared read-only between runners
type JumpProfile struct {
	InitialVelocity      float64 // Launch velocity before the speed bonus (negative is up)
	DropVelocity         float64 // Upward velocity cap once a jump ends early
	Gravity              float64 // Velocity added per reference frame
	SpeedDropCoefficient float64 // Displacement multiplier while fast-falling
	SpeedDropVelocity    float64 // Velocity set when a fast-fall starts
	SpeedDivisor         float64 // Run speed / divisor is added to launch velocity
	FrameMs              float64 // Reference frame length in milliseconds

	MaxJumpHeight int // Jump ends once y rises above this
	MinJumpHeight int // Rise above ground required before an early end applies

	StartX  int
	GroundY int

	Width      int
	Height     int
	WidthDuck  int
	HeightDuck int

	// Hitboxes are local to the inset footprint origin
	Hitboxes     []core.Box
	HitboxesDuck []core.Box
}

// DefaultJumpProfile matches the classic runner tuning on a 600x150 canvas
var DefaultJumpProfile = JumpProfile{
	InitialVelocity:      parameter.JumpInitialVelocity,
	DropVelocity:         parameter.JumpDropVelocity,
	Gravity:              parameter.JumpGravity,
	SpeedDropCoefficient: parameter.JumpSpeedDropCoefficient,
	SpeedDropVelocity:    parameter.JumpSpeedDropVelocity,
	SpeedDivisor:         parameter.JumpSpeedDivisor,
	FrameMs:              parameter.MsPerFrame,
	MaxJumpHeight:        parameter.JumpMaxHeight,
	MinJumpHeight:        parameter.JumpMinHeight,
	StartX:               parameter.RunnerStartX,
	GroundY:              parameter.GroundY,
	Width:                parameter.RunnerWidth,
	Height:               parameter.RunnerHeight,
	WidthDuck:            parameter.RunnerWidthDuck,
	HeightDuck:           parameter.RunnerHeightDuck,
	Hitboxes: []core.Box{
		{X: 22, Y: 0, Width: 17, Height: 16},
		{X: 1, Y: 18, Width: 30, Height: 9},
		{X: 10, Y: 35, Width: 14, Height: 8},
		{X: 1, Y: 24, Width: 29, Height: 5},
		{X: 5, Y: 30, Width: 21, Height: 4},
		{X: 9, Y: 34, Width: 15, Height: 4},
	},
	HitboxesDuck: []core.Box{
		{X: 1, Y: 18, Width: 55, Height: 25},
	},
}

// MinJumpY is the y a jump must rise above before it may be cut short
func (p *JumpProfile) MinJumpY() int {
	return p.GroundY - p.MinJumpHeight
}
