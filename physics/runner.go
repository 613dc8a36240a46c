package physics

import (
	"github.com/lixenwraith/vi-runner/core"
	"github.com/lixenwraith/vi-runner/parameter"
	"github.com/lixenwraith/vi-runner/vmath"
)

// State is the runner pose state
type State uint8

const (
	StateWaiting State = iota
	StateRunning
	StateJumping
	StateDucking
	StateCrashed
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateRunning:
		return "running"
	case StateJumping:
		return "jumping"
	case StateDucking:
		return "ducking"
	case StateCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// animation describes the frame cycle of a state
type animation struct {
	frames int
	msPer  float64
}

var animations = [...]animation{
	StateWaiting: {parameter.AnimWaitingFrames, parameter.AnimWaitingMs},
	StateRunning: {parameter.AnimRunningFrames, parameter.AnimRunningMs},
	StateJumping: {parameter.AnimJumpingFrames, parameter.AnimJumpingMs},
	StateDucking: {parameter.AnimDuckingFrames, parameter.AnimDuckingMs},
	StateCrashed: {parameter.AnimCrashedFrames, 0},
}

// Pose is a snapshot of a runner's kinematic state
type Pose struct {
	X, Y             int
	Velocity         float64
	State            State
	SpeedDrop        bool
	ReachedMinHeight bool
	GroundY          int
	MinJumpY         int
	Frame            int
}

// Airborne reports whether the pose is mid-jump
func (p Pose) Airborne() bool {
	return p.State == StateJumping
}

// Runner integrates one agent's jump and tracks its animation frame
// Not safe for concurrent use; the population drives it from a single goroutine
type Runner struct {
	pose      Pose
	profile   *JumpProfile
	animTimer float64
}

// NewRunner creates a runner standing on the ground in the running state
// A nil profile selects DefaultJumpProfile
func NewRunner(profile *JumpProfile) *Runner {
	if profile == nil {
		profile = &DefaultJumpProfile
	}
	r := &Runner{profile: profile}
	r.Reset()
	return r
}

// Pose returns a copy of the current pose
func (r *Runner) Pose() Pose {
	return r.pose
}

// Profile returns the constants the runner was built with
func (r *Runner) Profile() *JumpProfile {
	return r.profile
}

func (r *Runner) setState(s State) {
	if r.pose.State != s {
		r.pose.Frame = 0
		r.animTimer = 0
	}
	r.pose.State = s
}

// Reset puts the runner back on the ground in the running state
// Calling it repeatedly yields the same pose
func (r *Runner) Reset() {
	r.pose = Pose{
		X:        r.profile.StartX,
		Y:        r.profile.GroundY,
		State:    StateRunning,
		GroundY:  r.profile.GroundY,
		MinJumpY: r.profile.MinJumpY(),
	}
	r.animTimer = 0
}

// Wait grounds the runner in the idle state used before play starts
func (r *Runner) Wait() {
	r.Reset()
	r.pose.State = StateWaiting
}

// StartJump launches the runner; no-op while airborne or crashed
func (r *Runner) StartJump(speed float64) {
	if r.pose.State == StateJumping || r.pose.State == StateCrashed {
		return
	}
	r.setState(StateJumping)
	r.pose.Velocity = r.profile.InitialVelocity - speed/r.profile.SpeedDivisor
	r.pose.ReachedMinHeight = false
	r.pose.SpeedDrop = false
}

// EndJump caps upward velocity once the minimum height was reached
// Also the jump-key release entry for manual play
func (r *Runner) EndJump() {
	if r.pose.State != StateJumping {
		return
	}
	if r.pose.ReachedMinHeight && r.pose.Velocity < r.profile.DropVelocity {
		r.pose.Velocity = r.profile.DropVelocity
	}
}

// SetSpeedDrop starts a fast-fall; only meaningful while airborne
func (r *Runner) SetSpeedDrop() {
	if r.pose.State != StateJumping {
		return
	}
	r.pose.SpeedDrop = true
	r.pose.Velocity = r.profile.SpeedDropVelocity
}

// SetDuck toggles ducking from the running state
// Ignored while airborne, crashed or waiting
func (r *Runner) SetDuck(duck bool) {
	switch {
	case duck && r.pose.State == StateRunning:
		r.setState(StateDucking)
	case !duck && r.pose.State == StateDucking:
		r.setState(StateRunning)
	}
}

// Crash freezes the runner; only Reset leaves this state
func (r *Runner) Crash() {
	r.setState(StateCrashed)
	r.pose.Velocity = 0
	r.pose.SpeedDrop = false
}

// Crashed reports whether the runner has hit an obstacle
func (r *Runner) Crashed() bool {
	return r.pose.State == StateCrashed
}

// Update advances the jump by dt milliseconds
func (r *Runner) Update(dt float64) {
	if r.pose.State != StateJumping {
		return
	}

	frames := dt / r.profile.FrameMs
	mult := 1.0
	if r.pose.SpeedDrop {
		mult = r.profile.SpeedDropCoefficient
	}

	r.pose.Y += vmath.RoundHalfUp(r.pose.Velocity * frames * mult)
	r.pose.Velocity += r.profile.Gravity * frames

	if r.pose.Y < r.pose.MinJumpY || r.pose.SpeedDrop {
		r.pose.ReachedMinHeight = true
	}

	if r.pose.Y < r.profile.MaxJumpHeight || r.pose.SpeedDrop {
		r.EndJump()
	}

	if r.pose.Y >= r.pose.GroundY {
		r.land()
	}
}

func (r *Runner) land() {
	r.pose.Y = r.pose.GroundY
	r.pose.Velocity = 0
	r.pose.SpeedDrop = false
	r.pose.ReachedMinHeight = false
	r.setState(StateRunning)
}

// Animate advances the sprite frame of the current state by dt milliseconds
func (r *Runner) Animate(dt float64) {
	anim := animations[r.pose.State]
	if anim.frames <= 1 || anim.msPer <= 0 {
		r.pose.Frame = 0
		return
	}
	r.animTimer += dt
	if r.animTimer >= anim.msPer {
		r.pose.Frame = (r.pose.Frame + 1) % anim.frames
		r.animTimer = 0
	}
}

// Bounds returns the untrimmed footprint in canvas coordinates
func (r *Runner) Bounds() core.Box {
	if r == nil {
		return core.Box{}
	}
	w, h := r.profile.Width, r.profile.Height
	if r.pose.State == StateDucking {
		w = r.profile.WidthDuck
	}
	return core.Box{X: r.pose.X, Y: r.pose.Y, Width: w, Height: h}
}

// Hitboxes returns the local hitbox set of the current state
func (r *Runner) Hitboxes() []core.Box {
	if r == nil {
		return nil
	}
	if r.pose.State == StateDucking {
		return r.profile.HitboxesDuck
	}
	return r.profile.Hitboxes
}
