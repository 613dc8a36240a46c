package physics

import (
	"testing"

	"github.com/lixenwraith/vi-runner/parameter"
)

func TestJumpRoundTrip(t *testing.T) {
	r := NewRunner(nil)
	r.StartJump(0)

	if r.Pose().State != StateJumping {
		t.Fatalf("expected jumping after StartJump, got %v", r.Pose().State)
	}
	if r.Pose().Velocity != parameter.JumpInitialVelocity {
		t.Errorf("expected launch velocity %v, got %v", parameter.JumpInitialVelocity, r.Pose().Velocity)
	}

	var ys []int
	for i := 0; i < 200 && r.Pose().State == StateJumping; i++ {
		r.Update(parameter.MsPerFrame)
		ys = append(ys, r.Pose().Y)
	}

	if len(ys) != 35 {
		t.Errorf("expected landing after 35 frames, got %d", len(ys))
	}

	pose := r.Pose()
	if pose.State != StateRunning {
		t.Fatalf("expected running after landing, got %v", pose.State)
	}
	if pose.Y != parameter.GroundY {
		t.Errorf("expected y reset to ground %d, got %d", parameter.GroundY, pose.Y)
	}
	if pose.Velocity != 0 || pose.SpeedDrop || pose.ReachedMinHeight {
		t.Errorf("landing did not clear jump state: %+v", pose)
	}

	// Rises then falls with exactly one direction change
	rising := true
	peak := parameter.GroundY
	for i := 1; i < len(ys); i++ {
		if ys[i] > parameter.GroundY {
			t.Fatalf("frame %d below ground: %d", i, ys[i])
		}
		if ys[i] < peak {
			peak = ys[i]
		}
		if rising && ys[i] > ys[i-1] {
			rising = false
			continue
		}
		if !rising && ys[i] < ys[i-1] {
			t.Fatalf("trajectory rises again at frame %d: %v", i, ys)
		}
	}
	if peak != 5 {
		t.Errorf("expected apex y 5, got %d", peak)
	}
}

func TestJumpSpeedBonus(t *testing.T) {
	slow := NewRunner(nil)
	fast := NewRunner(nil)
	slow.StartJump(0)
	fast.StartJump(10)

	if fast.Pose().Velocity >= slow.Pose().Velocity {
		t.Errorf("faster run speed should launch harder: %v vs %v", fast.Pose().Velocity, slow.Pose().Velocity)
	}
}

func TestStartJumpIgnoredWhileAirborneOrCrashed(t *testing.T) {
	r := NewRunner(nil)
	r.StartJump(0)
	r.Update(parameter.MsPerFrame)
	before := r.Pose()

	r.StartJump(0)
	if r.Pose() != before {
		t.Errorf("StartJump while airborne changed pose: %+v -> %+v", before, r.Pose())
	}

	r.Crash()
	r.StartJump(0)
	if r.Pose().State != StateCrashed {
		t.Errorf("StartJump revived a crashed runner: %v", r.Pose().State)
	}
	r.Update(parameter.MsPerFrame)
	if r.Pose().State != StateCrashed {
		t.Errorf("Update moved a crashed runner out of crashed state")
	}
}

func TestSpeedDropShortensJump(t *testing.T) {
	count := func(dropAt int) int {
		r := NewRunner(nil)
		r.StartJump(6)
		n := 0
		for r.Pose().State == StateJumping && n < 200 {
			if n == dropAt {
				r.SetSpeedDrop()
			}
			r.Update(parameter.MsPerFrame)
			n++
		}
		return n
	}

	full := count(-1)
	dropped := count(5)
	if full != 35 {
		t.Errorf("expected a 35 frame jump at speed 6, got %d", full)
	}
	if dropped != 12 {
		t.Errorf("expected a 12 frame jump with a fast-fall at frame 5, got %d", dropped)
	}
}

func TestSetSpeedDropGroundedIsNoop(t *testing.T) {
	r := NewRunner(nil)
	r.SetSpeedDrop()
	if r.Pose().SpeedDrop {
		t.Error("speed drop must not engage on the ground")
	}
}

func TestEndJumpClampsAfterMinHeight(t *testing.T) {
	r := NewRunner(nil)
	r.StartJump(0)

	// Before min height nothing is clamped
	r.EndJump()
	if r.Pose().Velocity != parameter.JumpInitialVelocity {
		t.Errorf("EndJump clamped before reaching min height: %v", r.Pose().Velocity)
	}

	// Four frames reach y 57, above MinJumpY 63
	for i := 0; i < 4; i++ {
		r.Update(parameter.MsPerFrame)
	}
	if !r.Pose().ReachedMinHeight {
		t.Fatalf("expected min height reached at y %d", r.Pose().Y)
	}
	r.EndJump()
	if r.Pose().Velocity != parameter.JumpDropVelocity {
		t.Errorf("expected velocity clamped to %v, got %v", parameter.JumpDropVelocity, r.Pose().Velocity)
	}
}

func TestDuckTransitions(t *testing.T) {
	r := NewRunner(nil)

	r.SetDuck(true)
	if r.Pose().State != StateDucking {
		t.Fatalf("expected ducking, got %v", r.Pose().State)
	}
	if got := r.Bounds().Width; got != parameter.RunnerWidthDuck {
		t.Errorf("ducking footprint width = %d, want %d", got, parameter.RunnerWidthDuck)
	}
	if len(r.Hitboxes()) != 1 {
		t.Errorf("expected the single ducking hitbox, got %d", len(r.Hitboxes()))
	}

	r.SetDuck(false)
	if r.Pose().State != StateRunning {
		t.Fatalf("expected running after release, got %v", r.Pose().State)
	}

	r.SetDuck(true)
	r.StartJump(0)
	if r.Pose().State != StateJumping {
		t.Errorf("jump from ducking should be allowed, got %v", r.Pose().State)
	}
	r.SetDuck(true)
	if r.Pose().State != StateJumping {
		t.Errorf("duck while airborne should be ignored, got %v", r.Pose().State)
	}
}

func TestResetIdempotent(t *testing.T) {
	r := NewRunner(nil)
	r.StartJump(8)
	for i := 0; i < 7; i++ {
		r.Update(parameter.MsPerFrame)
	}
	r.Crash()

	r.Reset()
	first := r.Pose()
	r.Reset()
	if r.Pose() != first {
		t.Errorf("second Reset changed pose: %+v -> %+v", first, r.Pose())
	}
	if first.State != StateRunning || first.Y != parameter.GroundY || first.X != parameter.RunnerStartX {
		t.Errorf("unexpected reset pose %+v", first)
	}
}

func TestAnimateCyclesFrames(t *testing.T) {
	r := NewRunner(nil)
	r.Animate(parameter.AnimRunningMs)
	if r.Pose().Frame != 1 {
		t.Errorf("expected frame 1 after one running period, got %d", r.Pose().Frame)
	}
	r.Animate(parameter.AnimRunningMs)
	if r.Pose().Frame != 0 {
		t.Errorf("expected frame to wrap to 0, got %d", r.Pose().Frame)
	}

	r.Crash()
	r.Animate(1000)
	if r.Pose().Frame != 0 {
		t.Errorf("crashed pose has a single frame, got %d", r.Pose().Frame)
	}
}

func TestStateString(t *testing.T) {
	if StateDucking.String() != "ducking" {
		t.Errorf("unexpected name %q", StateDucking.String())
	}
	if State(99).String() != "unknown" {
		t.Errorf("unexpected name for invalid state %q", State(99).String())
	}
}
