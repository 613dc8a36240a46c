package render

import (
	"github.com/lixenwraith/vi-runner/obstacle"
	"github.com/lixenwraith/vi-runner/physics"
)

// Sink receives draw calls for one frame; calls are fire-and-forget
type Sink interface {
	DrawAgent(id int, pose physics.Pose, frame int)
	DrawObstacle(o *obstacle.Obstacle)
	DrawObstacleLine()
}

// FrameSink is an optional extension bracketing each frame
type FrameSink interface {
	Sink
	BeginFrame()
	EndFrame(hud HUD)
}

// HUD is the status line content of a frame
type HUD struct {
	Generation int
	Lives      int
	Population int
	Score      int
	HighScore  int
	Speed      float64
	Manual     bool
	Waiting    bool // Manual game not started yet
	GameOver   bool
	Paused     bool
}

// Nop discards every draw call
type Nop struct{}

func (Nop) DrawAgent(int, physics.Pose, int) {}
func (Nop) DrawObstacle(*obstacle.Obstacle)  {}
func (Nop) DrawObstacleLine()                {}
