package render

import (
	"sync"

	"github.com/lixenwraith/vi-runner/obstacle"
	"github.com/lixenwraith/vi-runner/physics"
)

// AgentDraw is one recorded DrawAgent call
type AgentDraw struct {
	ID    int
	Pose  physics.Pose
	Frame int
}

// ObstacleDraw is one recorded DrawObstacle call
type ObstacleDraw struct {
	Kind  string
	X, Y  int
	Width int
	Frame int
}

// Frame is everything drawn between BeginFrame and EndFrame
type Frame struct {
	Agents    []AgentDraw
	Obstacles []ObstacleDraw
	Lines     int
	HUD       HUD
}

// Recorder keeps draw calls for inspection in tests
type Recorder struct {
	mu      sync.Mutex
	current Frame
	frames  []Frame
}

func (r *Recorder) BeginFrame() {
	r.mu.Lock()
	r.current = Frame{}
	r.mu.Unlock()
}

func (r *Recorder) DrawAgent(id int, pose physics.Pose, frame int) {
	r.mu.Lock()
	r.current.Agents = append(r.current.Agents, AgentDraw{ID: id, Pose: pose, Frame: frame})
	r.mu.Unlock()
}

func (r *Recorder) DrawObstacle(o *obstacle.Obstacle) {
	r.mu.Lock()
	r.current.Obstacles = append(r.current.Obstacles, ObstacleDraw{
		Kind:  o.Kind(),
		X:     o.X,
		Y:     o.Y,
		Width: o.Width,
		Frame: o.Frame,
	})
	r.mu.Unlock()
}

func (r *Recorder) DrawObstacleLine() {
	r.mu.Lock()
	r.current.Lines++
	r.mu.Unlock()
}

func (r *Recorder) EndFrame(hud HUD) {
	r.mu.Lock()
	r.current.HUD = hud
	r.frames = append(r.frames, r.current)
	r.mu.Unlock()
}

// Frames returns the completed frames
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

// Last returns the most recent completed frame
func (r *Recorder) Last() (Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}
