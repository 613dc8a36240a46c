package engine

import (
	"sync"
	"time"
)

// FrameClock converts time source readings into per-frame deltas in milliseconds
// Paused time never reaches the simulation
type FrameClock struct {
	mu sync.Mutex

	provider TimeProvider
	last     time.Time
	maxDelta float64

	paused      bool
	pauseStart  time.Time
	totalPaused time.Duration
}

// NewFrameClock creates a clock; deltas above maxDelta ms are clamped, 0 disables clamping
func NewFrameClock(provider TimeProvider, maxDelta float64) *FrameClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &FrameClock{
		provider: provider,
		last:     provider.Now(),
		maxDelta: maxDelta,
	}
}

// Delta returns milliseconds since the previous call, 0 while paused
func (c *FrameClock) Delta() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused {
		return 0
	}
	now := c.provider.Now()
	dt := float64(now.Sub(c.last)) / float64(time.Millisecond)
	c.last = now

	if dt < 0 {
		return 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		return c.maxDelta
	}
	return dt
}

// Pause stops delta accumulation
func (c *FrameClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.paused = true
	c.pauseStart = c.provider.Now()
}

// Resume restarts delta accumulation from now
func (c *FrameClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	now := c.provider.Now()
	c.totalPaused += now.Sub(c.pauseStart)
	c.last = now
	c.paused = false
}

// Toggle flips the pause state and returns the new state
func (c *FrameClock) Toggle() bool {
	if c.IsPaused() {
		c.Resume()
		return false
	}
	c.Pause()
	return true
}

// IsPaused returns current pause state
func (c *FrameClock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// TotalPaused returns cumulative pause time, including a pause in progress
func (c *FrameClock) TotalPaused() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.totalPaused
	if c.paused {
		total += c.provider.Now().Sub(c.pauseStart)
	}
	return total
}
