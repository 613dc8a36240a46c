package parameter

import "time"

// Canvas geometry in pixels
const (
	CanvasWidth     = 600
	CanvasHeight    = 150
	CanvasBottomPad = 10

	// GroundY is the resting y of a standing runner
	GroundY = CanvasHeight - RunnerHeight - CanvasBottomPad
)

// Frame timing
const (
	// FPS is the reference frame rate all per-frame constants are tuned for
	FPS = 60

	// MsPerFrame is one reference frame in milliseconds
	MsPerFrame = 1000.0 / FPS

	// FrameInterval drives the interactive ticker
	FrameInterval = time.Second / FPS

	// MaxFrameDelta clamps wall-clock gaps after stalls or pauses
	MaxFrameDelta = 100.0
)

// Run speed
const (
	RunSpeedInitial      = 6.0
	RunSpeedMax          = 13.0
	RunSpeedAcceleration = 0.001

	// RunClearTimeMs delays the first obstacle after a generation start
	RunClearTimeMs = 0.0
)

// Obstacle stream
const (
	// GapCoefficient scales an obstacle type's minimum gap
	GapCoefficient = 0.6

	// MaxGapCoefficient bounds the random gap relative to the minimum
	MaxGapCoefficient = 1.5

	// MaxObstacleDuplication is how many identical kinds may follow each other
	MaxObstacleDuplication = 2

	// MaxSpawnAttempts bounds type re-draws before a spawn is declared starved
	MaxSpawnAttempts = 64

	// MaxObstacleSize is the largest multiple a type can be stamped with
	MaxObstacleSize = 3
)

// Distance meter
const (
	// DistanceScoreCoefficient converts pixel distance into displayed score
	DistanceScoreCoefficient = 0.025
)
