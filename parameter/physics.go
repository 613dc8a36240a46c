package parameter

// Runner footprint in canvas pixels
const (
	RunnerWidth      = 44
	RunnerHeight     = 47
	RunnerWidthDuck  = 59
	RunnerHeightDuck = 25
	RunnerStartX     = 50
)

// Jump integrator
const (
	// JumpInitialVelocity is the upward launch velocity before the speed bonus
	JumpInitialVelocity = -10.0

	// JumpDropVelocity caps upward velocity when a jump is cut short
	JumpDropVelocity = -5.0

	// JumpGravity is added to velocity per reference frame
	JumpGravity = 0.6

	// JumpMaxHeight is the y below which a jump is ended
	JumpMaxHeight = 30

	// JumpMinHeight is the minimum rise above ground before a jump can end
	JumpMinHeight = 30

	// JumpSpeedDropCoefficient multiplies displacement while fast-falling
	JumpSpeedDropCoefficient = 3.0

	// JumpSpeedDropVelocity is the velocity set when a fast-fall starts
	JumpSpeedDropVelocity = 1.0

	// JumpSpeedDivisor converts run speed into extra launch velocity
	JumpSpeedDivisor = 10.0
)

// Runner animation, frame counts and milliseconds per frame
const (
	AnimWaitingFrames = 2
	AnimWaitingMs     = 1000.0 / 3
	AnimRunningFrames = 2
	AnimRunningMs     = 1000.0 / 12
	AnimDuckingFrames = 2
	AnimDuckingMs     = 1000.0 / 8
	AnimJumpingFrames = 1
	AnimJumpingMs     = 1000.0 / 60
	AnimCrashedFrames = 1
)
