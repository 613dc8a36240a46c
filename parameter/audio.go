package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// AudioDefaultVolume is the beep effects.Volume exponent, 0 is unity gain
	AudioDefaultVolume = -1.0
)

// Jump Sound
const (
	JumpSoundFrequency = 660.0
	JumpSoundDuration  = 90 * time.Millisecond
	JumpSoundAttack    = 5 * time.Millisecond
	JumpSoundRelease   = 60 * time.Millisecond
)

// Crash Sound
const (
	CrashSoundFrequency = 110.0
	CrashSoundDuration  = 220 * time.Millisecond
	CrashSoundAttack    = 2 * time.Millisecond
	CrashSoundRelease   = 180 * time.Millisecond
)

// Rollover Sound, two rising notes
const (
	RolloverSoundNote1   = 523.25
	RolloverSoundNote2   = 783.99
	RolloverSoundNoteLen = 100 * time.Millisecond
	RolloverSoundAttack  = 5 * time.Millisecond
	RolloverSoundRelease = 70 * time.Millisecond
)
