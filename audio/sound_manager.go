package audio

import (
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-runner/parameter"
)

// Cue identifies a sound effect
type Cue uint8

const (
	CueJump Cue = iota
	CueCrash
	CueRollover
)

// Config holds audio settings
type Config struct {
	Enabled    bool
	SampleRate int
	Volume     float64 // base-2 exponent, 0 is unity gain
}

// DefaultConfig returns audio defaults
func DefaultConfig() Config {
	return Config{
		Enabled:    true,
		SampleRate: parameter.AudioSampleRate,
		Volume:     parameter.AudioDefaultVolume,
	}
}

// SoundManager plays runner cues through the beep speaker
// All Play methods are no-ops until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool
}

// NewSoundManager creates a sound manager
func NewSoundManager(cfg Config) *SoundManager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = parameter.AudioSampleRate
	}
	sm := &SoundManager{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
	sm.muted.Store(!cfg.Enabled)
	return sm
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup drops pending cues and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// ToggleMute flips the mute flag and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Muted reports whether cues are suppressed
func (sm *SoundManager) Muted() bool { return sm.muted.Load() }

// Cue shorthands used as simulation hooks
func (sm *SoundManager) PlayJump()     { sm.Play(CueJump) }
func (sm *SoundManager) PlayCrash()    { sm.Play(CueCrash) }
func (sm *SoundManager) PlayRollover() { sm.Play(CueRollover) }

// Play queues a cue on the mixer
func (sm *SoundManager) Play(cue Cue) {
	if sm.muted.Load() {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}

	s := sm.Build(cue)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Build renders the streamer for a cue at the configured rate and volume
func (sm *SoundManager) Build(cue Cue) beep.Streamer {
	var s beep.Streamer
	switch cue {
	case CueJump:
		s = NewTone(parameter.JumpSoundFrequency, WaveSquare,
			parameter.JumpSoundDuration, parameter.JumpSoundAttack, parameter.JumpSoundRelease, sm.rate)
	case CueCrash:
		s = NewTone(parameter.CrashSoundFrequency, WaveTriangle,
			parameter.CrashSoundDuration, parameter.CrashSoundAttack, parameter.CrashSoundRelease, sm.rate)
	default:
		s = beep.Seq(
			NewTone(parameter.RolloverSoundNote1, WaveSine,
				parameter.RolloverSoundNoteLen, parameter.RolloverSoundAttack, parameter.RolloverSoundRelease, sm.rate),
			NewTone(parameter.RolloverSoundNote2, WaveSine,
				parameter.RolloverSoundNoteLen, parameter.RolloverSoundAttack, parameter.RolloverSoundRelease, sm.rate),
		)
	}
	return withVolume(s, sm.cfg.Volume, false)
}
