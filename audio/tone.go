package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects the oscillator shape
type Wave uint8

const (
	WaveSine Wave = iota
	WaveSquare
	WaveTriangle
)

// tone is a single enveloped oscillator voice
// Gain ramps linearly over attack, holds, then ramps to zero over release
type tone struct {
	wave    Wave
	step    float64 // phase increment per sample
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

// NewTone creates a finite streamer for one enveloped note
func NewTone(freq float64, wave Wave, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &tone{
		wave:    wave,
		step:    freq / float64(rate),
		total:   total,
		attack:  att,
		release: rel,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for n = range samples {
		if t.pos >= t.total {
			return n, true
		}
		v := t.sample() * t.gain()
		samples[n][0], samples[n][1] = v, v

		t.phase += t.step
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) sample() float64 {
	switch t.wave {
	case WaveSquare:
		if t.phase < 0.5 {
			return 1
		}
		return -1
	case WaveTriangle:
		return 1 - 4*math.Abs(t.phase-0.5)
	default:
		return math.Sin(2 * math.Pi * t.phase)
	}
}

func (t *tone) gain() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if left := t.total - t.pos; t.release > 0 && left <= t.release {
		return float64(left) / float64(t.release)
	}
	return 1
}

// withVolume wraps s in a base-2 volume stage; volume is the exponent
func withVolume(s beep.Streamer, volume float64, silent bool) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: volume, Silent: silent}
}
