package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// control is a held key group
type control uint8

const (
	controlJump control = iota
	controlDuck
	controlCount
)

var releaseIntent = [controlCount]Intent{
	controlJump: IntentJumpRelease,
	controlDuck: IntentDuckRelease,
}

var pressIntent = [controlCount]Intent{
	controlJump: IntentJumpPress,
	controlDuck: IntentDuckPress,
}

// Source turns tcell events into intents
// Terminals report key repeats but no key-up, so a held control is released
// once no repeat arrived within the timeout
// Not safe for concurrent use; feed it from the loop that applies intents
type Source struct {
	timeout time.Duration
	held    [controlCount]time.Time
}

// NewSource creates a source with the given hold timeout
func NewSource(timeout time.Duration) *Source {
	return &Source{timeout: timeout}
}

// Translate decodes one event at time now
func (s *Source) Translate(ev tcell.Event, now time.Time) []Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return []Intent{IntentResize}
	case *tcell.EventKey:
		return s.translateKey(ev, now)
	}
	return nil
}

func (s *Source) translateKey(ev *tcell.EventKey, now time.Time) []Intent {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return []Intent{IntentQuit}
	case tcell.KeyUp:
		return s.press(controlJump, now)
	case tcell.KeyDown:
		return s.press(controlDuck, now)
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return s.press(controlJump, now)
		case 'q', 'Q':
			return []Intent{IntentQuit}
		case 'p', 'P':
			return []Intent{IntentPause}
		case 'm', 'M':
			return []Intent{IntentToggleMute}
		}
	}
	return nil
}

// press refreshes a hold and emits a press only on its first event
func (s *Source) press(c control, now time.Time) []Intent {
	first := s.held[c].IsZero()
	s.held[c] = now
	if first {
		return []Intent{pressIntent[c]}
	}
	return nil
}

// Expire synthesizes releases for controls not refreshed within the timeout
func (s *Source) Expire(now time.Time) []Intent {
	var out []Intent
	for c := control(0); c < controlCount; c++ {
		if s.held[c].IsZero() {
			continue
		}
		if now.Sub(s.held[c]) >= s.timeout {
			s.held[c] = time.Time{}
			out = append(out, releaseIntent[c])
		}
	}
	return out
}

// Held reports whether the jump or duck control is currently held
func (s *Source) Held() (jump, duck bool) {
	return !s.held[controlJump].IsZero(), !s.held[controlDuck].IsZero()
}
