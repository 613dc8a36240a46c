package input

// Intent is a semantic action decoded from terminal input
type Intent uint8

const (
	IntentNone Intent = iota

	// System-level intents
	IntentQuit       // q, Esc, Ctrl+C
	IntentPause      // p
	IntentToggleMute // m
	IntentResize     // Terminal resize event

	// Runner controls; releases are synthesized after the hold timeout
	IntentJumpPress   // Space, Up
	IntentJumpRelease
	IntentDuckPress // Down
	IntentDuckRelease
)

var intentNames = [...]string{
	IntentNone:        "none",
	IntentQuit:        "quit",
	IntentPause:       "pause",
	IntentToggleMute:  "toggle-mute",
	IntentResize:      "resize",
	IntentJumpPress:   "jump-press",
	IntentJumpRelease: "jump-release",
	IntentDuckPress:   "duck-press",
	IntentDuckRelease: "duck-release",
}

func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}
