package main

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-runner/core"
	"github.com/lixenwraith/vi-runner/engine"
	"github.com/lixenwraith/vi-runner/input"
	"github.com/lixenwraith/vi-runner/parameter"
	"github.com/lixenwraith/vi-runner/render"
)

// session is one interactive run bound to a terminal
type session struct {
	screen tcell.Screen
	sim    *engine.Simulation
	clock  *engine.FrameClock
	source *input.Source
	sounds soundSystem
	manual bool
}

// runInteractive owns the terminal until the user quits
func runInteractive(app *app) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()

	sink := render.NewTerminalSink(screen, app.cfg.Canvas.Width, parameter.CanvasHeight)
	sim, err := engine.NewSimulation(app.simConfig, sink, app.hooks())
	if err != nil {
		return err
	}

	s := &session{
		screen: screen,
		sim:    sim,
		clock:  engine.NewFrameClock(engine.NewMonotonicTimeProvider(), app.cfg.Render.MaxFrameDeltaMs),
		source: input.NewSource(app.cfg.KeyHoldTimeout()),
		sounds: app.sounds,
		manual: app.simConfig.Manual,
	}
	return s.loop()
}

func (s *session) loop() error {
	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := s.screen.PollEvent()
			// Nil after Fini
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	for {
		select {
		case ev := <-eventChan:
			for _, intent := range s.source.Translate(ev, time.Now()) {
				if !s.apply(intent) {
					return nil
				}
			}

		case now := <-ticker.C:
			for _, intent := range s.source.Expire(now) {
				s.apply(intent)
			}
			s.sim.Tick(s.clock.Delta())
		}
	}
}

// apply executes one intent; false ends the session
func (s *session) apply(intent input.Intent) bool {
	var err error
	switch intent {
	case input.IntentQuit:
		return false
	case input.IntentPause:
		s.sim.SetPaused(s.clock.Toggle())
	case input.IntentToggleMute:
		log.Printf("audio muted: %v", s.sounds.ToggleMute())
	case input.IntentResize:
		s.screen.Sync()
	case input.IntentJumpPress:
		if s.manual {
			err = s.sim.OnJumpPressed()
		}
	case input.IntentJumpRelease:
		if s.manual {
			err = s.sim.OnJumpReleased()
		}
	case input.IntentDuckPress:
		if s.manual {
			err = s.sim.OnDuckPressed()
		}
	case input.IntentDuckRelease:
		if s.manual {
			err = s.sim.OnDuckReleased()
		}
	}
	if err != nil {
		log.Printf("input %v: %v", intent, err)
	}
	return true
}
