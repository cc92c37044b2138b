package app

import (
	"oscope/hal"
	"oscope/scope/display"
)

// exprPresets are cycled by the 'e' key in math mode.
var exprPresets = [][]string{
	DefaultExprs,
	{
		"return math.sin(2 * math.pi * x * 2)",
		"return math.cos(2 * math.pi * x * 3)",
	},
	{
		"local p = (x * 4 + t / 2000) % 1\nif p < 0.5 then return 0.8 end\nreturn -0.8",
		"return 2 * ((x * 5 - t / 1000) % 1) - 1",
	},
}

func (s *system) pollKeys() {
	kbd := s.h.Input().Keyboard()
	if kbd == nil {
		return
	}
	ch := kbd.Events()
	for {
		select {
		case ev := <-ch:
			if ev.Press {
				s.handleKey(ev)
			}
		default:
			return
		}
	}
}

func (s *system) handleKey(ev hal.KeyEvent) {
	switch ev.Code {
	case hal.KeyUp:
		s.shiftFrequency(1)
		return
	case hal.KeyDown:
		s.shiftFrequency(-1)
		return
	}

	switch ev.Rune {
	case '1':
		s.setMultiMode(display.ModeOverlay)
	case '2':
		s.setMultiMode(display.ModeScale)
	case '3':
		s.setMultiMode(display.ModeXY)
	case '+', '=':
		s.setSamplesPerPixel(s.engine.Options().SamplesPerPixel * 2)
	case '-', '_':
		s.setSamplesPerPixel(s.engine.Options().SamplesPerPixel / 2)
	case 'm', 'M':
		next := ModeSignal
		if s.cfg.Mode == ModeSignal {
			next = ModeMath
		}
		_ = s.setMode(next)
	case 'z', 'Z':
		s.cfg.Stabilize = !s.cfg.Stabilize
		if sm, ok := s.modes[ModeSignal].(*signalMode); ok {
			sm.setStabilize(s.cfg.Stabilize)
		}
		s.logf("stabilize: %v", s.cfg.Stabilize)
	case 'e', 'E':
		s.nextPreset()
	case ' ':
		if s.sched.Running() {
			s.sched.Stop()
			s.logf("paused")
		} else {
			s.sched.Start()
			s.logf("running")
		}
	}
}

func (s *system) setMultiMode(m display.MultiMode) {
	s.engine.Configure(display.WithMultiMode(m))
	s.logf("multi: %s", m)
}

func (s *system) setSamplesPerPixel(v float64) {
	v = min(max(v, minSamplesPerPixel), maxSamplesPerPixel)
	s.engine.Configure(display.WithSamplesPerPixel(v))
	s.logf("spp: %g", v)
}

func (s *system) shiftFrequency(semitones float64) {
	sm, ok := s.cur.(*signalMode)
	if !ok {
		return
	}
	s.logf("ch1: %.1f Hz", sm.shiftFrequency(semitones))
}

func (s *system) nextPreset() {
	mm, ok := s.cur.(*mathMode)
	if !ok {
		return
	}
	next := (s.preset + 1) % len(exprPresets)
	if err := mm.setExprs(s.engine, exprPresets[next]); err != nil {
		s.logf("preset %d: %v", next+1, err)
		return
	}
	s.preset = next
	clear(s.failing)
	s.logf("preset: %d", next+1)
}
