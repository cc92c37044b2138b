package app

import (
	"fmt"

	"oscope/hal"
	"oscope/internal/buildinfo"
	"oscope/scope/display"
	"oscope/scope/frame"
	"oscope/scope/raster"
)

type system struct {
	h   hal.HAL
	log hal.Logger
	cfg Config

	fb     hal.Framebuffer
	engine *display.Engine
	queue  *frame.Queue
	sched  *frame.Scheduler
	hud    *hud

	modes map[string]mode
	cur   mode

	// failing holds the sources that already reported an error in the
	// current mode, so each failure is logged once.
	failing map[int]bool
	preset  int
}

// New starts the oscilloscope with the default config.
func New(h hal.HAL) hal.App {
	return NewWithConfig(h, Config{})
}

// NewWithConfig starts the oscilloscope. An invalid config is reported by
// the first step. Close stops the active mode and releases its sources.
func NewWithConfig(h hal.HAL, cfg Config) hal.App {
	s, err := newSystem(h, cfg)
	if err != nil {
		return hal.App{Step: func() error { return err }}
	}
	return hal.App{Step: guard(h, s.step), Close: s.close}
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &system{
		h:       h,
		log:     h.Logger(),
		cfg:     cfg,
		fb:      h.Display().Framebuffer(),
		queue:   frame.NewQueue(),
		failing: make(map[int]bool),
	}
	s.engine = display.New(raster.New(s.fb),
		display.WithMultiMode(cfg.MultiMode),
		display.WithSamplesPerPixel(cfg.SamplesPerPixel))
	s.engine.OnSourceError = s.sourceError
	s.hud = newHUD(s.fb)

	clock := h.Time().Now
	s.modes = map[string]mode{
		ModeMath:   newMathMode(cfg.Exprs, clock),
		ModeSignal: newSignalMode(cfg, clock),
	}

	opts := []frame.Option{frame.WithClock(clock)}
	if cfg.LogRate {
		opts = append(opts, frame.WithRateHandler(func(r float64) {
			s.logf("rate: %.1f fps", r)
		}))
	}
	s.sched = frame.New(s.queue, s.render, opts...)

	s.logf("%s", buildinfo.Banner("oscope"))
	if err := s.setMode(cfg.Mode); err != nil {
		return nil, err
	}
	s.sched.Start()
	return s, nil
}

// step runs once per host refresh.
func (s *system) step() error {
	s.pollKeys()
	s.queue.Step()
	return nil
}

func (s *system) render() {
	w, h := s.h.Display().Size()
	s.engine.RenderFrame(w, h)

	opts := s.engine.Options()
	st := hudState{
		rate:    s.sched.Rate(),
		multi:   opts.MultiMode.String(),
		spp:     opts.SamplesPerPixel,
		running: s.sched.Running(),
	}
	if s.cur != nil {
		st.mode = s.cur.name()
		st.detail = s.cur.status()
	}
	s.hud.draw(st)
	_ = s.fb.Present()
}

func (s *system) setMode(name string) error {
	next, ok := s.modes[name]
	if !ok {
		return fmt.Errorf("%w: unknown mode %q", errConfig, name)
	}
	if s.cur != nil {
		s.cur.stop(s.engine)
	}
	s.cur = nil
	clear(s.failing)
	if err := next.start(s.engine); err != nil {
		s.logf("mode %s: %v", name, err)
		return err
	}
	s.cur = next
	s.cfg.Mode = name
	s.logf("mode: %s (%d sources)", name, s.engine.Sources())
	return nil
}

func (s *system) sourceError(index int, err error) {
	if s.failing[index] {
		return
	}
	s.failing[index] = true
	s.logf("source %d: %v", index+1, err)
}

func (s *system) logf(format string, args ...any) {
	if s.log == nil {
		return
	}
	s.log.WriteLineString(fmt.Sprintf(format, args...))
}

// close stops the scheduler and the active mode. Later calls do nothing.
func (s *system) close() {
	s.sched.Stop()
	if s.cur != nil {
		s.cur.stop(s.engine)
		s.cur = nil
	}
}
