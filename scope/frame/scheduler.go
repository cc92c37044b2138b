// Package frame drives rendering once per display refresh and measures the
// achieved frame rate.
package frame

import "time"

// Handle identifies a pending frame callback. Zero is never a valid handle.
type Handle uint64

// Host schedules callbacks for the next display refresh.
type Host interface {
	RequestFrame(fn func()) Handle
	CancelFrame(h Handle)
}

// rateWindow is the number of frames per rate measurement.
const rateWindow = 10

// Scheduler calls a render function once per host frame while running.
//
// It is not safe for concurrent use; Start and Stop are expected on the same
// goroutine that runs host callbacks.
type Scheduler struct {
	host   Host
	render func()
	now    func() time.Duration
	onRate func(float64)

	running bool
	handle  Handle

	count       int
	windowStart time.Duration
	rate        float64
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the monotonic clock used for rate measurement.
func WithClock(now func() time.Duration) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRateHandler registers fn to receive every published frame rate.
func WithRateHandler(fn func(float64)) Option {
	return func(s *Scheduler) { s.onRate = fn }
}

func New(host Host, render func(), opts ...Option) *Scheduler {
	t0 := time.Now()
	s := &Scheduler{
		host:   host,
		render: render,
		now:    func() time.Duration { return time.Since(t0) },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Start schedules the first frame. It does nothing if already running.
func (s *Scheduler) Start() {
	if s.running || s.host == nil {
		return
	}
	s.running = true
	s.count = 0
	s.windowStart = s.now()
	s.handle = s.host.RequestFrame(s.tick)
}

// Stop cancels the pending frame. A frame already in progress completes.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.host.CancelFrame(s.handle)
	s.handle = 0
}

func (s *Scheduler) Running() bool { return s.running }

// Rate returns the latest measured frames per second, 0 before the first
// measurement.
func (s *Scheduler) Rate() float64 { return s.rate }

func (s *Scheduler) tick() {
	if !s.running {
		return
	}
	s.handle = s.host.RequestFrame(s.tick)

	s.count++
	if s.render != nil {
		s.render()
	}

	if s.count < rateWindow {
		return
	}
	now := s.now()
	elapsed := now - s.windowStart
	if elapsed > 0 {
		ms := float64(elapsed) / float64(time.Millisecond)
		s.rate = 1000 * float64(s.count) / ms
		if s.onRate != nil {
			s.onRate(s.rate)
		}
	}
	s.count = 0
	s.windowStart = now
}
