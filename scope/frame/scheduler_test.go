package frame

import (
	"math"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Duration
}

func (c *fakeClock) now() time.Duration { return c.t }

func TestSchedulerStartStop(t *testing.T) {
	q := NewQueue()
	frames := 0
	s := New(q, func() { frames++ })

	if s.Running() {
		t.Fatal("expected idle scheduler")
	}
	s.Start()
	s.Start()
	if !s.Running() || q.Pending() != 1 {
		t.Fatalf("running=%v pending=%d, want true/1", s.Running(), q.Pending())
	}

	q.Step()
	q.Step()
	if frames != 2 {
		t.Fatalf("frames=%d, want 2", frames)
	}
	if q.Pending() != 1 {
		t.Fatalf("pending=%d, want 1", q.Pending())
	}

	s.Stop()
	s.Stop()
	if s.Running() || q.Pending() != 0 {
		t.Fatalf("running=%v pending=%d, want false/0", s.Running(), q.Pending())
	}
	q.Step()
	if frames != 2 {
		t.Fatalf("frames=%d after stop, want 2", frames)
	}

	s.Start()
	q.Step()
	if frames != 3 {
		t.Fatalf("frames=%d after restart, want 3", frames)
	}
}

func TestSchedulerStopDuringFrame(t *testing.T) {
	q := NewQueue()
	frames := 0
	var s *Scheduler
	s = New(q, func() {
		frames++
		s.Stop()
	})

	s.Start()
	q.Step()
	q.Step()
	if frames != 1 {
		t.Fatalf("frames=%d, want 1", frames)
	}
	if q.Pending() != 0 {
		t.Fatalf("pending=%d, want 0", q.Pending())
	}
}

func TestSchedulerRate(t *testing.T) {
	q := NewQueue()
	clk := &fakeClock{}
	var published []float64
	s := New(q, func() { clk.t += 20 * time.Millisecond },
		WithClock(clk.now),
		WithRateHandler(func(r float64) { published = append(published, r) }))

	s.Start()
	for i := 0; i < 9; i++ {
		q.Step()
	}
	if s.Rate() != 0 || len(published) != 0 {
		t.Fatalf("rate published before window: %v", published)
	}
	q.Step()
	if len(published) != 1 {
		t.Fatalf("published=%d, want 1", len(published))
	}
	// 10 frames in 200ms.
	if math.Abs(s.Rate()-50) > 1e-9 {
		t.Fatalf("rate=%v, want 50", s.Rate())
	}

	for i := 0; i < 10; i++ {
		clk.t += 5 * time.Millisecond
		q.Step()
	}
	// 10 frames in 10*25ms.
	if math.Abs(s.Rate()-40) > 1e-9 {
		t.Fatalf("rate=%v, want 40", s.Rate())
	}
}

func TestSchedulerRateZeroElapsed(t *testing.T) {
	q := NewQueue()
	clk := &fakeClock{}
	s := New(q, nil, WithClock(clk.now))
	s.Start()
	for i := 0; i < 10; i++ {
		q.Step()
	}
	if s.Rate() != 0 {
		t.Fatalf("rate=%v, want 0 without elapsed time", s.Rate())
	}
}

func TestQueueDefersNestedRequests(t *testing.T) {
	q := NewQueue()
	var order []string
	q.RequestFrame(func() {
		order = append(order, "a")
		q.RequestFrame(func() { order = append(order, "c") })
	})
	h := q.RequestFrame(func() { order = append(order, "b") })
	if h == 0 {
		t.Fatal("expected non-zero handle")
	}

	q.Step()
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order=%v, want [a b]", order)
	}
	q.Step()
	if len(order) != 3 || order[2] != "c" {
		t.Fatalf("order=%v, want [a b c]", order)
	}
}

func TestQueueCancelWithinStep(t *testing.T) {
	q := NewQueue()
	ran := false
	var second Handle
	q.RequestFrame(func() { q.CancelFrame(second) })
	second = q.RequestFrame(func() { ran = true })

	q.Step()
	if ran {
		t.Fatal("cancelled callback ran")
	}
}
