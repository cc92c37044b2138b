package hal

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

func TestVirtualTimeAdvancesOnlyWhenStepped(t *testing.T) {
	ht := newHostTime(true)
	if ht.Now() != 0 {
		t.Fatalf("Now = %v, want 0", ht.Now())
	}
	ht.advance(16 * time.Millisecond)
	ht.advance(-time.Second)
	ht.advance(16 * time.Millisecond)
	if got := ht.Now(); got != 32*time.Millisecond {
		t.Fatalf("Now = %v, want 32ms", got)
	}

	wall := newHostTime(false)
	wall.advance(time.Hour)
	if wall.Now() >= time.Hour {
		t.Fatal("wall clock moved by advance")
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := newHostFramebuffer(4, 3)
	fb.ClearRGB(10, 20, 30)
	if got := fb.Image().RGBAAt(3, 2); got.R != 10 || got.G != 20 || got.B != 30 || got.A != 0xff {
		t.Fatalf("pixel = %+v", got)
	}

	old := fb.Image()
	fb.Resize(4, 3)
	if fb.Image() != old {
		t.Fatal("same-size resize reallocated")
	}

	fb.Resize(8, 2)
	if fb.Width() != 8 || fb.Height() != 2 {
		t.Fatalf("size = %dx%d, want 8x2", fb.Width(), fb.Height())
	}
	if got := fb.Image().RGBAAt(7, 1); got.A != 0 {
		t.Fatalf("resized pixel = %+v, want cleared", got)
	}
}

func TestFramebufferSnapshotFollowsPresent(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	dst := make([]byte, 2*2*4)

	if _, _, _, ok := fb.snapshot(dst, 0); ok {
		t.Fatal("snapshot before first present")
	}
	fb.ClearRGB(1, 2, 3)
	if err := fb.Present(); err != nil {
		t.Fatal(err)
	}
	seq, w, h, ok := fb.snapshot(dst, 0)
	if !ok || w != 2 || h != 2 || dst[0] != 1 || dst[3] != 0xff {
		t.Fatalf("snapshot = %v %dx%d %v", ok, w, h, dst[:4])
	}
	if _, _, _, ok := fb.snapshot(dst, seq); ok {
		t.Fatal("snapshot repeated an already copied frame")
	}
}

func TestDisplaySize(t *testing.T) {
	h := newHost(0, 0, true)
	w, ht := h.Display().Size()
	if w != DefaultWidth || ht != DefaultHeight {
		t.Fatalf("Size = %dx%d", w, ht)
	}
	h.disp.setSize(100, 50)
	h.disp.setSize(0, 10)
	if w, ht := h.Display().Size(); w != 100 || ht != 50 {
		t.Fatalf("Size = %dx%d, want 100x50", w, ht)
	}
}

func TestLoggerLines(t *testing.T) {
	var buf bytes.Buffer
	l := &hostLogger{w: &buf}
	l.WriteLineString("one")
	l.WriteLineBytes([]byte("two"))
	if got := buf.String(); got != "one\ntwo\n" {
		t.Fatalf("log = %q", got)
	}
}

func TestRunHeadlessTicks(t *testing.T) {
	var (
		steps int
		times []time.Duration
	)
	closed := 0
	err := RunHeadless(context.Background(), func(h HAL) App {
		if w, ht := h.Display().Size(); w != 32 || ht != 16 {
			t.Errorf("Size = %dx%d, want 32x16", w, ht)
		}
		return App{
			Step: func() error {
				steps++
				times = append(times, h.Time().Now())
				return nil
			},
			Close: func() { closed++ },
		}
	}, HeadlessConfig{Hz: 500, Ticks: 3, Width: 32, Height: 16})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 3 || closed != 1 {
		t.Fatalf("steps = %d closed = %d, want 3 and 1", steps, closed)
	}
	for i, got := range times {
		if want := time.Duration(i+1) * 2 * time.Millisecond; got != want {
			t.Fatalf("tick %d at %v, want %v", i, got, want)
		}
	}
}

func TestRunHeadlessStepError(t *testing.T) {
	boom := errors.New("boom")
	closed := false
	err := RunHeadless(context.Background(), func(HAL) App {
		return App{
			Step:  func() error { return boom },
			Close: func() { closed = true },
		}
	}, HeadlessConfig{Hz: 1000})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if !closed {
		t.Fatal("app not closed after step error")
	}
}

func TestRunHeadlessCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	closed := false
	err := RunHeadless(ctx, func(HAL) App {
		return App{Close: func() { closed = true }}
	}, HeadlessConfig{Hz: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if !closed {
		t.Fatal("app not closed after cancel")
	}
}
