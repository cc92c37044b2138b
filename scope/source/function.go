package source

import (
	"fmt"
	"time"
)

// Func maps a phase in [0, 1] and a timestamp in milliseconds to a sample.
type Func func(phase, millis float64) (float64, error)

// Pure adapts a function that cannot fail.
func Pure(f func(phase, millis float64) float64) Func {
	return func(phase, millis float64) (float64, error) {
		return f(phase, millis), nil
	}
}

// Function is a generator source backed by a Func.
//
// Every Samples call evaluates the function across one window of phases at a
// single shared timestamp. Consecutive calls need not be continuous.
type Function struct {
	styled

	fn  Func
	now func() time.Duration
}

// NewFunction returns a generator for fn. If clock is nil, time is measured
// from the moment of construction.
func NewFunction(fn Func, clock func() time.Duration, opts ...StyleOption) *Function {
	if clock == nil {
		t0 := time.Now()
		clock = func() time.Duration { return time.Since(t0) }
	}
	return &Function{
		styled: styled{style: ApplyStyleOptions(opts...)},
		fn:     fn,
		now:    clock,
	}
}

// Samples evaluates n evenly spaced phases from 0 to 1. The first failing
// evaluation fails the whole window.
func (f *Function) Samples(n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSampleCount, n)
	}
	if f.fn == nil {
		return nil, fmt.Errorf("%w: no function", ErrEvaluation)
	}

	millis := float64(f.now()) / float64(time.Millisecond)
	scale := f.style.Scale

	out := make([]float64, n)
	for i := range out {
		phase := 0.0
		if n > 1 {
			phase = float64(i) / float64(n-1)
		}
		v, err := f.fn(phase, millis)
		if err != nil {
			return nil, fmt.Errorf("%w: phase %.4f: %w", ErrEvaluation, phase, err)
		}
		out[i] = v * scale
	}
	return out, nil
}
