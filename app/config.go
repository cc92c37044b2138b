package app

import (
	"errors"
	"fmt"

	"oscope/scope/acquire"
	"oscope/scope/display"
)

const (
	ModeMath   = "math"
	ModeSignal = "signal"

	minSamplesPerPixel = 0.25
	maxSamplesPerPixel = 64.0

	channels        = 2
	defaultCapacity = 8192
)

// Default expressions for the math mode, one per trace.
var DefaultExprs = []string{
	"return math.sin(2 * math.pi * (x * 3 + t / 1000))",
	"return 0.5 * math.sin(2 * math.pi * (x * 7 - t / 500))",
}

// Config selects the initial state of the oscilloscope.
type Config struct {
	// Mode is the producing mode: ModeMath or ModeSignal.
	Mode            string
	MultiMode       display.MultiMode
	SamplesPerPixel float64
	Stabilize       bool

	// Exprs are the math mode function bodies.
	Exprs []string

	// Freqs and Waves configure the signal mode oscillators.
	Freqs [channels]float64
	Waves [channels]acquire.Waveform
	// Capacity is the analyzer buffer length in samples.
	Capacity int

	// LogRate logs every measured frame rate.
	LogRate bool
}

func (c Config) withDefaults() Config {
	if c.Mode == "" {
		c.Mode = ModeMath
	}
	if c.SamplesPerPixel == 0 {
		c.SamplesPerPixel = 1
	}
	if len(c.Exprs) == 0 {
		c.Exprs = append([]string(nil), DefaultExprs...)
	}
	defFreqs := [channels]float64{440, 660}
	for i := range c.Freqs {
		if c.Freqs[i] == 0 {
			c.Freqs[i] = defFreqs[i]
		}
	}
	if c.Capacity == 0 {
		c.Capacity = defaultCapacity
	}
	return c
}

var errConfig = errors.New("invalid config")

func (c Config) validate() error {
	switch c.Mode {
	case ModeMath, ModeSignal:
	default:
		return fmt.Errorf("%w: unknown mode %q", errConfig, c.Mode)
	}
	if c.MultiMode > display.ModeXY {
		return fmt.Errorf("%w: multi mode %d", errConfig, c.MultiMode)
	}
	if c.SamplesPerPixel < minSamplesPerPixel || c.SamplesPerPixel > maxSamplesPerPixel {
		return fmt.Errorf("%w: samples per pixel %g not in [%g, %g]", errConfig, c.SamplesPerPixel, minSamplesPerPixel, maxSamplesPerPixel)
	}
	for i, f := range c.Freqs {
		if f <= 0 || f >= acquire.DefaultSampleRate/2 {
			return fmt.Errorf("%w: frequency %d = %g Hz", errConfig, i+1, f)
		}
	}
	if c.Capacity < 2 {
		return fmt.Errorf("%w: capacity %d", errConfig, c.Capacity)
	}
	return nil
}
