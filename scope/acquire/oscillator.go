package acquire

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
)

// Waveform is the periodic shape of an Oscillator.
type Waveform uint8

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("waveform(%d)", uint8(w))
	}
}

func ParseWaveform(s string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sine", "sin":
		return Sine, nil
	case "square", "sq":
		return Square, nil
	case "sawtooth", "saw":
		return Sawtooth, nil
	case "triangle", "tri":
		return Triangle, nil
	default:
		return Sine, fmt.Errorf("acquire: unknown waveform %q", s)
	}
}

// at returns the waveform value for a phase in [0, 1). Every shape starts at
// zero (or the rising edge) and rises.
func (w Waveform) at(phase float64) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		if phase < 0.5 {
			return 2 * phase
		}
		return 2*phase - 2
	case Triangle:
		switch {
		case phase < 0.25:
			return 4 * phase
		case phase < 0.75:
			return 2 - 4*phase
		default:
			return 4*phase - 4
		}
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

const (
	DefaultSampleRate = 48000
	DefaultFrequency  = 440

	pollInterval = 5 * time.Millisecond
)

// Oscillator generates a continuous periodic signal.
//
// Frequency, waveform and gain may be changed while Run is active.
type Oscillator struct {
	mu         sync.Mutex
	sampleRate float64
	freq       float64
	gain       float64
	wave       Waveform
	phase      float64
}

// OscillatorOption configures an Oscillator.
type OscillatorOption func(*Oscillator)

func WithSampleRate(hz float64) OscillatorOption {
	return func(o *Oscillator) {
		if hz > 0 {
			o.sampleRate = hz
		}
	}
}

func WithGain(g float64) OscillatorOption {
	return func(o *Oscillator) { o.gain = g }
}

func NewOscillator(wave Waveform, freq float64, opts ...OscillatorOption) *Oscillator {
	o := &Oscillator{
		sampleRate: DefaultSampleRate,
		freq:       DefaultFrequency,
		gain:       1,
		wave:       wave,
	}
	if freq > 0 {
		o.freq = freq
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *Oscillator) SampleRate() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sampleRate
}

func (o *Oscillator) Frequency() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.freq
}

// SetFrequency changes the frequency without a phase jump. Values not above
// zero are ignored.
func (o *Oscillator) SetFrequency(hz float64) {
	if hz <= 0 {
		return
	}
	o.mu.Lock()
	o.freq = hz
	o.mu.Unlock()
}

func (o *Oscillator) Waveform() Waveform {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.wave
}

func (o *Oscillator) SetWaveform(w Waveform) {
	o.mu.Lock()
	o.wave = w
	o.mu.Unlock()
}

// Generate fills dst with the next len(dst) samples.
func (o *Oscillator) Generate(dst []float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	step := o.freq / o.sampleRate
	for i := range dst {
		dst[i] = o.gain * o.wave.at(o.phase)
		o.phase += step
		o.phase -= math.Floor(o.phase)
	}
}

// Run writes the oscillator output into dst in real time as measured by
// clock until ctx is done. Each wake produces the samples due since the
// previous one, at most one buffer worth; a longer stall drops the backlog.
func (o *Oscillator) Run(ctx context.Context, clock func() time.Duration, dst *Buffer) {
	if dst == nil {
		return
	}
	if clock == nil {
		t0 := time.Now()
		clock = func() time.Duration { return time.Since(t0) }
	}

	scratch := make([]float64, dst.Capacity())
	start := clock()
	var produced int64

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		due := int64((clock() - start).Seconds() * o.SampleRate())
		n := due - produced
		if n <= 0 {
			continue
		}
		if n > int64(len(scratch)) {
			n = int64(len(scratch))
		}
		produced = due

		o.Generate(scratch[:n])
		dst.Write(scratch[:n])
	}
}
