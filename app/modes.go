package app

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"
	"time"

	"oscope/scope/acquire"
	"oscope/scope/display"
	"oscope/scope/expr"
	"oscope/scope/source"

	"github.com/cwbudde/algo-vecmath"
)

// mode produces the engine's sources.
type mode interface {
	name() string
	start(e *display.Engine) error
	// stop releases the mode's resources and clears the engine.
	stop(e *display.Engine)
	status() string
}

var traceColors = []color.RGBA{
	{R: 0x80, G: 0xff, B: 0xff, A: 0xff},
	{R: 0xff, G: 0xd0, B: 0x60, A: 0xff},
}

func traceColor(i int) source.StyleOption {
	return source.WithColor(traceColors[i%len(traceColors)])
}

// mathMode draws one function generator per expression.
type mathMode struct {
	clock func() time.Duration

	exprs    []string
	programs []*expr.Program
}

func newMathMode(exprs []string, clock func() time.Duration) *mathMode {
	return &mathMode{exprs: append([]string(nil), exprs...), clock: clock}
}

func (m *mathMode) name() string { return ModeMath }

func (m *mathMode) start(e *display.Engine) error {
	return m.connect(e)
}

func (m *mathMode) stop(e *display.Engine) {
	e.Clear()
	m.release()
}

// setExprs replaces the expressions. On a compile error the engine keeps
// drawing the previous ones.
func (m *mathMode) setExprs(e *display.Engine, exprs []string) error {
	prev := m.exprs
	m.exprs = append([]string(nil), exprs...)
	if err := m.connect(e); err != nil {
		m.exprs = prev
		return err
	}
	return nil
}

func (m *mathMode) connect(e *display.Engine) error {
	programs := make([]*expr.Program, 0, len(m.exprs))
	for i, body := range m.exprs {
		p, err := expr.Compile(body)
		if err != nil {
			for _, p := range programs {
				p.Close()
			}
			return fmt.Errorf("expression %d: %w", i+1, err)
		}
		programs = append(programs, p)
	}

	e.Clear()
	m.release()
	m.programs = programs
	for i, p := range programs {
		e.Add(source.NewFunction(p.Func(), m.clock, traceColor(i)))
	}
	return nil
}

func (m *mathMode) release() {
	for _, p := range m.programs {
		p.Close()
	}
	m.programs = nil
}

func (m *mathMode) status() string {
	return fmt.Sprintf("%d fn", len(m.programs))
}

// signalMode draws two oscillators through live analyzers.
type signalMode struct {
	clock     func() time.Duration
	freqs     [channels]float64
	waves     [channels]acquire.Waveform
	capacity  int
	stabilize bool

	oscs      []*acquire.Oscillator
	bufs      []*acquire.Buffer
	analyzers []*source.Analyzer
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	scratch   []float64
}

func newSignalMode(cfg Config, clock func() time.Duration) *signalMode {
	return &signalMode{
		clock:     clock,
		freqs:     cfg.Freqs,
		waves:     cfg.Waves,
		capacity:  cfg.Capacity,
		stabilize: cfg.Stabilize,
	}
}

func (m *signalMode) name() string { return ModeSignal }

func (m *signalMode) start(e *display.Engine) error {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	for i := 0; i < channels; i++ {
		osc := acquire.NewOscillator(m.waves[i], m.freqs[i])
		buf := acquire.NewBuffer(m.capacity)
		an := source.NewAnalyzer(buf, source.WithScale(0.7), traceColor(i))
		an.SetStabilize(m.stabilize)

		m.oscs = append(m.oscs, osc)
		m.bufs = append(m.bufs, buf)
		m.analyzers = append(m.analyzers, an)
		e.Add(an)

		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			osc.Run(ctx, m.clock, buf)
		}()
	}
	return nil
}

func (m *signalMode) stop(e *display.Engine) {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.wg.Wait()
	for i, osc := range m.oscs {
		m.freqs[i] = osc.Frequency()
	}
	m.oscs, m.bufs, m.analyzers = nil, nil, nil
	e.Clear()
}

func (m *signalMode) setStabilize(on bool) {
	m.stabilize = on
	for _, an := range m.analyzers {
		an.SetStabilize(on)
	}
}

// shiftFrequency moves the first oscillator by semitones.
func (m *signalMode) shiftFrequency(semitones float64) float64 {
	f := m.freqs[0] * math.Pow(2, semitones/12)
	if f <= 0 || f >= acquire.DefaultSampleRate/2 {
		return m.freqs[0]
	}
	m.freqs[0] = f
	if len(m.oscs) > 0 {
		m.oscs[0].SetFrequency(f)
	}
	return f
}

func (m *signalMode) status() string {
	var b strings.Builder
	for i, buf := range m.bufs {
		if cap(m.scratch) < buf.Capacity() {
			m.scratch = make([]float64, buf.Capacity())
		}
		s := m.scratch[:buf.Capacity()]
		buf.Snapshot(s)
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "ch%d %s %.0fHz pk %.2f", i+1, m.oscs[i].Waveform(), m.oscs[i].Frequency(), vecmath.MaxAbs(s))
	}
	return b.String()
}
