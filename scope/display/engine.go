// Package display turns sample sources into stroked traces on a raster
// surface, one frame at a time.
package display

import (
	"errors"
	"fmt"
	"math"

	"oscope/scope/source"
)

// ErrSampleLength reports a source that returned the wrong number of samples.
var ErrSampleLength = errors.New("display: sample length mismatch")

// Canvas is the raster surface an Engine draws on.
//
// Resize reallocates the backing raster, which also clears it.
type Canvas interface {
	Size() (w, h int)
	Resize(w, h int)
	Clear()
	Stroke(path []Point, style source.Style)
}

// Engine renders the active sources once per call to RenderFrame.
//
// Engine is not safe for concurrent use; Add and Clear must not be called
// from inside a frame.
type Engine struct {
	// OnSourceError, if set, is called for every source skipped in a frame.
	OnSourceError func(index int, err error)

	canvas  Canvas
	opts    Options
	sources []source.Source
}

func New(canvas Canvas, opts ...Option) *Engine {
	e := &Engine{
		canvas: canvas,
		opts:   DefaultOptions(),
	}
	e.opts.apply(opts)
	return e
}

// Add appends s; it is drawn after every source added before it.
func (e *Engine) Add(s source.Source) {
	if s == nil {
		return
	}
	e.sources = append(e.sources, s)
}

// Clear drops every active source.
func (e *Engine) Clear() {
	e.sources = nil
}

func (e *Engine) Sources() int { return len(e.sources) }

// Configure merges opts into the current options.
func (e *Engine) Configure(opts ...Option) {
	e.opts.apply(opts)
}

func (e *Engine) Options() Options { return e.opts }

// SampleCount returns the per-source resolution for a width×height surface.
func (e *Engine) SampleCount(width, height int) int {
	if width <= 0 || height <= 0 || e.opts.SamplesPerPixel <= 0 {
		return 0
	}
	longest := width
	if height > longest {
		longest = height
	}
	return int(math.Floor(float64(longest) / e.opts.SamplesPerPixel))
}

// RenderFrame draws one frame for a surface of the given logical size.
//
// Frames with fewer than two samples per source are skipped and leave the
// canvas untouched.
func (e *Engine) RenderFrame(width, height int) {
	if e.canvas == nil {
		return
	}
	count := e.SampleCount(width, height)
	if count < 2 {
		return
	}

	if w, h := e.canvas.Size(); w != width || h != height {
		e.canvas.Resize(width, height)
	} else {
		e.canvas.Clear()
	}

	series := e.fetch(count)
	traces := Layout(series, len(e.sources), e.opts.MultiMode, float64(width), float64(height))
	for _, tr := range traces {
		e.canvas.Stroke(tr.Points, e.sources[tr.Source].Style())
	}
}

func (e *Engine) fetch(count int) []Series {
	out := make([]Series, 0, len(e.sources))
	for i, s := range e.sources {
		values, err := sample(s, count)
		if err == nil && len(values) != count {
			err = fmt.Errorf("%w: got %d, want %d", ErrSampleLength, len(values), count)
		}
		if err == nil {
			err = checkFinite(values)
		}
		if err != nil {
			if e.OnSourceError != nil {
				e.OnSourceError(i, err)
			}
			continue
		}
		out = append(out, Series{Source: i, Values: values})
	}
	return out
}

// checkFinite rejects a series holding NaN or an infinity; such a trace has
// no drawable path.
func checkFinite(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample %d is %v", source.ErrEvaluation, i, v)
		}
	}
	return nil
}

func sample(s source.Source, n int) (values []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			values = nil
			err = fmt.Errorf("%w: panic: %v", source.ErrEvaluation, r)
		}
	}()
	return s.Samples(n)
}
