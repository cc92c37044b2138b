// Package source provides the sample sources an oscilloscope display draws
// from: deterministic function generators and analyzers over live signal
// buffers.
package source

import (
	"errors"
	"image/color"
)

var (
	// ErrSampleCount reports a sample request the source cannot serve.
	ErrSampleCount = errors.New("source: invalid sample count")

	// ErrEvaluation reports a generator function that failed to produce a value.
	ErrEvaluation = errors.New("source: evaluation failed")
)

// Source produces a fixed number of samples per request.
//
// Values are nominally in [-1, 1] after Style.Scale has been applied.
type Source interface {
	Samples(n int) ([]float64, error)
	Style() Style
}

// Style describes how a source's trace is stroked.
type Style struct {
	Color       color.RGBA
	Glow        bool
	StrokeWidth float64
	Scale       float64
}

// StyleOption updates one field of a Style.
type StyleOption func(*Style)

// DefaultStyle returns the style shared by all source kinds.
func DefaultStyle() Style {
	return Style{
		Color:       color.RGBA{R: 0x80, G: 0xff, B: 0xff, A: 0xff},
		Glow:        true,
		StrokeWidth: 4,
		Scale:       0.9,
	}
}

// WithColor sets the stroke color.
func WithColor(c color.RGBA) StyleOption {
	return func(s *Style) { s.Color = c }
}

// WithGlow toggles the translucent underlay drawn beneath the stroke.
func WithGlow(on bool) StyleOption {
	return func(s *Style) { s.Glow = on }
}

// WithStrokeWidth sets the line width in pixels. Non-positive widths are ignored.
func WithStrokeWidth(w float64) StyleOption {
	return func(s *Style) {
		if w > 0 {
			s.StrokeWidth = w
		}
	}
}

// WithScale sets the amplitude multiplier applied to every sample.
func WithScale(scale float64) StyleOption {
	return func(s *Style) { s.Scale = scale }
}

// ApplyStyleOptions applies opts on top of DefaultStyle.
func ApplyStyleOptions(opts ...StyleOption) Style {
	s := DefaultStyle()
	s.apply(opts)
	return s
}

func (s *Style) apply(opts []StyleOption) {
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
}

type styled struct {
	style Style
}

// Style returns the current trace style.
func (b *styled) Style() Style { return b.style }

// Configure merges opts into the current style; fields not named keep their value.
func (b *styled) Configure(opts ...StyleOption) {
	b.style.apply(opts)
}
