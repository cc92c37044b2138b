package display

import "fmt"

// MultiMode selects how two or more traces share the surface.
type MultiMode uint8

const (
	// ModeOverlay draws every trace full height, later traces on top.
	ModeOverlay MultiMode = iota
	// ModeScale stacks traces in equal horizontal bands.
	ModeScale
	// ModeXY plots the first trace against the second.
	ModeXY
)

func (m MultiMode) String() string {
	switch m {
	case ModeOverlay:
		return "overlay"
	case ModeScale:
		return "scale"
	case ModeXY:
		return "xy"
	default:
		return fmt.Sprintf("MultiMode(%d)", uint8(m))
	}
}

// ParseMultiMode accepts "overlay", "scale" or "xy".
func ParseMultiMode(s string) (MultiMode, error) {
	switch s {
	case "overlay":
		return ModeOverlay, nil
	case "scale":
		return ModeScale, nil
	case "xy":
		return ModeXY, nil
	}
	return ModeOverlay, fmt.Errorf("display: unknown multi mode %q", s)
}

// Options controls resolution and multi-trace layout.
type Options struct {
	SamplesPerPixel float64
	MultiMode       MultiMode
}

// Option updates one field of Options.
type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		SamplesPerPixel: 1,
		MultiMode:       ModeOverlay,
	}
}

// WithSamplesPerPixel sets the divisor applied to the longer surface side to
// get the per-frame sample count. Non-positive values are ignored.
func WithSamplesPerPixel(v float64) Option {
	return func(o *Options) {
		if v > 0 {
			o.SamplesPerPixel = v
		}
	}
}

func WithMultiMode(m MultiMode) Option {
	return func(o *Options) {
		if m <= ModeXY {
			o.MultiMode = m
		}
	}
}

func (o *Options) apply(opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
}
