package source

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Reader is the acquisition side of an Analyzer.
//
// Capacity must stay fixed for the reader's lifetime. Snapshot copies the
// newest Capacity() samples, oldest first, and may race with writers: any
// recent contents are acceptable.
type Reader interface {
	Capacity() int
	Snapshot(dst []float64)
}

// Analyzer exposes a window of a live signal buffer.
type Analyzer struct {
	styled

	r         Reader
	raw       []float64
	stabilize bool
}

// NewAnalyzer returns an analyzer over r. The window buffer is sized once
// from r.Capacity().
func NewAnalyzer(r Reader, opts ...StyleOption) *Analyzer {
	a := &Analyzer{
		styled: styled{style: ApplyStyleOptions(opts...)},
		r:      r,
	}
	if r != nil {
		a.raw = make([]float64, r.Capacity())
	}
	return a
}

// SetStabilize enables anchoring each window at the first positive-going
// zero crossing.
func (a *Analyzer) SetStabilize(on bool) { a.stabilize = on }

func (a *Analyzer) Stabilize() bool { return a.stabilize }

// Capacity returns the size of the underlying buffer.
func (a *Analyzer) Capacity() int { return len(a.raw) }

// Samples copies n samples of the current snapshot, starting at the oldest
// one or, when stabilizing, at the first rising zero crossing. n must not
// exceed Capacity.
func (a *Analyzer) Samples(n int) ([]float64, error) {
	capacity := len(a.raw)
	if n <= 0 || n > capacity {
		return nil, fmt.Errorf("%w: %d (capacity %d)", ErrSampleCount, n, capacity)
	}

	a.r.Snapshot(a.raw)

	offset := 0
	if a.stabilize {
		offset = FindAnchor(a.raw, capacity-n)
	}

	out := make([]float64, n)
	vecmath.ScaleBlock(out, a.raw[offset:offset+n], a.style.Scale)
	return out, nil
}
