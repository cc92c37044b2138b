package source

import (
	"errors"
	"testing"
)

type sliceReader struct {
	data  []float64
	snaps int
}

func (r *sliceReader) Capacity() int { return len(r.data) }

func (r *sliceReader) Snapshot(dst []float64) {
	r.snaps++
	copy(dst, r.data)
}

func TestAnalyzerWindow(t *testing.T) {
	r := &sliceReader{data: []float64{0.5, 0.25, -0.5, -0.25, 0.5, 1, -1, 0}}
	a := NewAnalyzer(r, WithScale(2))

	got, err := a.Samples(4)
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}
	want := []float64{1, 0.5, -1, -0.5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
	if r.snaps != 1 {
		t.Fatalf("snapshots = %d, want 1", r.snaps)
	}
}

func TestAnalyzerStabilizedWindow(t *testing.T) {
	r := &sliceReader{data: []float64{0.5, 0.25, -0.5, -0.25, 0.5, 1, -1, 0}}
	a := NewAnalyzer(r, WithScale(1))
	a.SetStabilize(true)
	if !a.Stabilize() {
		t.Fatal("expected stabilize on")
	}

	// Searchable window is [0, 8-3) = [0, 5); the crossing sits at index 4.
	got, err := a.Samples(3)
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}
	want := []float64{0.5, 1, -1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}

	// With no room to search the window starts at 0.
	got, err = a.Samples(8)
	if err != nil {
		t.Fatalf("Samples(8): %v", err)
	}
	if got[0] != 0.5 {
		t.Fatalf("full window first = %v, want 0.5", got[0])
	}
}

func TestAnalyzerLimits(t *testing.T) {
	r := &sliceReader{data: make([]float64, 16)}
	a := NewAnalyzer(r)
	if a.Capacity() != 16 {
		t.Fatalf("capacity = %d, want 16", a.Capacity())
	}
	if _, err := a.Samples(17); !errors.Is(err, ErrSampleCount) {
		t.Fatalf("Samples(17) err=%v, want ErrSampleCount", err)
	}
	if _, err := a.Samples(0); !errors.Is(err, ErrSampleCount) {
		t.Fatalf("Samples(0) err=%v, want ErrSampleCount", err)
	}
	if r.snaps != 0 {
		t.Fatalf("rejected requests must not snapshot, got %d", r.snaps)
	}

	if _, err := NewAnalyzer(nil).Samples(1); !errors.Is(err, ErrSampleCount) {
		t.Fatalf("nil reader err=%v, want ErrSampleCount", err)
	}
}
