package app

import (
	"strings"
	"testing"
)

func TestGuardRecoversPanic(t *testing.T) {
	h := newFakeHAL(80, 40)
	h.fb.Resize(80, 40)

	step := guard(h, func() error { panic("layout broke") })
	err := step()
	if err == nil || !strings.Contains(err.Error(), "layout broke") {
		t.Fatalf("err = %v", err)
	}
	if h.log.count("oscope panic:") != 1 || h.log.count("panic: layout broke") != 1 {
		t.Fatalf("log = %v", h.log.lines)
	}
	if h.fb.presented != 1 {
		t.Fatalf("presented = %d, want 1", h.fb.presented)
	}
	if got := h.fb.img.RGBAAt(79, 39); got.R != 255 || got.G != 255 || got.B != 255 {
		t.Fatalf("background = %+v, want white", got)
	}
}

func TestGuardPassesThrough(t *testing.T) {
	h := newFakeHAL(10, 10)
	calls := 0
	step := guard(h, func() error { calls++; return nil })
	if err := step(); err != nil || calls != 1 {
		t.Fatalf("err = %v calls = %d", err, calls)
	}
	if len(h.log.lines) != 0 {
		t.Fatalf("unexpected log %v", h.log.lines)
	}
}

func TestTakeRunes(t *testing.T) {
	tests := []struct {
		s          string
		n          int16
		head, tail string
	}{
		{"abcdef", 4, "abcd", "ef"},
		{"abc", 4, "abc", ""},
		{"ёжик", 2, "ёж", "ик"},
		{"abc", 0, "", "abc"},
	}
	for _, tt := range tests {
		head, tail := takeRunes(tt.s, tt.n)
		if head != tt.head || tail != tt.tail {
			t.Fatalf("takeRunes(%q, %d) = %q, %q", tt.s, tt.n, head, tail)
		}
	}
}
