package hal

import (
	"sync"
	"time"
)

// hostTime follows the wall clock, or in virtual mode only moves when
// advanced by the runner.
type hostTime struct {
	mu      sync.Mutex
	virtual bool
	start   time.Time
	now     time.Duration
}

func newHostTime(virtual bool) *hostTime {
	return &hostTime{virtual: virtual, start: time.Now()}
}

func (t *hostTime) Now() time.Duration {
	if !t.virtual {
		return time.Since(t.start)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now
}

func (t *hostTime) advance(d time.Duration) {
	if !t.virtual || d <= 0 {
		return
	}
	t.mu.Lock()
	t.now += d
	t.mu.Unlock()
}
