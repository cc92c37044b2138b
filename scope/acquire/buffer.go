// Package acquire produces live sample streams for the analyzer sources.
package acquire

import "sync"

// DefaultCapacity is the buffer size used when none is given.
const DefaultCapacity = 2048

// Buffer is a fixed-size ring of the most recent samples. It is safe for one
// writer and any number of readers.
type Buffer struct {
	mu    sync.Mutex
	buf   []float64
	head  int
	count int
}

func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{buf: make([]float64, capacity)}
}

func (b *Buffer) Capacity() int { return len(b.buf) }

// Len reports how many samples have been written, up to Capacity.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Write appends p, dropping the oldest samples once the ring is full.
func (b *Buffer) Write(p []float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.buf)
	if len(p) > n {
		p = p[len(p)-n:]
	}
	for len(p) > 0 {
		c := copy(b.buf[b.head:], p)
		p = p[c:]
		b.head += c
		if b.head == n {
			b.head = 0
		}
		b.count += c
	}
	if b.count > n {
		b.count = n
	}
}

// Snapshot copies the newest Capacity samples into dst, oldest first. Slots
// not yet written read as zero. A shorter dst receives the newest len(dst)
// samples; slots of dst past Capacity are zeroed.
func (b *Buffer) Snapshot(dst []float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.buf)
	if len(dst) > n {
		clear(dst[n:])
		dst = dst[:n]
	}
	// b.head is the oldest slot of a full window; unwritten slots hold zero.
	skip := n - len(dst)
	start := b.head + skip
	if start >= n {
		start -= n
	}
	c := copy(dst, b.buf[start:])
	copy(dst[c:], b.buf[:len(dst)-c])
}
