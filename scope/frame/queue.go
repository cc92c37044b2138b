package frame

// Queue is a Host driven by explicit Step calls, one per display refresh.
//
// Callbacks requested while a step is running wait for the next step, so a
// callback that re-requests itself runs once per refresh.
type Queue struct {
	next    Handle
	pending []queued
	running []queued
}

type queued struct {
	h  Handle
	fn func()
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) RequestFrame(fn func()) Handle {
	q.next++
	if q.next == 0 {
		q.next++
	}
	q.pending = append(q.pending, queued{h: q.next, fn: fn})
	return q.next
}

func (q *Queue) CancelFrame(h Handle) {
	for i := range q.running {
		if q.running[i].h == h {
			q.running[i].fn = nil
			return
		}
	}
	for i, p := range q.pending {
		if p.h == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending reports how many callbacks wait for the next step.
func (q *Queue) Pending() int { return len(q.pending) }

// Step runs every callback requested before it was called.
func (q *Queue) Step() {
	q.running = q.pending
	q.pending = nil
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn()
	}
	q.running = nil
}
