package core

import "errors"

var (
	// ErrOutOfOrder is returned when a segment would be enqueued behind the tail.
	ErrOutOfOrder = errors.New("core: segment enqueued out of scroll order")

	// ErrQueueFull is returned when the queue already holds its capacity.
	ErrQueueFull = errors.New("core: active queue full")
)

// ActiveQueue holds active segments in spawn order.
// The head is always the most upstream (leftmost) segment, so despawning
// from the head keeps the queue and the world in agreement.
// Backed by a fixed ring buffer sized to the pool; it never allocates after
// construction.
type ActiveQueue struct {
	buf   []*Segment
	head  int
	count int
}

// NewActiveQueue creates a queue able to hold capacity segments.
func NewActiveQueue(capacity int) *ActiveQueue {
	return &ActiveQueue{buf: make([]*Segment, capacity)}
}

// Len returns the number of queued segments.
func (q *ActiveQueue) Len() int { return q.count }

// Cap returns the queue capacity.
func (q *ActiveQueue) Cap() int { return len(q.buf) }

// Enqueue appends s at the tail. Segments must arrive in increasing x;
// a segment that is not strictly right of the tail is rejected.
func (q *ActiveQueue) Enqueue(s *Segment) error {
	if q.count == len(q.buf) {
		return ErrQueueFull
	}
	if tail := q.Tail(); tail != nil && s.Position().X <= tail.Position().X {
		return ErrOutOfOrder
	}
	q.buf[(q.head+q.count)%len(q.buf)] = s
	q.count++
	return nil
}

// Dequeue removes and returns the head, or nil when empty.
func (q *ActiveQueue) Dequeue() *Segment {
	if q.count == 0 {
		return nil
	}
	s := q.buf[q.head]
	q.buf[q.head] = nil
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return s
}

// Head returns the most upstream segment without removing it.
func (q *ActiveQueue) Head() *Segment {
	if q.count == 0 {
		return nil
	}
	return q.buf[q.head]
}

// Tail returns the most recently spawned segment.
func (q *ActiveQueue) Tail() *Segment {
	if q.count == 0 {
		return nil
	}
	return q.buf[(q.head+q.count-1)%len(q.buf)]
}

// Index returns the i-th segment from the head.
func (q *ActiveQueue) Index(i int) *Segment {
	if i < 0 || i >= q.count {
		return nil
	}
	return q.buf[(q.head+i)%len(q.buf)]
}

// IndexOf returns the queue position of s, or -1.
func (q *ActiveQueue) IndexOf(s *Segment) int {
	for i := 0; i < q.count; i++ {
		if q.Index(i) == s {
			return i
		}
	}
	return -1
}

// Next returns the segment spawned right after s.
// Returns false when s is the tail or is not queued.
func (q *ActiveQueue) Next(s *Segment) (*Segment, bool) {
	i := q.IndexOf(s)
	if i < 0 || i+1 >= q.count {
		return nil, false
	}
	return q.Index(i + 1), true
}

// At returns the segment whose horizontal extent contains x.
func (q *ActiveQueue) At(x float64) (*Segment, bool) {
	for i := 0; i < q.count; i++ {
		s := q.Index(i)
		if x >= s.Left() && x <= s.Right() {
			return s, true
		}
		if s.Left() > x {
			break
		}
	}
	return nil, false
}

// ForEach calls fn for each queued segment from head to tail.
func (q *ActiveQueue) ForEach(fn func(*Segment)) {
	for i := 0; i < q.count; i++ {
		fn(q.Index(i))
	}
}

// Clear drops every queued segment.
func (q *ActiveQueue) Clear() {
	for i := range q.buf {
		q.buf[i] = nil
	}
	q.head = 0
	q.count = 0
}
