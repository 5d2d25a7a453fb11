package feed

import (
	"sync"

	"github.com/okulov/casetrack/internal/model"
)

// Feed is the one-directional delivery channel between the tracker and
// its consumers. It is a growable ring buffer: when occupancy crosses 70%
// of capacity it doubles, so the tracker never blocks on a slow consumer.
type Feed struct {
	mu   sync.Mutex
	cond *sync.Cond

	buf      []model.Event
	head     int // read position
	tail     int // write position
	count    int
	capacity int
	closed   bool

	published int64
	delivered int64
	resizes   int
}

// Stats describes feed occupancy and throughput.
type Stats struct {
	Pending   int
	Capacity  int
	Published int64
	Delivered int64
	Resizes   int
}

// New creates a feed with the given initial capacity.
func New(initialCapacity int) *Feed {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	f := &Feed{
		buf:      make([]model.Event, initialCapacity),
		capacity: initialCapacity,
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Publish appends an event. Returns false if the feed is closed.
func (f *Feed) Publish(ev model.Event) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false
	}

	threshold := (f.capacity * 70) / 100
	if threshold < 1 {
		threshold = 1
	}
	if f.count+1 >= threshold {
		f.grow()
	}

	f.buf[f.tail] = ev
	f.tail = (f.tail + 1) % f.capacity
	f.count++
	f.published++

	f.cond.Signal()
	return true
}

// Next blocks until an event is available or the feed is closed and
// drained. The second return value is false only in the closed-and-empty
// case.
func (f *Feed) Next() (model.Event, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for f.count == 0 && !f.closed {
		f.cond.Wait()
	}

	if f.count == 0 {
		return model.Event{}, false
	}

	return f.take(), true
}

// TryNext returns an event without blocking, or false when none is
// pending.
func (f *Feed) TryNext() (model.Event, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.count == 0 {
		return model.Event{}, false
	}
	return f.take(), true
}

// Close marks the feed closed. Publish starts returning false; consumers
// drain the remaining events and then Next reports closed.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.cond.Broadcast()
}

// Len returns the number of pending events.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

// Snapshot returns current feed statistics.
func (f *Feed) Snapshot() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Stats{
		Pending:   f.count,
		Capacity:  f.capacity,
		Published: f.published,
		Delivered: f.delivered,
		Resizes:   f.resizes,
	}
}

// take removes the head event. Caller holds the lock and has checked
// count > 0.
func (f *Feed) take() model.Event {
	ev := f.buf[f.head]
	f.buf[f.head] = model.Event{}
	f.head = (f.head + 1) % f.capacity
	f.count--
	f.delivered++
	return ev
}

// grow doubles capacity, unrolling the ring into the new slice. Caller
// holds the lock.
func (f *Feed) grow() {
	next := make([]model.Event, f.capacity*2)

	if f.count > 0 {
		if f.head < f.tail {
			copy(next, f.buf[f.head:f.tail])
		} else {
			n := copy(next, f.buf[f.head:])
			copy(next[n:], f.buf[:f.tail])
		}
	}

	f.buf = next
	f.head = 0
	f.tail = f.count
	f.capacity *= 2
	f.resizes++
}
