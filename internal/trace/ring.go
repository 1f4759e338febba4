package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory. It is meant to be
// dumped when a run fails or hangs.
type RingTracer struct {
	mu     sync.Mutex
	level  Level
	events []Event
	next   int
	full   bool
}

// NewRing creates a ring holding up to capacity events.
func NewRing(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{level: level, events: make([]Event, capacity)}
}

func (r *RingTracer) Record(ev Event) {
	r.mu.Lock()
	r.events[r.next] = ev
	r.next++
	if r.next == len(r.events) {
		r.next = 0
		r.full = true
	}
	r.mu.Unlock()
}

// Snapshot returns the buffered events, oldest first.
func (r *RingTracer) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		return append([]Event(nil), r.events[:r.next]...)
	}
	out := make([]Event, 0, len(r.events))
	out = append(out, r.events[r.next:]...)
	return append(out, r.events[:r.next]...)
}

// Dump writes the buffered events to w.
func (r *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range r.Snapshot() {
		if _, err := w.Write(encode(ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (r *RingTracer) Level() Level { return r.level }

func (r *RingTracer) Close() error { return nil }
