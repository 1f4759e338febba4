package trace

import (
	"bufio"
	"io"
	"sync"
)

// StreamTracer writes every event as it arrives.
type StreamTracer struct {
	mu     sync.Mutex
	level  Level
	format Format
	w      *bufio.Writer
	closer io.Closer
}

// NewStream creates a StreamTracer writing to w. When w is also an
// io.Closer, Close closes it.
func NewStream(w io.Writer, level Level, format Format) *StreamTracer {
	t := &StreamTracer{level: level, format: format, w: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		t.closer = c
	}
	return t
}

func (t *StreamTracer) Record(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = t.w.Write(encode(ev, t.format))
	// driver and session events are flushed immediately
	if ev.Scope <= ScopeSession {
		_ = t.w.Flush()
	}
}

func (t *StreamTracer) Level() Level { return t.level }

func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.w.Flush()
	if t.closer != nil {
		if cerr := t.closer.Close(); err == nil {
			err = cerr
		}
		t.closer = nil
	}
	return err
}
