package trace

import (
	"sync/atomic"
	"time"
)

// Kind is the type of an event.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers a whole compile run.
	ScopeDriver Scope = iota + 1
	// ScopeSession covers the translation of one module.
	ScopeSession
	// ScopeType covers single aggregates and signatures.
	ScopeType
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopeSession:
		return "session"
	case ScopeType:
		return "type"
	default:
		return "unknown"
	}
}

// Attr is one key-value annotation. Attributes keep the order they were added.
type Attr struct {
	Key   string
	Value string
}

// Event is a single trace record.
type Event struct {
	Time    time.Time
	Seq     uint64 // process-wide, increasing
	Kind    Kind
	Scope   Scope
	Span    uint64 // zero for points and heartbeats
	Parent  uint64
	Module  string // empty outside module sessions
	Name    string
	Detail  string
	Elapsed time.Duration // KindEnd only
	Attrs   []Attr
}

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func newEvent(kind Kind, scope Scope, name string) Event {
	return Event{Time: time.Now(), Seq: seqCounter.Add(1), Kind: kind, Scope: scope, Name: name}
}

// Point records an instant event.
func Point(t Tracer, scope Scope, name, detail string) {
	if !enabled(t, scope) {
		return
	}
	ev := newEvent(KindPoint, scope, name)
	ev.Detail = detail
	t.Record(ev)
}
