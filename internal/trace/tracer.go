package trace

// Tracer receives events. Implementations must be safe for concurrent use.
type Tracer interface {
	Record(ev Event)
	Level() Level
	Close() error
}

func enabled(t Tracer, scope Scope) bool {
	return t != nil && t.Level().Allows(scope)
}

// Nop discards everything.
var Nop Tracer = nop{}

type nop struct{}

func (nop) Record(Event) {}
func (nop) Level() Level { return LevelOff }
func (nop) Close() error { return nil }

// Tee records every event in each of tracers. Its level is the finest of
// theirs; each member still filters by its own level.
func Tee(tracers ...Tracer) Tracer {
	t := tee{level: LevelOff}
	for _, tr := range tracers {
		if tr == nil || tr.Level() == LevelOff {
			continue
		}
		t.members = append(t.members, tr)
		t.level = max(t.level, tr.Level())
	}
	switch len(t.members) {
	case 0:
		return Nop
	case 1:
		return t.members[0]
	}
	return t
}

type tee struct {
	members []Tracer
	level   Level
}

func (t tee) Record(ev Event) {
	for _, m := range t.members {
		if m.Level().Allows(ev.Scope) {
			m.Record(ev)
		}
	}
}

func (t tee) Level() Level { return t.level }

func (t tee) Close() error {
	var first error
	for _, m := range t.members {
		if err := m.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// ForModule stamps every event recorded through it with module.
func ForModule(t Tracer, module string) Tracer {
	if t == nil || t.Level() == LevelOff {
		return Nop
	}
	return moduleTracer{Tracer: t, module: module}
}

type moduleTracer struct {
	Tracer
	module string
}

func (t moduleTracer) Record(ev Event) {
	if ev.Module == "" {
		ev.Module = t.module
	}
	t.Tracer.Record(ev)
}

// RingOf returns the ring buffer inside t, if there is one.
func RingOf(t Tracer) (*RingTracer, bool) {
	switch tt := t.(type) {
	case *RingTracer:
		return tt, true
	case moduleTracer:
		return RingOf(tt.Tracer)
	case tee:
		for _, m := range tt.members {
			if r, ok := RingOf(m); ok {
				return r, true
			}
		}
	}
	return nil, false
}
