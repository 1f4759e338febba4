package trace

import (
	"context"
	"time"
)

// Span is an operation with a beginning and an end. A span created while
// its scope is filtered out is inert; every method on it is a no-op.
type Span struct {
	t      Tracer
	id     uint64
	parent uint64
	scope  Scope
	name   string
	start  time.Time
	attrs  []Attr
}

// Attr annotates the end event of the span.
func (s *Span) Attr(key, value string) *Span {
	if s == nil || s.id == 0 {
		return s
	}
	s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	return s
}

// End records the end of the span and returns how long it took.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.id == 0 {
		return 0
	}
	ev := newEvent(KindEnd, s.scope, s.name)
	ev.Span, ev.Parent = s.id, s.parent
	ev.Detail = detail
	ev.Elapsed = ev.Time.Sub(s.start)
	ev.Attrs = s.attrs
	s.t.Record(ev)
	return ev.Elapsed
}

// ID returns the span id, zero for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

type ctxKey struct{}

type ctxValue struct {
	tracer Tracer
	span   uint64
}

func fromContext(ctx context.Context) ctxValue {
	if ctx != nil {
		if v, ok := ctx.Value(ctxKey{}).(ctxValue); ok {
			return v
		}
	}
	return ctxValue{tracer: Nop}
}

// WithTracer attaches t to ctx. Spans started from the result are roots.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, ctxValue{tracer: t})
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return fromContext(ctx).tracer
}

// StartSpan records the beginning of a span under the span carried by ctx
// and returns a context carrying the new one.
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	v := fromContext(ctx)
	if !enabled(v.tracer, scope) {
		return ctx, &Span{}
	}
	ev := newEvent(KindBegin, scope, name)
	ev.Span, ev.Parent = spanCounter.Add(1), v.span
	v.tracer.Record(ev)

	s := &Span{t: v.tracer, id: ev.Span, parent: v.span, scope: scope, name: name, start: ev.Time}
	return context.WithValue(ctx, ctxKey{}, ctxValue{tracer: v.tracer, span: s.id}), s
}

// WithModule stamps events recorded through ctx with module. The current
// span stays the parent of spans started from the result.
func WithModule(ctx context.Context, module string) context.Context {
	v := fromContext(ctx)
	v.tracer = ForModule(v.tracer, module)
	return context.WithValue(ctx, ctxKey{}, v)
}
