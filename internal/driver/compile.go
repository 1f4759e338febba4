// Package driver runs type translation for every module of a declaration
// file, one session per module.
package driver

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"tidal/internal/backend/llvm"
	"tidal/internal/layout"
	"tidal/internal/manifest"
	"tidal/internal/trace"
	"tidal/internal/types"
	"tidal/internal/typetable"
)

// Options configures Compile.
type Options struct {
	// Jobs limits the number of sessions running at once; 0 means GOMAXPROCS.
	Jobs int
	// Progress receives per-module events; nil disables reporting.
	Progress ProgressSink
}

// Result holds the sessions of a compile run in declaration order.
type Result struct {
	Decls    *manifest.Decls
	Sessions []*Session
}

// Session returns the session of a module.
func (r *Result) Session(module string) (*Session, bool) {
	for _, s := range r.Sessions {
		if s.Module == module {
			return s, true
		}
	}
	return nil, false
}

// Compile translates every module of decls. Sessions run in parallel and
// share nothing but the read-only HIR. The first failing session cancels
// the others; its error is a *SessionError.
func Compile(ctx context.Context, decls *manifest.Decls, opts Options) (*Result, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "compile")
	defer span.End("")
	span.Attr("modules", strconv.Itoa(len(decls.Modules))).Attr("target", decls.Target.Triple)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	sink := opts.Progress
	if sink == nil {
		sink = nopSink{}
	}

	res := &Result{Decls: decls, Sessions: make([]*Session, len(decls.Modules))}
	if len(decls.Modules) == 0 {
		return res, nil
	}
	for _, mod := range decls.Modules {
		sink.OnEvent(Event{Module: mod.Name, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(decls.Modules)))
	for i, mod := range decls.Modules {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			s, err := runSession(gctx, decls, mod, sink)
			if err != nil {
				sink.OnEvent(Event{Module: mod.Name, Status: StatusError, Err: err, Elapsed: time.Since(started)})
				return &SessionError{Module: mod.Name, Err: err}
			}
			sink.OnEvent(Event{Module: mod.Name, Status: StatusDone, Elapsed: time.Since(started)})
			res.Sessions[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func runSession(ctx context.Context, decls *manifest.Decls, mod manifest.Module, sink ProgressSink) (s *Session, err error) {
	ctx = trace.WithModule(ctx, mod.Name)
	_, span := trace.StartSpan(ctx, trace.ScopeSession, "session")
	defer func() {
		detail := ""
		if err != nil {
			detail = err.Error()
		}
		span.Attr("structs", strconv.Itoa(len(mod.Structs))).Attr("fns", strconv.Itoa(len(mod.Fns))).End(detail)
	}()
	defer llvm.Recover(&err)

	cache := llvm.New(decls.Target, decls.Types, llvm.WithTracer(trace.FromContext(ctx)))
	le := layout.New(decls.Target)

	s = &Session{
		Module: mod.Name,
		Fns:    mod.Fns,
		Cache:  cache,
		Layout: le,
	}
	sink.OnEvent(Event{Module: mod.Name, Stage: StageSignatures, Status: StatusWorking})
	for _, fn := range mod.Fns {
		info, _ := decls.Types.FnInfo(fn)
		s.Signatures = append(s.Signatures, Signature{
			Fn:       fn,
			Name:     info.FullName(),
			Internal: cache.Signature(fn, layout.ViewInternal),
			Public:   cache.Signature(fn, layout.ViewPublic),
		})
	}
	sink.OnEvent(Event{Module: mod.Name, Stage: StageIdentities, Status: StatusWorking})
	s.IDs = identities(cache, decls.Types, mod.Structs)

	sink.OnEvent(Event{Module: mod.Name, Stage: StageTable, Status: StatusWorking})
	tbl, err := typetable.Build(mod.Name, cache, le, mod.Structs)
	if err != nil {
		return nil, err
	}
	s.Table = tbl
	return s, nil
}

// identities lists the identifiers of the module's structs followed by the
// array types their fields use, each once.
func identities(cache *llvm.TypeCache, in *types.Interner, structs []types.TypeID) []Identity {
	out := make([]Identity, 0, len(structs))
	for _, id := range structs {
		out = append(out, Identity{Type: id, Label: in.Label(id), ID: cache.TypeID(id)})
	}
	seen := make(map[types.TypeID]struct{})
	for _, id := range structs {
		for _, f := range in.StructFields(id) {
			tt, _ := in.Lookup(f.Type)
			if tt.Kind != types.KindArray {
				continue
			}
			if _, ok := seen[f.Type]; ok {
				continue
			}
			seen[f.Type] = struct{}{}
			out = append(out, Identity{Type: f.Type, Label: in.Label(f.Type), ID: cache.TypeID(f.Type)})
		}
	}
	return out
}
