// Package trace records what a compile run does, for diagnosing slow or
// stuck runs.
//
// Enable tracing via command-line flags:
//
//	tidal types --trace=- --trace-level=detail game.toml
//
// Every event has a scope. LevelPhase keeps ScopeDriver events (one span per
// compile run), LevelDetail adds ScopeSession (one span per module) and
// LevelDebug adds ScopeType (struct and array definitions). Module sessions
// run in parallel, so events are stamped with the module they belong to
// rather than with the goroutine that produced them:
//
//	ctx = trace.WithTracer(ctx, trace.ForModule(tracer, "game"))
//	ctx, span := trace.StartSpan(ctx, trace.ScopeSession, "session")
//	defer span.End("")
package trace
