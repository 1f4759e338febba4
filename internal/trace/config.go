package trace

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

const defaultRingSize = 4096

// Mode selects where events go.
type Mode uint8

const (
	ModeStream Mode = iota + 1 // written as they happen
	ModeRing                   // kept in memory, dumped on exit
	ModeBoth
)

func (m Mode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseMode parses a --trace-mode value.
func ParseMode(s string) (Mode, error) {
	for m := ModeStream; m <= ModeBoth; m++ {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config describes a tracer built by New.
type Config struct {
	Level Level
	Mode  Mode // zero means ModeStream
	// Format of streamed events; FormatAuto picks ndjson for .ndjson and
	// .json paths and text otherwise.
	Format Format
	// OutputPath of streamed events; empty or "-" is stderr.
	OutputPath string
	RingSize   int
}

// New builds the tracer described by cfg.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.Mode == 0 {
		cfg.Mode = ModeStream
	}
	var stream, ring Tracer
	if cfg.Mode == ModeStream || cfg.Mode == ModeBoth {
		s, err := openStream(cfg)
		if err != nil {
			return nil, err
		}
		stream = s
	}
	if cfg.Mode == ModeRing || cfg.Mode == ModeBoth {
		ring = NewRing(cfg.RingSize, cfg.Level)
	}
	return Tee(stream, ring), nil
}

func openStream(cfg Config) (*StreamTracer, error) {
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".json") {
			format = FormatNDJSON
		}
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return NewStream(stderr{}, cfg.Level, format), nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return NewStream(f, cfg.Level, format), nil
}

// stderr hides os.Stderr's Close from NewStream.
type stderr struct{}

func (stderr) Write(p []byte) (int, error) { return os.Stderr.Write(p) }

// StartHeartbeat records a heartbeat every interval until the returned stop
// function is called or ctx is done. Heartbeats show that a run is still
// alive between coarse events. A non-positive interval does nothing.
func StartHeartbeat(ctx context.Context, t Tracer, interval time.Duration) (stop func()) {
	if interval <= 0 || !enabled(t, ScopeDriver) {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for beat := 1; ; beat++ {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ev := newEvent(KindHeartbeat, ScopeDriver, "heartbeat")
				ev.Attrs = []Attr{
					{Key: "beat", Value: strconv.Itoa(beat)},
					{Key: "goroutines", Value: strconv.Itoa(runtime.NumGoroutine())},
				}
				t.Record(ev)
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
