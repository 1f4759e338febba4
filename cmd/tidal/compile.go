package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tidal/internal/driver"
	"tidal/internal/manifest"
	"tidal/internal/ui"
)

// loadDecls reads a declaration file, applying --target when given.
func loadDecls(cmd *cobra.Command, path string) (*manifest.Decls, error) {
	f, err := manifest.ReadFile(path)
	if err != nil {
		return nil, err
	}
	override, err := cmd.Root().PersistentFlags().GetString("target")
	if err != nil {
		return nil, err
	}
	if override != "" {
		f.Target.Triple = override
	}
	d, err := manifest.Resolve(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.Path = path
	return d, nil
}

// compileFile loads and compiles a declaration file with tracing and the
// progress UI configured from flags.
func compileFile(cmd *cobra.Command, path string) (*driver.Result, error) {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	d, err := loadDecls(cmd, path)
	if err != nil {
		return nil, err
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return nil, err
	}
	uiFlag, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return nil, err
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return nil, err
	}

	opts := driver.Options{Jobs: jobs}
	if shouldUseTUI(mode) {
		return runCompileWithUI(cmd.Context(), path, d, opts)
	}
	return driver.Compile(cmd.Context(), d, opts)
}

type compileOutcome struct {
	result *driver.Result
	err    error
}

func runCompileWithUI(ctx context.Context, title string, d *manifest.Decls, opts driver.Options) (*driver.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan compileOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Compile(ctx, d, opts)
		outcomeCh <- compileOutcome{result: res, err: err}
		close(events)
	}()

	modules := make([]string, 0, len(d.Modules))
	for _, m := range d.Modules {
		modules = append(modules, m.Name)
	}
	program := tea.NewProgram(ui.NewProgressModel(title, modules, events), tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// The UI may stop before the driver does (ctrl+c, terminal error), and
	// ChannelSink blocks once the buffer fills.
	cancel()
	drainEvents(events)
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

// drainEvents discards events until the producer closes the channel.
func drainEvents(events <-chan driver.Event) {
	for range events {
	}
}

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stderr)
	}
}
