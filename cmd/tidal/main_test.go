package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tidal/internal/driver"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--color", "off"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestTypesPrintsBothModules(t *testing.T) {
	out, err := runCLI(t, "types", "testdata/game.toml")
	require.NoError(t, err)
	require.Contains(t, out, "; module game (internal view)")
	require.Contains(t, out, "; module ui (internal view)")
	require.Contains(t, out, "game::Node")
	require.Contains(t, out, "declare")
}

func TestTypesRejectsUnknownView(t *testing.T) {
	_, err := runCLI(t, "types", "--view", "external", "testdata/game.toml")
	require.ErrorContains(t, err, "invalid --view")
}

func TestTypesUnknownModule(t *testing.T) {
	_, err := runCLI(t, "types", "--module", "net", "testdata/game.toml")
	require.ErrorContains(t, err, `module "net" is not declared`)
}

func TestIDsStatic(t *testing.T) {
	out, err := runCLI(t, "ids", "--static", "--hex")
	require.NoError(t, err)
	require.Contains(t, out, "static identifiers")
	require.Contains(t, out, "bool")
}

func TestIDsRequiresFile(t *testing.T) {
	_, err := runCLI(t, "ids")
	require.Error(t, err)
}

func TestTableWriteAndDiffSelf(t *testing.T) {
	dir := t.TempDir()
	out, err := runCLI(t, "table", "-o", dir, "testdata/game.toml")
	require.NoError(t, err)
	require.Contains(t, out, "wrote")

	game := filepath.Join(dir, "game.tt")
	out, err = runCLI(t, "diff", game, game)
	require.NoError(t, err)
	require.Contains(t, out, "compatible")
	require.NotContains(t, out, "incompatible")
}

func TestDiffAcrossModulesIsIncompatible(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "table", "-o", dir, "testdata/game.toml")
	require.NoError(t, err)

	out, err := runCLI(t, "diff", filepath.Join(dir, "game.tt"), filepath.Join(dir, "ui.tt"))
	require.ErrorIs(t, err, errIncompatible)
	require.Contains(t, out, "incompatible")
}

func TestTablePrint(t *testing.T) {
	out, err := runCLI(t, "table", "--module", "game", "testdata/game.toml")
	require.NoError(t, err)
	require.Contains(t, out, "module game (x86_64-linux-gnu)")
	require.Contains(t, out, "game::Vec2")
	require.Contains(t, out, "[value]")
}

func TestIntrinsicsForTarget(t *testing.T) {
	out, err := runCLI(t, "--target", "i686-linux-gnu", "intrinsics")
	require.NoError(t, err)
	require.Contains(t, out, "intrinsics for i686-linux-gnu")
	require.Contains(t, out, "u32")
}

func TestVersionJSON(t *testing.T) {
	out, err := runCLI(t, "version", "--format", "json", "--full")
	require.NoError(t, err)
	require.Contains(t, out, `"tool": "tidal"`)
	require.Contains(t, out, `"type_table": 1`)
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil {
			t.Fatalf("readUIMode(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("readUIMode(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected error for invalid mode")
	}
}

func TestTableFileName(t *testing.T) {
	if got := tableFileName("game::ui"); got != "game__ui.tt" {
		t.Fatalf("tableFileName = %q", got)
	}
	if got := tableFileName("net"); !strings.HasSuffix(got, tableExt) {
		t.Fatalf("tableFileName = %q", got)
	}
}

func TestDrainEventsUnblocksSink(t *testing.T) {
	events := make(chan driver.Event, 1)
	sent := make(chan struct{})
	go func() {
		sink := driver.ChannelSink{Ch: events}
		for range 8 {
			sink.OnEvent(driver.Event{Module: "game", Status: driver.StatusWorking})
		}
		close(events)
		close(sent)
	}()

	drainEvents(events)
	select {
	case <-sent:
	case <-time.After(5 * time.Second):
		t.Fatal("sink still blocked after drain")
	}
}
