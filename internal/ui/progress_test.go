package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tidal/internal/driver"
)

func newModel(modules ...string) *progressModel {
	return NewProgressModel("game.toml", modules, make(chan driver.Event)).(*progressModel)
}

func TestApplyTracksStages(t *testing.T) {
	m := newModel("game", "ui")

	m.apply(driver.Event{Module: "game", Stage: driver.StageIdentities, Status: driver.StatusWorking})
	m.apply(driver.Event{Module: "ui", Status: driver.StatusDone, Elapsed: 3 * time.Millisecond})
	m.apply(driver.Event{Module: "unknown", Status: driver.StatusDone})

	if got := m.sessions[0].label(); got != "identities" {
		t.Fatalf("expected identities, got %q", got)
	}
	if got := m.percent(); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
	view := m.View()
	for _, want := range []string{"game", "done", "1/2 modules", "3ms"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view is missing %q:\n%s", want, view)
		}
	}
}

func TestViewShowsFirstError(t *testing.T) {
	m := newModel("game", "ui")
	m.apply(driver.Event{Module: "ui", Status: driver.StatusError, Err: errors.New("field pos of struct ui::Button")})
	m.apply(driver.Event{Module: "game", Status: driver.StatusDone})

	view := m.View()
	if !strings.Contains(view, "ui: field pos of struct ui::Button") {
		t.Fatalf("expected error line:\n%s", view)
	}
	if m.percent() != 1 {
		t.Fatalf("finished sessions count fully, got %v", m.percent())
	}
}

func TestClosedChannelQuits(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("game.toml", []string{"game"}, events).(*progressModel)
	msg := m.next()()
	if _, ok := msg.(closedMsg); !ok {
		t.Fatalf("expected closedMsg, got %T", msg)
	}
	m.Update(msg)
	if !m.closed {
		t.Fatalf("model should be closed")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newModel("game")
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd != nil {
		t.Fatalf("plain keys should be ignored")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg, got %T", cmd())
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"game", 10, "game"},
		{"game::physics", 8, "game:..."},
		{"界面模块", 5, "界..."},
		{"abcdef", 2, "ab"},
	}
	for _, tc := range cases {
		if got := Truncate(tc.in, tc.width); got != tc.want {
			t.Fatalf("Truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
