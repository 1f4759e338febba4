// Package ui renders compile progress in a terminal.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tidal/internal/driver"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	queuedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// stageWeight is the share of a session finished once a stage has started.
var stageWeight = map[driver.Stage]float64{
	driver.StageSignatures: 0.2,
	driver.StageIdentities: 0.5,
	driver.StageTable:      0.8,
}

// session is the last known state of one module.
type session struct {
	module  string
	status  driver.Status
	stage   driver.Stage
	elapsed time.Duration
	err     error
}

func (s session) finished() bool {
	return s.status == driver.StatusDone || s.status == driver.StatusError
}

func (s session) fraction() float64 {
	if s.finished() {
		return 1
	}
	if s.status == driver.StatusWorking {
		return stageWeight[s.stage]
	}
	return 0
}

// label is what the status column shows: the stage while a session works,
// the status otherwise.
func (s session) label() string {
	if s.status == driver.StatusWorking && s.stage != "" {
		return string(s.stage)
	}
	return string(s.status)
}

func (s session) style() lipgloss.Style {
	switch s.status {
	case driver.StatusWorking:
		return workingStyle
	case driver.StatusDone:
		return doneStyle
	case driver.StatusError:
		return errorStyle
	default:
		return queuedStyle
	}
}

type progressModel struct {
	title    string
	events   <-chan driver.Event
	spinner  spinner.Model
	bar      progress.Model
	sessions []session
	byModule map[string]int
	width    int
	closed   bool
}

type eventMsg driver.Event

type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model drawing one line per module
// session. The program quits once events is closed.
func NewProgressModel(title string, modules []string, events <-chan driver.Event) tea.Model {
	m := &progressModel{
		title:    title,
		events:   events,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(workingStyle)),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		sessions: make([]session, len(modules)),
		byModule: make(map[string]int, len(modules)),
		width:    80,
	}
	for i, name := range modules {
		m.sessions[i] = session{module: name, status: driver.StatusQueued}
		m.byModule[name] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case closedMsg:
		m.closed = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.closed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	}
	return m, nil
}

// next waits for the following driver event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

// apply records ev and animates the bar towards the new total. Events of
// modules the model was not told about are ignored.
func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	i, ok := m.byModule[ev.Module]
	if !ok {
		return nil
	}
	s := &m.sessions[i]
	s.status = ev.Status
	if ev.Stage != "" {
		s.stage = ev.Stage
	}
	if s.finished() {
		s.elapsed, s.err = ev.Elapsed, ev.Err
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.sessions) == 0 {
		return 1
	}
	var sum float64
	for _, s := range m.sessions {
		sum += s.fraction()
	}
	return sum / float64(len(m.sessions))
}

func (m *progressModel) finished() int {
	n := 0
	for _, s := range m.sessions {
		if s.finished() {
			n++
		}
	}
	return n
}

func (m *progressModel) View() string {
	if len(m.sessions) == 0 {
		return ""
	}
	var b strings.Builder
	marker := m.spinner.View()
	if m.closed {
		marker = doneStyle.Render("✓")
	}
	fmt.Fprintf(&b, "%s %s %s\n\n", marker, titleStyle.Render(m.title),
		queuedStyle.Render(fmt.Sprintf("%d/%d modules", m.finished(), len(m.sessions))))

	const statusWidth = 12
	nameWidth := max(m.width-statusWidth-16, 20)
	var firstErr *session
	for i := range m.sessions {
		s := &m.sessions[i]
		line := fmt.Sprintf("  %s %s", s.style().Render(fmt.Sprintf("%*s", statusWidth, s.label())), Truncate(s.module, nameWidth))
		if s.finished() {
			line += " " + queuedStyle.Render(s.elapsed.Round(time.Millisecond).String())
		}
		b.WriteString(line)
		b.WriteByte('\n')
		if s.err != nil && firstErr == nil {
			firstErr = s
		}
	}

	b.WriteByte('\n')
	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	if firstErr != nil {
		b.WriteString(errorStyle.Render(Truncate(firstErr.module+": "+firstErr.err.Error(), m.width)))
		b.WriteByte('\n')
	}
	return b.String()
}

// Truncate shortens value to at most width terminal cells, marking the cut
// with an ellipsis when there is room for one.
func Truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width, tail)
}
