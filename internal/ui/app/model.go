package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reportdto "dw/internal/modules/report/dto"
	trackerdto "dw/internal/modules/tracker/dto"
	apperrors "dw/internal/platform/errors"
	"dw/internal/ui/theme"
)

// Each port is the minimal interface this dashboard requires.

type trackerPort interface {
	Start(ctx context.Context, label string) (trackerdto.StartOutput, error)
	Stop(ctx context.Context) (trackerdto.StopOutput, error)
	Status(ctx context.Context) (trackerdto.ActiveOutput, error)
}

type reportPort interface {
	Summary(ctx context.Context) (reportdto.SummaryOutput, error)
	Report(ctx context.Context, from, to time.Time) (reportdto.ReportOutput, error)
}

// ─── async messages ──────────────────────────────────────────────────────────

type statusMsg struct {
	active    trackerdto.ActiveOutput
	hasActive bool
	err       error
}

type summaryMsg struct {
	summary reportdto.SummaryOutput
	recent  []reportdto.SessionOutput
	err     error
}

type startedMsg struct {
	out trackerdto.StartOutput
	err error
}

type stoppedMsg struct {
	out trackerdto.StopOutput
	err error
}

type tickMsg time.Time

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Start   key.Binding
	Stop    key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start session")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop session")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Refresh, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Stop},
		{k.Refresh, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the dashboard: an active-session pane with a ticking elapsed
// clock next to a today pane, above the most recent completed sessions.
type Model struct {
	tracker trackerPort
	report  reportPort
	clock   func() time.Time

	keys     keyMap
	help     help.Model
	showHelp bool

	hasActive bool
	active    trackerdto.ActiveOutput
	summary   reportdto.SummaryOutput
	recent    []reportdto.SessionOutput
	status    string

	width  int
	height int
}

func NewModel(tracker trackerPort, report reportPort) Model {
	return Model{
		tracker: tracker,
		report:  report,
		clock:   time.Now,
		keys:    defaultKeys(),
		help:    help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStatus(), m.loadSummary(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadStatus() tea.Cmd {
	return func() tea.Msg {
		active, err := m.tracker.Status(context.Background())
		if errors.Is(err, apperrors.ErrNoActiveSession) {
			return statusMsg{}
		}
		if err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{active: active, hasActive: true}
	}
}

func (m Model) loadSummary() tea.Cmd {
	return func() tea.Msg {
		summary, err := m.report.Summary(context.Background())
		if err != nil {
			return summaryMsg{err: err}
		}
		full, err := m.report.Report(context.Background(), time.Time{}, time.Time{})
		if err != nil {
			return summaryMsg{err: err}
		}
		recent := full.Sessions
		if len(recent) > 5 {
			recent = recent[len(recent)-5:]
		}
		return summaryMsg{summary: summary, recent: recent}
	}
}

func (m Model) startSession() tea.Cmd {
	return func() tea.Msg {
		out, err := m.tracker.Start(context.Background(), "")
		return startedMsg{out: out, err: err}
	}
}

func (m Model) stopSession() tea.Cmd {
	return func() tea.Msg {
		out, err := m.tracker.Stop(context.Background())
		return stoppedMsg{out: out, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tick()

	case statusMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.hasActive = msg.hasActive
		m.active = msg.active
		return m, nil

	case summaryMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.summary = msg.summary
		m.recent = msg.recent
		return m, nil

	case startedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = "session started"
		return m, m.loadStatus()

	case stoppedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("session stopped after %s", formatClock(msg.out.Duration))
		return m, tea.Batch(m.loadStatus(), m.loadSummary())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Start):
			return m, m.startSession()
		case key.Matches(msg, m.keys.Stop):
			return m, m.stopSession()
		case key.Matches(msg, m.keys.Refresh):
			return m, tea.Batch(m.loadStatus(), m.loadSummary())
		}
	}
	return m, nil
}

func (m Model) View() string {
	title := theme.Title.Render("dw — deep work")

	activePane := m.renderActivePane()
	todayPane := m.renderTodayPane()
	panes := lipgloss.JoinHorizontal(lipgloss.Top, activePane, " ", todayPane)

	sections := []string{title, "", panes, "", m.renderRecent()}
	if m.status != "" {
		sections = append(sections, "", theme.Muted.Render(m.status))
	}
	if m.showHelp {
		sections = append(sections, "", m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		sections = append(sections, "", m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderActivePane() string {
	if !m.hasActive {
		return theme.Pane.Render(theme.Muted.Render("no active session\n\npress s to start"))
	}
	elapsed := m.clock().Sub(m.active.StartedAt)
	label := m.active.Label
	if label == "" {
		label = "(unlabeled)"
	}
	body := fmt.Sprintf("%s\n\nstarted  %s\nelapsed  %s",
		theme.Hot.Render(label),
		m.active.StartedAt.Local().Format("15:04:05"),
		theme.Good.Render(formatClock(elapsed)),
	)
	return theme.PaneActive.Render(body)
}

func (m Model) renderTodayPane() string {
	body := fmt.Sprintf("%s\n\ntotal    %s\nsessions %d",
		theme.Title.Render("today"),
		formatClock(m.summary.Total),
		m.summary.Sessions,
	)
	return theme.Pane.Render(body)
}

func (m Model) renderRecent() string {
	if len(m.recent) == 0 {
		return theme.Muted.Render("no completed sessions yet")
	}
	rows := make([]string, 0, len(m.recent)+1)
	rows = append(rows, theme.Title.Render("recent"))
	for i := len(m.recent) - 1; i >= 0; i-- {
		s := m.recent[i]
		label := s.Label
		if label == "" {
			label = "(unlabeled)"
		}
		rows = append(rows, fmt.Sprintf("%s  %s  %s",
			theme.Muted.Render(s.StartedAt.Local().Format("Jan 02 15:04")),
			formatClock(s.Duration),
			label,
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%dh%02dm%02ds", total/3600, (total/60)%60, total%60)
}
