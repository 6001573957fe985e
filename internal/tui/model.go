// Package tui provides the Bubble Tea timer interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/pomo/internal/format"
	"github.com/verte-zerg/pomo/internal/model"
	"github.com/verte-zerg/pomo/internal/recovery"
	"github.com/verte-zerg/pomo/internal/stats"
	"github.com/verte-zerg/pomo/internal/store"
	"github.com/verte-zerg/pomo/internal/timer"
)

type view int

const (
	viewTimer view = iota
	viewRecovery
)

type tickMsg time.Time

var (
	clockStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#73C991")).Bold(true)
)

// Model implements the Bubble Tea timer UI.
type Model struct {
	engine    *timer.Engine
	rec       *recovery.Manager
	store     *store.Store
	precision format.Precision
	taskID    string

	width  int
	height int

	view        view
	recoverable timer.Checkpoint
	prog        progress.Model
	ticking     bool
	ringBell    bool
	now         time.Time

	todayFocusCount int
	todayFocusMs    int64
}

// NewModel constructs the timer TUI. A non-nil recoverable checkpoint
// opens the recovery prompt instead of the timer.
func NewModel(eng *timer.Engine, rec *recovery.Manager, st *store.Store, precision format.Precision, taskID string, recoverable *timer.Checkpoint) *Model {
	m := &Model{
		engine:    eng,
		rec:       rec,
		store:     st,
		precision: precision,
		taskID:    taskID,
		prog:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		now:       time.Now(),
	}
	if recoverable != nil {
		m.view = viewRecovery
		m.recoverable = *recoverable
	}
	eng.Subscribe(func(ev timer.Event) {
		if ev.Type != timer.EventCompleted {
			return
		}
		m.ringBell = true
		if stats.IsFocus(ev.Session.Type.String()) {
			m.todayFocusCount++
			m.todayFocusMs += ev.Session.Elapsed(ev.At).Milliseconds()
		}
	})
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.engine.Current().State == timer.Running {
		return m.armTick()
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w := msg.Width / 2
		if w > 48 {
			w = 48
		}
		if w < 10 {
			w = 10
		}
		m.prog.Width = w
		return m, nil
	case tickMsg:
		m.ticking = false
		m.now = time.Time(msg)
		if m.engine.Current().State == timer.Running {
			s := m.engine.Tick(m.now)
			var cmd tea.Cmd
			if s.State == timer.Running {
				cmd = m.armTick()
			}
			return m, m.withBell(cmd)
		}
		return m, nil
	case tea.KeyMsg:
		if m.view == viewRecovery {
			return m.updateRecovery(msg)
		}
		return m.updateTimer(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateTimer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		// A running session stays checkpointed and is offered for
		// recovery on the next start.
		return m, tea.Quit
	case " ":
		m.now = time.Now()
		switch m.engine.Current().State {
		case timer.Running:
			_, _ = m.engine.Pause()
			return m, nil
		case timer.Paused:
			if _, err := m.engine.Resume(); err == nil {
				return m, m.armTick()
			}
			return m, nil
		default:
			opts := []timer.StartOption{}
			if m.taskID != "" {
				opts = append(opts, timer.WithTask(m.taskID))
			}
			if _, err := m.engine.Start(opts...); err == nil {
				return m, m.armTick()
			}
			return m, nil
		}
	case "n":
		m.now = time.Now()
		_, _ = m.engine.Skip()
		return m, m.withBell(nil)
	case "x":
		m.now = time.Now()
		_, _ = m.engine.Stop()
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) updateRecovery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r", "enter":
		m.view = viewTimer
		m.now = time.Now()
		s, err := m.engine.Restore(m.recoverable)
		if err != nil {
			logErrf("failed to restore session: %v\n", err)
			return m, nil
		}
		if s.State == timer.Running {
			return m, m.armTick()
		}
		return m, nil
	case "d":
		m.view = viewTimer
		if err := m.rec.Clear(); err != nil {
			logErrf("failed to discard recovery checkpoint: %v\n", err)
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	if m.view == viewRecovery {
		content = m.renderRecovery()
	} else {
		content = m.renderTimer()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderTimer() string {
	s := m.engine.Current()
	var lines []string
	switch s.State {
	case timer.Idle, timer.Cancelled:
		next := m.engine.NextType()
		lines = append(lines,
			styleFor(next).title.Render("Ready: "+labelFor(next)),
			clockStyle.Render(format.Duration(m.engine.PlannedFor(next), m.precision)),
			"",
			mutedStyle.Render("space start · q quit"),
		)
	case timer.Completed:
		next := m.engine.NextType()
		lines = append(lines,
			doneStyle.Render(labelFor(s.Type)+" complete!"),
			mutedStyle.Render("next: "+labelFor(next)),
			"",
			mutedStyle.Render("space start · q quit"),
		)
	default:
		remaining := s.Remaining(m.now)
		lines = append(lines,
			m.renderHeader(s),
			clockStyle.Render(format.Duration(remaining, m.precision)),
			m.prog.ViewAs(s.Progress(m.now)),
		)
		if s.State == timer.Paused {
			lines = append(lines, pausedStyle.Render("paused"), mutedStyle.Render("space resume · n skip · x cancel · q quit"))
		} else {
			lines = append(lines, "", mutedStyle.Render("space pause · n skip · x cancel · q quit"))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHeader(s timer.Session) string {
	header := styleFor(s.Type).title.Render(labelFor(s.Type))
	if s.Type == timer.Work {
		header += mutedStyle.Render(fmt.Sprintf("  round %d", m.engine.Rounds()+1))
	}
	if s.TaskID != "" {
		task := s.TaskID
		if m.width > 0 {
			task = runewidth.Truncate(task, m.width/2, "…")
		}
		header += mutedStyle.Render("  " + task)
	}
	return header
}

func (m *Model) renderRecovery() string {
	cp := m.recoverable
	remaining := cp.Remaining(time.Now())
	lines := []string{
		pausedStyle.Render("Interrupted session found"),
		fmt.Sprintf("%s · %s left of %s",
			labelFor(cp.Type),
			format.Duration(remaining, format.Seconds),
			format.Duration(cp.Planned, format.Seconds)),
	}
	if cp.TaskID != "" {
		lines = append(lines, mutedStyle.Render("task: "+cp.TaskID))
	}
	lines = append(lines, "", mutedStyle.Render("r resume · d discard · q quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	if m.todayFocusCount == 0 {
		return footerStyle.Render("No focus sessions today yet")
	}
	return footerStyle.Render(fmt.Sprintf("Today %d sessions · %s focus",
		m.todayFocusCount, stats.FormatMinutes(m.todayFocusMs)))
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sums, err := m.store.ListSummaries(context.Background(), model.StatsConfig{Since: &midnight})
	if err != nil {
		logErrf("failed to load session stats: %v\n", err)
		return
	}
	for _, s := range sums {
		if s.Outcome == model.OutcomeCompleted && stats.IsFocus(s.Type) {
			m.todayFocusCount++
			m.todayFocusMs += s.ElapsedMs
		}
	}
}

func (m *Model) armTick() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.precision.TickInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// withBell prepends a terminal-bell command when a completion event fired
// during the current update.
func (m *Model) withBell(cmd tea.Cmd) tea.Cmd {
	if !m.ringBell {
		return cmd
	}
	m.ringBell = false
	bell := func() tea.Msg {
		if _, err := fmt.Fprint(os.Stderr, "\a"); err != nil {
			// Best-effort notification.
			_ = err
		}
		return nil
	}
	if cmd == nil {
		return bell
	}
	return tea.Batch(bell, cmd)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
