// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/pomo/internal/model"
	"github.com/verte-zerg/pomo/internal/stats"
	"github.com/verte-zerg/pomo/internal/store"
)

const (
	tabOverview = iota
	tabHistory
)

const sparklineDays = 14

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle  = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea stats browser.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	width  int
	height int
	tab    int

	sums    []model.SessionSummary
	totals  stats.Totals
	days    []stats.DayFocus
	loadErr string

	table    table.Model
	viewport viewport.Model
	ready    bool
}

// NewModel constructs a stats browser over the store.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{store: st, cfg: cfg}
	m.load()
	return m
}

func (m *Model) load() {
	sums, err := m.store.ListSummaries(context.Background(), m.cfg)
	if err != nil {
		m.loadErr = err.Error()
		return
	}
	m.sums = sums
	m.totals = stats.ComputeTotals(sums)
	m.days = stats.LastDays(sums, sparklineDays, time.Now())
	m.table = newHistoryTable(sums)
}

func newHistoryTable(sums []model.SessionSummary) table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Type", Width: 12},
		{Title: "Outcome", Width: 10},
		{Title: "Elapsed", Width: 9},
		{Title: "Task", Width: 20},
	}
	rows := make([]table.Row, 0, len(sums))
	// Newest first.
	for i := len(sums) - 1; i >= 0; i-- {
		s := sums[i]
		rows = append(rows, table.Row{
			s.EndedAt.Local().Format("Jan 02 15:04"),
			s.Type,
			s.Outcome,
			stats.FormatMinutes(s.ElapsedMs),
			s.TaskID,
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	t.SetStyles(styles)
	return t
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := m.height - 5
		if contentHeight < 3 {
			contentHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, contentHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = contentHeight
		}
		m.table.SetHeight(contentHeight)
		m.viewport.SetContent(m.renderOverview())
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % 2
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab - 1 + 2) % 2
			return m, nil
		}
	}
	var cmd tea.Cmd
	if m.tab == tabHistory {
		m.table, cmd = m.table.Update(msg)
	} else if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.loadErr != "" {
		return errorStyle.Render("failed to load stats: " + m.loadErr)
	}
	nav := m.renderNav()
	var content string
	if m.tab == tabHistory {
		content = m.table.View()
	} else if m.ready {
		m.viewport.SetContent(m.renderOverview())
		content = m.viewport.View()
	} else {
		content = m.renderOverview()
	}
	help := helpStyle.Render("tab switch · q quit")
	return strings.Join([]string{nav, content, help}, "\n")
}

func (m *Model) renderNav() string {
	names := []string{"Overview", "History"}
	parts := make([]string, len(names))
	for i, name := range names {
		if i == m.tab {
			parts[i] = activeNavStyle.Render(name)
		} else {
			parts[i] = inactiveNavStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *Model) renderOverview() string {
	if len(m.sums) == 0 {
		return "No sessions recorded yet."
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Focus time", stats.FormatMinutes(m.totals.FocusMs)),
		card("Completed", fmt.Sprintf("%d", m.totals.Completed)),
		card("Cancelled", fmt.Sprintf("%d", m.totals.Cancelled)),
		card("Completion", fmt.Sprintf("%.0f%%", m.totals.CompletionRate*100)),
	)
	spark := stats.Sparkline(stats.FocusMinutes(m.days))
	sparkBlock := cardTitleStyle.Render(fmt.Sprintf("Focus, last %d days", sparklineDays)) + "\n" + spark
	best := bestDay(m.days)
	bestLine := ""
	if best.FocusMs > 0 {
		bestLine = cardTitleStyle.Render("Best day ") +
			cardValueStyle.Render(best.Day.Format("Jan 02")+" · "+stats.FormatMinutes(best.FocusMs))
	}
	return strings.Join([]string{cards, "", sparkBlock, bestLine}, "\n")
}

func bestDay(days []stats.DayFocus) stats.DayFocus {
	var best stats.DayFocus
	for _, d := range days {
		if d.FocusMs > best.FocusMs {
			best = d
		}
	}
	return best
}

func card(title, value string) string {
	return cardStyle.Render(cardTitleStyle.Render(title) + "\n" + cardValueStyle.Render(value))
}
