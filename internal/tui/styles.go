package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/pomo/internal/timer"
)

// typeStyle bundles the presentation of one session type. The engine
// stays free of display concerns; everything per-type lives in this table.
type typeStyle struct {
	label string
	title lipgloss.Style
}

var typeStyles = map[timer.SessionType]typeStyle{
	timer.Work: {
		label: "Work",
		title: lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true),
	},
	timer.ShortBreak: {
		label: "Short break",
		title: lipgloss.NewStyle().Foreground(lipgloss.Color("#73C991")).Bold(true),
	},
	timer.LongBreak: {
		label: "Long break",
		title: lipgloss.NewStyle().Foreground(lipgloss.Color("#6FA8DC")).Bold(true),
	},
	timer.Custom: {
		label: "Custom",
		title: lipgloss.NewStyle().Foreground(lipgloss.Color("#B48EAD")).Bold(true),
	},
}

var fallbackStyle = typeStyle{
	label: "Session",
	title: lipgloss.NewStyle().Bold(true),
}

func styleFor(t timer.SessionType) typeStyle {
	if s, ok := typeStyles[t]; ok {
		return s
	}
	return fallbackStyle
}

func labelFor(t timer.SessionType) string {
	return styleFor(t).label
}
