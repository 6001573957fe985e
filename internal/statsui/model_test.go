package statsui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pressKey(t *testing.T, m *Model, key tea.KeyType) *Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: key})
	got, ok := next.(*Model)
	if !ok {
		t.Fatalf("Update returned %T, want *Model", next)
	}
	return got
}

func TestTabKeysCycleBothDirections(t *testing.T) {
	m := &Model{}

	m = pressKey(t, m, tea.KeyTab)
	if m.tab != tabHistory {
		t.Fatalf("tab after forward = %d, want %d", m.tab, tabHistory)
	}
	m = pressKey(t, m, tea.KeyTab)
	if m.tab != tabOverview {
		t.Fatalf("tab after second forward = %d, want %d", m.tab, tabOverview)
	}

	// Reverse from the first tab must land on the last, not cycle forward.
	m = pressKey(t, m, tea.KeyShiftTab)
	if m.tab != tabHistory {
		t.Fatalf("tab after reverse = %d, want %d", m.tab, tabHistory)
	}
	m = pressKey(t, m, tea.KeyShiftTab)
	if m.tab != tabOverview {
		t.Fatalf("tab after second reverse = %d, want %d", m.tab, tabOverview)
	}
}
