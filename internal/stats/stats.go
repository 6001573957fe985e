// Package stats contains statistics calculations and reporting over
// finished sessions.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/pomo/internal/model"
)

const sparkChars = " .:-=+*#%@"

// IsFocus reports whether a session type counts toward focus time.
// Breaks do not.
func IsFocus(sessionType string) bool {
	return sessionType == "work" || sessionType == "custom"
}

// Totals aggregates finished sessions.
type Totals struct {
	Completed      int
	Cancelled      int
	FocusMs        int64
	BreakMs        int64
	CompletionRate float64
}

// ComputeTotals sums completed/cancelled counts and active time split
// into focus and break. Only completed sessions contribute time.
func ComputeTotals(sums []model.SessionSummary) Totals {
	var t Totals
	for _, s := range sums {
		switch s.Outcome {
		case model.OutcomeCompleted:
			t.Completed++
			if IsFocus(s.Type) {
				t.FocusMs += s.ElapsedMs
			} else {
				t.BreakMs += s.ElapsedMs
			}
		case model.OutcomeCancelled:
			t.Cancelled++
		}
	}
	if total := t.Completed + t.Cancelled; total > 0 {
		t.CompletionRate = float64(t.Completed) / float64(total)
	}
	return t
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
