package stats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/pomo/internal/model"
)

const (
	terminalWidthBackup = 80
	minBarWidth         = 10
	barLabelWidth       = 20
)

// RenderSummary prints a plain-text summary for the sessions.
func RenderSummary(w io.Writer, sums []model.SessionSummary) error {
	if len(sums) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	t := ComputeTotals(sums)
	lines := []string{
		"Summary",
		fmt.Sprintf("Completed: %d", t.Completed),
		fmt.Sprintf("Cancelled: %d", t.Cancelled),
		fmt.Sprintf("Completion rate: %.0f%%", t.CompletionRate*100),
		fmt.Sprintf("Focus time: %s", FormatMinutes(t.FocusMs)),
		fmt.Sprintf("Break time: %s", FormatMinutes(t.BreakMs)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDailyBars prints a horizontal bar per day, scaled to the
// terminal width.
func RenderDailyBars(w io.Writer, days []DayFocus) error {
	if len(days) == 0 {
		return nil
	}
	barMax := terminalWidth() - barLabelWidth
	if barMax < minBarWidth {
		barMax = minBarWidth
	}
	var maxMs int64
	for _, d := range days {
		if d.FocusMs > maxMs {
			maxMs = d.FocusMs
		}
	}
	for _, d := range days {
		bar := ""
		if maxMs > 0 && d.FocusMs > 0 {
			n := int(float64(barMax) * float64(d.FocusMs) / float64(maxMs))
			if n < 1 {
				n = 1
			}
			bar = strings.Repeat("#", n)
		}
		if _, err := fmt.Fprintf(w, "%s  %-*s %s\n", d.Day.Format("Jan 02"), barMax, bar, FormatMinutes(d.FocusMs)); err != nil {
			return err
		}
	}
	return nil
}

// FormatMinutes renders milliseconds as "Nh MMm" or "Nm".
func FormatMinutes(ms int64) string {
	mins := ms / 60_000
	if mins >= 60 {
		return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
	}
	return fmt.Sprintf("%dm", mins)
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return terminalWidthBackup
}
