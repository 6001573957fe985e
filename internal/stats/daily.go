package stats

import (
	"time"

	"github.com/verte-zerg/pomo/internal/model"
)

// DayFocus aggregates one calendar day of completed focus sessions.
type DayFocus struct {
	Day       time.Time
	FocusMs   int64
	Completed int
}

// LastDays buckets completed focus sessions into the n calendar days
// ending on now's date, zero-filling days without sessions. Dates are
// taken in now's location.
func LastDays(sums []model.SessionSummary, n int, now time.Time) []DayFocus {
	if n <= 0 {
		return nil
	}
	loc := now.Location()
	end := dateOf(now, loc)
	start := end.AddDate(0, 0, -(n - 1))

	byDay := map[time.Time]*DayFocus{}
	days := make([]DayFocus, n)
	for i := 0; i < n; i++ {
		day := start.AddDate(0, 0, i)
		days[i] = DayFocus{Day: day}
		byDay[day] = &days[i]
	}

	for _, s := range sums {
		if s.Outcome != model.OutcomeCompleted || !IsFocus(s.Type) {
			continue
		}
		entry, ok := byDay[dateOf(s.EndedAt, loc)]
		if !ok {
			continue
		}
		entry.FocusMs += s.ElapsedMs
		entry.Completed++
	}
	return days
}

// FocusMinutes extracts per-day focus minutes for sparklines and plots.
func FocusMinutes(days []DayFocus) []float64 {
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = float64(d.FocusMs) / 60_000.0
	}
	return out
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
