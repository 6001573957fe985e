package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/pomo/internal/model"
)

var statsEpoch = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func summary(typ, outcome string, elapsed time.Duration, endedAt time.Time) model.SessionSummary {
	return model.SessionSummary{
		Type:      typ,
		Outcome:   outcome,
		ElapsedMs: elapsed.Milliseconds(),
		EndedAt:   endedAt,
	}
}

func TestComputeTotals(t *testing.T) {
	sums := []model.SessionSummary{
		summary("work", model.OutcomeCompleted, 25*time.Minute, statsEpoch),
		summary("short-break", model.OutcomeCompleted, 5*time.Minute, statsEpoch),
		summary("custom", model.OutcomeCompleted, 50*time.Minute, statsEpoch),
		summary("work", model.OutcomeCancelled, 10*time.Minute, statsEpoch),
	}
	got := ComputeTotals(sums)
	if got.Completed != 3 || got.Cancelled != 1 {
		t.Fatalf("counts = %d/%d, want 3/1", got.Completed, got.Cancelled)
	}
	if got.FocusMs != (75 * time.Minute).Milliseconds() {
		t.Fatalf("FocusMs = %d, want 75m", got.FocusMs)
	}
	if got.BreakMs != (5 * time.Minute).Milliseconds() {
		t.Fatalf("BreakMs = %d, want 5m", got.BreakMs)
	}
	if got.CompletionRate != 0.75 {
		t.Fatalf("CompletionRate = %v, want 0.75", got.CompletionRate)
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil)
	if got != (Totals{}) {
		t.Fatalf("totals of no sessions = %+v", got)
	}
}

func TestLastDaysBucketsAndZeroFills(t *testing.T) {
	sums := []model.SessionSummary{
		summary("work", model.OutcomeCompleted, 25*time.Minute, statsEpoch.AddDate(0, 0, -2)),
		summary("work", model.OutcomeCompleted, 25*time.Minute, statsEpoch.AddDate(0, 0, -2)),
		summary("work", model.OutcomeCompleted, 10*time.Minute, statsEpoch),
		// Breaks and cancellations never count toward focus.
		summary("long-break", model.OutcomeCompleted, 15*time.Minute, statsEpoch),
		summary("work", model.OutcomeCancelled, 20*time.Minute, statsEpoch),
		// Out of window.
		summary("work", model.OutcomeCompleted, 25*time.Minute, statsEpoch.AddDate(0, 0, -10)),
	}
	days := LastDays(sums, 3, statsEpoch)
	if len(days) != 3 {
		t.Fatalf("days = %d, want 3", len(days))
	}
	if days[0].FocusMs != (50*time.Minute).Milliseconds() || days[0].Completed != 2 {
		t.Fatalf("day[0] = %+v, want 50m over 2 sessions", days[0])
	}
	if days[1].FocusMs != 0 || days[1].Completed != 0 {
		t.Fatalf("day[1] should be zero-filled: %+v", days[1])
	}
	if days[2].FocusMs != (10*time.Minute).Milliseconds() || days[2].Completed != 1 {
		t.Fatalf("day[2] = %+v, want 10m over 1 session", days[2])
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 5, 10})
	if len(out) != 3 {
		t.Fatalf("sparkline length = %d, want 3", len(out))
	}
	if out[0] != sparkChars[0] || out[2] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("sparkline extremes wrong: %q", out)
	}
	flat := Sparkline([]float64{3, 3, 3})
	if len(flat) != 3 || flat[0] != flat[2] {
		t.Fatalf("flat sparkline = %q", flat)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("sparkline of no values should be empty")
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0m"},
		{(25 * time.Minute).Milliseconds(), "25m"},
		{(90 * time.Minute).Milliseconds(), "1h 30m"},
		{(2*time.Hour + 5*time.Minute).Milliseconds(), "2h 05m"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.ms); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	var buf strings.Builder
	sums := []model.SessionSummary{
		summary("work", model.OutcomeCompleted, 25*time.Minute, statsEpoch),
		summary("work", model.OutcomeCancelled, 5*time.Minute, statsEpoch),
	}
	if err := RenderSummary(&buf, sums); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Completed: 1", "Cancelled: 1", "Completion rate: 50%", "Focus time: 25m"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf strings.Builder
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("RenderSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
