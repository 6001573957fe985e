package timer

import (
	"testing"
	"time"
)

var sessionEpoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestSessionDerivedValues(t *testing.T) {
	s := Session{
		Type:      Work,
		Planned:   25 * time.Minute,
		StartedAt: sessionEpoch,
		State:     Running,
	}
	now := sessionEpoch.Add(10 * time.Minute)
	if got := s.Elapsed(now); got != 10*time.Minute {
		t.Fatalf("Elapsed = %v, want 10m", got)
	}
	if got := s.Remaining(now); got != 15*time.Minute {
		t.Fatalf("Remaining = %v, want 15m", got)
	}
	if got := s.Progress(now); got != 0.4 {
		t.Fatalf("Progress = %v, want 0.4", got)
	}
}

func TestSessionRemainingFlooredAtZero(t *testing.T) {
	s := Session{Planned: time.Minute, StartedAt: sessionEpoch, State: Running}
	now := sessionEpoch.Add(2 * time.Minute)
	if got := s.Remaining(now); got != 0 {
		t.Fatalf("Remaining = %v, want 0", got)
	}
	if got := s.Progress(now); got != 1 {
		t.Fatalf("Progress = %v, want 1", got)
	}
}

func TestSessionElapsedFrozenWhilePaused(t *testing.T) {
	s := Session{
		Planned:   25 * time.Minute,
		StartedAt: sessionEpoch,
		State:     Paused,
		pausedAt:  sessionEpoch.Add(5 * time.Minute),
	}
	// Wall clock keeps moving; elapsed must not.
	for _, after := range []time.Duration{5 * time.Minute, 20 * time.Minute, 2 * time.Hour} {
		if got := s.Elapsed(sessionEpoch.Add(after)); got != 5*time.Minute {
			t.Fatalf("Elapsed at +%v = %v, want 5m", after, got)
		}
	}
}

func TestSessionIdleHasNoElapsed(t *testing.T) {
	var s Session
	if got := s.Elapsed(sessionEpoch); got != 0 {
		t.Fatalf("Elapsed of idle session = %v, want 0", got)
	}
}

func TestCheckpointElapsed(t *testing.T) {
	running := Checkpoint{
		State:     Running,
		Planned:   25 * time.Minute,
		StartedAt: sessionEpoch,
		WrittenAt: sessionEpoch,
	}
	now := sessionEpoch.Add(10 * time.Minute)
	if got := running.Elapsed(now); got != 10*time.Minute {
		t.Fatalf("running checkpoint Elapsed = %v, want 10m", got)
	}
	if got := running.Remaining(now); got != 15*time.Minute {
		t.Fatalf("running checkpoint Remaining = %v, want 15m", got)
	}

	paused := Checkpoint{
		State:            Paused,
		Planned:          25 * time.Minute,
		StartedAt:        sessionEpoch,
		AccumulatedPause: 2 * time.Minute,
		WrittenAt:        sessionEpoch.Add(12 * time.Minute),
	}
	// Elapsed freezes at the pause checkpoint no matter how late recovery runs.
	if got := paused.Elapsed(sessionEpoch.Add(3 * time.Hour)); got != 10*time.Minute {
		t.Fatalf("paused checkpoint Elapsed = %v, want 10m", got)
	}
}

func TestTerminalStates(t *testing.T) {
	for _, tt := range []struct {
		state TimerState
		want  bool
	}{
		{Idle, false},
		{Running, false},
		{Paused, false},
		{Completed, true},
		{Cancelled, true},
	} {
		if got := tt.state.Terminal(); got != tt.want {
			t.Errorf("%v.Terminal() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestParseSessionTypeRoundTrip(t *testing.T) {
	for _, typ := range []SessionType{Work, ShortBreak, LongBreak, Custom} {
		parsed, err := ParseSessionType(typ.String())
		if err != nil {
			t.Fatalf("ParseSessionType(%q) returned error: %v", typ.String(), err)
		}
		if parsed != typ {
			t.Fatalf("ParseSessionType(%q) = %v, want %v", typ.String(), parsed, typ)
		}
	}
	if _, err := ParseSessionType("nap"); err == nil {
		t.Fatalf("expected error for unknown session type")
	}
}
