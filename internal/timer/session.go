// Package timer implements the focus session engine: the state machine
// driving a running countdown, pause accounting, and work/break sequencing.
package timer

import (
	"fmt"
	"time"
)

// SessionType identifies the phase a session belongs to.
type SessionType int

const (
	Work SessionType = iota
	ShortBreak
	LongBreak
	Custom
)

// String returns the config/flag spelling of the session type.
func (t SessionType) String() string {
	switch t {
	case Work:
		return "work"
	case ShortBreak:
		return "short-break"
	case LongBreak:
		return "long-break"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("SessionType(%d)", int(t))
}

// ParseSessionType converts a config/flag value into a SessionType.
func ParseSessionType(s string) (SessionType, error) {
	switch s {
	case "work":
		return Work, nil
	case "short-break":
		return ShortBreak, nil
	case "long-break":
		return LongBreak, nil
	case "custom":
		return Custom, nil
	}
	return Work, fmt.Errorf("unknown session type %q (expected work, short-break, long-break, or custom)", s)
}

// TimerState is the lifecycle state of a session.
type TimerState int

const (
	Idle TimerState = iota
	Running
	Paused
	Completed
	Cancelled
)

// String returns a human-readable state name.
func (s TimerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("TimerState(%d)", int(s))
}

// Terminal reports whether the state ends a session's lifecycle.
func (s TimerState) Terminal() bool {
	return s == Completed || s == Cancelled
}

// Session is one bounded run of a single timer phase. The engine replaces
// the value wholesale on every transition; callers receive snapshots.
type Session struct {
	ID               string
	Type             SessionType
	Planned          time.Duration
	StartedAt        time.Time
	AccumulatedPause time.Duration
	State            TimerState
	TaskID           string
	// EndedAt is set once the session reaches a terminal state.
	EndedAt time.Time

	// pausedAt marks when the current pause began. Only set while Paused.
	pausedAt time.Time
}

// Elapsed returns how long the session has actively run as of now.
// While Paused the value is frozen at the moment the pause began, and in
// a terminal state it is frozen at EndedAt.
func (s Session) Elapsed(now time.Time) time.Duration {
	switch s.State {
	case Idle:
		return 0
	case Paused:
		now = s.pausedAt
	case Completed, Cancelled:
		now = s.EndedAt
	}
	e := now.Sub(s.StartedAt) - s.AccumulatedPause
	if e < 0 {
		e = 0
	}
	return e
}

// Remaining returns the time left until the planned duration, floored at zero.
func (s Session) Remaining(now time.Time) time.Duration {
	r := s.Planned - s.Elapsed(now)
	if r < 0 {
		r = 0
	}
	return r
}

// Progress returns elapsed over planned, clamped to [0, 1].
func (s Session) Progress(now time.Time) float64 {
	if s.Planned <= 0 {
		return 1
	}
	p := float64(s.Elapsed(now)) / float64(s.Planned)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
