package timer

import "time"

// Checkpoint is the persistable snapshot of an in-flight session, written
// on every low-frequency transition so an interrupted run can be
// reconstructed after a crash or reboot.
type Checkpoint struct {
	SessionID        string
	Type             SessionType
	Planned          time.Duration
	StartedAt        time.Time
	AccumulatedPause time.Duration
	State            TimerState
	TaskID           string
	// WrittenAt records when the checkpoint was taken. For a Paused
	// checkpoint it doubles as the pause start: downtime between the
	// write and recovery counts as pause, not as elapsed work.
	WrittenAt time.Time
}

// Elapsed computes active time for the checkpointed session as of now.
// A Running checkpoint keeps accruing; a Paused one is frozen at the
// moment it was written.
func (c Checkpoint) Elapsed(now time.Time) time.Duration {
	if c.State == Paused {
		now = c.WrittenAt
	}
	e := now.Sub(c.StartedAt) - c.AccumulatedPause
	if e < 0 {
		e = 0
	}
	return e
}

// Remaining returns the checkpointed session's time left, floored at zero.
func (c Checkpoint) Remaining(now time.Time) time.Duration {
	r := c.Planned - c.Elapsed(now)
	if r < 0 {
		r = 0
	}
	return r
}

// session reconstructs the Session value a checkpoint describes.
func (c Checkpoint) session() Session {
	s := Session{
		ID:               c.SessionID,
		Type:             c.Type,
		Planned:          c.Planned,
		StartedAt:        c.StartedAt,
		AccumulatedPause: c.AccumulatedPause,
		State:            c.State,
		TaskID:           c.TaskID,
	}
	if c.State == Paused {
		s.pausedAt = c.WrittenAt
	}
	return s
}

func (s Session) checkpoint(now time.Time) Checkpoint {
	// For a Paused session WrittenAt must be the pause start, not the
	// write time, or rewriting the checkpoint would move the freeze
	// point forward and count downtime as elapsed work.
	written := now
	if s.State == Paused {
		written = s.pausedAt
	}
	return Checkpoint{
		SessionID:        s.ID,
		Type:             s.Type,
		Planned:          s.Planned,
		StartedAt:        s.StartedAt,
		AccumulatedPause: s.AccumulatedPause,
		State:            s.State,
		TaskID:           s.TaskID,
		WrittenAt:        written,
	}
}
