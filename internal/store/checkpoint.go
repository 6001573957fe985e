package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/pomo/internal/timer"
)

// The checkpoint table holds at most one row: the engine tracks a single
// current session, so the slot key is fixed at zero.

// PutCheckpoint upserts the recovery checkpoint.
func (s *Store) PutCheckpoint(cp timer.Checkpoint) error {
	_, err := s.db.Exec(
		`INSERT INTO checkpoint (slot, session_id, session_type, planned_ms, started_at, accumulated_pause_ms, state, task_id, written_at)
		 VALUES (0, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
			session_id = excluded.session_id,
			session_type = excluded.session_type,
			planned_ms = excluded.planned_ms,
			started_at = excluded.started_at,
			accumulated_pause_ms = excluded.accumulated_pause_ms,
			state = excluded.state,
			task_id = excluded.task_id,
			written_at = excluded.written_at`,
		cp.SessionID,
		cp.Type.String(),
		cp.Planned.Milliseconds(),
		cp.StartedAt.Format(time.RFC3339Nano),
		cp.AccumulatedPause.Milliseconds(),
		cp.State.String(),
		cp.TaskID,
		cp.WrittenAt.Format(time.RFC3339Nano),
	)
	return err
}

// GetCheckpoint reads the recovery checkpoint. The second return value
// reports whether one exists.
func (s *Store) GetCheckpoint() (timer.Checkpoint, bool, error) {
	row := s.db.QueryRow(
		`SELECT session_id, session_type, planned_ms, started_at, accumulated_pause_ms, state, task_id, written_at
		 FROM checkpoint WHERE slot = 0`)

	var cp timer.Checkpoint
	var typ, state, startedAt, writtenAt string
	var plannedMs, pauseMs int64
	err := row.Scan(&cp.SessionID, &typ, &plannedMs, &startedAt, &pauseMs, &state, &cp.TaskID, &writtenAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return timer.Checkpoint{}, false, nil
		}
		return timer.Checkpoint{}, false, err
	}
	if cp.Type, err = timer.ParseSessionType(typ); err != nil {
		return timer.Checkpoint{}, false, fmt.Errorf("corrupt checkpoint: %w", err)
	}
	if cp.State, err = parseTimerState(state); err != nil {
		return timer.Checkpoint{}, false, fmt.Errorf("corrupt checkpoint: %w", err)
	}
	cp.Planned = time.Duration(plannedMs) * time.Millisecond
	cp.AccumulatedPause = time.Duration(pauseMs) * time.Millisecond
	if cp.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return timer.Checkpoint{}, false, fmt.Errorf("corrupt checkpoint: %w", err)
	}
	if cp.WrittenAt, err = time.Parse(time.RFC3339Nano, writtenAt); err != nil {
		return timer.Checkpoint{}, false, fmt.Errorf("corrupt checkpoint: %w", err)
	}
	return cp, true, nil
}

// DeleteCheckpoint removes the recovery checkpoint if present.
func (s *Store) DeleteCheckpoint() error {
	_, err := s.db.Exec(`DELETE FROM checkpoint WHERE slot = 0`)
	return err
}

func parseTimerState(s string) (timer.TimerState, error) {
	for _, st := range []timer.TimerState{timer.Idle, timer.Running, timer.Paused, timer.Completed, timer.Cancelled} {
		if st.String() == s {
			return st, nil
		}
	}
	return timer.Idle, fmt.Errorf("unknown timer state %q", s)
}
