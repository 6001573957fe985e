package recovery

import (
	"fmt"
	"testing"
	"time"

	"github.com/verte-zerg/pomo/internal/clock"
	"github.com/verte-zerg/pomo/internal/timer"
)

type memStore struct {
	cp      *timer.Checkpoint
	getErr  error
	deletes int
}

func (s *memStore) PutCheckpoint(cp timer.Checkpoint) error {
	s.cp = &cp
	return nil
}

func (s *memStore) GetCheckpoint() (timer.Checkpoint, bool, error) {
	if s.getErr != nil {
		return timer.Checkpoint{}, false, s.getErr
	}
	if s.cp == nil {
		return timer.Checkpoint{}, false, nil
	}
	return *s.cp, true, nil
}

func (s *memStore) DeleteCheckpoint() error {
	s.cp = nil
	s.deletes++
	return nil
}

var recoveryEpoch = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func TestLoadRoundTrip(t *testing.T) {
	store := &memStore{}
	clk := clock.NewFake(recoveryEpoch)
	m := NewManager(store, clk)

	err := m.Checkpoint(timer.Checkpoint{
		SessionID: "abc",
		Type:      timer.Work,
		Planned:   1500 * time.Second,
		StartedAt: recoveryEpoch,
		State:     timer.Running,
		WrittenAt: recoveryEpoch,
	})
	if err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}

	clk.Advance(600 * time.Second)
	res := m.Load()
	if res.Outcome != Resumable {
		t.Fatalf("outcome = %v, want Resumable", res.Outcome)
	}
	if got := res.Checkpoint.Remaining(clk.Now()); got != 900*time.Second {
		t.Fatalf("remaining = %v, want 900s", got)
	}
}

func TestLoadOverdueSessionIsFinished(t *testing.T) {
	store := &memStore{}
	clk := clock.NewFake(recoveryEpoch)
	m := NewManager(store, clk)

	if err := m.Checkpoint(timer.Checkpoint{
		SessionID: "abc",
		Type:      timer.Work,
		Planned:   25 * time.Minute,
		StartedAt: recoveryEpoch,
		State:     timer.Running,
		WrittenAt: recoveryEpoch,
	}); err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}

	clk.Advance(time.Hour)
	res := m.Load()
	if res.Outcome != Finished {
		t.Fatalf("outcome = %v, want Finished", res.Outcome)
	}
}

func TestLoadPausedCheckpointStaysResumable(t *testing.T) {
	store := &memStore{}
	clk := clock.NewFake(recoveryEpoch.Add(48 * time.Hour))
	m := NewManager(store, clk)

	// Paused ten minutes in; elapsed is frozen no matter how long ago.
	store.cp = &timer.Checkpoint{
		SessionID: "abc",
		Type:      timer.Work,
		Planned:   25 * time.Minute,
		StartedAt: recoveryEpoch,
		State:     timer.Paused,
		WrittenAt: recoveryEpoch.Add(10 * time.Minute),
	}
	res := m.Load()
	if res.Outcome != Resumable {
		t.Fatalf("outcome = %v, want Resumable", res.Outcome)
	}
	if got := res.Checkpoint.Remaining(clk.Now()); got != 15*time.Minute {
		t.Fatalf("remaining = %v, want 15m", got)
	}
}

func TestLoadEmptyStore(t *testing.T) {
	m := NewManager(&memStore{}, clock.NewFake(recoveryEpoch))
	if res := m.Load(); res.Outcome != None {
		t.Fatalf("outcome = %v, want None", res.Outcome)
	}
}

func TestLoadUnreadableRecordIsNone(t *testing.T) {
	store := &memStore{getErr: fmt.Errorf("malformed row")}
	m := NewManager(store, clock.NewFake(recoveryEpoch))
	if res := m.Load(); res.Outcome != None {
		t.Fatalf("outcome = %v, want None", res.Outcome)
	}
}

func TestLoadDeletesStaleTerminalRecord(t *testing.T) {
	store := &memStore{}
	store.cp = &timer.Checkpoint{State: timer.Completed}
	m := NewManager(store, clock.NewFake(recoveryEpoch))
	if res := m.Load(); res.Outcome != None {
		t.Fatalf("outcome = %v, want None", res.Outcome)
	}
	if store.deletes != 1 {
		t.Fatalf("stale record deletes = %d, want 1", store.deletes)
	}
}
