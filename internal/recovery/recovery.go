// Package recovery makes in-flight sessions durable and reconstructs
// them after an unexpected process restart.
package recovery

import (
	"fmt"
	"os"

	"github.com/verte-zerg/pomo/internal/clock"
	"github.com/verte-zerg/pomo/internal/timer"
)

// Store is the minimal durable contract the manager needs. Any store
// that can round-trip a single checkpoint satisfies it.
type Store interface {
	PutCheckpoint(timer.Checkpoint) error
	GetCheckpoint() (timer.Checkpoint, bool, error)
	DeleteCheckpoint() error
}

// Manager persists engine checkpoints and classifies any leftover
// checkpoint at startup. It implements timer.Checkpointer.
type Manager struct {
	store Store
	clk   clock.Clock
}

// NewManager returns a manager over the given store.
func NewManager(store Store, clk clock.Clock) *Manager {
	if clk == nil {
		clk = clock.System
	}
	return &Manager{store: store, clk: clk}
}

// Checkpoint writes a transition snapshot to durable storage.
func (m *Manager) Checkpoint(cp timer.Checkpoint) error {
	return m.store.PutCheckpoint(cp)
}

// Clear removes any persisted checkpoint.
func (m *Manager) Clear() error {
	return m.store.DeleteCheckpoint()
}

// Outcome classifies what was found in durable storage at startup.
type Outcome int

const (
	// None means there is nothing to recover; the engine starts idle.
	None Outcome = iota
	// Resumable means an interrupted session with time left was found;
	// the caller decides whether to resume or discard it.
	Resumable
	// Finished means the interrupted session's planned duration already
	// elapsed; the caller restores it and lets the normal completion
	// path run without prompting.
	Finished
)

// Result is the outcome of a startup recovery check.
type Result struct {
	Outcome    Outcome
	Checkpoint timer.Checkpoint
}

// Load inspects durable storage for an interrupted session. A corrupt or
// unreadable record is logged and treated as no recovery available. A
// stale record in a terminal state is deleted.
func (m *Manager) Load() Result {
	cp, ok, err := m.store.GetCheckpoint()
	if err != nil {
		logErrf("failed to read recovery checkpoint: %v\n", err)
		return Result{}
	}
	if !ok {
		return Result{}
	}
	if cp.State != timer.Running && cp.State != timer.Paused {
		if err := m.store.DeleteCheckpoint(); err != nil {
			logErrf("failed to delete stale checkpoint: %v\n", err)
		}
		return Result{}
	}
	if cp.Elapsed(m.clk.Now()) >= cp.Planned {
		return Result{Outcome: Finished, Checkpoint: cp}
	}
	return Result{Outcome: Resumable, Checkpoint: cp}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
