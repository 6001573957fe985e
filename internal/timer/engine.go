package timer

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/pomo/internal/clock"
)

// Checkpointer shadows state transitions into durable storage. A failed
// write never rolls back a transition; it is logged and the engine moves on.
type Checkpointer interface {
	Checkpoint(Checkpoint) error
	Clear() error
}

// Config holds the per-run engine settings. Immutable once the engine is
// constructed.
type Config struct {
	Work              time.Duration
	ShortBreak        time.Duration
	LongBreak         time.Duration
	CustomDefault     time.Duration
	LongBreakInterval int
}

// DefaultConfig returns the classic 25/5/15 pomodoro settings with a long
// break every fourth work session.
func DefaultConfig() Config {
	return Config{
		Work:              25 * time.Minute,
		ShortBreak:        5 * time.Minute,
		LongBreak:         15 * time.Minute,
		CustomDefault:     25 * time.Minute,
		LongBreakInterval: 4,
	}
}

func (c Config) durationFor(t SessionType) time.Duration {
	switch t {
	case ShortBreak:
		return c.ShortBreak
	case LongBreak:
		return c.LongBreak
	case Custom:
		return c.CustomDefault
	default:
		return c.Work
	}
}

// Engine owns the single current session and serializes every operation
// behind one mutex, so commands and ticks may arrive from different
// goroutines.
type Engine struct {
	mu   sync.Mutex
	clk  clock.Clock
	cfg  Config
	seq  *Sequencer
	ckpt Checkpointer
	cur  Session
	next SessionType
	subs []func(Event)
}

// NewEngine constructs an engine. The clock is injectable so tests can
// advance time deterministically.
func NewEngine(cfg Config, clk clock.Clock) *Engine {
	if clk == nil {
		clk = clock.System
	}
	return &Engine{
		clk:  clk,
		cfg:  cfg,
		seq:  NewSequencer(cfg.LongBreakInterval),
		next: Work,
	}
}

// SetCheckpointer installs the durability sink for state transitions.
func (e *Engine) SetCheckpointer(c Checkpointer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ckpt = c
}

// Subscribe registers an observer for session lifecycle events. Observers
// are invoked synchronously after a transition, outside the engine lock.
func (e *Engine) Subscribe(fn func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, fn)
}

// Current returns a snapshot of the current session. The zero Session
// (state Idle) is returned when nothing has been started.
func (e *Engine) Current() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cur
}

// NextType returns the session type Start would pick if none is given.
func (e *Engine) NextType() SessionType {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.next
}

// PlannedFor returns the configured duration for a session type.
func (e *Engine) PlannedFor(t SessionType) time.Duration {
	return e.cfg.durationFor(t)
}

// Rounds returns completed work sessions since the last long break.
func (e *Engine) Rounds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq.Rounds()
}

// StartOption customizes a Start call.
type StartOption func(*startConfig)

type startConfig struct {
	typ  *SessionType
	dur  *time.Duration
	task string
}

// WithType starts a session of an explicit type instead of the
// sequencer's suggestion.
func WithType(t SessionType) StartOption {
	return func(c *startConfig) { c.typ = &t }
}

// WithDuration overrides the configured planned duration.
func WithDuration(d time.Duration) StartOption {
	return func(c *startConfig) { c.dur = &d }
}

// WithTask associates the session with an external task id. The engine
// never interprets the id; it is echoed in events and history.
func WithTask(id string) StartOption {
	return func(c *startConfig) { c.task = id }
}

// Start creates a new running session. Fails while a session is Running
// or Paused.
func (e *Engine) Start(opts ...StartOption) (Session, error) {
	e.mu.Lock()
	if e.cur.State == Running || e.cur.State == Paused {
		state := e.cur.State
		e.mu.Unlock()
		return Session{}, &InvalidTransitionError{Op: OpStart, State: state}
	}
	var sc startConfig
	for _, opt := range opts {
		opt(&sc)
	}
	typ := e.next
	if sc.typ != nil {
		typ = *sc.typ
	}
	planned := e.cfg.durationFor(typ)
	if sc.dur != nil {
		planned = *sc.dur
	}
	now := e.clk.Now()
	e.cur = Session{
		ID:        uuid.NewString(),
		Type:      typ,
		Planned:   planned,
		StartedAt: now,
		State:     Running,
		TaskID:    sc.task,
	}
	e.persistLocked(now)
	snap := e.cur
	e.mu.Unlock()

	e.publish(Event{Type: EventStarted, Session: snap, At: now})
	return snap, nil
}

// Pause suspends the running session.
func (e *Engine) Pause() (Session, error) {
	e.mu.Lock()
	if e.cur.State != Running {
		state := e.cur.State
		e.mu.Unlock()
		return Session{}, &InvalidTransitionError{Op: OpPause, State: state}
	}
	now := e.clk.Now()
	e.cur.State = Paused
	e.cur.pausedAt = now
	e.persistLocked(now)
	snap := e.cur
	e.mu.Unlock()

	e.publish(Event{Type: EventPaused, Session: snap, At: now})
	return snap, nil
}

// Resume continues a paused session, folding the pause into the
// accumulated pause total.
func (e *Engine) Resume() (Session, error) {
	e.mu.Lock()
	if e.cur.State != Paused {
		state := e.cur.State
		e.mu.Unlock()
		return Session{}, &InvalidTransitionError{Op: OpResume, State: state}
	}
	now := e.clk.Now()
	e.cur.AccumulatedPause += now.Sub(e.cur.pausedAt)
	e.cur.pausedAt = time.Time{}
	e.cur.State = Running
	e.persistLocked(now)
	snap := e.cur
	e.mu.Unlock()

	e.publish(Event{Type: EventResumed, Session: snap, At: now})
	return snap, nil
}

// Stop cancels the session immediately, regardless of remaining time.
func (e *Engine) Stop() (Session, error) {
	e.mu.Lock()
	if e.cur.State != Running && e.cur.State != Paused {
		state := e.cur.State
		e.mu.Unlock()
		return Session{}, &InvalidTransitionError{Op: OpStop, State: state}
	}
	now := e.clk.Now()
	e.finalizeLocked(Cancelled, now)
	if e.ckpt != nil {
		if err := e.ckpt.Clear(); err != nil {
			logErrf("failed to clear recovery checkpoint: %v\n", err)
		}
	}
	snap := e.cur
	e.mu.Unlock()

	e.publish(Event{Type: EventCancelled, Session: snap, At: now})
	return snap, nil
}

// Skip finalizes the session as completed without waiting for the
// remaining time to elapse and advances the sequencer. A skipped work
// session still counts toward the long-break cycle.
func (e *Engine) Skip() (Session, error) {
	e.mu.Lock()
	if e.cur.State != Running && e.cur.State != Paused {
		state := e.cur.State
		e.mu.Unlock()
		return Session{}, &InvalidTransitionError{Op: OpSkip, State: state}
	}
	now := e.clk.Now()
	e.finalizeLocked(Completed, now)
	e.next = e.seq.Advance(e.cur.Type)
	snap := e.cur
	e.mu.Unlock()

	e.publish(Event{Type: EventCompleted, Session: snap, At: now})
	return snap, nil
}

// Tick recomputes remaining time and completes the session once it hits
// zero. Safe to call at display frequency: it never performs I/O, and it
// is a no-op unless the session is Running.
func (e *Engine) Tick(now time.Time) Session {
	e.mu.Lock()
	if e.cur.State != Running || e.cur.Remaining(now) > 0 {
		snap := e.cur
		e.mu.Unlock()
		return snap
	}
	e.cur.State = Completed
	e.cur.EndedAt = now
	e.next = e.seq.Advance(e.cur.Type)
	snap := e.cur
	e.mu.Unlock()

	e.publish(Event{Type: EventCompleted, Session: snap, At: now})
	return snap
}

// Restore reinstalls a checkpointed session. Allowed only while no
// session is active; the session re-enters the state the checkpoint
// recorded. If the planned duration already elapsed, a following Tick
// runs the normal completion path.
func (e *Engine) Restore(cp Checkpoint) (Session, error) {
	e.mu.Lock()
	if e.cur.State == Running || e.cur.State == Paused {
		state := e.cur.State
		e.mu.Unlock()
		return Session{}, &InvalidTransitionError{Op: OpRestore, State: state}
	}
	if cp.State != Running && cp.State != Paused {
		e.mu.Unlock()
		return Session{}, fmt.Errorf("checkpoint state %s is not restorable", cp.State)
	}
	now := e.clk.Now()
	e.cur = cp.session()
	e.persistLocked(now)
	snap := e.cur
	e.mu.Unlock()

	e.publish(Event{Type: EventResumed, Session: snap, At: now})
	return snap, nil
}

// finalizeLocked moves the current session into a terminal state. An open
// pause is folded into the accumulated total first so Elapsed stays fixed
// at the moment the pause began.
func (e *Engine) finalizeLocked(state TimerState, now time.Time) {
	if e.cur.State == Paused {
		e.cur.AccumulatedPause += now.Sub(e.cur.pausedAt)
		e.cur.pausedAt = time.Time{}
	}
	e.cur.State = state
	e.cur.EndedAt = now
}

func (e *Engine) persistLocked(now time.Time) {
	if e.ckpt == nil {
		return
	}
	if err := e.ckpt.Checkpoint(e.cur.checkpoint(now)); err != nil {
		logErrf("failed to write recovery checkpoint: %v\n", err)
	}
}

func (e *Engine) publish(ev Event) {
	e.mu.Lock()
	subs := make([]func(Event), len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
