package timer

import "fmt"

// Op names an engine operation for error reporting.
type Op string

const (
	OpStart   Op = "start"
	OpPause   Op = "pause"
	OpResume  Op = "resume"
	OpStop    Op = "stop"
	OpSkip    Op = "skip"
	OpRestore Op = "restore"
)

// InvalidTransitionError reports an operation invoked against a state
// that does not allow it. The state machine is left unchanged.
type InvalidTransitionError struct {
	Op    Op
	State TimerState
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a session in state %s", e.Op, e.State)
}
