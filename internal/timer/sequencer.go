package timer

// Sequencer decides which session type follows a completed one. Every
// interval-th completed work session is followed by a long break instead
// of a short one; breaks are always followed by work.
type Sequencer struct {
	interval int
	rounds   int
}

// NewSequencer returns a sequencer with the given long-break interval.
// Intervals below 1 are treated as 1.
func NewSequencer(longBreakInterval int) *Sequencer {
	if longBreakInterval < 1 {
		longBreakInterval = 1
	}
	return &Sequencer{interval: longBreakInterval}
}

// Rounds returns the number of completed work sessions since the last
// long break.
func (q *Sequencer) Rounds() int {
	return q.rounds
}

// Advance records the completion of a session and returns the suggested
// next type. A completed work session increments the round counter; the
// counter resets as soon as it triggers a long break. Custom sessions do
// not participate in the cycle and suggest work next.
func (q *Sequencer) Advance(completed SessionType) SessionType {
	switch completed {
	case Work:
		q.rounds++
		if q.rounds%q.interval == 0 {
			q.rounds = 0
			return LongBreak
		}
		return ShortBreak
	case ShortBreak, LongBreak:
		return Work
	default:
		return Work
	}
}
