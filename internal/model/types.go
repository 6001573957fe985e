// Package model defines shared data structures.
package model

import "time"

// Outcome values for persisted session summaries.
const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
)

// SessionSummary captures a finished session for history and stats.
// Durations are stored in milliseconds.
type SessionSummary struct {
	ID        string
	Type      string
	TaskID    string
	Outcome   string
	PlannedMs int64
	ElapsedMs int64
	StartedAt time.Time
	EndedAt   time.Time
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Type  string
	Since *time.Time
	Last  int
}
