// Package format renders durations for display at a selectable precision.
package format

import (
	"fmt"
	"time"
)

// Precision selects the fractional-second granularity of formatted output.
type Precision int

const (
	// Seconds renders MM:SS, truncated to whole seconds.
	Seconds Precision = iota
	// Tenths renders MM:SS.T.
	Tenths
	// Hundredths renders MM:SS.HH.
	Hundredths
)

// String returns the config/flag spelling of the precision.
func (p Precision) String() string {
	switch p {
	case Tenths:
		return "tenths"
	case Hundredths:
		return "hundredths"
	default:
		return "seconds"
	}
}

// ParsePrecision converts a config/flag value into a Precision.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "seconds":
		return Seconds, nil
	case "tenths":
		return Tenths, nil
	case "hundredths":
		return Hundredths, nil
	}
	return Seconds, fmt.Errorf("unknown precision %q (expected seconds, tenths, or hundredths)", s)
}

// TickInterval returns how often a display driven at this precision
// should refresh.
func (p Precision) TickInterval() time.Duration {
	switch p {
	case Tenths:
		return 100 * time.Millisecond
	case Hundredths:
		return 16 * time.Millisecond
	default:
		return 250 * time.Millisecond
	}
}

// Duration formats d at the given precision. Negative durations are
// clamped to zero. Minutes are total whole minutes and are not wrapped
// at 60, so an 90-minute duration renders as "90:00".
func Duration(d time.Duration, p Precision) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	mins := ms / 60_000
	rem := ms % 60_000
	secs := rem / 1_000
	frac := rem % 1_000
	switch p {
	case Tenths:
		return fmt.Sprintf("%02d:%02d.%d", mins, secs, frac/100)
	case Hundredths:
		return fmt.Sprintf("%02d:%02d.%02d", mins, secs, frac/10)
	default:
		return fmt.Sprintf("%02d:%02d", mins, secs)
	}
}
