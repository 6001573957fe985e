package format

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		name      string
		d         time.Duration
		precision Precision
		want      string
	}{
		{"whole seconds", 65 * time.Second, Seconds, "01:05"},
		{"tenths", 65_340 * time.Millisecond, Tenths, "01:05.3"},
		{"hundredths zero", 0, Hundredths, "00:00.00"},
		{"hundredths padded", 5_010 * time.Millisecond, Hundredths, "00:05.01"},
		{"seconds truncate not round", 999 * time.Millisecond, Seconds, "00:00"},
		{"negative clamped", -3 * time.Second, Seconds, "00:00"},
		{"negative clamped tenths", -time.Second, Tenths, "00:00.0"},
		{"over an hour no wraparound", 90 * time.Minute, Seconds, "90:00"},
		{"over an hour with remainder", 61*time.Minute + 2*time.Second + 500*time.Millisecond, Tenths, "61:02.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Duration(tt.d, tt.precision)
			if got != tt.want {
				t.Fatalf("Duration(%v, %v) = %q, want %q", tt.d, tt.precision, got, tt.want)
			}
		})
	}
}

func TestParsePrecisionRoundTrip(t *testing.T) {
	for _, p := range []Precision{Seconds, Tenths, Hundredths} {
		parsed, err := ParsePrecision(p.String())
		if err != nil {
			t.Fatalf("ParsePrecision(%q) returned error: %v", p.String(), err)
		}
		if parsed != p {
			t.Fatalf("ParsePrecision(%q) = %v, want %v", p.String(), parsed, p)
		}
	}
}

func TestParsePrecisionUnknown(t *testing.T) {
	if _, err := ParsePrecision("nanoseconds"); err == nil {
		t.Fatalf("expected error for unknown precision")
	}
}
