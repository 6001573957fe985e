// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Timer TimerConfig `toml:"timer"`
}

// TimerConfig maps timer-related settings. Durations use Go duration
// syntax ("25m", "1h30m").
type TimerConfig struct {
	Work              *string `toml:"work"`
	ShortBreak        *string `toml:"short-break"`
	LongBreak         *string `toml:"long-break"`
	LongBreakInterval *int    `toml:"long-break-interval"`
	Precision         *string `toml:"precision"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ParseDurationValue parses a duration config value, naming the key in
// errors so the user can find the offending line.
func ParseDurationValue(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %q", key, value)
	}
	return d, nil
}
