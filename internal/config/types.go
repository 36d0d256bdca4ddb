// Package config handles configuration loading and defaults.
package config

// Default values.
const (
	DefaultSaveFile  = "~/.rd"
	DefaultTimeOfDay = "8am"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for rd.
type Config struct {
	// SaveFile is the path of the reminder file.
	SaveFile string `toml:"save_file"`

	// DefaultTime is the time-of-day assumed for due expressions without
	// an @-suffix.
	DefaultTime string `toml:"default_time"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
}
