package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .gpumon.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval is the poll cadence for hardware samples.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Backend selects the telemetry source: "auto", "mock", "nvidia", or "amd".
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:  CurrentConfigVersion,
		Interval: 500 * time.Millisecond,
		Backend:  "auto",
		Color:    "auto",
	}
}
