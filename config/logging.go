package config

import "github.com/rs/zerolog"

// LoggingConfig selects the minimum level of emitted log lines.
type LoggingConfig struct {
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks that Level is a zerolog level name.
func (c LoggingConfig) Validate() error {
	_, err := zerolog.ParseLevel(c.Level)
	return err
}
