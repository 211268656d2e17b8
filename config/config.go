package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/markbook/core/grading"
	"github.com/kilianp07/markbook/core/history"
	"github.com/kilianp07/markbook/core/metrics"
)

type Config struct {
	Grading    grading.Config           `json:"grading"`
	Validation grading.ValidationConfig `json:"validation"`
	Report     ReportConfig             `json:"report"`
	History    history.Config           `json:"history"`
	Metrics    metrics.Config           `json:"metrics"`
	Logging    LoggingConfig            `json:"logging"`
	Sentry     SentryConfig             `json:"sentry"`
	Serve      ServeConfig              `json:"serve"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Grading: grading.Config{Thresholds: grading.DefaultThresholds()}}
	cfg.setDefaults()
	return cfg
}

// Load reads path (yaml or json) on top of the defaults, then applies K_
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	c.Grading.SetDefaults()
	c.Report.SetDefaults()
	c.History.SetDefaults()
	c.Logging.SetDefaults()
	c.Serve.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Grading.Validate(); err != nil {
		return fmt.Errorf("grading: %w", err)
	}
	if err := c.History.Validate(); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
