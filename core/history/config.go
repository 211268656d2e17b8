package history

import "fmt"

// Config defines settings for run history storage and rotation.
type Config struct {
	// Backend selects the store type: "jsonl", "sqlite", "postgres" or "none".
	Backend string `json:"backend"`
	// Path is the file location of the jsonl or sqlite store.
	Path string `json:"path"`
	// DSN is the PostgreSQL connection string.
	DSN string `json:"dsn"`
	// MaxSizeMB enables rotation of the jsonl store when positive.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "jsonl"
	}
	if c.Path == "" {
		switch c.Backend {
		case "sqlite":
			c.Path = "markbook.db"
		default:
			c.Path = "markbook-runs.jsonl"
		}
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Backend {
	case "jsonl", "sqlite":
		if c.Path == "" {
			return fmt.Errorf("history path is required")
		}
	case "postgres":
		if c.DSN == "" {
			return fmt.Errorf("history dsn is required for postgres")
		}
	case "none":
	default:
		return fmt.Errorf("unknown history backend %s", c.Backend)
	}
	return nil
}

// New opens the store selected by cfg.
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "jsonl":
		if cfg.MaxSizeMB > 0 {
			return NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
		}
		return NewJSONLStore(cfg.Path)
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	case "postgres":
		return NewSQLStore("pgx", cfg.DSN)
	case "none":
		return NopStore{}, nil
	}
	return nil, fmt.Errorf("unknown history backend %s", cfg.Backend)
}
