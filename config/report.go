package config

// DefaultOutput is the report path used when none is configured.
const DefaultOutput = "output.txt"

// ReportConfig controls where the ranked table is published.
type ReportConfig struct {
	Output string `json:"output"`
}

// SetDefaults applies sane defaults.
func (c *ReportConfig) SetDefaults() {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}

// ServeConfig configures the HTTP API.
type ServeConfig struct {
	Addr string `json:"addr"`
	// MaxBodyBytes caps the size of an uploaded mark sheet.
	MaxBodyBytes int64 `json:"max_body_bytes"`
	// Token enables bearer authentication on the API routes.
	Token string `json:"token"`
}

// SetDefaults applies sane defaults.
func (c *ServeConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20
	}
}
