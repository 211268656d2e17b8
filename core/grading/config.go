package grading

import "fmt"

// Config defines grading behaviour.
type Config struct {
	// Rounding selects how the overall mark is rounded: "half_even" (default)
	// or "half_away".
	Rounding   string     `json:"rounding"`
	Thresholds Thresholds `json:"thresholds"`
}

// Thresholds are the inclusive lower bounds of each band. AutoFail is the
// raw mark below which either component forces a fail. A zero band bound or
// a nil AutoFail takes its default; an explicit AutoFail of 0 disables the
// override.
type Thresholds struct {
	AutoFail *int `json:"auto_fail,omitempty"`
	First    int  `json:"first"`
	Second   int  `json:"second"`
	Third    int  `json:"third"`
}

const (
	defaultAutoFail = 33
	defaultFirst    = 70
	defaultSecond   = 50
	defaultThird    = 40
)

// DefaultThresholds returns the standard classification bounds.
func DefaultThresholds() Thresholds {
	return Thresholds{AutoFail: AutoFail(defaultAutoFail), First: defaultFirst, Second: defaultSecond, Third: defaultThird}
}

// AutoFail returns a pointer to mark for use in Thresholds.
func AutoFail(mark int) *int { return &mark }

// AutoFailMark returns the effective automatic fail threshold.
func (t Thresholds) AutoFailMark() int {
	if t.AutoFail == nil {
		return defaultAutoFail
	}
	return *t.AutoFail
}

// SetDefaults applies defaults to unset fields.
func (c *Config) SetDefaults() {
	if c.Rounding == "" {
		c.Rounding = string(RoundHalfEven)
	}
	t := &c.Thresholds
	if t.AutoFail == nil {
		t.AutoFail = AutoFail(defaultAutoFail)
	}
	if t.First == 0 {
		t.First = defaultFirst
	}
	if t.Second == 0 {
		t.Second = defaultSecond
	}
	if t.Third == 0 {
		t.Third = defaultThird
	}
}

// Validate checks that the rounding mode is known and the bands are ordered.
func (c Config) Validate() error {
	if _, err := ParseRoundingMode(c.Rounding); err != nil {
		return err
	}
	t := c.Thresholds
	if !(t.First > t.Second && t.Second > t.Third) {
		return fmt.Errorf("thresholds must satisfy first > second > third, got %d/%d/%d", t.First, t.Second, t.Third)
	}
	if t.AutoFailMark() < 0 {
		return fmt.Errorf("auto_fail threshold must not be negative")
	}
	return nil
}

// ValidationConfig enables the strict dataset checks. All checks are off by
// default so that loosely formed sheets are graded as-is.
type ValidationConfig struct {
	// StrictCount rejects datasets whose row count differs from the header.
	StrictCount bool `json:"strict_count"`
	// StrictRange rejects marks outside 0-100 and weights outside 0-100.
	StrictRange bool `json:"strict_range"`
	// UniqueRegNo rejects duplicate registration numbers.
	UniqueRegNo bool `json:"unique_reg_no"`
}

// Enabled reports whether any check is switched on.
func (c ValidationConfig) Enabled() bool {
	return c.StrictCount || c.StrictRange || c.UniqueRegNo
}
