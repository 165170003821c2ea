package config

import (
	"fmt"
	"strings"
)

// Overrides carries command-line values. Empty strings and zero counts leave
// the loaded value untouched.
type Overrides struct {
	InstallDir string
	Command    string
	Factor     string
	Model      string
	Workers    int
	LogLevel   string
}

// Apply layers o over c and re-validates. Call it after Load so flags win
// over both the file and the environment.
func (c *Config) Apply(o Overrides) error {
	if value := strings.TrimSpace(o.InstallDir); value != "" {
		expanded, err := expandPath(value)
		if err != nil {
			return fmt.Errorf("install path: %w", err)
		}
		c.Paths.InstallDir = expanded
	}
	if value := strings.TrimSpace(o.Command); value != "" {
		c.Tool.Command = value
	}
	if value := strings.TrimSpace(o.Factor); value != "" {
		c.Tool.Factor = NormalizeFactor(value)
	}
	if value := strings.TrimSpace(o.Model); value != "" {
		c.Tool.Model = value
	}
	if o.Workers != 0 {
		c.Runner.Workers = o.Workers
	}
	if value := strings.TrimSpace(o.LogLevel); value != "" {
		c.Logging.Level = strings.ToLower(value)
	}
	return c.Validate()
}
