package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTool(); err != nil {
		return err
	}
	if err := c.validateDiscovery(); err != nil {
		return err
	}
	if err := c.validateRunner(); err != nil {
		return err
	}
	return nil
}

// ValidateFactor reports whether value names a supported upscale factor,
// ignoring case.
func ValidateFactor(value string) error {
	switch NormalizeFactor(value) {
	case Factor4K, Factor8K:
		return nil
	default:
		return fmt.Errorf("tool.factor: unsupported value %q (want %s or %s)", value, Factor4K, Factor8K)
	}
}

func (c *Config) validateTool() error {
	if err := ValidateFactor(c.Tool.Factor); err != nil {
		return err
	}
	if strings.TrimSpace(c.Tool.Model) == "" {
		return errors.New("tool.model must be set")
	}
	if strings.TrimSpace(c.Tool.Command) == "" {
		return errors.New("tool.command must be set")
	}
	if strings.TrimSpace(c.Paths.InstallDir) == "" {
		return errors.New("paths.install_dir must be set")
	}
	return nil
}

func (c *Config) validateDiscovery() error {
	if len(c.Discovery.Extensions) == 0 {
		return errors.New("discovery.extensions must include at least one extension")
	}
	return nil
}

func (c *Config) validateRunner() error {
	if err := ensurePositiveMap(map[string]int{
		"runner.workers":          c.Runner.Workers,
		"runner.poll_interval_ms": c.Runner.PollIntervalMillis,
	}); err != nil {
		return err
	}
	if c.Runner.LockTimeoutSeconds < 0 {
		return errors.New("runner.lock_timeout_seconds must be >= 0")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
