package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTool()
	c.normalizeDiscovery()
	c.normalizeInstall()
	return c.normalizeLogging()
}

// applyEnv layers UPSCALE_* variables over file values. Flags are applied by
// the CLI afterwards and win over both.
func (c *Config) applyEnv() {
	if value, ok := lookupEnv(EnvInstallPath); ok {
		c.Paths.InstallDir = value
	}
	if value, ok := lookupEnv(EnvCommand); ok {
		c.Tool.Command = value
	}
	if value, ok := lookupEnv(EnvFactor); ok {
		c.Tool.Factor = value
	}
	if value, ok := lookupEnv(EnvModel); ok {
		c.Tool.Model = value
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InstallDir) == "" {
		c.Paths.InstallDir = defaultInstallDir
	}
	if c.Paths.InstallDir, err = expandPath(c.Paths.InstallDir); err != nil {
		return fmt.Errorf("paths.install_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LockPath) == "" {
		c.Paths.LockPath = filepath.Join(os.TempDir(), lockFileName)
	}
	if c.Paths.LockPath, err = expandPath(c.Paths.LockPath); err != nil {
		return fmt.Errorf("paths.lock_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeTool() {
	c.Tool.Command = strings.TrimSpace(c.Tool.Command)
	if c.Tool.Command == "" {
		c.Tool.Command = defaultCommand
	}
	c.Tool.Model = strings.TrimSpace(c.Tool.Model)
	if c.Tool.Model == "" {
		c.Tool.Model = defaultModel
	}
	c.Tool.Factor = NormalizeFactor(c.Tool.Factor)
	if c.Tool.Factor == "" {
		c.Tool.Factor = defaultFactor
	}
}

// NormalizeFactor lower-cases and trims a factor value. It does not validate.
func NormalizeFactor(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func (c *Config) normalizeDiscovery() {
	if len(c.Discovery.Extensions) == 0 {
		c.Discovery.Extensions = defaultExtensions()
		return
	}
	c.Discovery.Extensions = NormalizeExtensions(c.Discovery.Extensions)
}

// NormalizeExtensions lower-cases, dots, and de-duplicates an extension list.
func NormalizeExtensions(values []string) []string {
	exts := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" || normalized == "." {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	return exts
}

func (c *Config) normalizeInstall() {
	c.Install.BaseURL = strings.TrimRight(strings.TrimSpace(c.Install.BaseURL), "/")
	if c.Install.BaseURL == "" {
		c.Install.BaseURL = defaultInstallBaseURL
	}
	checksums := make(map[string]string, len(c.Install.Checksums))
	for name, digest := range c.Install.Checksums {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		checksums[name] = strings.ToLower(strings.TrimSpace(digest))
	}
	c.Install.Checksums = checksums
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		var err error
		if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}
