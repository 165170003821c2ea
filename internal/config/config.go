package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains filesystem locations used by the runner.
type Paths struct {
	InstallDir string `toml:"install_dir"`
	LockPath   string `toml:"lock_path"`
}

// Tool describes the external super-resolution binary and how it is invoked.
type Tool struct {
	Command string `toml:"command"`
	Model   string `toml:"model"`
	Factor  string `toml:"factor"`
}

// Discovery controls which files under the scan root become work items.
type Discovery struct {
	Extensions []string `toml:"extensions"`
}

// Runner contains dispatch and tool-lock settings.
type Runner struct {
	// Workers is the number of work items dispatched concurrently. Tool
	// invocations stay serialized by the tool lock regardless of this value.
	Workers            int `toml:"workers"`
	PollIntervalMillis int `toml:"poll_interval_ms"`
	// LockTimeoutSeconds bounds the wait for the tool lock. Zero waits forever.
	LockTimeoutSeconds int `toml:"lock_timeout_seconds"`
}

// Install contains settings for fetching the external tool archive.
// Checksums ships empty; only archives listed there are verified.
type Install struct {
	BaseURL   string            `toml:"base_url"`
	Checksums map[string]string `toml:"checksums"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for upscale.
//
// Configuration sections by subsystem:
//   - Paths: tool install directory and lock file location
//   - Tool: external binary name, model, and upscale factor
//   - Discovery: input extension allow-list
//   - Runner: dispatch width, lock polling, and lock timeout
//   - Install: release archive base URL and known digests
//   - Logging: log format, level, and optional file
type Config struct {
	Paths     Paths     `toml:"paths"`
	Tool      Tool      `toml:"tool"`
	Discovery Discovery `toml:"discovery"`
	Runner    Runner    `toml:"runner"`
	Install   Install   `toml:"install"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/upscale/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("upscale.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// ToolPath resolves the executable the runner invokes. A command containing a
// path separator is used as given; a bare name lives inside the install directory.
func (c *Config) ToolPath() string {
	command := strings.TrimSpace(c.Tool.Command)
	if strings.ContainsRune(command, '/') || strings.ContainsRune(command, filepath.Separator) {
		return command
	}
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(command), ".exe") {
		command += ".exe"
	}
	return filepath.Join(c.Paths.InstallDir, command)
}

// PollInterval returns the fixed backoff between tool lock attempts.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Runner.PollIntervalMillis) * time.Millisecond
}

// LockTimeout returns the maximum tool lock wait; zero means unbounded.
func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.Runner.LockTimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
