package testsupport

import (
	"path/filepath"
	"testing"

	"upscale/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Lock polling is shortened so serialized runs finish quickly.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InstallDir = filepath.Join(base, "tool")
	cfgVal.Paths.LockPath = filepath.Join(base, "tool.lock")
	cfgVal.Runner.PollIntervalMillis = 5
	cfgVal.Runner.Workers = 4

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStubTool installs a stub upscaler into the config's install directory.
func WithStubTool() ConfigOption {
	return func(b *configBuilder) {
		b.t.Helper()
		WriteStubTool(b.t, b.cfg.Paths.InstallDir, b.cfg.Tool.Command)
	}
}

// WithWorkers overrides the dispatch width.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Runner.Workers = n
	}
}
