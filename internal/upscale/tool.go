package upscale

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"

	"github.com/kballard/go-shellquote"

	"upscale/internal/faults"
)

var commandContext = exec.CommandContext

// Upscaler produces output from input. Implementations must block until the
// work is finished.
type Upscaler interface {
	Upscale(ctx context.Context, input, output string) error
}

// Option configures the CLI upscaler.
type Option func(*CLI)

// WithDir overrides the working directory the tool runs in.
func WithDir(dir string) Option {
	return func(c *CLI) {
		if dir != "" {
			c.dir = dir
		}
	}
}

// CLI invokes the realesrgan-ncnn-vulkan style binary.
type CLI struct {
	binary string
	model  string
	dir    string
}

// NewCLI constructs a CLI upscaler. The tool runs inside the directory that
// holds the binary unless WithDir says otherwise, because it loads its models
// through relative paths.
func NewCLI(binary, model string, opts ...Option) *CLI {
	cli := &CLI{binary: binary, model: model, dir: filepath.Dir(binary)}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Args returns the fixed, non-interactive argument list for one invocation.
func (c *CLI) Args(input, output string) []string {
	return []string{"-n", c.model, "-v", "-x", "-f", OutputFormat, "-i", input, "-o", output}
}

// CommandLine renders one invocation as a shell-quoted string for logs.
func (c *CLI) CommandLine(input, output string) string {
	return shellquote.Join(append([]string{c.binary}, c.Args(input, output)...)...)
}

// Upscale runs the tool once. Its stdout and stderr are discarded; only the
// exit status matters. The working directory is set on the child process, so
// the caller's directory never changes.
func (c *CLI) Upscale(ctx context.Context, input, output string) error {
	if c.binary == "" {
		return errors.New("upscaler binary not configured")
	}
	cmd := commandContext(ctx, c.binary, c.Args(input, output)...) //nolint:gosec
	cmd.Dir = c.dir
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		return faults.Wrap(faults.ErrExternalTool, "upscaler", "invoke", filepath.Base(input), err)
	}
	return nil
}

var _ Upscaler = (*CLI)(nil)
