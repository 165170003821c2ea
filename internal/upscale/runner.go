package upscale

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"upscale/internal/config"
	"upscale/internal/logging"
)

// Settings carries the runner's view of the configuration.
type Settings struct {
	ToolPath     string
	InstallDir   string
	Model        string
	Factor       string
	Workers      int
	LockPath     string
	PollInterval time.Duration
	LockTimeout  time.Duration
}

// SettingsFromConfig extracts runner settings from a loaded config.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		ToolPath:     cfg.ToolPath(),
		InstallDir:   cfg.Paths.InstallDir,
		Model:        cfg.Tool.Model,
		Factor:       cfg.Tool.Factor,
		Workers:      cfg.Runner.Workers,
		LockPath:     cfg.Paths.LockPath,
		PollInterval: cfg.PollInterval(),
		LockTimeout:  cfg.LockTimeout(),
	}
}

type commandLiner interface {
	CommandLine(input, output string) string
}

// Runner dispatches work items concurrently while the tool lock keeps at most
// one tool invocation running at any instant.
type Runner struct {
	settings Settings
	tool     Upscaler
	lock     *ToolLock
	logger   *slog.Logger
}

// New builds a runner. A nil tool defaults to the CLI upscaler at
// settings.ToolPath, run inside settings.InstallDir.
func New(settings Settings, tool Upscaler, logger *slog.Logger) *Runner {
	if settings.Workers < 1 {
		settings.Workers = 1
	}
	if tool == nil {
		tool = NewCLI(settings.ToolPath, settings.Model, WithDir(settings.InstallDir))
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		settings: settings,
		tool:     tool,
		lock:     NewToolLock(settings.LockPath, settings.PollInterval, settings.LockTimeout),
		logger:   logging.NewComponentLogger(logger, "runner"),
	}
}

// Lock exposes the runner's tool lock so callers can clean it up on interrupt.
func (r *Runner) Lock() *ToolLock {
	return r.lock
}

// Run processes every source and returns the outcome log. Per-item failures
// are recorded, not returned. The only error is ctx's, in which case the log
// holds whatever finished before cancellation.
func (r *Runner) Run(ctx context.Context, sources []string) (*Log, error) {
	log := NewLog()
	started := time.Now()

	g := new(errgroup.Group)
	g.SetLimit(r.settings.Workers)
	for _, source := range sources {
		if ctx.Err() != nil {
			break
		}
		item := NewWorkItem(source, r.settings.Model, r.settings.Factor)
		g.Go(func() error {
			r.Process(ctx, item, log)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return log, err
	}

	counts := log.Counts()
	r.logger.Info("run complete",
		logging.Int("success", counts.Success),
		logging.Int("failed", counts.Failed),
		logging.Int("skipped", counts.Skipped),
		logging.Duration("elapsed", time.Since(started)),
	)
	return log, nil
}

// Process classifies a single item, invoking the tool under the lock unless an
// earlier output lets it be skipped.
func (r *Runner) Process(ctx context.Context, item WorkItem, log *Log) {
	if outcome, skip := Precheck(item); skip {
		r.logger.Debug("output already present",
			logging.String(logging.FieldFile, item.Source),
			logging.String(logging.FieldOutput, item.Output),
			logging.Int64("size_kb", outcome.SizeKB),
		)
		log.Append(outcome)
		return
	}
	if ctx.Err() != nil {
		return
	}

	release, err := r.lock.Acquire(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, ErrLockTimeout) {
			r.logger.Debug("tool lock wait exceeded",
				logging.String(logging.FieldFile, item.Source),
				logging.Error(err),
			)
		} else {
			r.logger.Warn("tool lock unavailable",
				logging.String(logging.FieldFile, item.Source),
				logging.Error(err),
			)
		}
		log.Append(Failed(item.Source))
		return
	}

	r.logger.Info("upscaling", logging.String(logging.FieldFile, item.Source))
	if cl, ok := r.tool.(commandLiner); ok {
		r.logger.Debug("tool command", logging.String("command", cl.CommandLine(item.Source, item.Output)))
	}
	invokeErr := r.tool.Upscale(ctx, item.Source, item.Output)
	if err := release(); err != nil {
		r.logger.Warn("release tool lock", logging.Error(err))
	}

	if ctx.Err() != nil {
		return
	}
	outcome := Complete(item, invokeErr)
	if outcome.Kind == KindFailed {
		r.logger.Debug("upscale failed",
			logging.String(logging.FieldFile, item.Source),
			logging.Error(invokeErr),
		)
	}
	log.Append(outcome)
}
