package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"upscale/internal/deps"
	"upscale/internal/discovery"
	"upscale/internal/faults"
	"upscale/internal/installer"
	"upscale/internal/logging"
	"upscale/internal/preflight"
	"upscale/internal/report"
	"upscale/internal/upscale"
)

func runBatch(cmd *cobra.Command, cmdCtx *commandContext, dir string) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := cmdCtx.runLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return faults.Wrap(faults.ErrEnvironment, "cli", "resolve", dir, err)
	}
	if err := preflight.Err(preflight.RunAll(cfg, runtime.GOOS, root)); err != nil {
		return err
	}

	installed, err := installer.Ensure(ctx, installer.OptionsFromConfig(cfg, runtime.GOOS, logger))
	if err != nil {
		return err
	}
	if installed {
		logger.Info("upscaler installed", logging.String("path", cfg.ToolPath()))
	}
	if err := deps.Require(deps.UpscalerRequirement(cfg.ToolPath())); err != nil {
		return err
	}

	sources, err := discovery.Discover(root, cfg.Discovery.Extensions)
	if err != nil {
		return err
	}
	logger.Info("discovered inputs",
		logging.String("root", root),
		logging.Int("count", len(sources)),
	)

	runner := upscale.New(upscale.SettingsFromConfig(cfg), nil, logger)
	defer func() {
		if removeErr := runner.Lock().Remove(); removeErr != nil {
			logger.Warn("remove tool lock", logging.Error(removeErr))
		}
	}()

	log, err := runner.Run(ctx, sources)
	if err != nil {
		// Interrupted: print no report.
		if ctx.Err() != nil {
			return context.Canceled
		}
		return err
	}

	out := cmd.OutOrStdout()
	return report.Render(out, log, shouldColorize(out))
}
