package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"upscale/internal/installer"
)

func newInstallCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download and unpack the upscaler for this platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.runLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := installer.OptionsFromConfig(cfg, runtime.GOOS, logger)
			installed := true
			if force {
				err = installer.Install(runCtx, opts)
			} else {
				installed, err = installer.Ensure(runCtx, opts)
			}
			if err != nil {
				if runCtx.Err() != nil {
					return context.Canceled
				}
				return err
			}

			out := cmd.OutOrStdout()
			if !installed {
				fmt.Fprintf(out, "Upscaler already present at %s (use --force to reinstall)\n", opts.ToolPath)
				return nil
			}
			fmt.Fprintln(out, renderOKLine(fmt.Sprintf("Installed upscaler to %s", opts.ToolPath), shouldColorize(out)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Reinstall even if the binary is present")
	return cmd
}
