package main

import (
	"github.com/spf13/cobra"

	"upscale/internal/faults"
)

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "upscale [flags] <dir>",
		Short:         "Upscale every image under a directory with Real-ESRGAN",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return faults.Wrap(faults.ErrConfiguration, "cli", "args", "missing directory argument (see upscale --help)", nil)
			}
			return runBatch(cmd, ctx, args[0])
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configFlag, "config", "c", "", "Configuration file path")
	flags.StringVar(&ctx.overrides.InstallDir, "install-path", "", "Directory holding the upscaler binary and models")
	flags.StringVar(&ctx.overrides.Command, "command", "", "Upscaler binary name or path")
	flags.StringVar(&ctx.overrides.Factor, "factor", "", "Upscale factor label: 4k or 8k")
	flags.StringVar(&ctx.overrides.Model, "model", "", "Model name passed to the upscaler")
	flags.IntVar(&ctx.overrides.Workers, "workers", 0, "Work items dispatched concurrently")
	flags.StringVar(&ctx.overrides.LogLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(newInstallCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
