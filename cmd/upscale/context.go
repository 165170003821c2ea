package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"upscale/internal/config"
	"upscale/internal/faults"
	"upscale/internal/logging"
)

type commandContext struct {
	configFlag string
	overrides  config.Overrides

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = faults.Wrap(faults.ErrConfiguration, "config", "load", "", err)
			return
		}
		if err := cfg.Apply(c.overrides); err != nil {
			c.configErr = faults.Wrap(faults.ErrConfiguration, "config", "flags", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// runLogger builds the logger for one invocation, tagged with a fresh run id.
func (c *commandContext) runLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg, w)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "logging", "init", "", err)
	}
	return logger.With(logging.String(logging.FieldRunID, uuid.NewString())), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
