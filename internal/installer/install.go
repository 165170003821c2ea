package installer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter"

	"upscale/internal/config"
	"upscale/internal/faults"
	"upscale/internal/logging"
)

// Options describes one installation.
type Options struct {
	BaseURL    string
	InstallDir string
	// ToolPath is the binary expected once the archive is unpacked.
	ToolPath  string
	GOOS      string
	Checksums map[string]string
	Logger    *slog.Logger
}

// OptionsFromConfig builds installer options for goos.
func OptionsFromConfig(cfg *config.Config, goos string, logger *slog.Logger) Options {
	return Options{
		BaseURL:    cfg.Install.BaseURL,
		InstallDir: cfg.Paths.InstallDir,
		ToolPath:   cfg.ToolPath(),
		GOOS:       goos,
		Checksums:  cfg.Install.Checksums,
		Logger:     logger,
	}
}

// Ensure installs the tool unless its binary is already present. It reports
// whether an install happened.
func Ensure(ctx context.Context, opts Options) (bool, error) {
	if info, err := os.Stat(opts.ToolPath); err == nil && info.Mode().IsRegular() {
		return false, nil
	}
	if err := Install(ctx, opts); err != nil {
		return false, err
	}
	return true, nil
}

// Install downloads the platform archive, verifies it and unpacks it into
// the install directory, overwriting files already there.
func Install(ctx context.Context, opts Options) error {
	logger := logging.NewComponentLogger(opts.Logger, "installer")

	archive, err := ArchiveFor(opts.GOOS)
	if err != nil {
		return err
	}
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return faults.Wrap(faults.ErrConfiguration, "installer", "download", "install.base_url is empty", nil)
	}

	tempDir, err := os.MkdirTemp("", "upscale-install-*")
	if err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	downloaded := filepath.Join(tempDir, archive)
	source := base + "/" + archive + "?archive=false"
	logger.Info("downloading tool", logging.String("archive", archive), logging.String("source", base))

	client := &getter.Client{
		Ctx:  ctx,
		Src:  source,
		Dst:  downloaded,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return faults.Wrap(faults.ErrEnvironment, "installer", "download", archive, err)
	}

	if err := Verify(downloaded, archive, opts.Checksums); err != nil {
		return err
	}

	if err := os.MkdirAll(opts.InstallDir, 0o755); err != nil {
		return faults.Wrap(faults.ErrEnvironment, "installer", "extract", "create install directory", err)
	}
	if err := (&getter.ZipDecompressor{}).Decompress(opts.InstallDir, downloaded, true, 0); err != nil {
		return faults.Wrap(faults.ErrEnvironment, "installer", "extract", archive, err)
	}

	if err := os.Chmod(opts.ToolPath, 0o755); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return faults.Wrap(faults.ErrEnvironment, "installer", "extract",
				fmt.Sprintf("%s does not contain %s", archive, filepath.Base(opts.ToolPath)), nil)
		}
		return faults.Wrap(faults.ErrEnvironment, "installer", "extract", "mark tool executable", err)
	}

	logger.Info("tool installed", logging.String("path", opts.ToolPath))
	return nil
}
