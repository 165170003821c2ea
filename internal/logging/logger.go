package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"upscale/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// File, when set, receives every line in addition to Writer.
	File   string
	Writer io.Writer
}

// New constructs a slog logger writing console or json lines.
func New(opts Options) (*slog.Logger, error) {
	w, err := openOutput(opts.Writer, opts.File)
	if err != nil {
		return nil, err
	}
	level := parseLevel(opts.Level)

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		return slog.New(newConsoleHandler(w, level)), nil
	case "json":
		return slog.New(newJSONHandler(w, level)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}
}

// NewFromConfig creates a logger from the [logging] section. Lines go to w
// (stderr when nil) so stdout stays reserved for the report.
func NewFromConfig(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	if cfg == nil {
		return New(Options{Writer: w})
	}
	return New(Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
		Writer: w,
	})
}

// parseLevel accepts slog's level names in any case; anything else is info.
func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func openOutput(w io.Writer, file string) (io.Writer, error) {
	if w == nil {
		w = os.Stderr
	}
	file = strings.TrimSpace(file)
	if file == "" {
		return w, nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", file, err)
	}
	return io.MultiWriter(w, f), nil
}

func newJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return attr
			}
			switch attr.Key {
			case slog.TimeKey:
				return slog.String("ts", attr.Value.Time().UTC().Format(time.RFC3339))
			case slog.LevelKey:
				return slog.String(slog.LevelKey, strings.ToLower(attr.Value.String()))
			}
			return attr
		},
	})
}
