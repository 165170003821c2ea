// Package logging assembles structured slog loggers and formatting helpers used
// across upscale components.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so runner code tags log lines with
// the same field names everywhere. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
package logging
