// Package main hosts the upscale CLI entrypoint and command graph.
//
// The root command scans a directory and runs every matching image through
// the external upscaler, printing per-outcome tables when the run finishes.
// Subcommands install the tool and scaffold configuration. Configuration
// resolution and logger setup live here so the internal packages stay free
// of flag handling.
package main
