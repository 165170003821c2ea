// Package config loads, normalizes, and validates upscale configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// UPSCALE_FACTOR. The Config type centralizes every knob the runner and CLI
// need, so the external tool location, model, factor, and dispatch settings
// are resolved in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, lower-cased factors and extensions, and clear validation
// errors.
package config
