// Package config loads, normalizes, and validates autosplit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the AUTOSPLIT_LOG_LEVEL
// environment override. The Config type centralizes the external tool names,
// fingerprint window, similarity thresholds, and duration tolerance so the
// CLI and the detection pipeline read every knob from one place.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
