// Package logging assembles structured slog loggers and formatting helpers used
// across autosplit.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes a run-ID context helper so every line of one analysis
// can be correlated. The package also provides a no-op logger for tests and a
// progress sampler that keeps per-chapter progress from flooding log files.
package logging
