// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// Key types:
//   - Result: parsed ffprobe chapter output
//   - Chapter: one chapter marker with its start time and title tag
//
// Inspect executes ffprobe and returns the parsed Result; Parse decodes an
// already captured JSON document.
package ffprobe
