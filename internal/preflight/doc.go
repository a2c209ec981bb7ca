// Package preflight provides readiness checks for the filesystem paths and
// external tools a run depends on.
//
// The CLI "autosplit check" command prints every check; the audio and length
// commands run them before starting so a missing tool or unwritable output
// directory fails fast instead of after minutes of decoding.
package preflight
