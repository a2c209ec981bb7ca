// Command autosplit proposes chapter-based split points for MKV files that
// hold several episodes back to back.
//
// Subcommands:
//   - audio: detect a recurring intro by fingerprinting chapter openings
//   - length: detect recurring chapters of the same length
//   - check: report tool availability and file access
//   - config init|validate: manage the TOML configuration
//
// Run without a subcommand to choose a mode interactively.
package main
