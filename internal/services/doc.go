// Package services holds the clients for the external tools autosplit
// delegates to, plus the shared error markers they tag failures with.
//
// Wrap annotates a tool failure with the tool and operation and classifies
// it (missing binary, timeout, validation, generic tool error); Hint turns
// that classification into operator guidance for the CLI.
package services
