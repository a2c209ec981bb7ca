// Package mkvtoolnix mediates access to the MKVToolNix command line tools.
//
// mkvextract supplies the chapter table of a container as XML and mkvmerge
// performs the chapter split once an episode plan has been accepted. Command
// execution goes through an Executor so tests can replace the real binaries,
// and splits hold an advisory file lock on the target so two runs never write
// the same output concurrently.
package mkvtoolnix
