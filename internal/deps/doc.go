// Package deps checks that the external command line tools autosplit shells
// out to can be found on PATH.
package deps
