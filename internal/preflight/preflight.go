package preflight

import (
	"path/filepath"

	"autosplit/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks for one run. source may be empty
// when no container has been chosen yet.
func RunAll(cfg *config.Config, source string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	if source != "" {
		results = append(results, CheckSourceFile("Source container", source))
		// mkvmerge writes the split next to the source.
		results = append(results, CheckDirectoryAccess("Output directory", filepath.Dir(source)))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
