package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"autosplit/internal/config"
	"autosplit/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSourceFile verifies that path is a readable regular file.
func CheckSourceFile(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.Mode().IsRegular() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a regular file)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d bytes)", path, info.Size())}
}

// CheckSystemDeps evaluates the external tools for the given config. The
// chapter source decides whether mkvextract or ffprobe is required; mkvmerge
// is optional because a plan can be printed instead of executed.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	useFFprobe := cfg.Audio.ChapterSource == config.ChapterSourceFFprobe
	requirements := []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Tools.FFmpeg,
			Description: "Required to decode audio for fingerprinting",
		},
		{
			Name:        "mkvextract",
			Command:     cfg.Tools.MKVExtract,
			Description: "Reads the chapter table",
			Optional:    useFFprobe,
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Tools.FFprobe,
			Description: "Reads the chapter table and stream layout",
			Optional:    !useFFprobe,
		},
		{
			Name:        "mkvmerge",
			Command:     cfg.Tools.MKVMerge,
			Description: "Performs the chapter split",
			Optional:    true,
		},
	}
	return deps.CheckBinaries(requirements)
}
