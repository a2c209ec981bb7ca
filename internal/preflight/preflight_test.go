package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"autosplit/internal/config"
	"autosplit/internal/deps"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckSourceFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "show.mkv")
	if err := os.WriteFile(f, []byte("matroska"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckSourceFile("source", f); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result := CheckSourceFile("source", dir); result.Passed {
		t.Fatal("expected failure for directory")
	}
	if result := CheckSourceFile("source", filepath.Join(dir, "missing.mkv")); result.Passed {
		t.Fatal("expected failure for missing file")
	}
}

func TestRunAll(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()
	source := filepath.Join(t.TempDir(), "show.mkv")
	if err := os.WriteFile(source, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	results := RunAll(&cfg, source)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}

	results = RunAll(&cfg, filepath.Join(t.TempDir(), "gone.mkv"))
	if failed := Failed(results); len(failed) != 1 || failed[0].Name != "Source container" {
		t.Fatalf("expected the source check to fail, got %+v", failed)
	}
	if RunAll(nil, source) != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestCheckSystemDepsFollowsChapterSource(t *testing.T) {
	binDir := t.TempDir()
	for _, name := range []string{"ffmpeg", "ffprobe"} {
		if err := os.WriteFile(filepath.Join(binDir, name), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("PATH", binDir)

	cfg := config.Default()
	cfg.Audio.ChapterSource = config.ChapterSourceFFprobe
	if missing := deps.MissingRequired(CheckSystemDeps(&cfg)); len(missing) != 0 {
		t.Fatalf("ffprobe chapter source should not need mkvextract, missing %v", missing)
	}

	cfg.Audio.ChapterSource = config.ChapterSourceMKVExtract
	missing := deps.MissingRequired(CheckSystemDeps(&cfg))
	if len(missing) != 1 || missing[0] != "mkvextract" {
		t.Fatalf("expected mkvextract to be required, got %v", missing)
	}
}
