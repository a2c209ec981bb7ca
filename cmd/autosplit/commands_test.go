package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"autosplit/internal/testsupport"
)

func TestCheckCommandWithStubbedTools(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	out, _, err := env.run(t, "", nil, nil, "check", env.source)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	for _, want := range []string{"FFmpeg", "mkvextract", "Source container", "All checks passed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCheckCommandReportsMissingTools(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("PATH", t.TempDir())

	out, _, err := env.run(t, "", nil, nil, "check")
	if err == nil {
		t.Fatalf("expected failure with empty PATH:\n%s", out)
	}
	if !strings.Contains(out, "missing") {
		t.Fatalf("expected missing status in output:\n%s", out)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	base := t.TempDir()
	t.Setenv("HOME", base)
	target := filepath.Join(base, "conf", "autosplit.toml")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "init", "--path", target})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	root = newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"config", "init", "--path", target})
	if err := root.Execute(); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already exists error, got %v", err)
	}

	out.Reset()
	root = newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"--config", target, "config", "validate"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out.String(), "Configuration valid") || !strings.Contains(out.String(), "Chapter source: mkvextract") {
		t.Fatalf("unexpected validate output:\n%s", out.String())
	}
}

func TestResolveSourceSelection(t *testing.T) {
	dir := t.TempDir()
	paths := testsupport.TouchContainers(t, dir, "b.mkv", "a.MKV", "notes.txt")

	var out bytes.Buffer
	p := newPrompter(strings.NewReader("5\n2\n"), &out)
	got, err := resolveSource(nil, dir, p, false)
	if err != nil {
		t.Fatalf("resolveSource: %v", err)
	}
	if got != paths[0] {
		t.Fatalf("expected %s, got %s", paths[0], got)
	}
	if !strings.Contains(out.String(), "Found 2 MKV files") || !strings.Contains(out.String(), "Invalid choice") {
		t.Fatalf("unexpected prompt output:\n%s", out.String())
	}

	if _, err := resolveSource(nil, dir, newPrompter(strings.NewReader("q\n"), &out), false); !errors.Is(err, errCancelled) {
		t.Fatalf("expected errCancelled, got %v", err)
	}
	if _, err := resolveSource(nil, dir, newPrompter(strings.NewReader(""), &out), true); err == nil {
		t.Fatal("expected error when several files exist and prompting is disabled")
	}
}

func TestResolveSourceSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.TouchContainers(t, dir, "only.mkv")[0]

	var out bytes.Buffer
	if _, err := resolveSource(nil, dir, newPrompter(strings.NewReader("n\n"), &out), false); !errors.Is(err, errCancelled) {
		t.Fatalf("expected errCancelled, got %v", err)
	}
	got, err := resolveSource(nil, dir, newPrompter(strings.NewReader(""), &out), true)
	if err != nil || got != path {
		t.Fatalf("resolveSource = %q, %v", got, err)
	}
	if _, err := resolveSource([]string{filepath.Join(dir, "missing.mkv")}, dir, nil, false); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := resolveSource(nil, t.TempDir(), nil, false); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestPrompterEOF(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader(""), &out)
	if _, _, err := p.choose("Pick", 3); !errors.Is(err, errInputClosed) {
		t.Fatalf("expected errInputClosed, got %v", err)
	}
	p = newPrompter(strings.NewReader("3"), &out)
	if v, quit, err := p.positiveInt("How many"); err != nil || quit || v != 3 {
		t.Fatalf("positiveInt = %d, %v, %v", v, quit, err)
	}
}
