package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"autosplit/internal/config"
)

var errCancelled = errors.New("cancelled by user")

type containerFile struct {
	Path string
	Size int64
}

// findContainers lists the *.mkv files directly inside dir, sorted by name.
func findContainers(dir string) ([]containerFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var files []containerFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".mkv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, containerFile{Path: filepath.Join(dir, entry.Name()), Size: info.Size()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// resolveSource returns the container to analyze: the argument when given,
// otherwise one of the MKV files in the working directory chosen at the
// prompt. assumeYes accepts a lone candidate without asking.
func resolveSource(args []string, dir string, p *prompter, assumeYes bool) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		path, err := config.ExpandPath(args[0])
		if err != nil {
			return "", err
		}
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("file not found: %s", path)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s is a directory", path)
		}
		return path, nil
	}

	files, err := findContainers(dir)
	if err != nil {
		return "", err
	}
	switch len(files) {
	case 0:
		return "", fmt.Errorf("no MKV files found in %s", dir)
	case 1:
		name := filepath.Base(files[0].Path)
		if assumeYes {
			return files[0].Path, nil
		}
		fmt.Fprintf(p.out, "Found 1 MKV file: %s\n", name)
		ok, err := p.confirm(fmt.Sprintf("Process %q?", name))
		if err != nil {
			return "", err
		}
		if !ok {
			return "", errCancelled
		}
		return files[0].Path, nil
	}
	if assumeYes {
		return "", fmt.Errorf("%d MKV files found in %s; name one explicitly", len(files), dir)
	}

	rows := make([][]string, 0, len(files))
	for i, f := range files {
		rows = append(rows, []string{strconv.Itoa(i + 1), filepath.Base(f.Path), humanize.Bytes(uint64(f.Size))})
	}
	fmt.Fprintln(p.out, tableSpec{
		Title:   fmt.Sprintf("Found %d MKV files", len(files)),
		Headers: []string{"#", "File", "Size"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignRight, alignLeft, alignRight},
	}.render())
	index, quit, err := p.choose("Select file to process", len(files))
	if err != nil {
		return "", err
	}
	if quit {
		return "", errCancelled
	}
	return files[index].Path, nil
}
