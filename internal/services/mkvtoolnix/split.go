package mkvtoolnix

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"

	"autosplit/internal/services"
)

// DefaultSuffix is appended to the source base name to form the split target.
const DefaultSuffix = "_episodes"

// SplitCommand describes one mkvmerge chapter split.
type SplitCommand struct {
	Binary   string
	Output   string
	Source   string
	Chapters []int
}

// NewSplitCommand builds the split for source, naming the output after the
// source base name plus suffix.
func NewSplitCommand(binary, source, suffix string, chapterStarts []int) SplitCommand {
	if strings.TrimSpace(binary) == "" {
		binary = "mkvmerge"
	}
	return SplitCommand{
		Binary:   binary,
		Output:   TargetName(source, suffix),
		Source:   source,
		Chapters: append([]int(nil), chapterStarts...),
	}
}

// TargetName replaces the extension of source with suffix + ".mkv".
func TargetName(source, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	base := strings.TrimSuffix(source, filepath.Ext(source))
	return base + suffix + ".mkv"
}

// ChapterList renders the comma separated chapter list mkvmerge expects.
func (s SplitCommand) ChapterList() string {
	parts := make([]string, 0, len(s.Chapters))
	for _, ch := range s.Chapters {
		parts = append(parts, strconv.Itoa(ch))
	}
	return strings.Join(parts, ",")
}

// Args returns the mkvmerge arguments without the binary.
func (s SplitCommand) Args() []string {
	return []string{"-o", s.Output, "--split", "chapters:" + s.ChapterList(), s.Source}
}

// String renders a shell-ready command line.
func (s SplitCommand) String() string {
	return fmt.Sprintf("%s -o %s --split chapters:%s %s", s.Binary, shellQuote(s.Output), s.ChapterList(), shellQuote(s.Source))
}

// Validate reports whether the command can be executed.
func (s SplitCommand) Validate() error {
	if strings.TrimSpace(s.Source) == "" {
		return services.Wrap(services.ErrValidation, "split", "", "source path required", nil)
	}
	if strings.TrimSpace(s.Output) == "" {
		return services.Wrap(services.ErrValidation, "split", "", "output path required", nil)
	}
	if len(s.Chapters) == 0 {
		return services.Wrap(services.ErrValidation, "split", "", "no chapters to split at", nil)
	}
	prev := 0
	for _, ch := range s.Chapters {
		if ch <= prev {
			return services.Wrap(services.ErrValidation, "split", "", fmt.Sprintf("chapter list must be ascending positive indices, got %v", s.Chapters), nil)
		}
		prev = ch
	}
	return nil
}

// Split runs mkvmerge for cmd while holding a lock next to the output file.
// mkvmerge numbers its outputs itself (<base>-001.mkv, ...).
func (c *Client) Split(ctx context.Context, cmd SplitCommand, progress func(ProgressUpdate)) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if cmd.Binary == "" {
		cmd.Binary = c.mergeBinary
	}
	if dir := filepath.Dir(cmd.Output); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("split: create output directory: %w", err)
		}
	}

	lock := flock.New(cmd.Output + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("split: acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("split: another split is writing %s", cmd.Output)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(cmd.Output + ".lock")
	}()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.exec.Run(ctx, cmd.Binary, cmd.Args(), func(line string) {
		if progress == nil {
			return
		}
		if update, ok := parseProgress(line); ok {
			progress(update)
		}
	}); err != nil {
		// mkvmerge exits 1 when it finished with warnings.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return nil
		}
		return services.Wrap(services.ErrExternalTool, "mkvmerge", "split", cmd.Output, err)
	}
	return nil
}

func shellQuote(value string) string {
	if value != "" && !strings.ContainsAny(value, " \t\n'\"\\$`!*?;&|<>()[]{}#~") {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
