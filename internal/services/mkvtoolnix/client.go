package mkvtoolnix

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"autosplit/internal/chapters"
	"autosplit/internal/services"
)

// ProgressUpdate captures mkvmerge progress output.
type ProgressUpdate struct {
	Percent float64
	Message string
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onStdout func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps mkvextract and mkvmerge interactions.
type Client struct {
	extractBinary string
	mergeBinary   string
	timeout       time.Duration
	exec          Executor
}

// New constructs an MKVToolNix client.
func New(extractBinary, mergeBinary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	extractBinary = strings.TrimSpace(extractBinary)
	mergeBinary = strings.TrimSpace(mergeBinary)
	if extractBinary == "" || mergeBinary == "" {
		return nil, errors.New("mkvextract and mkvmerge binaries required")
	}
	client := &Client{
		extractBinary: extractBinary,
		mergeBinary:   mergeBinary,
		timeout:       time.Duration(timeoutSeconds) * time.Second,
		exec:          commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// MergeBinary returns the configured mkvmerge binary.
func (c *Client) MergeBinary() string {
	return c.mergeBinary
}

// Chapters dumps the chapter table of path and returns its markers in
// document order.
func (c *Client) Chapters(ctx context.Context, path string) ([]chapters.Marker, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("mkvextract chapters: empty path")
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var buf bytes.Buffer
	if err := c.exec.Run(ctx, c.extractBinary, []string{"chapters", path}, func(line string) {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "mkvextract", "chapters", path, err)
	}
	markers, err := chapters.ParseMatroskaXML(&buf)
	if err != nil {
		if errors.Is(err, chapters.ErrNoChapters) {
			return nil, services.Wrap(services.ErrNotFound, "mkvextract", "chapters", path, err)
		}
		return nil, fmt.Errorf("mkvextract chapters: %w", err)
	}
	return markers, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func parseProgress(line string) (ProgressUpdate, bool) {
	line = strings.TrimSpace(line)
	var payload string
	switch {
	case strings.HasPrefix(line, "Progress:"):
		payload = strings.TrimPrefix(line, "Progress:")
	case strings.HasPrefix(line, "#GUI#progress"):
		payload = strings.TrimPrefix(line, "#GUI#progress")
	default:
		return ProgressUpdate{}, false
	}
	payload = strings.TrimSuffix(strings.TrimSpace(payload), "%")
	percent, err := strconv.ParseFloat(payload, 64)
	if err != nil || percent < 0 {
		return ProgressUpdate{}, false
	}
	if percent > 100 {
		percent = 100
	}
	return ProgressUpdate{Percent: percent, Message: line}, true
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	wg.Add(1)
	go func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			if onStdout != nil {
				onStdout(scanner.Text())
			}
		}
		scanErr = scanner.Err()
	}(stdout)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return fmt.Errorf("wait command: %w: %s", err, detail)
		}
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
