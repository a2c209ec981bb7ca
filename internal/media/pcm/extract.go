package pcm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Executor abstracts command execution for testability. Run streams the
// command's standard output into stdout.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, stdout io.Writer) error
}

// Option configures the Extractor.
type Option func(*Extractor)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(e *Extractor) {
		if exec != nil {
			e.exec = exec
		}
	}
}

// Extractor decodes container audio through ffmpeg.
type Extractor struct {
	binary  string
	rate    int
	timeout time.Duration
	exec    Executor
}

// NewExtractor constructs an Extractor producing mono audio at rate Hz.
func NewExtractor(binary string, rate, timeoutSeconds int, opts ...Option) (*Extractor, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if rate <= 0 {
		return nil, fmt.Errorf("pcm extractor: invalid sample rate %d", rate)
	}
	e := &Extractor{
		binary:  binary,
		rate:    rate,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Extract decodes the first audio stream of path to a mono signal.
func (e *Extractor) Extract(ctx context.Context, path string) (*Signal, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("ffmpeg pcm extract: empty path")
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	dec := newDecoder()
	if err := e.exec.Run(ctx, e.binary, e.args(path), dec); err != nil {
		return nil, fmt.Errorf("ffmpeg pcm extract: %w", err)
	}
	return dec.signal(e.rate)
}

func (e *Extractor) args(path string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-nostdin",
		"-i", path,
		"-map", "0:a:0",
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(e.rate),
		"-f", "s16le",
		"-",
	}
}

// Failure classifies an extraction error for operator guidance.
type Failure struct {
	Reason string
	Hint   string
}

// ClassifyFailure maps ffmpeg stderr text onto a reason and hint.
func ClassifyFailure(err error) Failure {
	if err == nil {
		return Failure{}
	}
	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "stream specifier") || strings.Contains(message, "matches no streams"):
		return Failure{Reason: "audio_stream_missing", Hint: "the container has no audio stream; use the length path instead"}
	case strings.Contains(message, "invalid data found when processing input") || strings.Contains(message, "error while decoding"):
		return Failure{Reason: "audio_decode_error", Hint: "ffmpeg could not decode the soundtrack; remux the file and retry"}
	case strings.Contains(message, "executable file not found"):
		return Failure{Reason: "ffmpeg_missing", Hint: "install ffmpeg or set tools.ffmpeg in the config"}
	case errors.Is(err, context.DeadlineExceeded):
		return Failure{Reason: "ffmpeg_timeout", Hint: "raise tools.timeout_seconds for long containers"}
	default:
		return Failure{Reason: "ffmpeg_failed", Hint: "run with --verbose and inspect the ffmpeg error"}
	}
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ctxErr, err)
		}
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
