package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"autosplit/internal/chapters"
	"autosplit/internal/config"
	"autosplit/internal/fingerprint"
	"autosplit/internal/logging"
	"autosplit/internal/media/ffprobe"
	"autosplit/internal/media/pcm"
	"autosplit/internal/progress"
	"autosplit/internal/services/mkvtoolnix"
)

// ChapterSource dumps the chapter markers of a container.
type ChapterSource interface {
	Chapters(ctx context.Context, path string) ([]chapters.Marker, error)
}

// AudioSource decodes the first audio track of a container to mono PCM.
type AudioSource interface {
	Extract(ctx context.Context, path string) (*pcm.Signal, error)
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithChapterSource overrides the configured chapter dump tool.
func WithChapterSource(source ChapterSource) Option {
	return func(a *Analyzer) {
		if source != nil {
			a.chapters = source
		}
	}
}

// WithAudioSource overrides the ffmpeg PCM extractor.
func WithAudioSource(source AudioSource) Option {
	return func(a *Analyzer) {
		if source != nil {
			a.audio = source
		}
	}
}

// WithProgress forwards fingerprint and comparison progress to fn.
func WithProgress(fn progress.Func) Option {
	return func(a *Analyzer) {
		a.progress = fn
	}
}

// Analyzer runs the audio and length detection paths against one container.
type Analyzer struct {
	cfg       *config.Config
	logger    *slog.Logger
	chapters  ChapterSource
	audio     AudioSource
	extractor *fingerprint.Extractor
	progress  progress.Func
}

// New wires an Analyzer from configuration. Tool-backed sources are only
// constructed when no override is supplied.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Analyzer, error) {
	if cfg == nil {
		return nil, errors.New("analysis: config is required")
	}
	a := &Analyzer{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "analysis"),
		extractor: fingerprint.New(fingerprint.Config{
			SampleRate:     cfg.Audio.SampleRate,
			SegmentSeconds: float64(cfg.Audio.SegmentSeconds),
			SilenceFloor:   cfg.Audio.SilenceFloor,
		}),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.chapters == nil {
		source, err := newChapterSource(cfg)
		if err != nil {
			return nil, err
		}
		a.chapters = source
	}
	if a.audio == nil {
		extractor, err := pcm.NewExtractor(cfg.Tools.FFmpeg, cfg.Audio.SampleRate, cfg.Tools.TimeoutSeconds)
		if err != nil {
			return nil, err
		}
		a.audio = extractor
	}
	return a, nil
}

func newChapterSource(cfg *config.Config) (ChapterSource, error) {
	switch cfg.Audio.ChapterSource {
	case config.ChapterSourceFFprobe:
		return ffprobeChapters{binary: cfg.Tools.FFprobe, timeout: toolTimeout(cfg)}, nil
	default:
		client, err := mkvtoolnix.New(cfg.Tools.MKVExtract, cfg.Tools.MKVMerge, cfg.Tools.TimeoutSeconds)
		if err != nil {
			return nil, fmt.Errorf("chapter source: %w", err)
		}
		return client, nil
	}
}

func toolTimeout(cfg *config.Config) time.Duration {
	if cfg.Tools.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(cfg.Tools.TimeoutSeconds) * time.Second
}

// ffprobeChapters reads chapter markers from ffprobe -show_chapters.
type ffprobeChapters struct {
	binary  string
	timeout time.Duration
}

func (f ffprobeChapters) Chapters(ctx context.Context, path string) ([]chapters.Marker, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	result, err := ffprobe.Inspect(ctx, f.binary, path)
	if err != nil {
		return nil, err
	}
	return MarkersFromProbe(result)
}

// MarkersFromProbe converts ffprobe chapters into markers.
func MarkersFromProbe(result ffprobe.Result) ([]chapters.Marker, error) {
	if len(result.Chapters) == 0 {
		return nil, chapters.ErrNoChapters
	}
	markers := make([]chapters.Marker, 0, len(result.Chapters))
	for i, ch := range result.Chapters {
		start := ch.StartSeconds()
		if math.IsNaN(start) {
			return nil, fmt.Errorf("chapter %d: missing start time", i+1)
		}
		markers = append(markers, chapters.Marker{Start: start, Label: strings.TrimSpace(ch.Title())})
	}
	return markers, nil
}

// begin tags ctx with a fresh run ID and returns the matching logger.
func (a *Analyzer) begin(ctx context.Context, path string) (context.Context, *slog.Logger, string) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, a.logger).With(logging.String(logging.FieldSource, path))
	return ctx, logger, runID
}

func (a *Analyzer) loadChapters(ctx context.Context, logger *slog.Logger, path string) ([]chapters.Chapter, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("analysis: source path is required")
	}
	markers, err := a.chapters.Chapters(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read chapters: %w", err)
	}
	list, err := chapters.Build(markers)
	if err != nil {
		return nil, fmt.Errorf("read chapters: %w", err)
	}
	logger.Info("chapters loaded", logging.Int("chapters", len(list)))
	return list, nil
}

// reporter fans progress out to the caller and to sampled debug logs.
func (a *Analyzer) reporter(logger *slog.Logger) progress.Func {
	sampler := logging.NewProgressSampler(5)
	return func(ev progress.Event) {
		if a.progress != nil {
			a.progress(ev)
		}
		if sampler.ShouldLog(ev) {
			logger.Debug("analysis progress",
				logging.String(logging.FieldStage, ev.Stage),
				logging.Int("current", ev.Current),
				logging.Int("total", ev.Total),
			)
		}
	}
}
