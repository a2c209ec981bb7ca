package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"autosplit/internal/chapters"
	"autosplit/internal/episodeplan"
	"autosplit/internal/fingerprint"
	"autosplit/internal/grouping"
	"autosplit/internal/logging"
	"autosplit/internal/similarity"
)

// ErrAudioExtract tags failures of the PCM extraction step.
var ErrAudioExtract = errors.New("extract audio")

// AudioOptions tunes one audio-path run. Zero values fall back to config.
type AudioOptions struct {
	// DistanceThreshold overrides matching.distance_threshold.
	DistanceThreshold float64
	// MaxResults overrides matching.max_results for the match listing.
	MaxResults int
	// Expected is the known episode count; zero plans straight from the
	// intro sequence.
	Expected int
	Decider  episodeplan.Decider
}

// AudioReport is the outcome of the audio path.
type AudioReport struct {
	RunID    string
	Source   string
	Chapters []chapters.Chapter
	Skipped  []chapters.Chapter
	// Samples is the number of chapters that produced a fingerprint.
	Samples    int
	Threshold  float64
	MatchCount int
	// TopMatches holds the best matches, most similar first.
	TopMatches []similarity.Match
	Intro      grouping.Group
	IntroFound bool
	// Provisional is set when only the looser intro preset found a group.
	// A provisional group is reported but never planned.
	Provisional bool
	Plan        *episodeplan.Plan
}

// IntroStart returns the start time of chapter as seen by the fingerprint
// stage.
func (r AudioReport) IntroStart(chapter int) (float64, bool) {
	ch, ok := chapters.ByIndex(r.Chapters)[chapter]
	return ch.Start, ok
}

// RunAudio fingerprints the opening of every chapter, clusters matching
// openings into an intro sequence and plans episode starts from it. A
// missing sequence is reported through IntroFound, not as an error; only a
// group meeting the final preset yields a Plan.
func (a *Analyzer) RunAudio(ctx context.Context, path string, opts AudioOptions) (AudioReport, error) {
	ctx, logger, runID := a.begin(ctx, path)
	report := AudioReport{RunID: runID, Source: path}

	threshold := opts.DistanceThreshold
	if threshold <= 0 {
		threshold = a.cfg.Matching.DistanceThreshold
	}
	report.Threshold = threshold
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = a.cfg.Matching.MaxResults
	}

	list, err := a.loadChapters(ctx, logger, path)
	if err != nil {
		return report, err
	}
	report.Chapters = list

	kept, skipped := chapters.FilterShort(list, a.cfg.Audio.MinChapterSeconds)
	report.Skipped = skipped
	for _, ch := range skipped {
		logger.Info("skipping short chapter",
			logging.Int(logging.FieldChapter, ch.Index),
			logging.Float64("duration_seconds", ch.Duration),
			logging.Float64("min_seconds", a.cfg.Audio.MinChapterSeconds),
		)
	}

	signal, err := a.audio.Extract(ctx, path)
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrAudioExtract, err)
	}
	logger.Info("audio extracted",
		logging.Int("sample_rate", signal.SampleRate()),
		logging.Float64("duration_seconds", signal.DurationSeconds()),
	)
	if err := ctx.Err(); err != nil {
		return report, err
	}

	a.detectIntro(logger, signal, kept, threshold, maxResults, &report)

	if !report.IntroFound {
		logging.WarnWithContext(logger, "no intro sequence found", "intro_not_found",
			"lower the similarity threshold or try the length path", "no split plan",
			logging.Int("matches", report.MatchCount),
		)
		return report, nil
	}
	if report.Provisional {
		logging.WarnWithContext(logger, "intro sequence below final preset", "intro_provisional",
			"check the top matches or try the length path", "no split plan",
			logging.Ints("chapters", report.Intro.Chapters),
			logging.Int("final_min_group", a.cfg.Matching.FinalMinGroup),
		)
		return report, nil
	}

	plan, err := a.planIntro(ctx, report.Intro, opts, chapters.LastIndex(list))
	if err != nil {
		if errors.Is(err, episodeplan.ErrNoDetection) {
			logging.WarnWithContext(logger, "intro sequence leaves no split point", "plan_empty",
				"check the chapter layout", "no split plan", logging.Error(err))
			return report, nil
		}
		return report, err
	}
	report.Plan = &plan
	logger.Info("split plan ready",
		logging.Ints("starts", plan.Starts),
		logging.String("style", string(plan.Style)),
	)
	return report, nil
}

func (a *Analyzer) detectIntro(logger *slog.Logger, signal fingerprint.Signal, kept []chapters.Chapter, threshold float64, maxResults int, report *AudioReport) {
	progressFn := a.reporter(logger)
	samples := a.extractor.Samples(signal, kept, progressFn)
	report.Samples = len(samples)
	logger.Info("chapters fingerprinted",
		logging.Int("samples", len(samples)),
		logging.Int("candidates", len(kept)),
	)

	matches := similarity.FindMatches(samples, threshold, progressFn)
	report.MatchCount = len(matches)
	logger.Info("fingerprints compared",
		logging.Int("matches", len(matches)),
		logging.Float64("threshold", threshold),
	)
	report.TopMatches = similarity.Top(similarity.SortBySimilarity(matches), maxResults)

	final := grouping.IntroOptions{
		MinGroupSize:  a.cfg.Matching.FinalMinGroup,
		MinSimilarity: a.cfg.Matching.FinalSimilarity,
	}
	loose := grouping.IntroOptions{
		MinGroupSize:  a.cfg.Matching.ProvisionalMinGroup,
		MinSimilarity: a.cfg.Matching.ProvisionalSimilarity,
	}
	report.Intro, report.IntroFound = grouping.IntroSequence(matches, final)
	if !report.IntroFound {
		report.Intro, report.IntroFound = grouping.IntroSequence(matches, loose)
		report.Provisional = report.IntroFound
	}
	if report.IntroFound {
		logger.Info("intro sequence found",
			logging.Ints("chapters", report.Intro.Chapters),
			logging.Float64("mean_similarity", report.Intro.Key),
			logging.Bool("provisional", report.Provisional),
		)
	}
}

func (a *Analyzer) planIntro(ctx context.Context, intro grouping.Group, opts AudioOptions, total int) (episodeplan.Plan, error) {
	if opts.Expected <= 0 {
		return episodeplan.FromGroup(intro, episodeplan.StyleIntro, total)
	}
	return episodeplan.Resolve(ctx, episodeplan.Request{
		Groups:   []grouping.Group{intro},
		Expected: opts.Expected,
		Total:    total,
	}, opts.Decider)
}
