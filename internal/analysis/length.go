package analysis

import (
	"context"
	"errors"

	"autosplit/internal/chapters"
	"autosplit/internal/episodeplan"
	"autosplit/internal/grouping"
	"autosplit/internal/logging"
)

// LengthOptions tunes one length-path run.
type LengthOptions struct {
	// ToleranceSeconds overrides length.tolerance_seconds.
	ToleranceSeconds float64
	Expected         int
	Decider          episodeplan.Decider
}

// LengthReport is the outcome of the length path.
type LengthReport struct {
	RunID     string
	Source    string
	Chapters  []chapters.Chapter
	Tolerance float64
	Groups    []grouping.Group
	// Candidates ranks Groups against the expected episode count.
	Candidates []episodeplan.Candidate
	Plan       *episodeplan.Plan
}

// LoadChapters reads and indexes the chapters of path without running a
// detection path, so callers can inspect the layout before asking for an
// episode count.
func (a *Analyzer) LoadChapters(ctx context.Context, path string) ([]chapters.Chapter, error) {
	ctx, logger, _ := a.begin(ctx, path)
	return a.loadChapters(ctx, logger, path)
}

// RunLength groups chapters of near-equal duration and resolves the groups
// against opts.Expected. Finding no repeating length is reported through an
// empty Groups slice and a nil Plan.
func (a *Analyzer) RunLength(ctx context.Context, path string, opts LengthOptions) (LengthReport, error) {
	ctx, logger, runID := a.begin(ctx, path)
	report := LengthReport{RunID: runID, Source: path}

	tolerance := opts.ToleranceSeconds
	if tolerance <= 0 {
		tolerance = a.cfg.Length.ToleranceSeconds
	}
	report.Tolerance = tolerance

	request := episodeplan.Request{Expected: opts.Expected}
	if err := request.Validate(); err != nil {
		return report, err
	}

	list, err := a.loadChapters(ctx, logger, path)
	if err != nil {
		return report, err
	}
	report.Chapters = list

	report.Groups = grouping.ByDuration(list, tolerance)
	for _, g := range report.Groups {
		logger.Debug("duration group",
			logging.Float64("duration_seconds", g.Key),
			logging.Ints("chapters", g.Chapters),
		)
	}
	logger.Info("chapter lengths grouped",
		logging.Int("groups", len(report.Groups)),
		logging.Float64("tolerance_seconds", tolerance),
	)
	if len(report.Groups) == 0 {
		logging.WarnWithContext(logger, "no repeating chapter lengths found", "length_groups_empty",
			"raise the tolerance or try the audio path", "no split plan")
		return report, nil
	}
	report.Candidates = episodeplan.Rank(report.Groups, opts.Expected)

	request.Groups = report.Groups
	request.Total = chapters.LastIndex(list)
	plan, err := episodeplan.Resolve(ctx, request, opts.Decider)
	if err != nil {
		if errors.Is(err, episodeplan.ErrNoDetection) {
			logging.WarnWithContext(logger, "selected group leaves no split point", "plan_empty",
				"pick another group", "no split plan", logging.Error(err))
			return report, nil
		}
		return report, err
	}
	report.Plan = &plan
	logger.Info("split plan ready",
		logging.Ints("starts", plan.Starts),
		logging.String("style", string(plan.Style)),
		logging.Bool("selected", plan.Selected),
	)
	return report, nil
}
