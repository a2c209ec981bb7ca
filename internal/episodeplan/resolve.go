package episodeplan

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"autosplit/internal/grouping"
)

// Request describes one resolution.
type Request struct {
	Groups []grouping.Group
	// Expected is the number of episodes in the container.
	Expected int
	// Total is the highest chapter index of the container.
	Total int
}

// Validate checks the expected count and chapter total.
func (r Request) Validate() error {
	if r.Expected < 1 {
		return fmt.Errorf("%w: expected episode count must be at least 1, got %d", ErrInvalidRequest, r.Expected)
	}
	if r.Total < 0 {
		return fmt.Errorf("%w: chapter total must not be negative, got %d", ErrInvalidRequest, r.Total)
	}
	return nil
}

// Resolve selects a group and returns the post-processed plan.
//
// When exactly one group yields Expected episodes under either reading it is
// used directly, outro-style winning over intro-style within a group.
// Otherwise the ranked candidates go to decide and the chosen group is read
// outro-style.
func Resolve(ctx context.Context, req Request, decide Decider) (Plan, error) {
	if err := req.Validate(); err != nil {
		return Plan{}, err
	}
	if len(req.Groups) == 0 {
		return Plan{}, ErrNoDetection
	}

	plan, ok := exactMatch(req)
	if !ok {
		var err error
		plan, err = selectCandidate(ctx, req, decide)
		if err != nil {
			return Plan{}, err
		}
	}
	return finish(plan, req.Expected, req.Total)
}

// FromGroup builds a plan straight from one group when no episode count is
// known. Only the structural clean-up is applied.
func FromGroup(g grouping.Group, style Style, total int) (Plan, error) {
	if g.Size() == 0 {
		return Plan{}, ErrNoDetection
	}
	if total < 0 {
		return Plan{}, fmt.Errorf("%w: chapter total must not be negative, got %d", ErrInvalidRequest, total)
	}
	plan := Plan{Style: style, Group: g}
	switch style {
	case StyleIntro:
		plan.Starts = IntroStarts(g)
		plan.note(fmt.Sprintf("Intro-style split at the %d chapters of the %s.", g.Size(), g.Describe()))
	default:
		plan.Style = StyleOutro
		plan.Starts = OutroStarts(g, total)
		plan.note(fmt.Sprintf("Outro-style split after the %d chapters of the %s.", g.Size(), g.Describe()))
	}
	plan.Starts = cleanStarts(plan.Starts, total)
	if len(plan.Starts) == 0 {
		return Plan{}, fmt.Errorf("%w: group leaves no split point before the last chapter", ErrNoDetection)
	}
	return plan, nil
}

func exactMatch(req Request) (Plan, bool) {
	var hits []Plan
	for _, g := range req.Groups {
		c := candidateFor(g)
		switch {
		case c.ExactOutro(req.Expected):
			hits = append(hits, Plan{
				Style:  StyleOutro,
				Group:  g,
				Starts: OutroStarts(g, req.Total),
				Reason: fmt.Sprintf("Outro-style match: %d chapters of %s end %d episodes.", g.Size(), g.Describe(), c.OutroEpisodes),
			})
		case c.ExactIntro(req.Expected):
			hits = append(hits, Plan{
				Style:  StyleIntro,
				Group:  g,
				Starts: IntroStarts(g),
				Reason: fmt.Sprintf("Intro-style match: %d chapters of %s start %d episodes.", g.Size(), g.Describe(), c.IntroEpisodes),
			})
		}
	}
	if len(hits) != 1 {
		return Plan{}, false
	}
	return hits[0], true
}

// Rank orders groups for selection against expected: exact outro matches
// first, then exact intro matches, then by distance of the nearer reading,
// preferring groups whose outro reading is the closer one. When any group
// is within one episode of expected, only those are offered.
func Rank(groups []grouping.Group, expected int) []Candidate {
	all := make([]Candidate, 0, len(groups))
	var plausible []Candidate
	for _, g := range groups {
		c := candidateFor(g)
		all = append(all, c)
		if absInt(c.OutroEpisodes-expected) <= 1 || absInt(c.IntroEpisodes-expected) <= 1 {
			plausible = append(plausible, c)
		}
	}
	ranked := plausible
	if len(ranked) == 0 {
		ranked = all
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.ExactOutro(expected) != b.ExactOutro(expected) {
			return a.ExactOutro(expected)
		}
		if a.ExactIntro(expected) != b.ExactIntro(expected) {
			return a.ExactIntro(expected)
		}
		da := min(absInt(a.OutroEpisodes-expected), absInt(a.IntroEpisodes-expected))
		db := min(absInt(b.OutroEpisodes-expected), absInt(b.IntroEpisodes-expected))
		if da != db {
			return da < db
		}
		return outroLean(a, expected) < outroLean(b, expected)
	})
	return ranked
}

func outroLean(c Candidate, expected int) int {
	return absInt(c.OutroEpisodes-expected) - absInt(c.IntroEpisodes-expected)
}

func candidateFor(g grouping.Group) Candidate {
	return Candidate{Group: g, OutroEpisodes: g.Size(), IntroEpisodes: g.Size() + 1}
}

func selectCandidate(ctx context.Context, req Request, decide Decider) (Plan, error) {
	ranked := Rank(req.Groups, req.Expected)
	if decide == nil {
		return Plan{}, ErrAmbiguous
	}
	sel, err := decide.Decide(ctx, DecisionRequest{Expected: req.Expected, Total: req.Total, Candidates: ranked})
	if err != nil {
		return Plan{}, fmt.Errorf("select group: %w", err)
	}
	if sel.Quit {
		return Plan{}, ErrSelectionDeclined
	}
	if sel.Index < 0 || sel.Index >= len(ranked) {
		return Plan{}, fmt.Errorf("%w: selection %d outside 1-%d", ErrInvalidRequest, sel.Index+1, len(ranked))
	}
	g := ranked[sel.Index].Group
	return Plan{
		Style:    StyleOutro,
		Group:    g,
		Starts:   OutroStarts(g, req.Total),
		Selected: true,
		Reason:   fmt.Sprintf("Selected %s (chapters %s), read outro-style.", g.Describe(), grouping.JoinChapters(g.Chapters)),
	}, nil
}

// finish applies the post-processing rules in order: clean-up, first
// episode inference and truncation.
func finish(plan Plan, expected, total int) (Plan, error) {
	plan.Starts = cleanStarts(plan.Starts, total)

	if starts, inferred := InferFirstEpisode(plan.Starts, expected); inferred {
		plan.Starts = starts
		plan.Inferred = append(plan.Inferred, 1)
		plan.note("Inferred missing first episode start at chapter 1.")
	}

	if len(plan.Starts) > expected {
		plan.Starts = plan.Starts[:expected]
		plan.Truncated = true
		plan.note("Truncated to match the expected episode count.")
	}

	if len(plan.Starts) == 0 {
		return Plan{}, fmt.Errorf("%w: no split point remains before the last chapter", ErrNoDetection)
	}
	return plan, nil
}

// cleanStarts deduplicates, drops starts past or at the last chapter and
// sorts. A start at the last chapter would leave a one-chapter episode.
func cleanStarts(starts []int, total int) []int {
	out := make([]int, 0, len(starts))
	for _, s := range starts {
		if s < 1 || s >= total {
			continue
		}
		out = append(out, s)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// InferFirstEpisode prepends chapter 1 when starts holds exactly one fewer
// entry than expected and the first detected start is past chapter 2, on the
// assumption that the first episode carries no marker. It reports whether
// chapter 1 was added. starts must be sorted.
func InferFirstEpisode(starts []int, expected int) ([]int, bool) {
	if len(starts) == 0 || starts[0] <= 2 || len(starts) != expected-1 {
		return starts, false
	}
	return append([]int{1}, starts...), true
}
