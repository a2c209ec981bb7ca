package episodeplan

import (
	"context"

	"autosplit/internal/grouping"
)

// Candidate is one group offered for selection, with the episode counts
// both interpretations imply.
type Candidate struct {
	Group         grouping.Group
	OutroEpisodes int
	IntroEpisodes int
}

// ExactOutro reports whether the outro reading yields expected episodes.
func (c Candidate) ExactOutro(expected int) bool { return c.OutroEpisodes == expected }

// ExactIntro reports whether the intro reading yields expected episodes.
func (c Candidate) ExactIntro(expected int) bool { return c.IntroEpisodes == expected }

// Closest returns the style whose episode count is nearer expected,
// preferring outro on ties.
func (c Candidate) Closest(expected int) Style {
	if absInt(c.IntroEpisodes-expected) < absInt(c.OutroEpisodes-expected) {
		return StyleIntro
	}
	return StyleOutro
}

// DecisionRequest asks for one of Candidates, ranked best first.
type DecisionRequest struct {
	Expected   int
	Total      int
	Candidates []Candidate
}

// Selection is a Decider's answer. Index addresses
// DecisionRequest.Candidates; Quit abandons the selection.
type Selection struct {
	Index int
	Quit  bool
}

// Decider chooses a candidate when the expected count does not single one
// out.
type Decider interface {
	Decide(ctx context.Context, req DecisionRequest) (Selection, error)
}

// DeciderFunc adapts a function to Decider.
type DeciderFunc func(ctx context.Context, req DecisionRequest) (Selection, error)

// Decide calls f.
func (f DeciderFunc) Decide(ctx context.Context, req DecisionRequest) (Selection, error) {
	return f(ctx, req)
}

// FirstCandidate accepts the top-ranked candidate.
var FirstCandidate Decider = DeciderFunc(func(context.Context, DecisionRequest) (Selection, error) {
	return Selection{Index: 0}, nil
})

// Decline quits every selection.
var Decline Decider = DeciderFunc(func(context.Context, DecisionRequest) (Selection, error) {
	return Selection{Quit: true}, nil
})

// Fixed always selects index.
func Fixed(index int) Decider {
	return DeciderFunc(func(context.Context, DecisionRequest) (Selection, error) {
		return Selection{Index: index}, nil
	})
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
