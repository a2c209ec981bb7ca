package episodeplan

import (
	"errors"
	"slices"
	"strings"

	"autosplit/internal/grouping"
)

var (
	// ErrNoDetection reports that no group was available to plan from.
	ErrNoDetection = errors.New("no repeating chapter pattern found")
	// ErrSelectionDeclined reports that the decider quit without choosing.
	ErrSelectionDeclined = errors.New("group selection declined")
	// ErrInvalidRequest reports an expected count or chapter total out of range.
	ErrInvalidRequest = errors.New("invalid plan request")
	// ErrAmbiguous reports that a choice was needed but no decider was supplied.
	ErrAmbiguous = errors.New("several groups fit; a selection is required")
)

// Style is the interpretation applied to a group.
type Style string

const (
	StyleOutro Style = "outro"
	StyleIntro Style = "intro"
)

// Plan is the ordered list of chapters at which new episodes start.
type Plan struct {
	Starts []int
	// Inferred lists starts added by heuristic rather than detected.
	Inferred  []int
	Style     Style
	Group     grouping.Group
	Reason    string
	Selected  bool
	Truncated bool
}

// IsInferred reports whether chapter was added by heuristic.
func (p Plan) IsInferred(chapter int) bool {
	return slices.Contains(p.Inferred, chapter)
}

func (p *Plan) note(text string) {
	if text == "" {
		return
	}
	if p.Reason == "" {
		p.Reason = text
		return
	}
	p.Reason = strings.TrimSpace(p.Reason) + " " + text
}

// OutroStarts returns the chapter after each member, dropping any that
// would fall past total.
func OutroStarts(g grouping.Group, total int) []int {
	starts := make([]int, 0, g.Size())
	for _, ch := range g.Chapters {
		if ch+1 <= total {
			starts = append(starts, ch+1)
		}
	}
	return starts
}

// IntroStarts returns the group members themselves.
func IntroStarts(g grouping.Group) []int {
	return append([]int(nil), g.Chapters...)
}
