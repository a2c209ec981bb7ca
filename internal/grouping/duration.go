package grouping

import (
	"math"
	"sort"

	"autosplit/internal/chapters"
)

// DefaultTolerance is the default duration tolerance in seconds.
const DefaultTolerance = 2.0

// ByDuration groups chapters whose durations lie within tolerance of a seed
// chapter. Chapters are visited shortest first; each ungrouped chapter seeds
// a group and claims every later ungrouped chapter within tolerance of the
// seed itself. Groups of one are dropped and chapters without a duration
// are never grouped. Groups are returned in seed order.
func ByDuration(list []chapters.Chapter, tolerance float64) []Group {
	usable := make([]chapters.Chapter, 0, len(list))
	for _, ch := range list {
		if ch.HasDuration {
			usable = append(usable, ch)
		}
	}
	if len(usable) < 2 {
		return nil
	}
	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].Duration < usable[j].Duration
	})

	used := make(map[int]bool, len(usable))
	var groups []Group
	for i, seed := range usable {
		if used[seed.Index] {
			continue
		}
		used[seed.Index] = true
		members := []int{seed.Index}
		for _, other := range usable[i+1:] {
			if used[other.Index] {
				continue
			}
			if math.Abs(other.Duration-seed.Duration) <= tolerance {
				members = append(members, other.Index)
				used[other.Index] = true
			}
		}
		if len(members) < 2 {
			continue
		}
		sort.Ints(members)
		groups = append(groups, Group{
			Chapters: members,
			Key:      math.RoundToEven(seed.Duration),
			Source:   SourceDuration,
		})
	}
	return groups
}
