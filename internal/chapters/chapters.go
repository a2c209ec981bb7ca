package chapters

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoChapters is returned when a container carries no chapter markers.
var ErrNoChapters = errors.New("container has no chapters")

// Marker is a raw chapter entry as dumped by an external tool.
type Marker struct {
	Start float64
	Label string
}

// Chapter is one chapter of the container. Index is 1-based and strictly
// increases with Start.
type Chapter struct {
	Index       int
	Label       string
	Start       float64
	Duration    float64
	HasDuration bool
}

// Build assigns indices and next-start durations to markers. The final
// chapter is left without a duration.
func Build(markers []Marker) ([]Chapter, error) {
	if len(markers) == 0 {
		return nil, ErrNoChapters
	}
	out := make([]Chapter, len(markers))
	for i, m := range markers {
		if m.Start < 0 || math.IsNaN(m.Start) || math.IsInf(m.Start, 0) {
			return nil, fmt.Errorf("chapter %d: invalid start time %v", i+1, m.Start)
		}
		if i > 0 && m.Start < markers[i-1].Start {
			return nil, fmt.Errorf("chapter %d starts at %.3fs before chapter %d (%.3fs)", i+1, m.Start, i, markers[i-1].Start)
		}
		label := m.Label
		if label == "" {
			label = FormatTimestamp(m.Start)
		}
		out[i] = Chapter{Index: i + 1, Label: label, Start: m.Start}
		if i < len(markers)-1 {
			out[i].Duration = markers[i+1].Start - m.Start
			out[i].HasDuration = true
		}
	}
	return out, nil
}

// FilterShort splits chapters into those lasting at least minSeconds and
// those skipped. The final chapter is always kept because its length is
// unknown.
func FilterShort(list []Chapter, minSeconds float64) (kept, skipped []Chapter) {
	for _, ch := range list {
		if ch.HasDuration && ch.Duration < minSeconds {
			skipped = append(skipped, ch)
			continue
		}
		kept = append(kept, ch)
	}
	return kept, skipped
}

// LastIndex returns the highest chapter index, or 0 for an empty list.
func LastIndex(list []Chapter) int {
	last := 0
	for _, ch := range list {
		last = max(last, ch.Index)
	}
	return last
}

// ByIndex returns a lookup from chapter index to chapter.
func ByIndex(list []Chapter) map[int]Chapter {
	out := make(map[int]Chapter, len(list))
	for _, ch := range list {
		out[ch.Index] = ch
	}
	return out
}

// FormatTimestamp renders seconds as HH:MM:SS.mmm.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds / 3600)
	minutes := int(math.Mod(seconds, 3600) / 60)
	secs := math.Mod(seconds, 60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, secs)
}
