package grouping

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Source names the clusterer that produced a group.
type Source string

const (
	SourceIntro    Source = "intro"
	SourceDuration Source = "duration"
)

// Group is an ascending set of chapter indices believed to share a role.
// Key is the seed's rounded duration for duration groups and the mean
// in-group similarity for intro groups.
type Group struct {
	Chapters []int
	Key      float64
	Source   Source
}

// Size returns the number of chapters in the group.
func (g Group) Size() int {
	return len(g.Chapters)
}

// Contains reports whether chapter is a member.
func (g Group) Contains(chapter int) bool {
	_, ok := slices.BinarySearch(g.Chapters, chapter)
	return ok
}

// Describe returns a short human label such as "duration 300s".
func (g Group) Describe() string {
	switch g.Source {
	case SourceDuration:
		return fmt.Sprintf("duration %ss", strconv.FormatFloat(g.Key, 'f', -1, 64))
	case SourceIntro:
		return fmt.Sprintf("intro sequence (%.3f%% mean similarity)", g.Key)
	default:
		return "group " + JoinChapters(g.Chapters)
	}
}

// JoinChapters renders indices as "2, 5, 8".
func JoinChapters(chapters []int) string {
	parts := make([]string, len(chapters))
	for i, ch := range chapters {
		parts[i] = strconv.Itoa(ch)
	}
	return strings.Join(parts, ", ")
}
