package grouping

import (
	"sort"

	"autosplit/internal/similarity"
)

// IntroOptions tunes IntroSequence.
type IntroOptions struct {
	MinGroupSize  int
	MinSimilarity float64
}

// ProvisionalIntro is the looser preset used while exploring matches.
func ProvisionalIntro() IntroOptions {
	return IntroOptions{MinGroupSize: 3, MinSimilarity: 99.9}
}

// FinalIntro is the stricter preset used for the split decision.
func FinalIntro() IntroOptions {
	return IntroOptions{MinGroupSize: 4, MinSimilarity: 99.95}
}

// chapterStats accumulates the high-quality matches touching one chapter.
type chapterStats struct {
	chapter       int
	count         int
	similaritySum float64
	neighbours    []int
}

func (s *chapterStats) add(other int, sim float64) {
	s.count++
	s.similaritySum += sim
	s.neighbours = append(s.neighbours, other)
}

func (s *chapterStats) mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.similaritySum / float64(s.count)
}

// IntroSequence returns the densest group of chapters connected by matches
// at or above opts.MinSimilarity, or false when no group of at least
// opts.MinGroupSize chapters exists.
//
// A chapter is a candidate when it has MinGroupSize-1 high-quality matches,
// and is confirmed when MinGroupSize-1 of those matches end at other
// candidates. Only one group is ever returned.
func IntroSequence(matches []similarity.Match, opts IntroOptions) (Group, bool) {
	minSize := max(opts.MinGroupSize, 2)
	need := minSize - 1

	stats := make(map[int]*chapterStats)
	touch := func(chapter int) *chapterStats {
		s, ok := stats[chapter]
		if !ok {
			s = &chapterStats{chapter: chapter}
			stats[chapter] = s
		}
		return s
	}
	for _, m := range matches {
		if m.Similarity < opts.MinSimilarity {
			continue
		}
		touch(m.A.Chapter).add(m.B.Chapter, m.Similarity)
		touch(m.B.Chapter).add(m.A.Chapter, m.Similarity)
	}

	candidates := make([]*chapterStats, 0, len(stats))
	isCandidate := make(map[int]bool)
	for _, s := range stats {
		if s.count >= need {
			candidates = append(candidates, s)
			isCandidate[s.chapter] = true
		}
	}
	if len(candidates) == 0 {
		return Group{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.count != b.count {
			return a.count > b.count
		}
		if a.mean() != b.mean() {
			return a.mean() > b.mean()
		}
		return a.chapter < b.chapter
	})

	var confirmed []int
	for _, c := range candidates {
		linked := 0
		for _, other := range c.neighbours {
			if isCandidate[other] {
				linked++
			}
		}
		if linked >= need {
			confirmed = append(confirmed, c.chapter)
		}
	}
	if len(confirmed) < minSize {
		return Group{}, false
	}
	sort.Ints(confirmed)
	group := Group{Chapters: confirmed, Source: SourceIntro}
	group.Key = MeanSimilarity(matches, group)
	return group, true
}

// MeanSimilarity averages the similarity of matches whose two chapters both
// belong to g. It returns 0 when no such match exists.
func MeanSimilarity(matches []similarity.Match, g Group) float64 {
	sum, n := 0.0, 0
	for _, m := range matches {
		if g.Contains(m.A.Chapter) && g.Contains(m.B.Chapter) {
			sum += m.Similarity
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
