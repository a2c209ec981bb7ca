package grouping

import (
	"math"
	"reflect"
	"testing"

	"autosplit/internal/chapters"
	"autosplit/internal/fingerprint"
	"autosplit/internal/similarity"
)

func match(a, b int, sim float64) similarity.Match {
	return similarity.Match{
		A:          fingerprint.Sample{Chapter: a},
		B:          fingerprint.Sample{Chapter: b},
		Similarity: sim,
		Distance:   1 - sim/100,
	}
}

func TestIntroSequenceTriangle(t *testing.T) {
	tests := []struct {
		name    string
		matches []similarity.Match
	}{
		{
			name:    "unrelated pair",
			matches: []similarity.Match{match(4, 7, 99.97), match(4, 11, 99.96), match(7, 11, 99.98), match(20, 21, 99.99)},
		},
		{
			name:    "stray link to the cluster",
			matches: []similarity.Match{match(4, 7, 99.97), match(4, 11, 99.96), match(7, 11, 99.98), match(4, 20, 99.99)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group, ok := IntroSequence(tt.matches, ProvisionalIntro())
			if !ok {
				t.Fatal("expected a group")
			}
			if !reflect.DeepEqual(group.Chapters, []int{4, 7, 11}) {
				t.Fatalf("unexpected group %v", group.Chapters)
			}
			if group.Source != SourceIntro {
				t.Fatalf("unexpected source %q", group.Source)
			}
			if math.Abs(group.Key-99.97) > 1e-9 {
				t.Fatalf("unexpected mean similarity %v", group.Key)
			}
		})
	}
}

func TestIntroSequenceIgnoresLowQualityMatches(t *testing.T) {
	matches := []similarity.Match{match(1, 4, 99.8), match(1, 7, 99.8), match(4, 7, 99.8)}
	if _, ok := IntroSequence(matches, ProvisionalIntro()); ok {
		t.Fatal("matches below the similarity floor must not form a group")
	}
}

func TestIntroSequenceFinalPresetNeedsFour(t *testing.T) {
	triangle := []similarity.Match{match(4, 7, 99.99), match(4, 11, 99.99), match(7, 11, 99.99)}
	if _, ok := IntroSequence(triangle, FinalIntro()); ok {
		t.Fatal("a triangle must not satisfy the final preset")
	}
	clique := append(triangle, match(2, 4, 99.99), match(2, 7, 99.99), match(2, 11, 99.99))
	group, ok := IntroSequence(clique, FinalIntro())
	if !ok || !reflect.DeepEqual(group.Chapters, []int{2, 4, 7, 11}) {
		t.Fatalf("expected [2 4 7 11], got %v (ok=%v)", group.Chapters, ok)
	}
}

func TestIntroSequenceRejectsChainsWithoutDensity(t *testing.T) {
	// 1-2-3-4 path: inner chapters have two links but the ends only one.
	chain := []similarity.Match{match(1, 2, 99.99), match(2, 3, 99.99), match(3, 4, 99.99)}
	if _, ok := IntroSequence(chain, ProvisionalIntro()); ok {
		t.Fatal("a chain of two candidates must not form a group of three")
	}
}

func TestIntroSequenceEmpty(t *testing.T) {
	if _, ok := IntroSequence(nil, ProvisionalIntro()); ok {
		t.Fatal("expected no group for no matches")
	}
}

func buildChapters(t *testing.T, durations []float64) []chapters.Chapter {
	t.Helper()
	markers := make([]chapters.Marker, 0, len(durations)+1)
	start := 0.0
	for _, d := range durations {
		markers = append(markers, chapters.Marker{Start: start})
		start += d
	}
	markers = append(markers, chapters.Marker{Start: start})
	list, err := chapters.Build(markers)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return list
}

func TestByDurationRecurringShortChapters(t *testing.T) {
	// Chapters 1..9 have durations, chapter 10 is final.
	list := buildChapters(t, []float64{1500, 300, 1490, 1480, 300.5, 1470, 1460, 299, 1450})
	groups := ByDuration(list, DefaultTolerance)
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %+v", groups)
	}
	if !reflect.DeepEqual(groups[0].Chapters, []int{2, 5, 8}) {
		t.Fatalf("unexpected group %v", groups[0].Chapters)
	}
	if groups[0].Key != 299 || groups[0].Source != SourceDuration {
		t.Fatalf("expected key from the shortest seed, got %+v", groups[0])
	}
}

func TestByDurationEqualLongChaptersGroupToo(t *testing.T) {
	list := buildChapters(t, []float64{1500, 300, 1500, 1500, 300, 1500, 1500, 300, 1500})
	groups := ByDuration(list, DefaultTolerance)
	if len(groups) != 2 {
		t.Fatalf("expected two groups, got %+v", groups)
	}
	if !reflect.DeepEqual(groups[0].Chapters, []int{2, 5, 8}) || groups[0].Key != 300 {
		t.Fatalf("unexpected short group %+v", groups[0])
	}
	if !reflect.DeepEqual(groups[1].Chapters, []int{1, 3, 4, 6, 7, 9}) || groups[1].Key != 1500 {
		t.Fatalf("unexpected long group %+v", groups[1])
	}
}

func TestByDurationSeedLinkage(t *testing.T) {
	// 100, 101.5, 103: 103 is within tolerance of 101.5 but not of the seed.
	list := buildChapters(t, []float64{100, 101.5, 103, 104})
	groups := ByDuration(list, DefaultTolerance)
	if len(groups) != 2 {
		t.Fatalf("expected two groups, got %+v", groups)
	}
	if !reflect.DeepEqual(groups[0].Chapters, []int{1, 2}) || !reflect.DeepEqual(groups[1].Chapters, []int{3, 4}) {
		t.Fatalf("unexpected groups %+v", groups)
	}
}

func TestByDurationToleranceProperty(t *testing.T) {
	durations := []float64{42, 43.9, 44.1, 600, 601, 603.5, 41, 42.2, 900, 12, 13, 15}
	list := buildChapters(t, durations)
	byIndex := map[int]float64{}
	for _, ch := range list {
		if ch.HasDuration {
			byIndex[ch.Index] = ch.Duration
		}
	}
	seen := map[int]bool{}
	for _, g := range ByDuration(list, DefaultTolerance) {
		if g.Size() < 2 {
			t.Fatalf("group smaller than two: %+v", g)
		}
		seed := math.Inf(1)
		for _, ch := range g.Chapters {
			seed = math.Min(seed, byIndex[ch])
			if seen[ch] {
				t.Fatalf("chapter %d in two groups", ch)
			}
			seen[ch] = true
		}
		for _, ch := range g.Chapters {
			if byIndex[ch]-seed > DefaultTolerance {
				t.Fatalf("chapter %d (%v) too far from seed %v", ch, byIndex[ch], seed)
			}
		}
	}
}

func TestByDurationNeverGroupsFinalChapter(t *testing.T) {
	list := []chapters.Chapter{
		{Index: 1, Start: 0, Duration: 300, HasDuration: true},
		{Index: 2, Start: 300, Duration: 300, HasDuration: true},
		{Index: 3, Start: 600},
	}
	groups := ByDuration(list, 1000)
	if len(groups) != 1 || !reflect.DeepEqual(groups[0].Chapters, []int{1, 2}) {
		t.Fatalf("unexpected groups %+v", groups)
	}
	if ByDuration(list[2:], 1000) != nil {
		t.Fatal("expected no groups without durations")
	}
}

func TestGroupHelpers(t *testing.T) {
	g := Group{Chapters: []int{2, 5, 8}, Key: 300, Source: SourceDuration}
	if !g.Contains(5) || g.Contains(6) {
		t.Fatal("Contains mismatch")
	}
	if got := g.Describe(); got != "duration 300s" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := JoinChapters(g.Chapters); got != "2, 5, 8" {
		t.Fatalf("unexpected join %q", got)
	}
}
