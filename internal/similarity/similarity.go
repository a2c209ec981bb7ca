package similarity

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"autosplit/internal/fingerprint"
	"autosplit/internal/progress"
)

// DefaultThreshold is the default cosine distance below which two samples
// match (99.5 % similarity).
const DefaultThreshold = 0.005

// reportEvery throttles compare-stage progress callbacks.
const reportEvery = 100

// Match is an unordered pair of samples whose distance fell below the
// threshold. A precedes B in sample order.
type Match struct {
	A          fingerprint.Sample
	B          fingerprint.Sample
	Distance   float64
	Similarity float64
}

// CosineDistance returns 1 minus the cosine of the angle between a and b,
// clamped to [0, 2]. Identical vectors are at distance 0; a zero vector is
// at distance 1 from any other vector. a and b must have equal length.
func CosineDistance(a, b []float64) float64 {
	if floats.Equal(a, b) {
		return 0
	}
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 1
	}
	cos := floats.Dot(a, b) / (na * nb)
	cos = math.Max(-1, math.Min(1, cos))
	return 1 - cos
}

// SimilarityPercent converts a cosine distance to the reported percentage.
func SimilarityPercent(distance float64) float64 {
	return (1 - distance) * 100
}

// DistanceMatrix returns the symmetric matrix of pairwise distances between
// samples. It returns nil for fewer than two samples.
func DistanceMatrix(samples []fingerprint.Sample, report progress.Func) *mat.SymDense {
	n := len(samples)
	if n < 2 {
		return nil
	}
	total := n * (n - 1) / 2
	done := 0
	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m.SetSym(i, j, CosineDistance(samples[i].Vector, samples[j].Vector))
			done++
			if done%reportEvery == 0 {
				report.Report(progress.StageCompare, done, total)
			}
		}
	}
	if done%reportEvery != 0 {
		report.Report(progress.StageCompare, done, total)
	}
	return m
}

// FindMatches returns every pair whose distance is strictly below
// threshold, in generation order (i<j, row-major).
func FindMatches(samples []fingerprint.Sample, threshold float64, report progress.Func) []Match {
	m := DistanceMatrix(samples, report)
	if m == nil {
		return nil
	}
	var matches []Match
	n := len(samples)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := m.At(i, j)
			if d < threshold {
				matches = append(matches, Match{
					A:          samples[i],
					B:          samples[j],
					Distance:   d,
					Similarity: SimilarityPercent(d),
				})
			}
		}
	}
	return matches
}

// SortBySimilarity orders matches by descending similarity in place. Equal
// scores keep their generation order.
func SortBySimilarity(matches []Match) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}

// Top returns up to n of the most similar matches without modifying the
// input.
func Top(matches []Match, n int) []Match {
	if n <= 0 || len(matches) == 0 {
		return nil
	}
	sorted := SortBySimilarity(append([]Match(nil), matches...))
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
