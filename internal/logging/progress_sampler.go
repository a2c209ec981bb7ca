package logging

import (
	"strings"

	"autosplit/internal/progress"
)

// ProgressSampler thins fingerprint and compare progress events down to one
// log line per percentage bucket of each stage.
type ProgressSampler struct {
	bucketSize float64
	buckets    map[string]int
}

// NewProgressSampler returns a sampler with buckets of bucketSize percent
// (default 5).
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 5
	}
	return &ProgressSampler{bucketSize: bucketSize, buckets: make(map[string]int)}
}

// ShouldLog reports whether ev is the first event of its stage or of a new
// bucket. Events without a total only log once per stage. A nil sampler
// logs everything.
func (s *ProgressSampler) ShouldLog(ev progress.Event) bool {
	if s == nil {
		return true
	}
	stage := strings.TrimSpace(ev.Stage)
	last, seen := s.buckets[stage]
	if !seen {
		last = -1
	}
	bucket := 0
	if pct := ev.Percent(); pct >= 0 {
		bucket = int(pct / s.bucketSize)
	}
	if seen && bucket <= last {
		return false
	}
	s.buckets[stage] = bucket
	return true
}
