package logging

import (
	"testing"

	"autosplit/internal/progress"
)

func TestNewProgressSamplerDefaults(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"zero uses default", 0, 5},
		{"negative uses default", -1, 5},
		{"custom", 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewProgressSampler(tt.bucketSize).bucketSize; got != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", got, tt.wantSize)
			}
		})
	}
}

func TestProgressSamplerNilAlwaysLogs(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(progress.Event{Stage: progress.StageFingerprint, Current: 1, Total: 2}) {
		t.Error("nil sampler should always log")
	}
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(25)
	steps := []struct {
		ev   progress.Event
		want bool
	}{
		{progress.Event{Stage: progress.StageFingerprint, Current: 0, Total: 8}, true},
		{progress.Event{Stage: progress.StageFingerprint, Current: 1, Total: 8}, false},
		{progress.Event{Stage: progress.StageFingerprint, Current: 2, Total: 8}, true},
		{progress.Event{Stage: " fingerprint ", Current: 3, Total: 8}, false},
		{progress.Event{Stage: progress.StageCompare, Current: 0, Total: 45}, true},
		{progress.Event{Stage: progress.StageFingerprint, Current: 8, Total: 8}, true},
		{progress.Event{Stage: progress.StageCompare, Current: 45, Total: 45}, true},
		{progress.Event{Stage: progress.StageCompare, Current: 45, Total: 45}, false},
	}
	for i, step := range steps {
		if got := s.ShouldLog(step.ev); got != step.want {
			t.Fatalf("step %d (%+v): got %v want %v", i, step.ev, got, step.want)
		}
	}
}

func TestProgressSamplerUnknownTotalLogsOncePerStage(t *testing.T) {
	s := NewProgressSampler(5)
	if !s.ShouldLog(progress.Event{Stage: progress.StageCompare, Current: 3}) {
		t.Fatal("first event of a stage should log")
	}
	if s.ShouldLog(progress.Event{Stage: progress.StageCompare, Current: 9}) {
		t.Fatal("events without a total should not repeat")
	}
}
