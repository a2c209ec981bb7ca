package ffprobe

import (
	"context"
	"math"
	"testing"
)

const sampleJSON = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264"},
    {"index": 1, "codec_type": "audio", "codec_name": "ac3", "sample_rate": "48000", "channels": 6},
    {"index": 2, "codec_type": "audio", "codec_name": "aac", "sample_rate": "48000", "channels": 2}
  ],
  "chapters": [
    {"id": 1, "start_time": "0.000000", "end_time": "312.500000", "tags": {"title": "Chapter 01"}},
    {"id": 2, "start_time": "312.500000", "end_time": "1400.000000", "tags": {"TITLE": " Act One "}},
    {"id": 3, "start_time": "1400.000000", "end_time": "1420.000000"}
  ],
  "format": {"filename": "disc.mkv", "nb_streams": 3, "duration": "1420.000000", "format_name": "matroska,webm"}
}`

func TestParse(t *testing.T) {
	result, err := Parse([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Chapters) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(result.Chapters))
	}
	if got := result.Chapters[1].StartSeconds(); got != 312.5 {
		t.Fatalf("unexpected chapter start: %v", got)
	}
	if got := result.Chapters[0].Title(); got != "Chapter 01" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := result.Chapters[1].Title(); got != "Act One" {
		t.Fatalf("expected case-insensitive title lookup, got %q", got)
	}
	if got := result.Chapters[2].Title(); got != "" {
		t.Fatalf("expected empty title, got %q", got)
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestStartSecondsHandlesInvalidValues(t *testing.T) {
	if !math.IsNaN(Chapter{StartTime: "bad"}.StartSeconds()) {
		t.Fatal("expected NaN start for unparsable start_time")
	}
	if !math.IsNaN(Chapter{}.StartSeconds()) {
		t.Fatal("expected NaN start for missing start_time")
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}
