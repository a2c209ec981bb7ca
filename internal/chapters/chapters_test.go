package chapters

import (
	"errors"
	"strings"
	"testing"
)

const sampleXML = `<?xml version="1.0"?>
<!DOCTYPE Chapters SYSTEM "matroskachapters.dtd">
<Chapters>
  <EditionEntry>
    <ChapterAtom>
      <ChapterUID>1</ChapterUID>
      <ChapterTimeStart>00:00:00.000000000</ChapterTimeStart>
      <ChapterDisplay><ChapterString>Opening</ChapterString></ChapterDisplay>
    </ChapterAtom>
    <ChapterAtom>
      <ChapterTimeStart>00:00:05,000000000</ChapterTimeStart>
    </ChapterAtom>
    <ChapterAtom>
      <ChapterTimeStart>00:21:45.500000000</ChapterTimeStart>
      <ChapterAtom>
        <ChapterTimeStart>00:22:00.000000000</ChapterTimeStart>
      </ChapterAtom>
    </ChapterAtom>
  </EditionEntry>
</Chapters>`

func TestParseMatroskaXML(t *testing.T) {
	markers, err := ParseMatroskaXML(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("ParseMatroskaXML returned error: %v", err)
	}
	want := []Marker{
		{Start: 0, Label: "Opening"},
		{Start: 5, Label: "00:00:05,000000000"},
		{Start: 1305.5, Label: "00:21:45.500000000"},
		{Start: 1320, Label: "00:22:00.000000000"},
	}
	if len(markers) != len(want) {
		t.Fatalf("got %d markers, want %d", len(markers), len(want))
	}
	for i := range want {
		if markers[i] != want[i] {
			t.Fatalf("marker %d = %+v, want %+v", i, markers[i], want[i])
		}
	}
}

const multiEditionXML = `<?xml version="1.0"?>
<Chapters>
  <EditionEntry>
    <ChapterAtom><ChapterTimeStart>00:00:00.000000000</ChapterTimeStart></ChapterAtom>
    <ChapterAtom><ChapterTimeStart>00:45:00.000000000</ChapterTimeStart></ChapterAtom>
  </EditionEntry>
  <EditionEntry>
    <EditionFlagDefault>1</EditionFlagDefault>
    <ChapterAtom><ChapterTimeStart>00:00:00.000000000</ChapterTimeStart></ChapterAtom>
    <ChapterAtom><ChapterTimeStart>00:22:00.000000000</ChapterTimeStart></ChapterAtom>
    <ChapterAtom><ChapterTimeStart>00:44:00.000000000</ChapterTimeStart></ChapterAtom>
  </EditionEntry>
</Chapters>`

func TestParseMatroskaXMLReadsOneEdition(t *testing.T) {
	markers, err := ParseMatroskaXML(strings.NewReader(multiEditionXML))
	if err != nil {
		t.Fatalf("ParseMatroskaXML returned error: %v", err)
	}
	if len(markers) != 3 || markers[1].Start != 1320 || markers[2].Start != 2640 {
		t.Fatalf("expected the default edition, got %+v", markers)
	}
	if _, err := Build(markers); err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	first := strings.Replace(multiEditionXML, "<EditionFlagDefault>1</EditionFlagDefault>", "", 1)
	markers, err = ParseMatroskaXML(strings.NewReader(first))
	if err != nil {
		t.Fatalf("ParseMatroskaXML returned error: %v", err)
	}
	if len(markers) != 2 || markers[1].Start != 2700 {
		t.Fatalf("expected the first edition without a default flag, got %+v", markers)
	}
}

func TestParseMatroskaXMLEmpty(t *testing.T) {
	if _, err := ParseMatroskaXML(strings.NewReader("")); !errors.Is(err, ErrNoChapters) {
		t.Fatalf("expected ErrNoChapters for empty dump, got %v", err)
	}
	if _, err := ParseMatroskaXML(strings.NewReader("<Chapters></Chapters>")); !errors.Is(err, ErrNoChapters) {
		t.Fatalf("expected ErrNoChapters for chapterless xml, got %v", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"00:00:00.000", 0, false},
		{"01:02:05.5", 3725.5, false},
		{" 00:10:00,250 ", 600.25, false},
		{"10:00", 0, true},
		{"aa:00:00", 0, true},
		{"00:-1:00", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseTimestamp(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if !tt.wantErr && got != tt.want {
			t.Fatalf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBuildAssignsIndicesAndDurations(t *testing.T) {
	list, err := Build([]Marker{{Start: 0}, {Start: 300, Label: "Recap"}, {Start: 1800}})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 chapters, got %d", len(list))
	}
	if list[0].Index != 1 || list[0].Duration != 300 || !list[0].HasDuration || list[0].Label != "00:00:00.000" {
		t.Fatalf("unexpected first chapter: %+v", list[0])
	}
	if list[1].Label != "Recap" || list[1].Duration != 1500 {
		t.Fatalf("unexpected second chapter: %+v", list[1])
	}
	if list[2].Index != 3 || list[2].HasDuration {
		t.Fatalf("final chapter must not have a duration: %+v", list[2])
	}
	if LastIndex(list) != 3 {
		t.Fatalf("LastIndex = %d", LastIndex(list))
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	if _, err := Build(nil); !errors.Is(err, ErrNoChapters) {
		t.Fatalf("expected ErrNoChapters, got %v", err)
	}
	if _, err := Build([]Marker{{Start: 10}, {Start: 5}}); err == nil {
		t.Fatal("expected error for unordered markers")
	}
	if _, err := Build([]Marker{{Start: -1}}); err == nil {
		t.Fatal("expected error for negative start")
	}
}

func TestFilterShortKeepsOriginalIndices(t *testing.T) {
	list, err := Build([]Marker{{Start: 0}, {Start: 50}, {Start: 54}, {Start: 100}, {Start: 109}})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	kept, skipped := FilterShort(list, 10)
	if got := indices(kept); !equalInts(got, []int{1, 3, 5}) {
		t.Fatalf("kept = %v", got)
	}
	if got := indices(skipped); !equalInts(got, []int{2, 4}) {
		t.Fatalf("skipped = %v", got)
	}
	if LastIndex(kept) != 5 {
		t.Fatalf("LastIndex(kept) = %d", LastIndex(kept))
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(3725.5); got != "01:02:05.500" {
		t.Fatalf("FormatTimestamp = %q", got)
	}
	if got := FormatTimestamp(-3); got != "00:00:00.000" {
		t.Fatalf("FormatTimestamp(-3) = %q", got)
	}
}

func indices(list []Chapter) []int {
	out := make([]int, 0, len(list))
	for _, ch := range list {
		out = append(out, ch.Index)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
