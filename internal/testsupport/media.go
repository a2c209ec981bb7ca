package testsupport

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TouchContainers creates empty placeholder files named names inside dir
// and returns their paths.
func TouchContainers(t testing.TB, dir string, names ...string) []string {
	t.Helper()

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte{0x1a, 0x45, 0xdf, 0xa3}, 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		paths = append(paths, path)
	}
	return paths
}

// ChapterXML renders an mkvextract chapter dump with one atom per start.
func ChapterXML(starts ...float64) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?>\n<Chapters>\n  <EditionEntry>\n")
	for i, s := range starts {
		hours := int(s / 3600)
		minutes := int(math.Mod(s, 3600) / 60)
		secs := math.Mod(s, 60)
		fmt.Fprintf(&b, "    <ChapterAtom>\n      <ChapterUID>%d</ChapterUID>\n      <ChapterTimeStart>%02d:%02d:%012.9f</ChapterTimeStart>\n    </ChapterAtom>\n", i+1, hours, minutes, secs)
	}
	b.WriteString("  </EditionEntry>\n</Chapters>\n")
	return b.String()
}

// Jingle returns a deterministic multi-tone burst of the given length at
// rate. Different seeds give spectrally different jingles.
func Jingle(rate int, seconds float64, seed int) []int16 {
	n := int(seconds * float64(rate))
	out := make([]int16, n)
	base := 180.0 + 97.0*float64(seed)
	for i := range out {
		x := float64(i) / float64(rate)
		v := 0.45*math.Sin(2*math.Pi*base*x) +
			0.25*math.Sin(2*math.Pi*base*2.7*x) +
			0.15*math.Sin(2*math.Pi*base*5.3*x)
		out[i] = int16(v * 32767 * 0.8)
	}
	return out
}

// Noise returns deterministic pseudo-random samples so that unrelated
// chapters do not fingerprint alike.
func Noise(rate int, seconds float64, seed uint32) []int16 {
	n := int(seconds * float64(rate))
	out := make([]int16, n)
	state := seed*2654435761 + 1
	for i := range out {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		out[i] = int16(int32(state%20000) - 10000)
	}
	return out
}
