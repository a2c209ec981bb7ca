package fingerprint

import (
	"math"
	"testing"

	"autosplit/internal/chapters"
	"autosplit/internal/progress"
)

type floatSignal struct {
	rate int
	data []float32
}

func (s floatSignal) SampleRate() int { return s.rate }
func (s floatSignal) Len() int        { return len(s.data) }
func (s floatSignal) Segment(offset, length int) []float32 {
	if offset < 0 || offset+length > len(s.data) {
		return nil
	}
	return s.data[offset : offset+length]
}

func tone(rate int, seconds, freq, amp float64) []float32 {
	n := int(seconds * float64(rate))
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.SampleRate = 8000
	cfg.SegmentSeconds = 1
	return cfg
}

func TestFingerprintHasThirteenFiniteCoefficients(t *testing.T) {
	ex := New(DefaultConfig())
	vec := ex.Fingerprint(tone(22050, 1, 440, 0.3))
	if len(vec) != 13 {
		t.Fatalf("expected 13 coefficients, got %d", len(vec))
	}
	for i, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("coefficient %d is not finite: %v", i, v)
		}
	}
}

func TestFingerprintIsDeterministic(t *testing.T) {
	ex := New(smallConfig())
	seg := tone(8000, 1, 300, 0.5)
	a := ex.Fingerprint(seg)
	b := New(smallConfig()).Fingerprint(seg)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("coefficient %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestFingerprintDistinguishesTones(t *testing.T) {
	ex := New(smallConfig())
	low := ex.Fingerprint(tone(8000, 1, 200, 0.5))
	high := ex.Fingerprint(tone(8000, 1, 3000, 0.5))
	same := true
	for i := range low {
		if math.Abs(low[i]-high[i]) > 1e-6 {
			same = false
		}
	}
	if same {
		t.Fatal("expected different fingerprints for different tones")
	}
}

func TestFingerprintEmptySegment(t *testing.T) {
	if got := New(smallConfig()).Fingerprint(nil); got != nil {
		t.Fatalf("expected nil fingerprint for empty segment, got %v", got)
	}
}

func TestSamplesSkipsSilenceAndOutOfRange(t *testing.T) {
	cfg := smallConfig()
	rate := cfg.SampleRate
	var data []float32
	data = append(data, tone(rate, 2, 440, 0.4)...)   // chapter 1 at 0s
	data = append(data, make([]float32, 2*rate)...)   // chapter 2 at 2s: silence
	data = append(data, tone(rate, 2, 440, 0.4)...)   // chapter 3 at 4s
	data = append(data, tone(rate, 0.5, 440, 0.4)...) // chapter 4 at 6s: too short

	list := []chapters.Chapter{
		{Index: 1, Start: 0, Label: "a"},
		{Index: 2, Start: 2, Label: "b"},
		{Index: 3, Start: 4, Label: "c"},
		{Index: 4, Start: 6, Label: "d"},
	}

	var events []progress.Event
	samples := New(cfg).Samples(floatSignal{rate: rate, data: data}, list, func(e progress.Event) {
		events = append(events, e)
	})

	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].Chapter != 1 || samples[1].Chapter != 3 || samples[1].Label != "c" || samples[1].Start != 4 {
		t.Fatalf("unexpected samples: %+v", samples)
	}
	for i := range samples[0].Vector {
		if samples[0].Vector[i] != samples[1].Vector[i] {
			t.Fatal("identical segments must produce identical fingerprints")
		}
	}
	if len(events) != 4 || events[3].Current != 4 || events[3].Total != 4 || events[0].Stage != progress.StageFingerprint {
		t.Fatalf("unexpected progress events: %+v", events)
	}
}

func TestSamplesExactFitIsKept(t *testing.T) {
	cfg := smallConfig()
	data := tone(cfg.SampleRate, 1, 500, 0.4)
	samples := New(cfg).Samples(floatSignal{rate: cfg.SampleRate, data: data}, []chapters.Chapter{{Index: 1, Start: 0}}, nil)
	if len(samples) != 1 {
		t.Fatalf("expected the exact-fit segment to be kept, got %d samples", len(samples))
	}
}

func TestSamplesFollowsSignalRate(t *testing.T) {
	cfg := smallConfig()
	data := tone(16000, 3, 500, 0.4)
	samples := New(cfg).Samples(floatSignal{rate: 16000, data: data}, []chapters.Chapter{{Index: 1, Start: 2}, {Index: 2, Start: 2.5}}, nil)
	if len(samples) != 1 || samples[0].Chapter != 1 {
		t.Fatalf("expected only chapter 1 to fit at 16 kHz, got %+v", samples)
	}
}

func TestRMS(t *testing.T) {
	if RMS(nil) != 0 {
		t.Fatal("expected zero RMS for empty input")
	}
	if got := RMS([]float64{3, -3, 3, -3}); got != 3 {
		t.Fatalf("unexpected RMS %v", got)
	}
}

func TestOrthoDCTIsOrthonormal(t *testing.T) {
	basis := orthoDCT(13, 128)
	for i := range basis {
		for j := range basis {
			dot := 0.0
			for k := range basis[i] {
				dot += basis[i][k] * basis[j][k]
			}
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(dot-want) > 1e-9 {
				t.Fatalf("basis rows %d,%d dot = %v", i, j, dot)
			}
		}
	}
}

func TestMelScaleRoundTrip(t *testing.T) {
	for _, hz := range []float64{0, 440, 1000, 4000, 11025} {
		if got := melToHz(hzToMel(hz)); math.Abs(got-hz) > 1e-6 {
			t.Fatalf("round trip of %v Hz gave %v", hz, got)
		}
	}
	if hzToMel(1000) != 15 {
		t.Fatalf("expected 1 kHz at mel 15, got %v", hzToMel(1000))
	}
}

func TestSlaneyFiltersCoverSpectrum(t *testing.T) {
	filters := slaneyMelFilters(128, 2048, 22050)
	if len(filters) != 128 {
		t.Fatalf("expected 128 filters, got %d", len(filters))
	}
	prev := -1
	for i, f := range filters {
		if len(f.weights) == 0 {
			continue
		}
		if f.offset < prev {
			t.Fatalf("filter %d starts before filter %d", i, i-1)
		}
		prev = f.offset
		if f.offset+len(f.weights) > 1025 {
			t.Fatalf("filter %d exceeds spectrum", i)
		}
		for _, w := range f.weights {
			if w < 0 {
				t.Fatalf("filter %d has negative weight", i)
			}
		}
	}
}
