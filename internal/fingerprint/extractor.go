package fingerprint

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"autosplit/internal/chapters"
	"autosplit/internal/progress"
)

// Config controls segment selection and the MFCC front end.
type Config struct {
	SampleRate      int
	SegmentSeconds  float64
	SilenceFloor    float64
	FFTSize         int
	HopSize         int
	NumMels         int
	NumCoefficients int
	TopDB           float64
}

// DefaultConfig returns the standard fingerprint parameters.
func DefaultConfig() Config {
	return Config{
		SampleRate:      22050,
		SegmentSeconds:  10,
		SilenceFloor:    0.005,
		FFTSize:         2048,
		HopSize:         512,
		NumMels:         128,
		NumCoefficients: 13,
		TopDB:           80,
	}
}

// Signal is a mono PCM source addressed in samples.
type Signal interface {
	SampleRate() int
	Len() int
	// Segment returns length samples from offset, or nil when the window
	// does not fit inside the signal.
	Segment(offset, length int) []float32
}

// Sample is the fingerprint of one chapter's opening segment.
type Sample struct {
	Chapter int
	Label   string
	Start   float64
	Vector  []float64
}

// Extractor computes chapter fingerprints.
type Extractor struct {
	cfg  Config
	plan *mfcc
}

// New creates an Extractor; zero fields of cfg take their defaults.
func New(cfg Config) *Extractor {
	def := DefaultConfig()
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.SegmentSeconds <= 0 {
		cfg.SegmentSeconds = def.SegmentSeconds
	}
	if cfg.SilenceFloor < 0 {
		cfg.SilenceFloor = def.SilenceFloor
	}
	if cfg.FFTSize <= 0 {
		cfg.FFTSize = def.FFTSize
	}
	if cfg.HopSize <= 0 {
		cfg.HopSize = def.HopSize
	}
	if cfg.NumMels <= 0 {
		cfg.NumMels = def.NumMels
	}
	if cfg.NumCoefficients <= 0 {
		cfg.NumCoefficients = def.NumCoefficients
	}
	if cfg.TopDB == 0 {
		cfg.TopDB = def.TopDB
	}
	return &Extractor{cfg: cfg, plan: newMFCC(cfg)}
}

// Config returns the effective configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// SegmentSamples returns the fingerprint window length in samples.
func (e *Extractor) SegmentSamples() int {
	return int(e.cfg.SegmentSeconds * float64(e.cfg.SampleRate))
}

// Fingerprint returns the mean MFCC vector of segment.
func (e *Extractor) Fingerprint(segment []float32) []float64 {
	return e.plan.meanCoefficients(toFloat64(segment))
}

// Samples fingerprints the opening segment of every chapter. Chapters whose
// segment does not fit inside the signal, or whose RMS is below the silence
// floor, produce no sample.
func (e *Extractor) Samples(signal Signal, list []chapters.Chapter, report progress.Func) []Sample {
	if signal == nil {
		return nil
	}
	ex := e.forRate(signal.SampleRate())
	rate := float64(ex.cfg.SampleRate)
	length := ex.SegmentSamples()

	samples := make([]Sample, 0, len(list))
	for i, ch := range list {
		report.Report(progress.StageFingerprint, i+1, len(list))

		offset := int(ch.Start * rate)
		if offset < 0 || offset+length > signal.Len() {
			continue
		}
		segment := signal.Segment(offset, length)
		if segment == nil {
			continue
		}
		x := toFloat64(segment)
		if RMS(x) < ex.cfg.SilenceFloor {
			continue
		}
		samples = append(samples, Sample{
			Chapter: ch.Index,
			Label:   ch.Label,
			Start:   ch.Start,
			Vector:  ex.plan.meanCoefficients(x),
		})
	}
	return samples
}

func (e *Extractor) forRate(rate int) *Extractor {
	if rate <= 0 || rate == e.cfg.SampleRate {
		return e
	}
	cfg := e.cfg
	cfg.SampleRate = rate
	return New(cfg)
}

// RMS returns the root mean square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(x, x) / float64(len(x)))
}

func toFloat64(x []float32) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}
	return out
}
