package fingerprint

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

const minPower = 1e-10

// melFilter is one triangular filter stored over its non-zero bins.
type melFilter struct {
	offset  int
	weights []float64
}

// mfcc holds the precomputed plan for one sample rate.
type mfcc struct {
	nfft    int
	hop     int
	topDB   float64
	window  []float64
	filters []melFilter
	dct     [][]float64
	fft     *fourier.FFT
}

func newMFCC(cfg Config) *mfcc {
	return &mfcc{
		nfft:    cfg.FFTSize,
		hop:     cfg.HopSize,
		topDB:   cfg.TopDB,
		window:  periodicHann(cfg.FFTSize),
		filters: slaneyMelFilters(cfg.NumMels, cfg.FFTSize, float64(cfg.SampleRate)),
		dct:     orthoDCT(cfg.NumCoefficients, cfg.NumMels),
		fft:     fourier.NewFFT(cfg.FFTSize),
	}
}

// meanCoefficients returns the MFCC matrix of x averaged across frames.
func (m *mfcc) meanCoefficients(x []float64) []float64 {
	if len(x) == 0 {
		return nil
	}
	pad := m.nfft / 2
	frames := 1 + len(x)/m.hop
	bands := len(m.filters)

	logMel := make([]float64, frames*bands)
	buf := make([]float64, m.nfft)
	power := make([]float64, m.nfft/2+1)
	var coeffs []complex128

	for t := 0; t < frames; t++ {
		start := t*m.hop - pad
		for k := range buf {
			i := start + k
			if i >= 0 && i < len(x) {
				buf[k] = x[i] * m.window[k]
			} else {
				buf[k] = 0
			}
		}
		coeffs = m.fft.Coefficients(coeffs, buf)
		for k, c := range coeffs {
			power[k] = real(c)*real(c) + imag(c)*imag(c)
		}
		row := logMel[t*bands : (t+1)*bands]
		for b, f := range m.filters {
			energy := 0.0
			if len(f.weights) > 0 {
				energy = floats.Dot(f.weights, power[f.offset:f.offset+len(f.weights)])
			}
			row[b] = 10 * math.Log10(math.Max(minPower, energy))
		}
	}

	if m.topDB > 0 {
		floor := floats.Max(logMel) - m.topDB
		for i, v := range logMel {
			if v < floor {
				logMel[i] = floor
			}
		}
	}

	// The DCT is linear, so averaging the log-mel frames first gives the
	// same mean as averaging per-frame coefficients.
	meanBand := make([]float64, bands)
	for t := 0; t < frames; t++ {
		floats.Add(meanBand, logMel[t*bands:(t+1)*bands])
	}
	floats.Scale(1/float64(frames), meanBand)

	out := make([]float64, len(m.dct))
	for k, basis := range m.dct {
		out[k] = floats.Dot(basis, meanBand)
	}
	return out
}

func periodicHann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// Slaney mel scale: linear below 1 kHz, logarithmic above.
const (
	melLinearStep = 200.0 / 3
	melBreakHz    = 1000.0
	melBreak      = melBreakHz / melLinearStep
)

var melLogStep = math.Log(6.4) / 27

func hzToMel(hz float64) float64 {
	if hz < melBreakHz {
		return hz / melLinearStep
	}
	return melBreak + math.Log(hz/melBreakHz)/melLogStep
}

func melToHz(mel float64) float64 {
	if mel < melBreak {
		return mel * melLinearStep
	}
	return melBreakHz * math.Exp(melLogStep*(mel-melBreak))
}

// slaneyMelFilters builds area-normalised triangular filters spanning 0 Hz to
// Nyquist.
func slaneyMelFilters(numMels, nfft int, sampleRate float64) []melFilter {
	bins := nfft/2 + 1
	nyquist := sampleRate / 2
	fftFreqs := make([]float64, bins)
	floats.Span(fftFreqs, 0, nyquist)

	melPoints := make([]float64, numMels+2)
	floats.Span(melPoints, hzToMel(0), hzToMel(nyquist))
	edges := make([]float64, len(melPoints))
	for i, mel := range melPoints {
		edges[i] = melToHz(mel)
	}

	filters := make([]melFilter, numMels)
	row := make([]float64, bins)
	for m := 0; m < numMels; m++ {
		lowerWidth := edges[m+1] - edges[m]
		upperWidth := edges[m+2] - edges[m+1]
		norm := 2 / (edges[m+2] - edges[m])
		first, last := -1, -1
		for k, f := range fftFreqs {
			lower := (f - edges[m]) / lowerWidth
			upper := (edges[m+2] - f) / upperWidth
			w := math.Max(0, math.Min(lower, upper)) * norm
			row[k] = w
			if w > 0 {
				if first < 0 {
					first = k
				}
				last = k
			}
		}
		if first < 0 {
			continue
		}
		filters[m] = melFilter{offset: first, weights: append([]float64(nil), row[first:last+1]...)}
	}
	return filters
}

// orthoDCT returns the first n rows of the orthonormal DCT-II basis of size
// size.
func orthoDCT(n, size int) [][]float64 {
	basis := make([][]float64, n)
	for k := range basis {
		scale := math.Sqrt(2 / float64(size))
		if k == 0 {
			scale = math.Sqrt(1 / float64(size))
		}
		row := make([]float64, size)
		for i := range row {
			row[i] = scale * math.Cos(math.Pi*float64(k)*(2*float64(i)+1)/(2*float64(size)))
		}
		basis[k] = row
	}
	return basis
}
