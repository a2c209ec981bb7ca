package pcm

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Signal is a mono PCM signal kept as 16-bit samples.
type Signal struct {
	rate    int
	samples []int16
}

// NewSignal wraps already decoded samples.
func NewSignal(rate int, samples []int16) *Signal {
	return &Signal{rate: rate, samples: samples}
}

// SampleRate returns the sampling rate in Hz.
func (s *Signal) SampleRate() int { return s.rate }

// Len returns the number of samples.
func (s *Signal) Len() int { return len(s.samples) }

// DurationSeconds returns the signal length in seconds.
func (s *Signal) DurationSeconds() float64 {
	if s.rate <= 0 {
		return 0
	}
	return float64(len(s.samples)) / float64(s.rate)
}

// Segment returns length samples starting at offset, scaled to [-1, 1).
// It returns nil when the window does not fit inside the signal.
func (s *Signal) Segment(offset, length int) []float32 {
	if offset < 0 || length <= 0 || offset+length > len(s.samples) {
		return nil
	}
	out := make([]float32, length)
	for i, v := range s.samples[offset : offset+length] {
		out[i] = float32(v) / 32768
	}
	return out
}

// Decode reads little-endian signed 16-bit samples from r.
func Decode(r io.Reader, rate int) (*Signal, error) {
	dec := newDecoder()
	if _, err := io.Copy(dec, r); err != nil {
		return nil, fmt.Errorf("decode pcm: %w", err)
	}
	return dec.signal(rate)
}

// decoder accumulates s16le bytes written in arbitrary chunk sizes.
type decoder struct {
	samples []int16
	carry   []byte
}

func newDecoder() *decoder {
	return &decoder{samples: make([]int16, 0, 1<<16)}
}

func (d *decoder) Write(p []byte) (int, error) {
	n := len(p)
	if len(d.carry) == 1 {
		if len(p) == 0 {
			return 0, nil
		}
		d.samples = append(d.samples, int16(binary.LittleEndian.Uint16([]byte{d.carry[0], p[0]})))
		d.carry = d.carry[:0]
		p = p[1:]
	}
	for len(p) >= 2 {
		d.samples = append(d.samples, int16(binary.LittleEndian.Uint16(p)))
		p = p[2:]
	}
	if len(p) == 1 {
		d.carry = append(d.carry[:0], p[0])
	}
	return n, nil
}

func (d *decoder) signal(rate int) (*Signal, error) {
	if len(d.carry) != 0 {
		return nil, fmt.Errorf("decode pcm: truncated sample (%d trailing byte)", len(d.carry))
	}
	if rate <= 0 {
		return nil, fmt.Errorf("decode pcm: invalid sample rate %d", rate)
	}
	return NewSignal(rate, d.samples), nil
}
