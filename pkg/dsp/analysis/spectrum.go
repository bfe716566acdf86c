package analysis

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/ktye/fft"
)

// Spectrum computes windowed magnitude spectra of a fixed size.
type Spectrum struct {
	size       int
	sampleRate float64
	fft        fft.FFT
	window     []float64
	buf        []complex128
	magnitude  []float64
}

// NewSpectrum creates an analyzer for size-sample frames (a power of two).
func NewSpectrum(size int, sampleRate float64) (*Spectrum, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %v", sampleRate)
	}
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("fft size %d is not a power of two", size)
	}
	f, err := fft.New(size)
	if err != nil {
		return nil, fmt.Errorf("fft size %d: %w", size, err)
	}
	if f.N != size {
		return nil, fmt.Errorf("fft size %d: got transform of %d", size, f.N)
	}

	window := make([]float64, size)
	var sum float64
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size)))
		sum += window[i]
	}
	// Fold the window gain and the one-sided spectrum factor into the window.
	for i := range window {
		window[i] *= 2 / sum
	}

	return &Spectrum{
		size:       size,
		sampleRate: sampleRate,
		fft:        f,
		window:     window,
		buf:        make([]complex128, size),
		magnitude:  make([]float64, size/2+1),
	}, nil
}

// Size returns the frame size
func (s *Spectrum) Size() int {
	return s.size
}

// BinFrequency returns the centre frequency of a bin in Hz
func (s *Spectrum) BinFrequency(bin int) float64 {
	return float64(bin) * s.sampleRate / float64(s.size)
}

// Analyze transforms the first Size samples (zero padded if shorter) and
// returns magnitudes for bins 0..Size/2. The slice is reused between calls.
func (s *Spectrum) Analyze(samples []float32) []float64 {
	for i := range s.buf {
		var v float64
		if i < len(samples) {
			v = float64(samples[i]) * s.window[i]
		}
		s.buf[i] = complex(v, 0)
	}

	out := s.fft.Transform(s.buf)
	for i := range s.magnitude {
		s.magnitude[i] = cmplx.Abs(out[i])
	}
	return s.magnitude
}

// Peak is one spectral maximum.
type Peak struct {
	Bin       int
	Frequency float64 // interpolated
	Magnitude float64
}

// Peaks returns up to n local maxima of the last Analyze call above
// minMagnitude, strongest first.
func (s *Spectrum) Peaks(n int, minMagnitude float64) []Peak {
	m := s.magnitude
	var peaks []Peak
	for i := 1; i < len(m)-1; i++ {
		if m[i] < minMagnitude || m[i] <= m[i-1] || m[i] < m[i+1] {
			continue
		}
		peaks = append(peaks, Peak{
			Bin:       i,
			Frequency: s.BinFrequency(i) + s.interpolate(i)*s.sampleRate/float64(s.size),
			Magnitude: m[i],
		})
	}

	sort.Slice(peaks, func(a, b int) bool {
		return peaks[a].Magnitude > peaks[b].Magnitude
	})
	if len(peaks) > n {
		peaks = peaks[:n]
	}
	return peaks
}

// interpolate returns the fractional bin offset of a parabola through the
// peak and its neighbours.
func (s *Spectrum) interpolate(i int) float64 {
	a, b, c := s.magnitude[i-1], s.magnitude[i], s.magnitude[i+1]
	denom := a - 2*b + c
	if denom == 0 {
		return 0
	}
	return 0.5 * (a - c) / denom
}
