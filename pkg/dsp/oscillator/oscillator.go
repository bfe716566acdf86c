// Package oscillator provides phase-accumulator oscillators for synthesis
package oscillator

import "math"

const twoPi = 2.0 * math.Pi

// Oscillator generates one periodic waveform from a phase accumulator.
// The waveform is fixed for the lifetime of the oscillator; build a new one
// to change shape.
type Oscillator struct {
	waveform Waveform
	phase    float32 // always in [0, 1)
}

// New creates an oscillator of the given shape at phase 0
func New(waveform Waveform) *Oscillator {
	return &Oscillator{waveform: waveform}
}

// Waveform returns the oscillator shape
func (o *Oscillator) Waveform() Waveform {
	return o.waveform
}

// Phase returns the current phase (0-1)
func (o *Oscillator) Phase() float32 {
	return o.phase
}

// Sample returns the waveform value at the current phase scaled by gain,
// then advances the phase by frequency/sampleRate.
// sampleRate must be positive; callers validate it up front.
func (o *Oscillator) Sample(frequency, gain, sampleRate float32) float32 {
	value := o.value()
	o.advance(frequency / sampleRate)
	return value * gain
}

// Process fills buffer with gained samples - no allocations
func (o *Oscillator) Process(buffer []float32, frequency, gain, sampleRate float32) {
	for i := range buffer {
		buffer[i] = o.Sample(frequency, gain, sampleRate)
	}
}

// value evaluates the waveform at the current phase
func (o *Oscillator) value() float32 {
	p := o.phase
	switch o.waveform {
	case Saw:
		return 2*p - 1
	case Square:
		if p >= 0.5 {
			return 1
		}
		return -1
	case Triangle:
		if p >= 0.5 {
			return 1 - 4*(p-0.5)
		}
		return -1 + 4*p
	default:
		return float32(math.Sin(twoPi * float64(p)))
	}
}

// advance moves the phase forward and wraps it back into [0, 1)
func (o *Oscillator) advance(delta float32) {
	p := o.phase + delta
	if p >= 1 || p < 0 {
		p -= float32(math.Floor(float64(p)))
		// Rounding of tiny negative phases can land exactly on 1.
		if p >= 1 {
			p = 0
		}
	}
	if p != p { // NaN from a non-finite frequency
		p = 0
	}
	o.phase = p
}
