// Package voice holds the fixed bank of oscillator voices summed by the compositor.
package voice

import (
	"github.com/justyntemme/wavecompositor/pkg/dsp/oscillator"
)

// Count is the number of voices in a bank
const Count = 3

// Params tunes one voice relative to the shared base frequency.
// Values are taken as-is: no range checks, gain is linear.
type Params struct {
	Multiplier float32 // frequency ratio to the base frequency
	Offset     float32 // fractional detune, f = base * Multiplier * (1 + Offset)
	Gain       float32 // linear amplitude
}

// Frequency returns the voice target frequency for a base frequency
func (p Params) Frequency(base float32) float32 {
	return base * p.Multiplier * (1 + p.Offset)
}

// Bank owns three oscillators that always share one waveform.
type Bank struct {
	waveform oscillator.Waveform
	voices   [Count]oscillator.Oscillator
}

// NewBank creates a bank with all voices at phase 0
func NewBank(waveform oscillator.Waveform) *Bank {
	b := &Bank{}
	b.replace(waveform)
	return b
}

// Waveform returns the shape shared by every voice
func (b *Bank) Waveform() oscillator.Waveform {
	return b.waveform
}

// Phase returns the phase of voice i (0-based)
func (b *Bank) Phase(i int) float32 {
	return b.voices[i].Phase()
}

// SetWaveform switches every voice to target. A change rebuilds all three
// oscillators together, resetting their phases to 0 (audible as a click);
// the same waveform is a no-op.
func (b *Bank) SetWaveform(target oscillator.Waveform) {
	if target == b.waveform {
		return
	}
	b.replace(target)
}

func (b *Bank) replace(waveform oscillator.Waveform) {
	b.waveform = waveform
	for i := range b.voices {
		b.voices[i] = *oscillator.New(waveform)
	}
}

// RenderSample advances voices 1, 2, 3 in order and returns the unclamped sum.
func (b *Bank) RenderSample(baseFrequency float32, params [Count]Params, sampleRate float32) float32 {
	var sum float32
	for i := range b.voices {
		p := params[i]
		sum += b.voices[i].Sample(p.Frequency(baseFrequency), p.Gain, sampleRate)
	}
	return sum
}
