package compositor

import (
	"errors"
	"fmt"
	"math"

	"github.com/justyntemme/wavecompositor/pkg/dsp/oscillator"
	"github.com/justyntemme/wavecompositor/pkg/framework/voice"
)

var (
	// ErrInvalidSampleRate is returned by Configure for rates that are not
	// positive finite numbers.
	ErrInvalidSampleRate = errors.New("invalid sample rate")

	// ErrNotConfigured is the panic value when rendering before Configure.
	ErrNotConfigured = errors.New("engine rendered before Configure")
)

// Engine renders the summed voice bank. It is not safe for concurrent use;
// controls arrive only through snapshots.
type Engine struct {
	bank       *voice.Bank
	sampleRate float32
}

// NewEngine creates an unconfigured engine with sine oscillators at phase 0
func NewEngine() *Engine {
	return &Engine{
		bank: voice.NewBank(oscillator.Sine),
	}
}

// Configure sets the sample rate for the following renders. Oscillator
// phases are left alone. A rejected rate keeps the previous configuration.
func (e *Engine) Configure(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	sr := float32(sampleRate)
	if sr == 0 || math.IsInf(float64(sr), 0) {
		return fmt.Errorf("%w: %v out of float32 range", ErrInvalidSampleRate, sampleRate)
	}
	e.sampleRate = sr
	return nil
}

// Configured reports whether a sample rate has been accepted
func (e *Engine) Configured() bool {
	return e.sampleRate > 0
}

// SampleRate returns the configured sample rate, or 0
func (e *Engine) SampleRate() float64 {
	return float64(e.sampleRate)
}

// Waveform returns the shape the oscillators currently run
func (e *Engine) Waveform() oscillator.Waveform {
	return e.bank.Waveform()
}

// Reset puts all oscillators back to phase 0 with the current waveform
func (e *Engine) Reset() {
	e.bank = voice.NewBank(e.bank.Waveform())
}

// RenderSample produces one mono sample from s.
// It panics with ErrNotConfigured if Configure has not succeeded.
func (e *Engine) RenderSample(s Snapshot) float32 {
	if e.sampleRate == 0 {
		panic(ErrNotConfigured)
	}
	e.bank.SetWaveform(s.Waveform)
	return e.bank.RenderSample(s.BaseFrequency, s.Voices, e.sampleRate)
}

// Render fills every channel of out with the same signal, reading one
// snapshot per sample frame. The frame count is the length of out[0];
// shorter channels are filled as far as they reach.
func (e *Engine) Render(out [][]float32, src SnapshotSource) {
	if len(out) == 0 || len(out[0]) == 0 {
		return
	}
	if e.sampleRate == 0 {
		panic(ErrNotConfigured)
	}
	for i := range out[0] {
		v := e.RenderSample(src.Next())
		for _, ch := range out {
			if i < len(ch) {
				ch[i] = v
			}
		}
	}
}
