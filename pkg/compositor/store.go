package compositor

import (
	"github.com/justyntemme/wavecompositor/pkg/dsp/gain"
	"github.com/justyntemme/wavecompositor/pkg/dsp/oscillator"
	"github.com/justyntemme/wavecompositor/pkg/framework/param"
	"github.com/justyntemme/wavecompositor/pkg/framework/voice"
)

// SmoothingTimeMs is the ramp time applied to every continuous control
const SmoothingTimeMs = 10.0

type voiceControls struct {
	multiplier *param.Smoothed
	gainDB     *param.Smoothed
	offset     *param.Smoothed
}

// Store is the SnapshotSource backed by a parameter registry.
// Each Next call polls the parameters and advances one smoother step, so
// host writes between blocks (or mid-block) ramp in over SmoothingTimeMs.
// Gains are smoothed in dB and converted to linear per sample.
type Store struct {
	waveform *param.Parameter
	base     *param.Smoothed
	voices   [voice.Count]voiceControls
}

// NewStore binds smoothers to the registry built by NewParameters.
func NewStore(params *param.Registry) *Store {
	s := &Store{
		waveform: params.Get(ParamWaveform),
		base:     param.NewSmoothed(params.Get(ParamBaseFrequency), param.LogarithmicSmoothing, SmoothingTimeMs),
	}
	for i := range s.voices {
		s.voices[i] = voiceControls{
			multiplier: param.NewSmoothed(params.Get(MultiplierID(i)), param.LogarithmicSmoothing, SmoothingTimeMs),
			gainDB:     param.NewSmoothed(params.Get(GainID(i)), param.LinearSmoothing, SmoothingTimeMs),
			offset:     param.NewSmoothed(params.Get(OffsetID(i)), param.LinearSmoothing, SmoothingTimeMs),
		}
	}
	return s
}

func (s *Store) each(fn func(*param.Smoothed)) {
	fn(s.base)
	for i := range s.voices {
		fn(s.voices[i].multiplier)
		fn(s.voices[i].gainDB)
		fn(s.voices[i].offset)
	}
}

// SetSampleRate retunes every smoother's ramp length
func (s *Store) SetSampleRate(sampleRate float64) {
	s.each(func(p *param.Smoothed) { p.SetSampleRate(sampleRate) })
}

// Reset snaps every smoother to its parameter's current value
func (s *Store) Reset() {
	s.each(func(p *param.Smoothed) { p.Reset() })
}

// IsSmoothing reports whether any control is still ramping
func (s *Store) IsSmoothing() bool {
	smoothing := false
	s.each(func(p *param.Smoothed) {
		if p.IsSmoothing() {
			smoothing = true
		}
	})
	return smoothing
}

// Waveform returns the selected waveform. The choice is never smoothed.
func (s *Store) Waveform() oscillator.Waveform {
	w := oscillator.Waveform(int(s.waveform.GetPlainValue() + 0.5))
	if !w.Valid() {
		return oscillator.Sine
	}
	return w
}

// Next implements SnapshotSource.
func (s *Store) Next() Snapshot {
	snap := Snapshot{
		Waveform:      s.Waveform(),
		BaseFrequency: float32(s.base.Next()),
	}
	for i := range s.voices {
		c := &s.voices[i]
		snap.Voices[i] = voice.Params{
			Multiplier: float32(c.multiplier.Next()),
			Gain:       float32(gain.DbToLinearFloor(c.gainDB.Next(), MinGainDB)),
			Offset:     float32(c.offset.Next()),
		}
	}
	return snap
}
