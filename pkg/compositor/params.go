package compositor

import (
	"fmt"

	"github.com/justyntemme/wavecompositor/pkg/dsp/oscillator"
	"github.com/justyntemme/wavecompositor/pkg/framework/param"
	"github.com/justyntemme/wavecompositor/pkg/framework/voice"
)

// Parameter IDs. Values are stable across releases.
const (
	ParamWaveform uint32 = iota
	ParamBaseFrequency
	ParamWave1Multiplier
	ParamWave1Gain
	ParamWave1Offset
	ParamWave2Multiplier
	ParamWave2Gain
	ParamWave2Offset
	ParamWave3Multiplier
	ParamWave3Gain
	ParamWave3Offset
)

// Parameter ranges and defaults
const (
	MinBaseFrequency     = 20.0
	MaxBaseFrequency     = 2000.0
	DefaultBaseFrequency = 220.0

	MinMultiplier = 0.25
	MaxMultiplier = 8.0

	// MinGainDB is the bottom of the gain range and reads as silence
	MinGainDB = -60.0
	MaxGainDB = 0.0

	MaxOffset = 0.1
)

var (
	defaultMultipliers = [voice.Count]float64{1, 2, 3}
	defaultGainsDB     = [voice.Count]float64{-12, MinGainDB, MinGainDB}
)

// MultiplierID returns the multiplier parameter ID for voice i (0-based)
func MultiplierID(i int) uint32 {
	return ParamWave1Multiplier + uint32(i)*3
}

// GainID returns the gain parameter ID for voice i (0-based)
func GainID(i int) uint32 {
	return ParamWave1Gain + uint32(i)*3
}

// OffsetID returns the offset parameter ID for voice i (0-based)
func OffsetID(i int) uint32 {
	return ParamWave1Offset + uint32(i)*3
}

func waveformOptions() []param.ChoiceOption {
	aliases := map[oscillator.Waveform][]string{
		oscillator.Sine:     {"sin"},
		oscillator.Saw:      {"sawtooth", "ramp"},
		oscillator.Square:   {"sqr", "pulse"},
		oscillator.Triangle: {"tri"},
	}
	var opts []param.ChoiceOption
	for _, w := range oscillator.Waveforms() {
		opts = append(opts, param.ChoiceOption{Name: w.String(), Aliases: aliases[w]})
	}
	return opts
}

// NewParameters builds the registry of all Wave Compositor controls.
// Short names (waveform, base, mult1, gain1, offset1, ...) are what
// automation scripts and the -set flag use.
func NewParameters() *param.Registry {
	r := param.NewRegistry()

	r.Add(
		param.Choice(ParamWaveform, "Waveform", waveformOptions()).
			ShortName("waveform").
			Build(),
		param.FrequencyParameter(ParamBaseFrequency, "Base Frequency",
			MinBaseFrequency, MaxBaseFrequency, DefaultBaseFrequency).
			ShortName("base").
			Build(),
	)

	for i := 0; i < voice.Count; i++ {
		n := i + 1
		r.Add(
			param.MultiplierParameter(MultiplierID(i), fmt.Sprintf("Wave %d Multiplier", n),
				MinMultiplier, MaxMultiplier, defaultMultipliers[i]).
				ShortName(fmt.Sprintf("mult%d", n)).
				Build(),
			param.GainParameter(GainID(i), fmt.Sprintf("Wave %d Gain", n),
				MinGainDB, MaxGainDB, defaultGainsDB[i]).
				ShortName(fmt.Sprintf("gain%d", n)).
				Build(),
			param.OffsetParameter(OffsetID(i), fmt.Sprintf("Wave %d Offset", n), MaxOffset).
				ShortName(fmt.Sprintf("offset%d", n)).
				Build(),
		)
	}

	return r
}
