package analysis

import (
	"math"
	"testing"

	"github.com/justyntemme/wavecompositor/pkg/dsp/oscillator"
	"github.com/justyntemme/wavecompositor/pkg/framework/voice"
)

const (
	frameSize  = 4096
	sampleRate = 48000
	// 32 bins of 11.71875 Hz, so every partial sits on a bin centre.
	baseFrequency = 375
)

func renderBank(w oscillator.Waveform, params [voice.Count]voice.Params) []float32 {
	bank := voice.NewBank(w)
	out := make([]float32, frameSize)
	for i := range out {
		out[i] = bank.RenderSample(baseFrequency, params, sampleRate)
	}
	return out
}

func TestNewSpectrumRejectsBadSizes(t *testing.T) {
	for _, size := range []int{1000, 3, 1, 0, -8} {
		if _, err := NewSpectrum(size, sampleRate); err == nil {
			t.Errorf("NewSpectrum(%d) succeeded, want error", size)
		}
	}
	if _, err := NewSpectrum(1024, 0); err == nil {
		t.Error("expected error for zero sample rate")
	}
}

func TestAdditivePartials(t *testing.T) {
	params := [voice.Count]voice.Params{
		{Multiplier: 1, Gain: 0.5},
		{Multiplier: 2, Gain: 0.25},
		{Multiplier: 3, Gain: 0.125},
	}

	s, err := NewSpectrum(frameSize, sampleRate)
	if err != nil {
		t.Fatal(err)
	}
	s.Analyze(renderBank(oscillator.Sine, params))
	peaks := s.Peaks(5, 0.01)

	if len(peaks) != 3 {
		t.Fatalf("found %d peaks, want 3: %+v", len(peaks), peaks)
	}
	for i, p := range peaks {
		wantFreq := baseFrequency * float64(params[i].Multiplier)
		if math.Abs(p.Frequency-wantFreq) > 1 {
			t.Errorf("peak %d at %.2f Hz, want %.2f Hz", i, p.Frequency, wantFreq)
		}
		if math.Abs(p.Magnitude-float64(params[i].Gain)) > 0.01 {
			t.Errorf("peak %d magnitude %.4f, want %.4f", i, p.Magnitude, params[i].Gain)
		}
	}
}

func TestDetunedVoiceMovesPartial(t *testing.T) {
	params := [voice.Count]voice.Params{
		{Multiplier: 1, Gain: 0.5},
		{Multiplier: 2, Offset: 0.1, Gain: 0.5},
		{Multiplier: 3, Gain: 0},
	}

	s, err := NewSpectrum(frameSize, sampleRate)
	if err != nil {
		t.Fatal(err)
	}
	s.Analyze(renderBank(oscillator.Sine, params))
	peaks := s.Peaks(2, 0.05)
	if len(peaks) != 2 {
		t.Fatalf("found %d peaks, want 2: %+v", len(peaks), peaks)
	}

	found := false
	for _, p := range peaks {
		// 375 * 2 * 1.1 = 825 Hz, off bin centre; interpolation gets within a bin.
		if math.Abs(p.Frequency-825) < s.BinFrequency(1) {
			found = true
		}
	}
	if !found {
		t.Errorf("no peak near 825 Hz: %+v", peaks)
	}
}

func TestSquareHasOnlyOddHarmonics(t *testing.T) {
	params := [voice.Count]voice.Params{
		{Multiplier: 1, Gain: 1},
		{Multiplier: 1, Gain: 0},
		{Multiplier: 1, Gain: 0},
	}

	s, err := NewSpectrum(frameSize, sampleRate)
	if err != nil {
		t.Fatal(err)
	}
	mag := s.Analyze(renderBank(oscillator.Square, params))

	fundamental := 32
	for k := 1; k <= 5; k++ {
		bin := fundamental * k
		if k%2 == 0 {
			if mag[bin] > 1e-6 {
				t.Errorf("even harmonic %d has magnitude %g", k, mag[bin])
			}
			continue
		}
		want := 4 / (math.Pi * float64(k))
		if math.Abs(mag[bin]-want) > 0.02 {
			t.Errorf("harmonic %d magnitude %.4f, want ~%.4f", k, mag[bin], want)
		}
	}
}

func TestAnalyzeZeroPadsShortInput(t *testing.T) {
	s, err := NewSpectrum(256, sampleRate)
	if err != nil {
		t.Fatal(err)
	}
	mag := s.Analyze(nil)
	for i, m := range mag {
		if m != 0 {
			t.Fatalf("bin %d = %g for silent input", i, m)
		}
	}
	if len(s.Peaks(3, 0)) != 0 {
		t.Error("silence should have no peaks")
	}
}
