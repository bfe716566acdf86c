package oscillator

import (
	"fmt"
	"strings"
)

// Waveform selects the periodic shape an Oscillator produces.
type Waveform int

const (
	// Sine is sin(2πp)
	Sine Waveform = iota
	// Saw ramps from -1 up to just below 1
	Saw
	// Square is -1 for the first half cycle and +1 for the second
	Square
	// Triangle rises from -1 to +1 at half cycle and falls back
	Triangle
)

var waveformNames = [...]string{"Sine", "Saw", "Square", "Triangle"}

// Waveforms returns every supported waveform in selector order.
func Waveforms() []Waveform {
	return []Waveform{Sine, Saw, Square, Triangle}
}

// String returns the display name of the waveform.
func (w Waveform) String() string {
	if w.Valid() {
		return waveformNames[w]
	}
	return fmt.Sprintf("Waveform(%d)", int(w))
}

// Valid reports whether w is one of the supported shapes.
func (w Waveform) Valid() bool {
	return w >= Sine && w <= Triangle
}

// ParseWaveform parses a waveform name, case-insensitive.
func ParseWaveform(s string) (Waveform, error) {
	name := strings.TrimSpace(s)
	for i, n := range waveformNames {
		if strings.EqualFold(name, n) {
			return Waveform(i), nil
		}
	}
	switch strings.ToLower(name) {
	case "sin":
		return Sine, nil
	case "sawtooth", "ramp":
		return Saw, nil
	case "sqr", "pulse":
		return Square, nil
	case "tri":
		return Triangle, nil
	}
	return Sine, fmt.Errorf("unknown waveform: %q", s)
}
