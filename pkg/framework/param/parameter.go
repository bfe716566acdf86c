// Package param provides the parameter store read by the audio thread.
package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Parameter is one host-automatable control.
// The normalized value is stored atomically so the host thread can write
// while the audio thread reads without locks.
type Parameter struct {
	ID           uint32
	Name         string
	ShortName    string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64 // normalized
	StepCount    int32   // 0 for continuous, N-1 for an N-entry list
	Flags        uint32

	value atomic.Uint64

	formatFunc func(float64) string
	parseFunc  func(string) (float64, error)
}

// Flags for parameters
const (
	CanAutomate uint32 = 1 << 0
	IsReadOnly  uint32 = 1 << 1
	IsList      uint32 = 1 << 3
	IsHidden    uint32 = 1 << 4
)

// GetValue returns the current normalized value (0-1)
func (p *Parameter) GetValue() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue sets the normalized value, clamped to 0-1
func (p *Parameter) SetValue(value float64) {
	if value < 0 || value != value {
		value = 0
	} else if value > 1 {
		value = 1
	}
	p.value.Store(math.Float64bits(value))
}

// GetPlainValue returns the value in parameter units.
// Stepped parameters snap to the nearest step.
func (p *Parameter) GetPlainValue() float64 {
	return p.Denormalize(p.GetValue())
}

// SetPlainValue sets the value in parameter units
func (p *Parameter) SetPlainValue(plain float64) {
	p.SetValue(p.Normalize(plain))
}

// Reset restores the default value
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}

// FormatValue returns the display string for a normalized value
func (p *Parameter) FormatValue(normalized float64) string {
	plain := p.Denormalize(normalized)
	if p.formatFunc != nil {
		return p.formatFunc(plain)
	}
	if p.StepCount > 0 {
		return fmt.Sprintf("%.0f", plain)
	}
	return fmt.Sprintf("%.2f", plain)
}

// ParseValue parses a display string to a normalized value
func (p *Parameter) ParseValue(str string) (float64, error) {
	var (
		plain float64
		err   error
	)
	if p.parseFunc != nil {
		plain, err = p.parseFunc(str)
	} else {
		plain, err = strconv.ParseFloat(str, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", p.ShortName, err)
	}
	return p.Normalize(plain), nil
}

// Normalize converts plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	normalized := (plain - p.Min) / (p.Max - p.Min)
	if normalized < 0 {
		return 0
	}
	if normalized > 1 {
		return 1
	}
	return normalized
}

// Denormalize converts normalized (0-1) to plain value
func (p *Parameter) Denormalize(normalized float64) float64 {
	if p.StepCount > 0 {
		step := math.Round(normalized * float64(p.StepCount))
		return p.Min + step*(p.Max-p.Min)/float64(p.StepCount)
	}
	return p.Min + normalized*(p.Max-p.Min)
}
