package param

import (
	"math"
)

// SmoothingStyle defines how a Smoother moves toward a new target.
type SmoothingStyle int

const (
	// NoSmoothing jumps straight to the target
	NoSmoothing SmoothingStyle = iota
	// LinearSmoothing steps by a constant amount
	LinearSmoothing
	// LogarithmicSmoothing steps by a constant ratio (better for frequency parameters).
	// Ramps touching zero or negative values fall back to linear.
	LogarithmicSmoothing
)

// Smoother ramps a value to its target over a fixed time to prevent zipper noise.
// A ramp always lands exactly on the target.
type Smoother struct {
	style      SmoothingStyle
	durationMs float64
	steps      int

	current   float64
	target    float64
	step      float64
	ratio     float64
	remaining int
}

// NewSmoother creates a smoother that reaches each new target in durationMs.
// Call SetSampleRate before use; until then targets are applied immediately.
func NewSmoother(style SmoothingStyle, durationMs float64) *Smoother {
	return &Smoother{
		style:      style,
		durationMs: durationMs,
	}
}

// SetSampleRate converts the smoothing time to a step count.
func (s *Smoother) SetSampleRate(sampleRate float64) {
	s.steps = int(math.Round(sampleRate * s.durationMs / 1000.0))
}

// Steps returns the ramp length in samples
func (s *Smoother) Steps() int {
	return s.steps
}

// Reset jumps to value and stops any ramp.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.remaining = 0
}

// SetTarget starts a new ramp from the current value.
func (s *Smoother) SetTarget(target float64) {
	if target == s.target {
		return
	}
	s.target = target

	if s.style == NoSmoothing || s.steps <= 0 {
		s.current = target
		s.remaining = 0
		return
	}

	s.remaining = s.steps
	n := float64(s.steps)
	if s.style == LogarithmicSmoothing && s.current > 0 && target > 0 {
		s.ratio = math.Pow(target/s.current, 1/n)
		s.step = 0
		return
	}
	s.ratio = 0
	s.step = (target - s.current) / n
}

// Next advances one sample and returns the smoothed value.
func (s *Smoother) Next() float64 {
	if s.remaining == 0 {
		return s.current
	}

	s.remaining--
	switch {
	case s.remaining == 0:
		s.current = s.target
	case s.ratio != 0:
		s.current *= s.ratio
	default:
		s.current += s.step
	}
	return s.current
}

// IsSmoothing returns true while a ramp is in progress.
func (s *Smoother) IsSmoothing() bool {
	return s.remaining > 0
}

// Smoothed follows a Parameter's plain value through a Smoother.
// The audio thread polls the parameter once per sample, so host writes
// reach the render path without locks.
type Smoothed struct {
	param    *Parameter
	smoother *Smoother
}

// NewSmoothed binds a smoother to p, starting at p's current value.
func NewSmoothed(p *Parameter, style SmoothingStyle, durationMs float64) *Smoothed {
	s := &Smoothed{
		param:    p,
		smoother: NewSmoother(style, durationMs),
	}
	s.Reset()
	return s
}

// Parameter returns the underlying parameter
func (s *Smoothed) Parameter() *Parameter {
	return s.param
}

// SetSampleRate retunes the ramp length.
func (s *Smoothed) SetSampleRate(sampleRate float64) {
	s.smoother.SetSampleRate(sampleRate)
}

// Reset snaps to the parameter's current value.
func (s *Smoothed) Reset() {
	s.smoother.Reset(s.param.GetPlainValue())
}

// Next picks up any new parameter value and returns the next smoothed value.
func (s *Smoothed) Next() float64 {
	s.smoother.SetTarget(s.param.GetPlainValue())
	return s.smoother.Next()
}

// IsSmoothing returns true while a ramp is in progress.
func (s *Smoothed) IsSmoothing() bool {
	return s.smoother.IsSmoothing()
}
