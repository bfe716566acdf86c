// Package process provides the per-block processing context handed to processors.
package process

import (
	"github.com/justyntemme/wavecompositor/pkg/framework/param"
)

// Context describes one processing block with zero allocations.
// Output holds one slice per channel, all the same length.
type Context struct {
	Output     [][]float32
	SampleRate float64

	channels     [][]float32
	maxBlockSize int
	params       *param.Registry
}

// NewContext creates a context with pre-allocated channel buffers
func NewContext(numChannels, maxBlockSize int, sampleRate float64, params *param.Registry) *Context {
	c := &Context{
		SampleRate:   sampleRate,
		channels:     make([][]float32, numChannels),
		maxBlockSize: maxBlockSize,
		params:       params,
	}
	backing := make([]float32, numChannels*maxBlockSize)
	for ch := range c.channels {
		lo, hi := ch*maxBlockSize, (ch+1)*maxBlockSize
		c.channels[ch] = backing[lo:hi:hi]
	}
	c.Output = c.channels
	return c
}

// MaxBlockSize returns the capacity of each channel buffer
func (c *Context) MaxBlockSize() int {
	return c.maxBlockSize
}

// Resize points Output at the first n frames of the pre-allocated buffers.
// n is capped at MaxBlockSize.
func (c *Context) Resize(n int) {
	if n > c.MaxBlockSize() {
		n = c.MaxBlockSize()
	}
	if n < 0 {
		n = 0
	}
	for ch := range c.channels {
		c.channels[ch] = c.channels[ch][:n]
	}
	c.Output = c.channels
}

// Param returns the current value of a parameter (0-1 normalized)
func (c *Context) Param(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetValue()
	}
	return 0
}

// ParamPlain returns the current plain value of a parameter
func (c *Context) ParamPlain(id uint32) float64 {
	if p := c.params.Get(id); p != nil {
		return p.GetPlainValue()
	}
	return 0
}

// NumSamples returns the number of frames to process
func (c *Context) NumSamples() int {
	if len(c.Output) > 0 {
		return len(c.Output[0])
	}
	return 0
}

// NumOutputChannels returns the number of output channels
func (c *Context) NumOutputChannels() int {
	return len(c.Output)
}

// Clear zeros the output buffers
func (c *Context) Clear() {
	for ch := range c.Output {
		clear(c.Output[ch])
	}
}

// Interleave writes Output frame by frame into dst (L R L R ...) and
// returns the number of samples written.
func (c *Context) Interleave(dst []float32) int {
	channels := len(c.Output)
	if channels == 0 {
		return 0
	}
	frames := c.NumSamples()
	if limit := len(dst) / channels; frames > limit {
		frames = limit
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			dst[i*channels+ch] = c.Output[ch][i]
		}
	}
	return frames * channels
}
