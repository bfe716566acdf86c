// Package host runs a plugin.Processor outside a DAW: it owns the process
// context, pulls fixed-size blocks, applies automation at block boundaries
// and hands the rendered audio to file sinks or realtime backends.
package host

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/justyntemme/wavecompositor/pkg/framework/debug"
	"github.com/justyntemme/wavecompositor/pkg/framework/plugin"
	"github.com/justyntemme/wavecompositor/pkg/framework/process"
)

// Config describes a render session
type Config struct {
	SampleRate float64
	BlockSize  int
	// Channels overrides the processor's main output channel count when > 0
	Channels int
}

// DefaultConfig returns 48 kHz with 512-frame blocks
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		BlockSize:  512,
	}
}

// Validate checks the session settings
func (c Config) Validate() error {
	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("sample rate must be positive, got %v", c.SampleRate)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("block size must be positive, got %d", c.BlockSize)
	}
	if c.Channels < 0 {
		return fmt.Errorf("channel count cannot be negative, got %d", c.Channels)
	}
	return nil
}

// Automator updates parameters at the start of each block; t is in seconds
type Automator interface {
	Apply(t float64) error
}

// Driver stands in for a host transport. It is not safe for concurrent use.
type Driver struct {
	proc     plugin.Processor
	ctx      *process.Context
	cfg      Config
	frame    int64
	auto     Automator
	profiler *debug.Profiler
}

// NewDriver initializes and activates proc for the session described by cfg
func NewDriver(proc plugin.Processor, cfg Config) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Channels == 0 {
		cfg.Channels = proc.GetBuses().MainOutputChannels()
	}
	if cfg.Channels <= 0 {
		return nil, errors.New("processor has no output channels")
	}

	if err := proc.Initialize(cfg.SampleRate, int32(cfg.BlockSize)); err != nil {
		return nil, err
	}
	if err := proc.SetActive(true); err != nil {
		return nil, fmt.Errorf("activate processor: %w", err)
	}

	return &Driver{
		proc: proc,
		ctx:  process.NewContext(cfg.Channels, cfg.BlockSize, cfg.SampleRate, proc.GetParameters()),
		cfg:  cfg,
	}, nil
}

// SetAutomation installs a per-block automator; nil removes it
func (d *Driver) SetAutomation(a Automator) {
	d.auto = a
}

// SetProfiler times every ProcessAudio call under "process"; nil disables
func (d *Driver) SetProfiler(p *debug.Profiler) {
	d.profiler = p
}

// SampleRate returns the session sample rate
func (d *Driver) SampleRate() float64 {
	return d.cfg.SampleRate
}

// BlockSize returns the maximum frames per block
func (d *Driver) BlockSize() int {
	return d.cfg.BlockSize
}

// Channels returns the output channel count
func (d *Driver) Channels() int {
	return d.cfg.Channels
}

// Frame returns the number of frames rendered so far
func (d *Driver) Frame() int64 {
	return d.frame
}

// Time returns the session position in seconds
func (d *Driver) Time() float64 {
	return float64(d.frame) / d.cfg.SampleRate
}

// Next renders up to frames frames (at most one block) and returns the
// channel buffers. The buffers are reused by the following call.
func (d *Driver) Next(frames int) ([][]float32, error) {
	if frames > d.cfg.BlockSize {
		frames = d.cfg.BlockSize
	}
	if frames < 0 {
		frames = 0
	}

	if d.auto != nil {
		if err := d.auto.Apply(d.Time()); err != nil {
			return nil, fmt.Errorf("automation at frame %d: %w", d.frame, err)
		}
	}

	d.ctx.Resize(frames)
	if d.profiler != nil {
		stop := d.profiler.Start("process")
		d.proc.ProcessAudio(d.ctx)
		stop()
	} else {
		d.proc.ProcessAudio(d.ctx)
	}

	if debug.Default().Enabled(debug.LogLevelDebug) {
		for ch, buf := range d.ctx.Output {
			debug.LogBufferIssues(buf, fmt.Sprintf("block @%d ch%d", d.frame, ch))
		}
	}

	d.frame += int64(frames)
	return d.ctx.Output, nil
}

// Interleave copies the last rendered block into dst frame by frame and
// returns the number of samples written
func (d *Driver) Interleave(dst []float32) int {
	return d.ctx.Interleave(dst)
}

// Render pulls frames frames block by block into sink. The sink is not
// closed. Cancelling ctx stops at the next block boundary.
func (d *Driver) Render(ctx context.Context, frames int64, sink Sink) error {
	for remaining := frames; remaining > 0; {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := int64(d.cfg.BlockSize)
		if remaining < n {
			n = remaining
		}
		block, err := d.Next(int(n))
		if err != nil {
			return err
		}
		if err := sink.WriteBlock(block); err != nil {
			return fmt.Errorf("write block at frame %d: %w", d.frame-n, err)
		}
		remaining -= n
	}
	return nil
}

// Close deactivates the processor
func (d *Driver) Close() error {
	return d.proc.SetActive(false)
}

// FramesFor converts a duration in seconds to a frame count
func FramesFor(seconds, sampleRate float64) int64 {
	if seconds <= 0 {
		return 0
	}
	return int64(math.Round(seconds * sampleRate))
}
