package compositor

import (
	"fmt"

	"github.com/justyntemme/wavecompositor/pkg/framework/bus"
	"github.com/justyntemme/wavecompositor/pkg/framework/debug"
	"github.com/justyntemme/wavecompositor/pkg/framework/param"
	"github.com/justyntemme/wavecompositor/pkg/framework/plugin"
	"github.com/justyntemme/wavecompositor/pkg/framework/process"
)

// Plugin describes the Wave Compositor and creates its processors
type Plugin struct {
	// Channels is the output channel count; 0 means stereo
	Channels int32
}

// GetInfo returns the plugin metadata
func (p *Plugin) GetInfo() plugin.Info {
	return plugin.Info{
		ID:       "com.wavecompositor.generator",
		Name:     "Wave Compositor",
		Version:  "1.0.0",
		Vendor:   "wavecompositor",
		Category: "Instrument|Generator",
	}
}

// CreateProcessor returns a new processor with default parameters
func (p *Plugin) CreateProcessor() plugin.Processor {
	channels := p.Channels
	if channels <= 0 {
		channels = 2
	}
	return NewProcessor(channels)
}

// Processor runs the engine inside the plugin.Processor contract
type Processor struct {
	params *param.Registry
	buses  *bus.Configuration
	store  *Store
	engine *Engine

	active bool
}

// NewProcessor creates a processor with the given number of output channels
func NewProcessor(channels int32) *Processor {
	params := NewParameters()
	return &Processor{
		params: params,
		buses:  bus.NewGenerator(channels),
		store:  NewStore(params),
		engine: NewEngine(),
	}
}

// Initialize configures the engine for a session
func (p *Processor) Initialize(sampleRate float64, maxBlockSize int32) error {
	if err := p.engine.Configure(sampleRate); err != nil {
		return fmt.Errorf("initialize processor: %w", err)
	}
	p.store.SetSampleRate(sampleRate)
	p.store.Reset()

	debug.Info("Wave Compositor initialized: %.0f Hz, block %d, %d channel(s)",
		sampleRate, maxBlockSize, p.buses.MainOutputChannels())
	return nil
}

// ProcessAudio renders one block into ctx.Output
func (p *Processor) ProcessAudio(ctx *process.Context) {
	if !p.active || !p.engine.Configured() {
		ctx.Clear()
		return
	}
	p.engine.Render(ctx.Output, p.store)
}

// GetParameters returns the parameter registry
func (p *Processor) GetParameters() *param.Registry {
	return p.params
}

// GetBuses returns the bus configuration
func (p *Processor) GetBuses() *bus.Configuration {
	return p.buses
}

// SetActive starts or stops processing. Activation snaps the smoothers so
// a new session does not ramp in from stale values.
func (p *Processor) SetActive(active bool) error {
	if active && !p.active {
		p.store.Reset()
	}
	p.active = active
	debug.Debug("Wave Compositor active=%v", active)
	return nil
}

// GetLatencySamples returns 0; the generator has no lookahead
func (p *Processor) GetLatencySamples() int32 {
	return 0
}

// GetTailSamples returns 0; output stops with processing
func (p *Processor) GetTailSamples() int32 {
	return 0
}

// Engine exposes the engine for inspection
func (p *Processor) Engine() *Engine {
	return p.engine
}
