// Package plugin defines the contract between a host and an audio processor.
package plugin

import (
	"github.com/justyntemme/wavecompositor/pkg/framework/bus"
	"github.com/justyntemme/wavecompositor/pkg/framework/param"
	"github.com/justyntemme/wavecompositor/pkg/framework/process"
)

// Plugin is the main interface that products implement
type Plugin interface {
	// GetInfo returns plugin metadata
	GetInfo() Info

	// CreateProcessor creates a new instance of the audio processor
	CreateProcessor() Processor
}

// Processor handles the actual audio processing
type Processor interface {
	// Initialize configures a processing session; called again whenever
	// the host changes sample rate or block size
	Initialize(sampleRate float64, maxBlockSize int32) error

	// ProcessAudio renders one block - ZERO ALLOCATIONS!
	ProcessAudio(ctx *process.Context)

	// GetParameters returns the parameter registry
	GetParameters() *param.Registry

	// GetBuses returns the bus configuration
	GetBuses() *bus.Configuration

	// SetActive is called when processing starts/stops
	SetActive(active bool) error

	// GetLatencySamples returns the processor latency in samples
	GetLatencySamples() int32

	// GetTailSamples returns the tail length in samples
	GetTailSamples() int32
}
