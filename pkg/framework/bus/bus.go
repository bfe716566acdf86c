// Package bus describes a processor's audio output buses.
package bus

import (
	"fmt"
)

// Info contains one bus description
type Info struct {
	Name         string
	ChannelCount int32
	IsActive     bool
}

// Configuration lists the output buses; index 0 is the main output
type Configuration struct {
	outputs []Info
}

// NewGenerator creates a generator configuration: no inputs, one main
// output with the given channel count
func NewGenerator(channels int32) *Configuration {
	name := "Stereo Out"
	switch channels {
	case 1:
		name = "Mono Out"
	case 2:
	default:
		name = fmt.Sprintf("%dch Out", channels)
	}
	return &Configuration{
		outputs: []Info{{Name: name, ChannelCount: channels, IsActive: true}},
	}
}

// Validate checks that every bus has at least one channel
func (c *Configuration) Validate() error {
	if len(c.outputs) == 0 {
		return fmt.Errorf("no output buses")
	}
	for i, b := range c.outputs {
		if b.ChannelCount < 1 {
			return fmt.Errorf("output bus %d (%s): invalid channel count %d", i, b.Name, b.ChannelCount)
		}
	}
	return nil
}

// OutputCount returns the number of output buses
func (c *Configuration) OutputCount() int {
	return len(c.outputs)
}

// Output returns information about an output bus
func (c *Configuration) Output(index int) *Info {
	if index < 0 || index >= len(c.outputs) {
		return nil
	}
	return &c.outputs[index]
}

// MainOutputChannels returns the channel count of the main output
func (c *Configuration) MainOutputChannels() int {
	if len(c.outputs) == 0 {
		return 0
	}
	return int(c.outputs[0].ChannelCount)
}
