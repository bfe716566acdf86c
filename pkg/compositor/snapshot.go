package compositor

import (
	"github.com/justyntemme/wavecompositor/pkg/dsp/oscillator"
	"github.com/justyntemme/wavecompositor/pkg/framework/voice"
)

// Snapshot is a copy of every control value the engine needs for one sample.
// Gains are linear.
type Snapshot struct {
	Waveform      oscillator.Waveform
	BaseFrequency float32
	Voices        [voice.Count]voice.Params
}

// SnapshotSource hands the engine the control values for the next sample.
// Render calls Next exactly once per sample frame.
type SnapshotSource interface {
	Next() Snapshot
}

// StaticSource returns the same snapshot for every sample
type StaticSource Snapshot

// Next implements SnapshotSource
func (s StaticSource) Next() Snapshot {
	return Snapshot(s)
}

// SourceFunc adapts a function to SnapshotSource
type SourceFunc func() Snapshot

// Next implements SnapshotSource
func (f SourceFunc) Next() Snapshot {
	return f()
}
