// Package compositor implements the Wave Compositor generator: three
// oscillators sharing one waveform, tuned as multiples of a base frequency
// and summed into a single mono signal that is copied to every output
// channel.
//
// The render path is split in two. Engine owns the oscillators and turns a
// Snapshot of control values into samples. A SnapshotSource supplies a fresh
// Snapshot for every sample; Store is the source backed by the plugin's
// parameter registry and smoothers. Processor ties both into the
// plugin.Processor interface.
package compositor
