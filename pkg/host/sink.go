package host

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Sink consumes rendered blocks, one slice per channel
type Sink interface {
	WriteBlock(block [][]float32) error
	Close() error
}

// WAVSink writes 16-bit PCM WAV. Samples beyond full scale are clipped at
// conversion; the signal itself is never limited.
type WAVSink struct {
	enc    *wav.Encoder
	buf    *audio.IntBuffer
	closer io.Closer
}

// NewWAVSink encodes to w; the caller keeps ownership of w
func NewWAVSink(w io.WriteSeeker, sampleRate, channels int) *WAVSink {
	return &WAVSink{
		enc: wav.NewEncoder(w, sampleRate, 16, channels, 1),
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: channels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: 16,
		},
	}
}

// CreateWAV creates path and returns a sink that closes it
func CreateWAV(path string, sampleRate, channels int) (*WAVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	s := NewWAVSink(f, sampleRate, channels)
	s.closer = f
	return s, nil
}

// WriteBlock implements Sink
func (s *WAVSink) WriteBlock(block [][]float32) error {
	channels := s.buf.Format.NumChannels
	if len(block) != channels {
		return fmt.Errorf("wav sink: got %d channels, want %d", len(block), channels)
	}
	frames := len(block[0])
	if cap(s.buf.Data) < frames*channels {
		s.buf.Data = make([]int, frames*channels)
	}
	s.buf.Data = s.buf.Data[:frames*channels]

	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			s.buf.Data[i*channels+ch] = toPCM16(block[ch][i])
		}
	}
	return s.enc.Write(s.buf)
}

// Close finalizes the WAV header and closes the file if the sink owns it
func (s *WAVSink) Close() error {
	err := s.enc.Close()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func toPCM16(v float32) int {
	switch {
	case v != v:
		return 0
	case v >= 1:
		return math.MaxInt16
	case v <= -1:
		return -math.MaxInt16
	}
	return int(math.Round(float64(v) * math.MaxInt16))
}

// RawSink writes interleaved little-endian float32 samples
type RawSink struct {
	w   io.Writer
	buf []byte
}

// NewRawSink writes to w
func NewRawSink(w io.Writer) *RawSink {
	return &RawSink{w: w}
}

// WriteBlock implements Sink
func (s *RawSink) WriteBlock(block [][]float32) error {
	if len(block) == 0 {
		return nil
	}
	channels := len(block)
	frames := len(block[0])
	size := frames * channels * 4
	if cap(s.buf) < size {
		s.buf = make([]byte, size)
	}
	s.buf = s.buf[:size]

	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			binary.LittleEndian.PutUint32(s.buf[(i*channels+ch)*4:], math.Float32bits(block[ch][i]))
		}
	}
	_, err := s.w.Write(s.buf)
	return err
}

// Close flushes nothing; the writer belongs to the caller
func (s *RawSink) Close() error {
	return nil
}

// MultiSink fans each block out to several sinks
type MultiSink []Sink

// WriteBlock implements Sink
func (m MultiSink) WriteBlock(block [][]float32) error {
	for _, s := range m {
		if err := s.WriteBlock(block); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and returns the first error
func (m MultiSink) Close() error {
	var first error
	for _, s := range m {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Recorder keeps the first Limit frames of channel 0 for analysis
type Recorder struct {
	Limit   int
	Samples []float32
}

// WriteBlock implements Sink
func (r *Recorder) WriteBlock(block [][]float32) error {
	if len(block) == 0 {
		return nil
	}
	if room := r.Limit - len(r.Samples); room > 0 {
		src := block[0]
		if len(src) > room {
			src = src[:room]
		}
		r.Samples = append(r.Samples, src...)
	}
	return nil
}

// Close implements Sink
func (r *Recorder) Close() error {
	return nil
}
