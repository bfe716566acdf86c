package host

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
)

// Stream pulls interleaved samples from a Driver on demand, for backends
// whose audio thread asks for data. A negative frame count never ends.
type Stream struct {
	mu        sync.Mutex
	d         *Driver
	remaining int64
	floats    []float32
	pending   []float32
	scratch   []float32
	err       error
}

// NewStream serves frames frames from d
func NewStream(d *Driver, frames int64) *Stream {
	return &Stream{
		d:         d,
		remaining: frames,
		floats:    make([]float32, d.BlockSize()*d.Channels()),
	}
}

// Driver returns the driver being pulled
func (s *Stream) Driver() *Driver {
	return s.d
}

// Err returns the render error that ended the stream, if any
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done reports whether every frame has been handed out or rendering failed
func (s *Stream) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err != nil || (s.remaining == 0 && len(s.pending) == 0)
}

// ReadFloats fills out with interleaved samples. It returns io.EOF once the
// stream is exhausted, or the render error.
func (s *Stream) ReadFloats(out []float32) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for n < len(out) {
		if len(s.pending) == 0 {
			if s.remaining == 0 || s.err != nil {
				break
			}
			s.fill()
			continue
		}
		c := copy(out[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}

	if n == 0 && len(out) > 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, io.EOF
	}
	return n, nil
}

func (s *Stream) fill() {
	frames := int64(s.d.BlockSize())
	if s.remaining >= 0 && s.remaining < frames {
		frames = s.remaining
	}
	if _, err := s.d.Next(int(frames)); err != nil {
		s.err = err
		return
	}
	k := s.d.Interleave(s.floats)
	s.pending = s.floats[:k]
	if s.remaining > 0 {
		s.remaining -= frames
	}
}

// Read implements io.Reader with little-endian float32 samples
func (s *Stream) Read(p []byte) (int, error) {
	count := len(p) / 4
	if cap(s.scratch) < count {
		s.scratch = make([]float32, count)
	}
	buf := s.scratch[:count]

	n, err := s.ReadFloats(buf)
	for i, v := range buf[:n] {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}
	return n * 4, err
}
