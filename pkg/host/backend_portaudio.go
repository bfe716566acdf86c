//go:build portaudio

package host

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/justyntemme/wavecompositor/pkg/framework/debug"
)

func init() {
	backends["portaudio"] = func() Backend { return &PortAudioBackend{} }
}

// PortAudioBackend plays through the default PortAudio output device
type PortAudioBackend struct{}

// Play implements Backend
func (b *PortAudioBackend) Play(ctx context.Context, s *Stream) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	defer portaudio.Terminate()

	d := s.Driver()
	done := make(chan struct{})
	finished := false
	stream, err := portaudio.OpenDefaultStream(0, d.Channels(), d.SampleRate(), d.BlockSize(), func(out []float32) {
		n, err := s.ReadFloats(out)
		clear(out[n:])
		if err != nil && !finished {
			finished = true
			close(done)
		}
	})
	if err != nil {
		return fmt.Errorf("portaudio open: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("portaudio start: %w", err)
	}
	debug.Info("playing via portaudio: %.0f Hz, %d channel(s)", d.SampleRate(), d.Channels())

	select {
	case <-ctx.Done():
		err = ctx.Err()
	case <-done:
	}
	if serr := stream.Stop(); err == nil {
		err = serr
	}
	if rerr := s.Err(); err == nil && rerr != nil {
		err = rerr
	}
	return err
}
