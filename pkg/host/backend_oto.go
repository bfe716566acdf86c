//go:build !headless

package host

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/justyntemme/wavecompositor/pkg/framework/debug"
)

func init() {
	backends["oto"] = func() Backend { return &OtoBackend{} }
}

// OtoBackend plays through oto. Only one oto context may exist per process.
type OtoBackend struct {
	// BufferSize is the device buffer length; 0 picks the oto default
	BufferSize time.Duration
}

// Play implements Backend
func (b *OtoBackend) Play(ctx context.Context, s *Stream) error {
	d := s.Driver()
	if ch := d.Channels(); ch < 1 || ch > 2 {
		return fmt.Errorf("oto supports mono or stereo, got %d channels", ch)
	}

	sr := d.SampleRate()
	if sr != math.Trunc(sr) {
		return fmt.Errorf("oto needs an integer sample rate, got %v", sr)
	}

	op := &oto.NewContextOptions{
		SampleRate:   int(sr),
		ChannelCount: d.Channels(),
		Format:       oto.FormatFloat32LE,
		BufferSize:   b.BufferSize,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("oto context: %w", err)
	}
	<-ready

	player := otoCtx.NewPlayer(s)
	defer player.Close()
	player.Play()
	debug.Info("playing via oto: %d Hz, %d channel(s)", op.SampleRate, op.ChannelCount)

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}

	if err := s.Err(); err != nil {
		return err
	}
	return player.Err()
}
