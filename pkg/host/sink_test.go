package host

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/google/go-cmp/cmp"
)

func TestToPCM16(t *testing.T) {
	tests := []struct {
		in   float32
		want int
	}{
		{0, 0},
		{0.5, 16384},
		{-0.5, -16384},
		{1, 32767},
		{1.5, 32767},
		{-3, -32767},
		{float32(math.NaN()), 0},
	}
	for _, tt := range tests {
		if got := toPCM16(tt.in); got != tt.want {
			t.Errorf("toPCM16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	sink, err := CreateWAV(path, 48000, 2)
	if err != nil {
		t.Fatal(err)
	}

	d := newTestDriver(t, Config{SampleRate: 48000, BlockSize: 100})
	if err := d.Render(context.Background(), 480, sink); err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("invalid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if buf.Format.NumChannels != 2 || buf.Format.SampleRate != 48000 {
		t.Fatalf("format = %+v, want 2ch 48000 Hz", buf.Format)
	}
	if dec.BitDepth != 16 {
		t.Errorf("bit depth = %d, want 16", dec.BitDepth)
	}
	if len(buf.Data) != 960 {
		t.Fatalf("decoded %d samples, want 960", len(buf.Data))
	}

	ref := defaultTone(480, 48000)
	for i, v := range ref {
		want := toPCM16(v)
		if buf.Data[2*i] != want || buf.Data[2*i+1] != want {
			t.Fatalf("frame %d = (%d, %d), want %d", i, buf.Data[2*i], buf.Data[2*i+1], want)
		}
	}
}

func TestWAVSinkRejectsChannelMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	sink, err := CreateWAV(path, 48000, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer sink.Close()

	if err := sink.WriteBlock([][]float32{{0, 0}}); err == nil {
		t.Error("expected channel mismatch error")
	}
}

func TestRawSinkInterleaves(t *testing.T) {
	var out bytes.Buffer
	sink := NewRawSink(&out)
	block := [][]float32{{0.25, -1}, {0.5, 2}}
	if err := sink.WriteBlock(block); err != nil {
		t.Fatal(err)
	}

	got := make([]float32, out.Len()/4)
	if err := binary.Read(&out, binary.LittleEndian, got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float32{0.25, 0.5, -1, 2}, got); diff != "" {
		t.Errorf("raw samples (-want +got):\n%s", diff)
	}
}

func TestRecorderLimit(t *testing.T) {
	r := &Recorder{Limit: 5}
	for i := 0; i < 3; i++ {
		if err := r.WriteBlock([][]float32{{1, 2}, {9, 9}}); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]float32{1, 2, 1, 2, 1}, r.Samples); diff != "" {
		t.Errorf("recorded (-want +got):\n%s", diff)
	}
}

func TestMultiSink(t *testing.T) {
	a, b := &blockLog{}, &Recorder{Limit: 10}
	m := MultiSink{a, b}
	if err := m.WriteBlock([][]float32{{1, 2, 3}}); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if len(a.mono) != 3 || len(b.Samples) != 3 {
		t.Errorf("fan-out failed: %d and %d samples", len(a.mono), len(b.Samples))
	}
}
