//go:build !headless

package host

import (
	"context"
	"testing"
)

func TestOtoRegistered(t *testing.T) {
	b, err := NewBackend("oto")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := b.(*OtoBackend); !ok {
		t.Errorf("oto backend has type %T", b)
	}

	found := false
	for _, name := range Backends() {
		if name == "oto" {
			found = true
		}
	}
	if !found {
		t.Errorf("Backends() = %v, missing oto", Backends())
	}
}

func TestOtoRejectsFractionalRate(t *testing.T) {
	d := newTestDriver(t, Config{SampleRate: 44100.5, BlockSize: 64})
	err := (&OtoBackend{}).Play(context.Background(), NewStream(d, 64))
	if err == nil {
		t.Error("expected error for fractional sample rate")
	}
}
