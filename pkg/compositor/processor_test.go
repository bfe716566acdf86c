package compositor

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/justyntemme/wavecompositor/pkg/dsp/oscillator"
	"github.com/justyntemme/wavecompositor/pkg/framework/process"
)

func newTestContext(p *Processor, frames int) *process.Context {
	return process.NewContext(p.GetBuses().MainOutputChannels(), frames, 48000, p.GetParameters())
}

func TestPluginInfo(t *testing.T) {
	pl := &Plugin{}
	info := pl.GetInfo()
	if err := info.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if info.Name != "Wave Compositor" {
		t.Errorf("Name = %q", info.Name)
	}

	proc, ok := pl.CreateProcessor().(*Processor)
	if !ok {
		t.Fatal("CreateProcessor did not return *Processor")
	}
	if got := proc.GetBuses().MainOutputChannels(); got != 2 {
		t.Errorf("default channels = %d, want 2", got)
	}
	if proc.GetLatencySamples() != 0 || proc.GetTailSamples() != 0 {
		t.Error("generator should report no latency or tail")
	}
}

func TestInitializeRejectsBadRate(t *testing.T) {
	p := NewProcessor(2)
	err := p.Initialize(0, 512)
	if !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("Initialize(0) = %v, want ErrInvalidSampleRate", err)
	}
}

func TestProcessInactiveClears(t *testing.T) {
	p := NewProcessor(2)
	if err := p.Initialize(48000, 64); err != nil {
		t.Fatal(err)
	}
	ctx := newTestContext(p, 64)
	for ch := range ctx.Output {
		for i := range ctx.Output[ch] {
			ctx.Output[ch][i] = 1
		}
	}

	p.ProcessAudio(ctx)
	for ch := range ctx.Output {
		for i, v := range ctx.Output[ch] {
			if v != 0 {
				t.Fatalf("channel %d sample %d = %v, want 0", ch, i, v)
			}
		}
	}
}

func TestProcessDefaultTone(t *testing.T) {
	p := NewProcessor(2)
	if err := p.Initialize(48000, 256); err != nil {
		t.Fatal(err)
	}
	if err := p.SetActive(true); err != nil {
		t.Fatal(err)
	}

	ctx := newTestContext(p, 256)
	p.ProcessAudio(ctx)

	g := float32(math.Pow(10, -12.0/20))
	osc := oscillator.New(oscillator.Sine)
	want := make([]float32, 256)
	for i := range want {
		want[i] = osc.Sample(220, g, 48000)
	}

	for ch := range ctx.Output {
		if diff := cmp.Diff(want, ctx.Output[ch], approx); diff != "" {
			t.Errorf("channel %d mismatch (-want +got):\n%s", ch, diff)
		}
	}
}

func TestProcessFollowsParameterChanges(t *testing.T) {
	p := NewProcessor(1)
	if err := p.Initialize(48000, 128); err != nil {
		t.Fatal(err)
	}
	if err := p.SetActive(true); err != nil {
		t.Fatal(err)
	}
	ctx := newTestContext(p, 128)
	p.ProcessAudio(ctx)

	p.GetParameters().Get(GainID(0)).SetPlainValue(MinGainDB)
	// 10 ms at 48 kHz is 480 samples; render well past it.
	for i := 0; i < 5; i++ {
		p.ProcessAudio(ctx)
	}
	for i, v := range ctx.Output[0] {
		if v != 0 {
			t.Fatalf("sample %d = %v after muting", i, v)
		}
	}
}

func TestProcessWaveformChangeTakesEffect(t *testing.T) {
	p := NewProcessor(1)
	if err := p.Initialize(48000, 32); err != nil {
		t.Fatal(err)
	}
	if err := p.SetActive(true); err != nil {
		t.Fatal(err)
	}
	ctx := newTestContext(p, 32)
	p.ProcessAudio(ctx)

	p.GetParameters().Get(ParamWaveform).SetPlainValue(float64(oscillator.Square))
	p.ProcessAudio(ctx)

	if got := p.Engine().Waveform(); got != oscillator.Square {
		t.Errorf("engine waveform = %v, want Square", got)
	}
	g := float32(math.Pow(10, -12.0/20))
	if math.Abs(float64(ctx.Output[0][0]+g)) > 1e-6 {
		t.Errorf("first square sample = %v, want %v", ctx.Output[0][0], -g)
	}
}

func TestProcessAudioDoesNotAllocate(t *testing.T) {
	p := NewProcessor(2)
	if err := p.Initialize(48000, 256); err != nil {
		t.Fatal(err)
	}
	if err := p.SetActive(true); err != nil {
		t.Fatal(err)
	}
	ctx := newTestContext(p, 256)
	gain := p.GetParameters().Get(GainID(1))

	levels := [2]float64{-6, -30}
	n := 0
	allocs := testing.AllocsPerRun(100, func() {
		// Keep the smoothers busy so the ramp path is measured too.
		n++
		gain.SetPlainValue(levels[n%2])
		p.ProcessAudio(ctx)
	})
	if allocs != 0 {
		t.Errorf("ProcessAudio allocated %v times per block", allocs)
	}
}
