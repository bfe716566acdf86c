// Command wavecomp renders or plays the Wave Compositor outside a DAW.
//
//	wavecomp -duration 4 -set waveform=saw -set gain2=-6 -o tone.wav
//	wavecomp -script sweep.lua -play
//	wavecomp -o - | aplay -f FLOAT_LE -c 2 -r 48000
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/justyntemme/wavecompositor/pkg/automation"
	"github.com/justyntemme/wavecompositor/pkg/compositor"
	"github.com/justyntemme/wavecompositor/pkg/dsp/analysis"
	"github.com/justyntemme/wavecompositor/pkg/dsp/gain"
	"github.com/justyntemme/wavecompositor/pkg/framework/debug"
	"github.com/justyntemme/wavecompositor/pkg/framework/param"
	"github.com/justyntemme/wavecompositor/pkg/host"
)

const analysisSize = 8192

// assignments collects repeated -set name=value flags
type assignments []string

func (a *assignments) String() string {
	return strings.Join(*a, ",")
}

func (a *assignments) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("want name=value, got %q", v)
	}
	*a = append(*a, v)
	return nil
}

type options struct {
	sampleRate int
	blockSize  int
	channels   int
	duration   float64
	output     string
	play       bool
	backend    string
	script     string
	sets       assignments
	logLevel   string
	profile    bool
	analyze    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	flagSet := flag.NewFlagSet("wavecomp", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.IntVar(&o.sampleRate, "sample-rate", 48000, "sample rate in Hz")
	flagSet.IntVar(&o.blockSize, "block", 512, "frames per processing block")
	flagSet.IntVar(&o.channels, "channels", 2, "output channels")
	flagSet.Float64Var(&o.duration, "duration", 2, "seconds to render; <= 0 plays until interrupted")
	flagSet.StringVar(&o.output, "o", "", "output file (.wav), or - for raw float32 on stdout")
	flagSet.BoolVar(&o.play, "play", false, "play through the audio device")
	flagSet.StringVar(&o.backend, "backend", "oto", "audio backend: "+strings.Join(host.Backends(), ", "))
	flagSet.StringVar(&o.script, "script", "", "Lua automation script defining automate(t)")
	flagSet.Var(&o.sets, "set", "parameter assignment name=value (repeatable)")
	flagSet.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn, error or off")
	flagSet.BoolVar(&o.profile, "profile", false, "print processing time statistics")
	flagSet.BoolVar(&o.analyze, "analyze", false, "print the spectral peaks of the rendered signal")

	flagSet.Usage = func() {
		fmt.Fprintln(stderr, "Usage: wavecomp [flags]")
		flagSet.PrintDefaults()
		fmt.Fprintln(stderr, "\nParameters for -set and scripts:")
		params := compositor.NewParameters()
		for i := int32(0); i < params.Count(); i++ {
			p := params.GetByIndex(i)
			fmt.Fprintf(stderr, "  %-8s %s (default %s)\n", p.ShortName, p.Name, p.FormatValue(p.DefaultValue))
		}
	}

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	if flagSet.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", flagSet.Args())
	}
	if o.output == "" && !o.play && !o.analyze {
		return nil, errors.New("nothing to do: give -o, -play or -analyze")
	}
	if o.output != "" && o.duration <= 0 {
		return nil, errors.New("-o needs a positive -duration")
	}
	return o, nil
}

// applySets writes name=value assignments through each parameter's parser
func applySets(params *param.Registry, sets []string) error {
	for _, s := range sets {
		name, value, _ := strings.Cut(s, "=")
		p := params.FindByName(strings.TrimSpace(name))
		if p == nil {
			return fmt.Errorf("-set %s: unknown parameter %q", s, name)
		}
		v, err := p.ParseValue(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("-set %s: %w", s, err)
		}
		p.SetValue(v)
		debug.Debug("%s = %s", p.ShortName, p.FormatValue(v))
	}
	return nil
}

func openSink(o *options, stdout io.Writer) (host.Sink, error) {
	if o.output == "-" {
		if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return nil, errors.New("refusing to write raw audio to a terminal; redirect stdout or use -o file.wav")
		}
		return host.NewRawSink(stdout), nil
	}
	return host.CreateWAV(o.output, o.sampleRate, o.channels)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level, err := debug.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	debug.SetLevel(level)

	pl := &compositor.Plugin{Channels: int32(o.channels)}
	info := pl.GetInfo()
	if err := info.Validate(); err != nil {
		return err
	}
	proc := pl.CreateProcessor()
	if err := applySets(proc.GetParameters(), o.sets); err != nil {
		return err
	}

	d, err := host.NewDriver(proc, host.Config{
		SampleRate: float64(o.sampleRate),
		BlockSize:  o.blockSize,
		Channels:   o.channels,
	})
	if err != nil {
		return err
	}
	defer d.Close()
	debug.Info("%s %s: %.0f Hz, %d-frame blocks, %d channel(s)",
		info.Name, info.Version, d.SampleRate(), d.BlockSize(), d.Channels())

	if o.script != "" {
		script, err := automation.LoadFile(o.script, proc.GetParameters())
		if err != nil {
			return err
		}
		defer script.Close()
		d.SetAutomation(script)
	}

	var profiler *debug.Profiler
	if o.profile {
		profiler = debug.NewProfiler()
		d.SetProfiler(profiler)
	}

	frames := host.FramesFor(o.duration, float64(o.sampleRate))
	if o.play {
		err = play(ctx, o, d, frames)
	} else {
		err = render(ctx, o, d, frames, stdout, stderr)
	}
	if err != nil {
		return err
	}

	if profiler != nil {
		fmt.Fprint(stderr, profiler.Report())
		fmt.Fprintf(stderr, "DSP load: %.2f%%\n", profiler.Load("process", d.BlockSize(), d.SampleRate()))
	}
	return nil
}

func play(ctx context.Context, o *options, d *host.Driver, frames int64) error {
	if o.output != "" || o.analyze {
		return errors.New("-play cannot be combined with -o or -analyze")
	}
	backend, err := host.NewBackend(o.backend)
	if err != nil {
		return err
	}
	if frames <= 0 {
		frames = -1
	}
	err = backend.Play(ctx, host.NewStream(d, frames))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func render(ctx context.Context, o *options, d *host.Driver, frames int64, stdout, stderr io.Writer) error {
	var sinks host.MultiSink
	if o.output != "" {
		sink, err := openSink(o, stdout)
		if err != nil {
			return err
		}
		sinks = append(sinks, sink)
	}
	var rec *host.Recorder
	if o.analyze {
		if frames <= 0 {
			frames = analysisSize
		}
		rec = &host.Recorder{Limit: analysisSize}
		sinks = append(sinks, rec)
	}

	err := d.Render(ctx, frames, sinks)
	if cerr := sinks.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if o.output != "" && o.output != "-" {
		debug.Info("wrote %d frames to %s", frames, o.output)
	}

	if rec != nil {
		// Raw audio owns stdout; send the report elsewhere.
		report := stdout
		if o.output == "-" {
			report = stderr
		}
		return printAnalysis(report, rec.Samples, d.SampleRate())
	}
	return nil
}

func printAnalysis(w io.Writer, samples []float32, sampleRate float64) error {
	stats := debug.AnalyzeBuffer(samples)
	fmt.Fprintf(w, "peak %.4f (%.1f dBFS)  rms %.4f (%.1f dBFS)  dc %.5f\n",
		stats.Peak, gain.LinearToDb(float64(stats.Peak)),
		stats.RMS, gain.LinearToDb(float64(stats.RMS)), stats.DC)

	spectrum, err := analysis.NewSpectrum(analysisSize, sampleRate)
	if err != nil {
		return err
	}
	spectrum.Analyze(samples)
	peaks := spectrum.Peaks(8, 1e-3)
	sort.Slice(peaks, func(i, j int) bool { return peaks[i].Frequency < peaks[j].Frequency })
	for _, p := range peaks {
		fmt.Fprintf(w, "%10.2f Hz  %.4f\n", p.Frequency, p.Magnitude)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
