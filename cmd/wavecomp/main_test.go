package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/justyntemme/wavecompositor/pkg/compositor"
)

func TestParseFlagsRequiresAction(t *testing.T) {
	var stderr bytes.Buffer
	if _, err := parseFlags(nil, &stderr); err == nil {
		t.Error("expected error without -o, -play or -analyze")
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad set", []string{"-analyze", "-set", "base"}},
		{"stray argument", []string{"-analyze", "extra"}},
		{"file without duration", []string{"-o", "x.wav", "-duration", "0"}},
		{"unknown flag", []string{"-bogus"}},
		{"fractional sample rate", []string{"-analyze", "-sample-rate", "44100.5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if _, err := parseFlags(tt.args, &stderr); err == nil {
				t.Errorf("parseFlags(%v) succeeded", tt.args)
			}
		})
	}
}

func TestHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-h"}, &stdout, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("run(-h) = %v, want flag.ErrHelp", err)
	}
	for _, name := range []string{"waveform", "base", "mult2", "offset3"} {
		if !strings.Contains(stderr.String(), name) {
			t.Errorf("usage does not list %s", name)
		}
	}
}

func TestApplySets(t *testing.T) {
	params := compositor.NewParameters()
	err := applySets(params, []string{"waveform=square", "base=440 Hz", "gain2=-6dB", "offset1=-2%", "mult3=x4"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		want float64
	}{
		{"waveform", 2},
		{"base", 440},
		{"gain2", -6},
		{"offset1", -0.02},
		{"mult3", 4},
	}
	for _, tt := range tests {
		if got := params.FindByName(tt.name).GetPlainValue(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	if err := applySets(params, []string{"volume=1"}); err == nil {
		t.Error("expected error for unknown parameter")
	}
	if err := applySets(params, []string{"base=loud"}); err == nil {
		t.Error("expected parse error")
	}
}

func TestRunWritesWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	var stdout, stderr bytes.Buffer
	args := []string{"-o", path, "-duration", "0.1", "-log-level", "error", "-set", "gain2=-6"}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr: %s)", err, stderr.String())
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	// 4800 stereo 16-bit frames plus the header
	if fi.Size() < 4800*2*2 {
		t.Errorf("WAV is %d bytes, too small", fi.Size())
	}
}

func TestRunRawToBuffer(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"-o", "-", "-duration", "0.01", "-channels", "1", "-log-level", "off"}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if got := stdout.Len(); got != 480*4 {
		t.Errorf("wrote %d bytes, want %d", got, 480*4)
	}
}

func TestRunAnalyze(t *testing.T) {
	var stdout, stderr bytes.Buffer
	args := []string{"-analyze", "-log-level", "off", "-set", "base=375", "-set", "gain1=0", "-set", "gain2=-6"}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	out := stdout.String()
	for _, want := range []string{"peak", "dBFS", "375.00 Hz", "750.00 Hz"} {
		if !strings.Contains(out, want) {
			t.Errorf("analysis output missing %q:\n%s", want, out)
		}
	}
}

func TestRunScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "auto.lua")
	if err := os.WriteFile(script, []byte("function automate(t) return { waveform = 'saw' } end\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	args := []string{"-o", filepath.Join(dir, "out.wav"), "-duration", "0.05", "-script", script, "-log-level", "off", "-profile"}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr.String(), "DSP load") {
		t.Errorf("profile report missing:\n%s", stderr.String())
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad sample rate", []string{"-analyze", "-sample-rate", "0"}},
		{"bad log level", []string{"-analyze", "-log-level", "loud"}},
		{"missing script", []string{"-analyze", "-script", "/nonexistent/auto.lua"}},
		{"play with output", []string{"-play", "-o", "x.wav"}},
		{"unknown backend", []string{"-play", "-backend", "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			args := append(tt.args, "-log-level", "off")
			if tt.name == "bad log level" {
				args = tt.args
			}
			if err := run(context.Background(), args, &stdout, &stderr); err == nil {
				t.Error("expected error")
			}
		})
	}
}
