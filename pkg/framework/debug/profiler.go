package debug

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Profiler collects timing statistics for named sections.
type Profiler struct {
	mu           sync.Mutex
	measurements map[string]*Measurement
	enabled      atomic.Bool
}

// Measurement holds timing statistics for a profiled section.
type Measurement struct {
	Name  string
	Count uint64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Average returns the mean time per call.
func (m Measurement) Average() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return m.Total / time.Duration(m.Count)
}

// NewProfiler creates an enabled profiler.
func NewProfiler() *Profiler {
	p := &Profiler{measurements: make(map[string]*Measurement)}
	p.enabled.Store(true)
	return p
}

// SetEnabled enables or disables profiling.
func (p *Profiler) SetEnabled(enabled bool) {
	p.enabled.Store(enabled)
}

// Start begins timing a named section; call the returned func to stop.
func (p *Profiler) Start(name string) func() {
	if !p.enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() {
		p.Record(name, time.Since(start))
	}
}

// Record adds one timing sample.
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		m = &Measurement{Name: name, Min: elapsed, Max: elapsed}
		p.measurements[name] = m
	}
	m.Count++
	m.Total += elapsed
	m.Min = min(m.Min, elapsed)
	m.Max = max(m.Max, elapsed)
}

// Measurement returns a copy of the statistics for name.
func (p *Profiler) Measurement(name string) (Measurement, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	m, ok := p.measurements[name]
	if !ok {
		return Measurement{}, false
	}
	return *m, true
}

// Reset clears all measurements.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.measurements = make(map[string]*Measurement)
}

// Load returns average processing time as a percentage of the real time
// one block represents.
func (p *Profiler) Load(name string, blockSize int, sampleRate float64) float64 {
	m, ok := p.Measurement(name)
	if !ok || m.Count == 0 || sampleRate <= 0 {
		return 0
	}
	budget := time.Duration(float64(blockSize) / sampleRate * float64(time.Second))
	if budget <= 0 {
		return 0
	}
	return float64(m.Average()) / float64(budget) * 100.0
}

// Report formats all measurements sorted by name.
func (p *Profiler) Report() string {
	p.mu.Lock()
	names := make([]string, 0, len(p.measurements))
	for name := range p.measurements {
		names = append(names, name)
	}
	p.mu.Unlock()

	if len(names) == 0 {
		return "No measurements recorded\n"
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("Performance Report:\n")
	for _, name := range names {
		m, _ := p.Measurement(name)
		fmt.Fprintf(&sb, "%s: count=%d total=%v avg=%v min=%v max=%v\n",
			name, m.Count, m.Total, m.Average(), m.Min, m.Max)
	}
	return sb.String()
}
