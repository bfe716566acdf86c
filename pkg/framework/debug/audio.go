package debug

import (
	"fmt"
	"math"
)

// BufferStats summarises one rendered block.
type BufferStats struct {
	Peak          float32
	RMS           float32
	DC            float32
	NaNCount      int
	InfCount      int
	ZeroCrossings int
}

// AnalyzeBuffer computes peak, RMS, DC and counts non-finite samples.
// Non-finite samples are excluded from the level figures.
func AnalyzeBuffer(buffer []float32) BufferStats {
	var (
		stats      BufferStats
		sum, sumSq float64
		finite     int
		last       float32
	)

	for _, s := range buffer {
		v := float64(s)
		switch {
		case math.IsNaN(v):
			stats.NaNCount++
			continue
		case math.IsInf(v, 0):
			stats.InfCount++
			continue
		}

		if a := float32(math.Abs(v)); a > stats.Peak {
			stats.Peak = a
		}
		if finite > 0 && (last < 0) != (s < 0) {
			stats.ZeroCrossings++
		}
		sum += v
		sumSq += v * v
		finite++
		last = s
	}

	if finite > 0 {
		stats.RMS = float32(math.Sqrt(sumSq / float64(finite)))
		stats.DC = float32(sum / float64(finite))
	}
	return stats
}

// CheckBuffer returns a description of every problem found in buffer.
// Peaks above full scale are reported but are legal: the compositor never clips.
func CheckBuffer(buffer []float32, name string) []string {
	var issues []string
	stats := AnalyzeBuffer(buffer)

	if stats.NaNCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: contains %d NaN values", name, stats.NaNCount))
	}
	if stats.InfCount > 0 {
		issues = append(issues, fmt.Sprintf("%s: contains %d Inf values", name, stats.InfCount))
	}
	if stats.Peak > 1.0 {
		issues = append(issues, fmt.Sprintf("%s: peak exceeds full scale (%.3f)", name, stats.Peak))
	}
	return issues
}

// LogBufferIssues logs CheckBuffer findings at warn level on the default logger.
func LogBufferIssues(buffer []float32, name string) {
	if !defaultLogger.Enabled(LogLevelWarn) {
		return
	}
	for _, issue := range CheckBuffer(buffer, name) {
		Warn("%s", issue)
	}
}
