package pipeline

import (
	"fmt"
	"time"
)

// ProgressTracker tracks progress for long-running operations
type ProgressTracker struct {
	startTime   time.Time
	lastTime    time.Time
	lastCount   int64
	interval    time.Duration
	description string
}

// NewProgressTracker creates a tracker that reports at most once per interval
func NewProgressTracker(description string, interval time.Duration) *ProgressTracker {
	now := time.Now()
	return &ProgressTracker{
		startTime:   now,
		lastTime:    now,
		interval:    interval,
		description: description,
	}
}

// Progress holds current progress information
type Progress struct {
	Current     int64
	Elapsed     time.Duration
	Throughput  float64 // units per second since start
	Rate        float64 // units per second since the last report
	Description string
}

// Due reports whether the interval has passed since the last report
func (p *ProgressTracker) Due(now time.Time) bool {
	return p.interval > 0 && now.Sub(p.lastTime) >= p.interval
}

// Calculate returns progress metrics for the current count and starts a new interval
func (p *ProgressTracker) Calculate(currentCount int64, now time.Time) Progress {
	elapsed := now.Sub(p.startTime)

	var throughput, rate float64
	if elapsed.Seconds() > 0 {
		throughput = float64(currentCount) / elapsed.Seconds()
	}
	if since := now.Sub(p.lastTime).Seconds(); since > 0 {
		rate = float64(currentCount-p.lastCount) / since
	}
	p.lastTime, p.lastCount = now, currentCount

	return Progress{
		Current:     currentCount,
		Elapsed:     elapsed.Round(time.Second),
		Throughput:  throughput,
		Rate:        rate,
		Description: p.description,
	}
}

// FormatThroughput formats throughput as human-readable items per second
func FormatThroughput(itemsPerSec float64) string {
	if itemsPerSec >= 1_000_000 {
		return fmt.Sprintf("%.1fM/s", itemsPerSec/1_000_000)
	}
	if itemsPerSec >= 1_000 {
		return fmt.Sprintf("%.1fK/s", itemsPerSec/1_000)
	}
	return fmt.Sprintf("%.0f/s", itemsPerSec)
}

// FormatBytes formats bytes in a human-readable format
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
