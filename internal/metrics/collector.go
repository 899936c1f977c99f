package metrics

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"
)

// ResourceSample is one snapshot of system and process usage
type ResourceSample struct {
	CPUPercent        float64 // System-wide CPU usage (0-100%)
	ProcessCPUPercent float64 // Can exceed 100% on multi-core
	ProcessRSSBytes   uint64
	MemoryUsedBytes   uint64
	MemoryPercent     float64
	Timestamp         time.Time
}

// Collector periodically samples resource usage and logs it
type Collector struct {
	interval time.Duration
	logger   *zap.Logger
	proc     *process.Process
	mu       sync.RWMutex
	last     *ResourceSample
}

// NewCollector creates a collector. Intervals under a second fall back to 30s.
func NewCollector(interval time.Duration, logger *zap.Logger) *Collector {
	if interval < time.Second {
		interval = 30 * time.Second
	}

	// Get handle to current process for CPU tracking
	proc, _ := process.NewProcess(int32(os.Getpid()))

	return &Collector{
		interval: interval,
		logger:   logger,
		proc:     proc,
	}
}

// Start begins periodic sampling. Returns when ctx is cancelled.
func (c *Collector) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.Sample()

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("Resource sampling stopped")
			return
		case <-ticker.C:
			c.log(c.Sample())
		}
	}
}

// Last returns the most recent sample, or nil before the first one
func (c *Collector) Last() *ResourceSample {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// Sample takes a snapshot now
func (c *Collector) Sample() *ResourceSample {
	s := &ResourceSample{Timestamp: time.Now()}

	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		s.CPUPercent = pct[0]
	}
	if c.proc != nil {
		if pct, err := c.proc.Percent(0); err == nil {
			s.ProcessCPUPercent = pct
		}
		if info, err := c.proc.MemoryInfo(); err == nil {
			s.ProcessRSSBytes = info.RSS
		}
	}
	if vmem, err := mem.VirtualMemory(); err == nil {
		s.MemoryUsedBytes = vmem.Used
		s.MemoryPercent = vmem.UsedPercent
	}

	c.mu.Lock()
	c.last = s
	c.mu.Unlock()
	return s
}

func (c *Collector) log(s *ResourceSample) {
	c.logger.Info("Resource usage",
		zap.Float64("sys_cpu", s.CPUPercent),
		zap.Float64("proc_cpu", s.ProcessCPUPercent),
		zap.String("proc_rss", formatMB(s.ProcessRSSBytes)),
		zap.String("mem_used", formatMB(s.MemoryUsedBytes)),
		zap.Float64("mem_pct", s.MemoryPercent),
	)
}

func formatMB(b uint64) string {
	return fmt.Sprintf("%.1fMB", float64(b)/(1024*1024))
}
