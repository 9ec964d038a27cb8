package infrastructure

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// SystemMetrics records Go runtime gauges
type SystemMetrics struct {
	goRoutines    metric.Int64Gauge
	memoryUsage   metric.Int64Gauge
	memorySystem  metric.Int64Gauge
	gcPause       metric.Float64Histogram
	processUptime metric.Float64Gauge
}

// SystemStats is a snapshot of the process runtime
type SystemStats struct {
	GoRoutines    int64
	MemoryUsage   int64
	MemorySystem  int64
	GCCount       uint32
	LastGCPause   time.Duration
	CPUCount      int
	ProcessUptime time.Duration
	Timestamp     time.Time
}

// NewSystemMetrics creates the runtime instruments on meter
func NewSystemMetrics(meter metric.Meter) (*SystemMetrics, error) {
	var (
		sm  SystemMetrics
		err error
	)

	if sm.goRoutines, err = meter.Int64Gauge(
		"system_goroutines",
		metric.WithDescription("Number of active goroutines"),
	); err != nil {
		return nil, err
	}
	if sm.memoryUsage, err = meter.Int64Gauge(
		"system_memory_usage_bytes",
		metric.WithDescription("Heap bytes in use"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}
	if sm.memorySystem, err = meter.Int64Gauge(
		"system_memory_system_bytes",
		metric.WithDescription("Memory obtained from the OS in bytes"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}
	if sm.gcPause, err = meter.Float64Histogram(
		"system_gc_pause_seconds",
		metric.WithDescription("Most recent garbage collection pause"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if sm.processUptime, err = meter.Float64Gauge(
		"system_process_uptime_seconds",
		metric.WithDescription("Process uptime in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return &sm, nil
}

// Collect takes a runtime snapshot and records it
func (sm *SystemMetrics) Collect(ctx context.Context, startTime time.Time) *SystemStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := &SystemStats{
		GoRoutines:    int64(runtime.NumGoroutine()),
		MemoryUsage:   int64(memStats.Alloc),
		MemorySystem:  int64(memStats.Sys),
		GCCount:       memStats.NumGC,
		LastGCPause:   time.Duration(memStats.PauseNs[(memStats.NumGC+255)%256]),
		CPUCount:      runtime.NumCPU(),
		ProcessUptime: time.Since(startTime),
		Timestamp:     time.Now(),
	}

	sm.goRoutines.Record(ctx, stats.GoRoutines)
	sm.memoryUsage.Record(ctx, stats.MemoryUsage)
	sm.memorySystem.Record(ctx, stats.MemorySystem)
	sm.processUptime.Record(ctx, stats.ProcessUptime.Seconds())
	if stats.LastGCPause > 0 {
		sm.gcPause.Record(ctx, stats.LastGCPause.Seconds())
	}

	return stats
}

// FormatStats returns the snapshot as a JSON friendly map
func (stats *SystemStats) FormatStats() map[string]interface{} {
	return map[string]interface{}{
		"goroutines":       stats.GoRoutines,
		"memory_usage_mb":  stats.MemoryUsage / 1024 / 1024,
		"memory_system_mb": stats.MemorySystem / 1024 / 1024,
		"gc_count":         stats.GCCount,
		"last_gc_pause_ms": stats.LastGCPause.Milliseconds(),
		"cpu_count":        stats.CPUCount,
		"uptime_seconds":   stats.ProcessUptime.Seconds(),
		"timestamp":        stats.Timestamp.Format(time.RFC3339),
	}
}

// SystemMetricsCollector records runtime metrics on an interval
type SystemMetricsCollector struct {
	metrics   *SystemMetrics
	startTime time.Time
	interval  time.Duration
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewSystemMetricsCollector creates a collector; interval must be positive.
func NewSystemMetricsCollector(meter metric.Meter, interval time.Duration) (*SystemMetricsCollector, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid collection interval: %s", interval)
	}
	metrics, err := NewSystemMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create system metrics: %w", err)
	}

	return &SystemMetricsCollector{
		metrics:   metrics,
		startTime: time.Now(),
		interval:  interval,
		stopCh:    make(chan struct{}),
	}, nil
}

// Start collects until ctx is done or Stop is called. It blocks.
func (smc *SystemMetricsCollector) Start(ctx context.Context) {
	ticker := time.NewTicker(smc.interval)
	defer ticker.Stop()

	smc.metrics.Collect(ctx, smc.startTime)

	for {
		select {
		case <-ticker.C:
			smc.metrics.Collect(ctx, smc.startTime)
		case <-smc.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop ends collection. It is safe to call more than once.
func (smc *SystemMetricsCollector) Stop() {
	smc.stopOnce.Do(func() { close(smc.stopCh) })
}

// GetCurrentStats returns a fresh snapshot
func (smc *SystemMetricsCollector) GetCurrentStats(ctx context.Context) *SystemStats {
	return smc.metrics.Collect(ctx, smc.startTime)
}
