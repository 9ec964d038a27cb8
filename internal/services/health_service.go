package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"adrecon/internal/config"
	"adrecon/internal/infrastructure"
)

// CapacityReporter exposes the reconciler's concurrency state
type CapacityReporter interface {
	Capacity() int64
	InFlight() int64
}

// HealthService provides health check functionality
type HealthService struct {
	version    string
	buildTime  string
	buildID    string
	paths      config.PathsConfig
	reconciler CapacityReporter
	collector  *infrastructure.SystemMetricsCollector
	startTime  time.Time
	logger     *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// BuildInfo carries link-time build metadata
type BuildInfo struct {
	Version   string
	BuildTime string
	BuildID   string
}

// NewHealthService creates a health service. collector may be nil.
func NewHealthService(build BuildInfo, paths config.PathsConfig, reconciler CapacityReporter, collector *infrastructure.SystemMetricsCollector, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	if build.Version == "" {
		build.Version = config.AppVersion
	}

	logger.Debug("HealthService initialized",
		slog.String("version", build.Version),
		slog.String("build_time", build.BuildTime),
		slog.String("build_id", build.BuildID))

	return &HealthService{
		version:    build.Version,
		buildTime:  build.BuildTime,
		buildID:    build.BuildID,
		paths:      paths,
		reconciler: reconciler,
		collector:  collector,
		startTime:  time.Now(),
		logger:     logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck reports whether the reconciler can take work and the
// front-end assets are in place.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]interface{}{
			"reconciler": hs.checkReconcilerHealth(),
			"web":        hs.checkWebHealth(),
		},
	}

	for name, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			status.Status = "not_ready"
			hs.logger.WarnContext(ctx, "readiness check failed",
				slog.String("service", name),
				slog.String("message", sh.Message))
		}
	}

	return status
}

// LivenessCheck returns liveness status with a runtime snapshot
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	rt := map[string]interface{}{
		"uptime":     time.Since(hs.startTime).Seconds(),
		"go_version": runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
	}
	if hs.collector != nil {
		for k, v := range hs.collector.GetCurrentStats(ctx).FormatStats() {
			rt[k] = v
		}
	}

	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime:   rt,
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	result := map[string]interface{}{
		"name":         config.AppName,
		"version":      hs.version,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}

	if hs.buildTime != "" {
		result["build_time"] = hs.buildTime
	}
	if hs.buildID != "" {
		result["build_id"] = hs.buildID
	}

	return result
}

func (hs *HealthService) checkReconcilerHealth() ServiceHealth {
	if hs.reconciler == nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: "reconciler not initialized",
		}
	}

	inFlight, capacity := hs.reconciler.InFlight(), hs.reconciler.Capacity()
	if inFlight >= capacity {
		return ServiceHealth{
			Status:  "busy",
			Message: fmt.Sprintf("all %d reconciliation slots in use", capacity),
		}
	}

	return ServiceHealth{
		Status:  "ready",
		Message: fmt.Sprintf("%d of %d reconciliation slots free", capacity-inFlight, capacity),
	}
}

func (hs *HealthService) checkWebHealth() ServiceHealth {
	index := filepath.Join(hs.paths.WebDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("front-end not found: %s", index),
		}
	}

	return ServiceHealth{Status: "ready"}
}
