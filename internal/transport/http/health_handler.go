package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"adrecon/internal/services"
)

// HealthChecker is the service surface behind the health endpoints
type HealthChecker interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	service HealthChecker
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service HealthChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.HealthCheck(r.Context()))
}

// ReadinessCheck handles GET /api/health/ready. A service that is not ready
// answers 503 so load balancers stop routing uploads to it.
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := h.service.ReadinessCheck(r.Context())
	if status.Status != "ready" {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, status)
}

// LivenessCheck handles GET /api/health/live
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.LivenessCheck(r.Context()))
}

// Version handles GET /api/version
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Version())
}
