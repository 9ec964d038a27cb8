package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	apierrors "adrecon/internal/errors"
	"adrecon/internal/validation"
)

// maxClientLogBytes bounds a single forwarded log entry
const maxClientLogBytes = 16 << 10

// ClientLogHandler forwards front-end log entries into the server log
type ClientLogHandler struct {
	logger       *slog.Logger
	validator    *validation.RequestValidator
	errorHandler *apierrors.ErrorHandler
}

// NewClientLogHandler creates a new client log handler
func NewClientLogHandler(logger *slog.Logger, validator *validation.RequestValidator, errorHandler *apierrors.ErrorHandler) *ClientLogHandler {
	if validator == nil {
		validator = validation.NewRequestValidator()
	}
	return &ClientLogHandler{
		logger:       logger.With(slog.String("handler", "client_log")),
		validator:    validator,
		errorHandler: errorHandler,
	}
}

// LogRequest represents a client log entry
type LogRequest struct {
	Level   string                 `json:"level" validate:"omitempty,oneof=debug info warn error"`
	Message string                 `json:"message" validate:"required,max=2000"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Source  string                 `json:"source,omitempty" validate:"max=200"`
}

// Handle handles POST /api/client-log
func (h *ClientLogHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LogRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxClientLogBytes)).Decode(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	attrs := []slog.Attr{slog.String("client_source", req.Source)}
	if req.Data != nil {
		attrs = append(attrs, slog.Any("data", req.Data))
	}

	h.logger.LogAttrs(r.Context(), clientLevel(req.Level), req.Message, attrs...)

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, map[string]interface{}{
		"success": true,
	})
}

func clientLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
