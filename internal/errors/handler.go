package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Problem types following RFC 7807
const (
	TypeValidation        = "/errors/validation"
	TypeNotFound          = "/errors/not-found"
	TypeRateLimit         = "/errors/rate-limit"
	TypeInternal          = "/errors/internal"
	TypeServiceDown       = "/errors/service-unavailable"
	TypeTimeout           = "/errors/timeout"
	TypePayloadTooLarge   = "/errors/payload-too-large"
	TypeMethodNotAllowed  = "/errors/method-not-allowed"
	TypeUnsupportedFormat = "/errors/upload/unsupported-format"
	TypeUnsupportedMedia  = "/errors/unsupported-media-type"
	TypeMissingColumn     = "/errors/upload/missing-column"
	TypeMissingField      = "/errors/upload/missing-field"
	TypeProcessing        = "/errors/upload/processing-failed"
)

// ErrorHandler provides centralized error handling
type ErrorHandler struct {
	logger       *slog.Logger
	includeStack bool
}

func NewErrorHandler(logger *slog.Logger, includeStack bool) *ErrorHandler {
	return &ErrorHandler{
		logger:       logger.With(slog.String("component", "error_handler")),
		includeStack: includeStack,
	}
}

// HandleError converts any error to RFC 7807 format and responds
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	problem := h.ErrorToProblem(err, r)

	level := slog.LevelWarn
	if problem.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		slog.String("error", err.Error()),
		slog.Int("status", problem.Status),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr),
	)

	problem.WithExtension("trace_id", reqID)
	if h.includeStack {
		problem.WithExtension("stack", getStackTrace())
	}

	render.Render(w, r, problem)
}

// ErrorToProblem converts an error to RFC 7807 Problem Details
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			r.URL.Path,
		)
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return h.apiErrorToProblem(apiErr, r)
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return h.appErrorToProblem(appErr, r)
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return h.apiErrorToProblem(ErrPayloadTooLarge, r).
			WithExtension("limit_bytes", tooLarge.Limit)
	}

	return NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred while processing your request",
		r.URL.Path,
	)
}

func problemType(code string) string {
	switch code {
	case CodeValidationFailed, CodeInvalidRequest, CodeInvalidRate, CodeMissingFile:
		return TypeValidation
	case CodeNotFound:
		return TypeNotFound
	case CodePayloadTooLarge:
		return TypePayloadTooLarge
	case CodeUnsupportedFormat:
		return TypeUnsupportedFormat
	case CodeUnsupportedMedia:
		return TypeUnsupportedMedia
	case CodeMissingColumn:
		return TypeMissingColumn
	case CodeMissingField:
		return TypeMissingField
	case CodeProcessingFailed:
		return TypeProcessing
	case CodeRateLimitExceeded:
		return TypeRateLimit
	case CodeServiceUnavailable:
		return TypeServiceDown
	default:
		return TypeInternal
	}
}

func (h *ErrorHandler) apiErrorToProblem(apiErr *APIError, r *http.Request) *ProblemDetails {
	problem := NewProblemDetails(
		apiErr.StatusCode,
		problemType(apiErr.ErrorCode),
		http.StatusText(apiErr.StatusCode),
		apiErr.Message,
		r.URL.Path,
	).WithExtension("error_code", apiErr.ErrorCode)

	if apiErr.Details != nil {
		problem.WithExtension("details", apiErr.Details)
	}
	return problem
}

// appErrorToProblem maps an AppError kind to a status. Context entries of
// client-facing kinds become problem extensions. Other kinds only carry the
// underlying error text when the handler runs in development mode.
func (h *ErrorHandler) appErrorToProblem(appErr *AppError, r *http.Request) *ProblemDetails {
	var problem *ProblemDetails
	switch appErr.Type {
	case ErrTypeCapacity:
		problem = h.apiErrorToProblem(ErrServiceUnavailable, r)
	case ErrTypeValidation:
		problem = h.apiErrorToProblem(New(http.StatusBadRequest, CodeValidationFailed, appErr.Message), r)
	case ErrTypeParsing:
		problem = h.apiErrorToProblem(New(http.StatusBadRequest, CodeInvalidRequest, appErr.Message), r)
	default:
		if h.includeStack {
			return h.apiErrorToProblem(ProcessingFailed(appErr), r)
		}
		return h.apiErrorToProblem(ErrProcessingFailed, r)
	}

	for k, v := range appErr.Context {
		problem.WithExtension(k, v)
	}
	return problem
}

// HandlePanic recovers from panics and returns RFC 7807 error
func (h *ErrorHandler) HandlePanic(w http.ResponseWriter, r *http.Request, recovered interface{}) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.ErrorContext(r.Context(), "panic recovered",
		slog.Any("panic", recovered),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("stack", string(debug.Stack())),
	)

	problem := NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred",
		r.URL.Path,
	).WithExtension("trace_id", reqID)

	if h.includeStack {
		problem.WithExtension("panic", fmt.Sprintf("%v", recovered))
		problem.WithExtension("stack", getStackTrace())
	}

	render.Render(w, r, problem)
}

// NotFound returns a standard 404 error
func (h *ErrorHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusNotFound,
		TypeNotFound,
		"Not Found",
		"The requested resource was not found",
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context()))

	render.Render(w, r, problem)
}

// MethodNotAllowed returns a standard 405 error
func (h *ErrorHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	problem := NewProblemDetails(
		http.StatusMethodNotAllowed,
		TypeMethodNotAllowed,
		"Method Not Allowed",
		fmt.Sprintf("Method %s is not allowed for this endpoint", r.Method),
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context()))

	render.Render(w, r, problem)
}

func getStackTrace() string {
	buf := make([]byte, 1024*8)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
