package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError describes one rejected form field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ColumnDetails identifies a header missing from an uploaded export
type ColumnDetails struct {
	Dataset string `json:"dataset"`
	Column  string `json:"column"`
}

// FieldDetails identifies a field missing from the first record of an export
type FieldDetails struct {
	Dataset string `json:"dataset"`
	Field   string `json:"field"`
}

func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeMissingFile        = "MISSING_FILE"
	CodeInvalidRate        = "INVALID_RATE"
	CodeNotFound           = "NOT_FOUND"
	CodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
	CodeUnsupportedFormat  = "UNSUPPORTED_FORMAT"
	CodeUnsupportedMedia   = "UNSUPPORTED_MEDIA_TYPE"
	CodeMissingColumn      = "MISSING_COLUMN"
	CodeMissingField       = "MISSING_FIELD"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeInternalServer     = "INTERNAL_SERVER_ERROR"
	CodeProcessingFailed   = "PROCESSING_FAILED"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Predefined errors
var (
	// 400 Bad Request
	ErrInvalidRequest   = New(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format")
	ErrValidationFailed = New(http.StatusBadRequest, CodeValidationFailed, "Request validation failed")
	ErrMissingFile      = New(http.StatusBadRequest, CodeMissingFile, "Both files are required.")
	ErrInvalidRate      = New(http.StatusBadRequest, CodeInvalidRate, "Rate is required")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, CodeNotFound, "Resource not found")

	// 413 Payload Too Large
	ErrPayloadTooLarge = New(http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "Uploaded files exceed the maximum allowed size")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, CodeRateLimitExceeded, "Rate limit exceeded")

	// 500 Internal Server Error
	ErrInternalServer   = New(http.StatusInternalServerError, CodeInternalServer, "Internal server error")
	ErrProcessingFailed = New(http.StatusInternalServerError, CodeProcessingFailed, "Error processing files.")

	// 503 Service Unavailable
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, CodeServiceUnavailable, "Service temporarily unavailable")
)

// UnsupportedFormat rejects an upload that is not a CSV export.
func UnsupportedFormat(filename string) *APIError {
	return NewWithDetails(http.StatusUnsupportedMediaType, CodeUnsupportedFormat,
		fmt.Sprintf("Unsupported file type: %s", filename), filename)
}

// UnsupportedMediaType rejects a request body whose Content-Type is not accepted.
func UnsupportedMediaType(contentType string, allowed []string) *APIError {
	return NewWithDetails(http.StatusUnsupportedMediaType, CodeUnsupportedMedia, "Unsupported content type",
		map[string]interface{}{
			"content_type": contentType,
			"allowed":      allowed,
		})
}

// MissingColumn reports a header label that could not be located.
func MissingColumn(dataset, column string) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, CodeMissingColumn,
		fmt.Sprintf("%s column not found in %s file", column, dataset),
		ColumnDetails{Dataset: dataset, Column: column})
}

// MissingField reports an export whose first record has no usable value.
func MissingField(dataset, field string) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, CodeMissingField,
		fmt.Sprintf("%s field not found in %s file", field, dataset),
		FieldDetails{Dataset: dataset, Field: field})
}

// ProcessingFailed wraps an unexpected failure while reconciling uploads.
func ProcessingFailed(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, CodeProcessingFailed, "Error processing files.", err.Error())
}

// InvalidRequestWithError creates an invalid request error with details
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeInvalidRequest, "Invalid request format", err.Error())
}

// ErrValidation creates a validation error with field details
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeValidationFailed, "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// NewValidationErrors creates validation errors from multiple fields
func NewValidationErrors(errors []ValidationError) *APIError {
	return NewWithDetails(
		http.StatusBadRequest,
		CodeValidationFailed,
		"Request validation failed",
		ValidationErrors{Errors: errors},
	)
}

// ErrorResponse is the JSON envelope used by WriteError
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

func NewErrorResponse(err *APIError) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Error:   err,
	}
}

// Render implements the render.Renderer interface
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return e.Error.Render(w, r)
}

// WriteError writes an error response without going through chi/render.
func WriteError(w http.ResponseWriter, err *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	json.NewEncoder(w).Encode(NewErrorResponse(err))
}
