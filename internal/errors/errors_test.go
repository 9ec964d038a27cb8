package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantStatus int
		wantCode   string
	}{
		{"missing file", ErrMissingFile, http.StatusBadRequest, CodeMissingFile},
		{"invalid rate", ErrInvalidRate, http.StatusBadRequest, CodeInvalidRate},
		{"payload too large", ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, CodePayloadTooLarge},
		{"unsupported format", UnsupportedFormat("a.xlsx"), http.StatusUnsupportedMediaType, CodeUnsupportedFormat},
		{"missing column", MissingColumn("cost", "Cost"), http.StatusUnprocessableEntity, CodeMissingColumn},
		{"missing field", MissingField("revenue", "country"), http.StatusUnprocessableEntity, CodeMissingField},
		{"processing failed", ProcessingFailed(errors.New("boom")), http.StatusInternalServerError, CodeProcessingFailed},
		{"service unavailable", ErrServiceUnavailable, http.StatusServiceUnavailable, CodeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.Equal(t, tt.wantCode, tt.err.ErrorCode)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestLegacyMessages(t *testing.T) {
	assert.Equal(t, "Both files are required.", ErrMissingFile.Message)
	assert.Equal(t, "Rate is required", ErrInvalidRate.Message)
	assert.Equal(t, "Error processing files.", ErrProcessingFailed.Message)
}

func TestMissingColumnDetails(t *testing.T) {
	err := MissingColumn("revenue", "Est. earnings (USD)")
	assert.Equal(t, ColumnDetails{Dataset: "revenue", Column: "Est. earnings (USD)"}, err.Details)
	assert.Contains(t, err.Message, "Est. earnings (USD)")
}

func TestAPIError_AsTarget(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", ErrInvalidRate)

	var apiErr *APIError
	require.True(t, errors.As(wrapped, &apiErr))
	assert.Equal(t, CodeInvalidRate, apiErr.ErrorCode)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, ErrMissingFile)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, CodeMissingFile, body.Error.ErrorCode)
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{{Field: "rate", Message: "must be greater than 0"}})
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)

	details, ok := err.Details.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, details.Errors, 1)
}

func TestAppError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewExportError("write report", cause).WithContext("format", "xlsx")

	assert.Equal(t, "[EXPORT] write report: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "xlsx", err.Context["format"])

	assert.Equal(t, "[VALIDATION] bad", NewAppValidationError("bad").Error())
	assert.Equal(t, ErrTypeCapacity, NewCapacityError("busy", nil).Type)
	assert.Equal(t, ErrTypeParsing, NewParsingError("p", nil).Type)
	assert.Equal(t, ErrTypeConfig, NewConfigError("c", nil).Type)
}

func TestProblemDetails_MarshalJSON(t *testing.T) {
	p := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "Rate is required", "/api/upload").
		WithExtension("error_code", CodeInvalidRate).
		WithExtension("trace_id", "abc")

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, TypeValidation, out["type"])
	assert.Equal(t, float64(400), out["status"])
	assert.Equal(t, "Rate is required", out["detail"])
	assert.Equal(t, CodeInvalidRate, out["error_code"])
	assert.Equal(t, "abc", out["trace_id"])
}

func TestProblemDetails_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(&ProblemDetails{Type: TypeInternal, Title: "x", Status: 500})
	require.NoError(t, err)
	assert.False(t, bytes.Contains(data, []byte("detail")))
	assert.False(t, bytes.Contains(data, []byte("instance")))
}
