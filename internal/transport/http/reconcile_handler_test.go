package http

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"adrecon/internal/dataprocessing"
	apierrors "adrecon/internal/errors"
	"adrecon/internal/services"
	"adrecon/internal/shared/testutil"
	"adrecon/pkg/contracts/domain"
)

func sampleFiles() []uploadFile {
	return []uploadFile{
		{field: FieldCostFile, name: "cost.csv", data: testutil.SampleCostExport()},
		{field: FieldRevenueFile, name: "revenue.csv", data: testutil.SampleRevenueExport()},
	}
}

func newRouter(h *ReconcileHandler) http.Handler {
	r := chi.NewRouter()
	r.Mount("/api", h.Routes())
	return r
}

func newMockHandler(svc Reconciler, maxUpload int64) *ReconcileHandler {
	return NewReconcileHandler(svc, nil, apierrors.NewErrorHandler(quietLogger(), false), domain.ReportFormatExcel, maxUpload, quietLogger())
}

func TestReconcileHandler_Upload_Mocked(t *testing.T) {
	svc := new(MockReconciler)
	result := &dataprocessing.Result{Rows: []domain.ReconciledRow{{Country: "India"}}}
	svc.On("Report", mock.Anything, mock.MatchedBy(func(req services.ReconcileRequest) bool {
		return req.Cost.Name == "cost.csv" &&
			req.Revenue.Name == "revenue.csv" &&
			req.Rate.Equal(decimal.RequireFromString("83.2")) &&
			req.Format == domain.ReportFormatCSV
	}), mock.Anything).Return(result, nil, "country\n")

	rec := httptest.NewRecorder()
	newRouter(newMockHandler(svc, 0)).ServeHTTP(rec,
		newUploadRequest(t, "/api/upload?format=CSV", sampleFiles(), map[string]string{FieldRate: " 83.2 "}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="output.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "1", rec.Header().Get("X-Report-Rows"))
	assert.Equal(t, "country\n", rec.Body.String())
	svc.AssertExpectations(t)
}

func TestReconcileHandler_Upload_RequestErrors(t *testing.T) {
	tests := []struct {
		name       string
		files      []uploadFile
		fields     map[string]string
		query      string
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{
			name:       "missing revenue file",
			files:      sampleFiles()[:1],
			fields:     map[string]string{FieldRate: "80"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.CodeMissingFile,
			wantDetail: "Both files are required.",
		},
		{
			name:       "missing both files and rate",
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.CodeMissingFile,
		},
		{
			name:       "missing rate",
			files:      sampleFiles(),
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.CodeInvalidRate,
			wantDetail: "Rate is required",
		},
		{
			name:       "zero rate",
			files:      sampleFiles(),
			fields:     map[string]string{FieldRate: "0"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.CodeInvalidRate,
		},
		{
			name:       "non numeric rate",
			files:      sampleFiles(),
			fields:     map[string]string{FieldRate: "eighty"},
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.CodeInvalidRate,
		},
		{
			name:       "unknown format",
			files:      sampleFiles(),
			fields:     map[string]string{FieldRate: "80"},
			query:      "?format=pdf",
			wantStatus: http.StatusBadRequest,
			wantCode:   apierrors.CodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReconciler)
			rec := httptest.NewRecorder()
			newRouter(newMockHandler(svc, 0)).ServeHTTP(rec,
				newUploadRequest(t, "/api/upload"+tt.query, tt.files, tt.fields))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeJSON(t, rec)
			assert.Equal(t, tt.wantCode, body["error_code"])
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, body["detail"])
			}
			svc.AssertNotCalled(t, "Report", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReconcileHandler_Upload_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "unsupported format", err: &dataprocessing.UnsupportedFormatError{Filename: "cost.txt"}, wantStatus: http.StatusUnsupportedMediaType, wantCode: apierrors.CodeUnsupportedFormat},
		{name: "missing column", err: &dataprocessing.MissingColumnError{Dataset: dataprocessing.DatasetCost, Column: "Cost"}, wantStatus: http.StatusUnprocessableEntity, wantCode: apierrors.CodeMissingColumn},
		{name: "missing field", err: &dataprocessing.MissingFieldError{Dataset: dataprocessing.DatasetRevenue, Field: "country"}, wantStatus: http.StatusUnprocessableEntity, wantCode: apierrors.CodeMissingField},
		{name: "invalid rate", err: fmt.Errorf("reconcile: %w", dataprocessing.ErrInvalidRate), wantStatus: http.StatusBadRequest, wantCode: apierrors.CodeInvalidRate},
		{name: "busy", err: apierrors.NewCapacityError("no slot", services.ErrServiceBusy), wantStatus: http.StatusServiceUnavailable, wantCode: apierrors.CodeServiceUnavailable},
		{name: "export failure", err: apierrors.NewExportError("render", assert.AnError), wantStatus: http.StatusInternalServerError, wantCode: apierrors.CodeProcessingFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReconciler)
			svc.On("Report", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			newRouter(newMockHandler(svc, 0)).ServeHTTP(rec,
				newUploadRequest(t, "/api/upload", sampleFiles(), map[string]string{FieldRate: "80"}))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, rec.Header().Get("Content-Disposition"))
			assert.Equal(t, tt.wantCode, decodeJSON(t, rec)["error_code"])
		})
	}
}

func TestReconcileHandler_MissingColumnDetails(t *testing.T) {
	svc := new(MockReconciler)
	svc.On("Report", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &dataprocessing.MissingColumnError{Dataset: dataprocessing.DatasetRevenue, Column: "Est. earnings (USD)"})

	rec := httptest.NewRecorder()
	newRouter(newMockHandler(svc, 0)).ServeHTTP(rec,
		newUploadRequest(t, "/api/upload", sampleFiles(), map[string]string{FieldRate: "80"}))

	details, ok := decodeJSON(t, rec)["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "revenue", details["dataset"])
	assert.Equal(t, "Est. earnings (USD)", details["column"])
}

func TestReconcileHandler_PayloadTooLarge(t *testing.T) {
	svc := new(MockReconciler)
	rec := httptest.NewRecorder()
	newRouter(newMockHandler(svc, 64)).ServeHTTP(rec,
		newUploadRequest(t, "/api/upload", sampleFiles(), map[string]string{FieldRate: "80"}))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, apierrors.CodePayloadTooLarge, body["error_code"])
	assert.EqualValues(t, 64, body["limit_bytes"])
}

func TestReconcileHandler_RejectsNonMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(`{"rate":80}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	newRouter(newMockHandler(new(MockReconciler), 0)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, apierrors.CodeUnsupportedMedia, decodeJSON(t, rec)["error_code"])
}

func newRealHandler(t *testing.T) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	svc := services.NewReconcileService(dataprocessing.NewPipeline(dataprocessing.WithLogger(logger)), 2, nil, nil, logger)
	return newRouter(NewReconcileHandler(svc, nil, apierrors.NewErrorHandler(logger, false), domain.ReportFormatExcel, 1<<20, logger))
}

func TestReconcileHandler_Upload_EndToEndExcel(t *testing.T) {
	rec := httptest.NewRecorder()
	newRealHandler(t).ServeHTTP(rec,
		newUploadRequest(t, "/api/upload", sampleFiles(), map[string]string{FieldRate: "80"}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.ReportFormatExcel.ContentType(), rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="output.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.ReportColumns, rows[0])
	assert.Equal(t, "India", rows[1][0])
	assert.Equal(t, "US", rows[2][0])
}

func TestReconcileHandler_Reconcile_EndToEndJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	newRealHandler(t).ServeHTTP(rec,
		newUploadRequest(t, "/api/reconcile", sampleFiles(), map[string]string{FieldRate: "80"}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeJSON(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.EqualValues(t, 2, body["count"])

	data := body["data"].([]interface{})
	india := data[0].(map[string]interface{})
	assert.Equal(t, "India", india["country"])
	assert.Equal(t, "650", india["profitINR"])
	assert.Equal(t, "433.33", india["profitPer"])

	stats := body["stats"].(map[string]interface{})
	assert.EqualValues(t, 1, stats["rows_dropped"])
}

func TestReconcileHandler_Reconcile_WrongExtension(t *testing.T) {
	files := sampleFiles()
	files[1].name = "revenue.txt"

	rec := httptest.NewRecorder()
	newRealHandler(t).ServeHTTP(rec,
		newUploadRequest(t, "/api/reconcile", files, map[string]string{FieldRate: "80"}))

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, apierrors.CodeUnsupportedFormat, decodeJSON(t, rec)["error_code"])
}

func TestTranslateError_PassThrough(t *testing.T) {
	assert.Same(t, assert.AnError, translateError(assert.AnError))
}
