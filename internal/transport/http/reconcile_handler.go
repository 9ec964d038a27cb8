package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"adrecon/internal/dataprocessing"
	apierrors "adrecon/internal/errors"
	"adrecon/internal/middleware"
	"adrecon/internal/services"
	"adrecon/internal/validation"
	"adrecon/pkg/contracts/domain"
)

// ReconcileHandler serves the upload and reconcile endpoints
type ReconcileHandler struct {
	service       Reconciler
	validator     *validation.RequestValidator
	errorHandler  *apierrors.ErrorHandler
	defaultFormat domain.ReportFormat
	maxUpload     int64
	logger        *slog.Logger
}

// ReconcileResponse is the JSON body of POST /api/reconcile
type ReconcileResponse struct {
	Status string                     `json:"status"`
	Data   []domain.ReconciledRow     `json:"data"`
	Count  int                        `json:"count"`
	Stats  domain.ReconciliationStats `json:"stats"`
}

// Render implements render.Renderer
func (rr *ReconcileResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// NewReconcileHandler creates the handler. maxUpload bounds the whole
// multipart body; zero disables the limit.
func NewReconcileHandler(service Reconciler, validator *validation.RequestValidator, errorHandler *apierrors.ErrorHandler, defaultFormat domain.ReportFormat, maxUpload int64, logger *slog.Logger) *ReconcileHandler {
	if validator == nil {
		validator = validation.NewRequestValidator()
	}
	if defaultFormat == "" {
		defaultFormat = domain.ReportFormatExcel
	}
	return &ReconcileHandler{
		service:       service,
		validator:     validator,
		errorHandler:  errorHandler,
		defaultFormat: defaultFormat,
		maxUpload:     maxUpload,
		logger:        logger.With(slog.String("handler", "reconcile")),
	}
}

// Routes mounts the endpoints under the caller's prefix
func (h *ReconcileHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// Applied per route so unknown paths under the prefix still 404.
	upload := r.With(
		middleware.MaxBodySize(h.maxUpload),
		middleware.ContentTypeValidator(h.errorHandler, "multipart/form-data"),
	)
	upload.Post("/upload", h.Upload)
	upload.Post("/reconcile", h.Reconcile)

	return r
}

// Upload handles POST /api/upload and streams the report as an attachment
func (h *ReconcileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := h.parse(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	result, err := h.service.Report(ctx, req, &buf)
	if err != nil {
		h.errorHandler.HandleError(w, r, translateError(err))
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", req.Format.FileName()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Report-Rows", strconv.Itoa(len(result.Rows)))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(ctx, "failed to send report",
			slog.String("error", err.Error()))
	}
}

// Reconcile handles POST /api/reconcile and returns the rows as JSON
func (h *ReconcileHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	req, err := h.parse(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.service.Reconcile(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, translateError(err))
		return
	}

	rows := result.Rows
	if rows == nil {
		rows = []domain.ReconciledRow{}
	}
	render.Render(w, r, &ReconcileResponse{
		Status: "success",
		Data:   rows,
		Count:  len(rows),
		Stats:  result.Stats,
	})
}

func (h *ReconcileHandler) parse(r *http.Request) (services.ReconcileRequest, error) {
	form, err := parseUploadForm(r, h.defaultFormat)
	if err != nil {
		return services.ReconcileRequest{}, err
	}
	if err := form.validate(h.validator); err != nil {
		h.logger.DebugContext(r.Context(), "upload rejected",
			slog.String("error", err.Error()))
		return services.ReconcileRequest{}, err
	}
	return form.toRequest()
}

// translateError maps pipeline errors onto API errors. Other errors pass
// through for the error handler to classify.
func translateError(err error) error {
	var (
		unsupported *dataprocessing.UnsupportedFormatError
		column      *dataprocessing.MissingColumnError
		field       *dataprocessing.MissingFieldError
	)

	switch {
	case errors.As(err, &unsupported):
		return apierrors.UnsupportedFormat(unsupported.Filename)
	case errors.As(err, &column):
		return apierrors.MissingColumn(string(column.Dataset), column.Column)
	case errors.As(err, &field):
		return apierrors.MissingField(string(field.Dataset), field.Field)
	case errors.Is(err, dataprocessing.ErrInvalidRate):
		return apierrors.ErrInvalidRate
	default:
		return err
	}
}
