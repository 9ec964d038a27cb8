package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/semaphore"

	"adrecon/internal/dataprocessing"
	apierrors "adrecon/internal/errors"
	"adrecon/internal/exporter"
	"adrecon/internal/infrastructure"
	"adrecon/pkg/contracts/domain"
)

// Upload is one named export as received from the client
type Upload struct {
	Name string
	Data []byte
}

// Size returns the number of bytes in the upload
func (u Upload) Size() int64 {
	return int64(len(u.Data))
}

// ReconcileRequest is a single reconciliation job
type ReconcileRequest struct {
	Cost    Upload
	Revenue Upload
	Rate    decimal.Decimal
	Format  domain.ReportFormat
}

// ReconcileService runs reconciliations under a concurrency cap
type ReconcileService struct {
	pipeline *dataprocessing.Pipeline
	sem      *semaphore.Weighted
	capacity int64
	inFlight atomic.Int64
	metrics  *infrastructure.BusinessMetrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewReconcileService creates the service. maxConcurrent below 1 is treated
// as 1. metrics and tracer may be nil.
func NewReconcileService(pipeline *dataprocessing.Pipeline, maxConcurrent int64, metrics *infrastructure.BusinessMetrics, tracer trace.Tracer, logger *slog.Logger) *ReconcileService {
	if pipeline == nil {
		pipeline = dataprocessing.NewPipeline()
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(infrastructure.MeterName)
	}

	return &ReconcileService{
		pipeline: pipeline,
		sem:      semaphore.NewWeighted(maxConcurrent),
		capacity: maxConcurrent,
		metrics:  metrics,
		tracer:   tracer,
		logger:   infrastructure.WithComponent(logger, "reconcile_service"),
	}
}

// Capacity returns the maximum number of concurrent reconciliations
func (s *ReconcileService) Capacity() int64 {
	return s.capacity
}

// InFlight returns the number of reconciliations currently running
func (s *ReconcileService) InFlight() int64 {
	return s.inFlight.Load()
}

// Reconcile runs the pipeline and returns the reconciled rows.
func (s *ReconcileService) Reconcile(ctx context.Context, req ReconcileRequest) (*dataprocessing.Result, error) {
	return s.run(ctx, "reconcile", req, nil)
}

// Report runs the pipeline and writes the report in req.Format to w. Nothing
// is written to w when reconciliation fails.
func (s *ReconcileService) Report(ctx context.Context, req ReconcileRequest, w io.Writer) (*dataprocessing.Result, error) {
	return s.run(ctx, "report", req, w)
}

func (s *ReconcileService) run(ctx context.Context, op string, req ReconcileRequest, w io.Writer) (result *dataprocessing.Result, err error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := s.tracer.Start(ctx, "reconcile."+op,
		trace.WithAttributes(
			attribute.String("report.format", string(req.Format)),
			attribute.Int64("upload.cost_bytes", req.Cost.Size()),
			attribute.Int64("upload.revenue_bytes", req.Revenue.Size()),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		outcome := infrastructure.ReconcileOutcome{
			Format:        string(req.Format),
			Duration:      time.Since(start),
			UploadedBytes: req.Cost.Size() + req.Revenue.Size(),
		}
		if err != nil {
			outcome.ErrorKind = errorKind(err)
			infrastructure.RecordError(ctx, err)
		} else {
			outcome.RowsEmitted = result.Stats.RowsEmitted
			outcome.RowsDropped = result.Stats.RowsDropped
			outcome.Unmatched = result.Stats.UnmatchedRows
		}
		infrastructure.RecordReconcileMetrics(ctx, s.metrics, outcome)
	}()

	if len(req.Cost.Data) == 0 || len(req.Revenue.Data) == 0 {
		return nil, apierrors.NewAppValidationError(ErrEmptyUpload.Error())
	}

	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release(ctx)

	result, err = s.pipeline.Run(req.Cost.Data, req.Cost.Name, req.Revenue.Data, req.Revenue.Name, req.Rate)
	if err != nil {
		infrastructure.WithError(s.logger, err).WarnContext(ctx, "reconciliation rejected",
			slog.String("cost_file", req.Cost.Name),
			slog.String("revenue_file", req.Revenue.Name))
		return nil, err
	}

	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"reconcile.rows_emitted":   result.Stats.RowsEmitted,
		"reconcile.rows_dropped":   result.Stats.RowsDropped,
		"reconcile.unmatched_rows": result.Stats.UnmatchedRows,
	})

	if w != nil {
		if err = s.writeReport(ctx, req.Format, result.Rows, w); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "reconciliation served",
		slog.String("operation", op),
		slog.String("format", string(req.Format)),
		slog.Int("rows", len(result.Rows)),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

// writeReport renders into a buffer first so a failed render never leaves a
// partial report on w.
func (s *ReconcileService) writeReport(ctx context.Context, format domain.ReportFormat, rows []domain.ReconciledRow, w io.Writer) error {
	writer, err := exporter.NewReportWriter(format)
	if err != nil {
		return apierrors.NewAppValidationError(err.Error())
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, rows); err != nil {
		return apierrors.NewExportError("render report", err).WithContext("format", string(format))
	}
	infrastructure.AddSpanEvent(ctx, "report.rendered", map[string]interface{}{
		"format": string(format),
		"bytes":  buf.Len(),
	})

	if _, err := buf.WriteTo(w); err != nil {
		return apierrors.NewExportError("write report", err).WithContext("format", string(format))
	}
	return nil
}

func (s *ReconcileService) acquire(ctx context.Context) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		s.logger.WarnContext(ctx, "no reconciliation slot available",
			slog.Int64("capacity", s.capacity),
			slog.String("reason", err.Error()))
		return apierrors.NewCapacityError("waiting for a reconciliation slot",
			fmt.Errorf("%w: %s", ErrServiceBusy, err.Error())).
			WithContext("capacity", s.capacity)
	}
	s.inFlight.Add(1)
	infrastructure.RecordReconcileInFlight(ctx, s.metrics, 1)
	return nil
}

func (s *ReconcileService) release(ctx context.Context) {
	s.inFlight.Add(-1)
	infrastructure.RecordReconcileInFlight(ctx, s.metrics, -1)
	s.sem.Release(1)
}

// errorKind classifies err for the reconcile_errors_total metric
func errorKind(err error) string {
	var (
		unsupported *dataprocessing.UnsupportedFormatError
		column      *dataprocessing.MissingColumnError
		field       *dataprocessing.MissingFieldError
		appErr      *apierrors.AppError
	)

	switch {
	case errors.As(err, &unsupported):
		return "unsupported_format"
	case errors.As(err, &column):
		return "missing_column"
	case errors.As(err, &field):
		return "missing_field"
	case errors.Is(err, dataprocessing.ErrInvalidRate):
		return "invalid_rate"
	case errors.Is(err, ErrServiceBusy):
		return "busy"
	case errors.As(err, &appErr):
		return strings.ToLower(string(appErr.Type))
	default:
		return "internal"
	}
}
