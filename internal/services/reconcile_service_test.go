package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"adrecon/internal/dataprocessing"
	apierrors "adrecon/internal/errors"
	"adrecon/internal/shared/testutil"
	"adrecon/pkg/contracts/domain"
)

func sampleRequest(format domain.ReportFormat) ReconcileRequest {
	return ReconcileRequest{
		Cost:    Upload{Name: "cost.csv", Data: testutil.SampleCostExport()},
		Revenue: Upload{Name: "revenue.csv", Data: testutil.SampleRevenueExport()},
		Rate:    decimal.NewFromInt(80),
		Format:  format,
	}
}

func newTestService(t *testing.T, maxConcurrent int64) (*ReconcileService, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, logs := testutil.NewTestLogger(t)
	return NewReconcileService(dataprocessing.NewPipeline(dataprocessing.WithLogger(logger)), maxConcurrent, nil, nil, logger), logs
}

func TestNewReconcileService_Defaults(t *testing.T) {
	svc := NewReconcileService(nil, 0, nil, nil, nil)
	assert.EqualValues(t, 1, svc.Capacity())
	assert.Zero(t, svc.InFlight())
}

func TestReconcileService_Reconcile(t *testing.T) {
	svc, logs := newTestService(t, 2)

	result, err := svc.Reconcile(context.Background(), sampleRequest(domain.ReportFormatExcel))
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "India", result.Rows[0].Country)
	assert.Equal(t, "650.00", result.Rows[0].ProfitINR.StringFixed(2))
	assert.Zero(t, svc.InFlight(), "slot released")

	testutil.AssertLogContains(t, logs, slog.LevelInfo, "reconciliation served")
	testutil.AssertLogAttr(t, logs, "component", "reconcile_service")
}

func TestReconcileService_ReportCSV(t *testing.T) {
	svc, _ := newTestService(t, 1)

	var buf bytes.Buffer
	result, err := svc.Report(context.Background(), sampleRequest(domain.ReportFormatCSV), &buf)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(buf.String(), "\uFEFF")), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "country,costINR,revUSD,revINR,profitINR,profitPer,eCPMUSD", strings.TrimSpace(lines[0]))
	assert.Equal(t, "India,150.00,10.00,800.00,650.00,433.33,2.00", strings.TrimSpace(lines[1]))
}

func TestReconcileService_ReportExcel(t *testing.T) {
	svc, _ := newTestService(t, 1)

	var buf bytes.Buffer
	_, err := svc.Report(context.Background(), sampleRequest(domain.ReportFormatExcel), &buf)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	country, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "India", country)
}

func TestReconcileService_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ReconcileRequest)
		check    func(t *testing.T, err error)
		wantKind string
	}{
		{
			name:   "unsupported extension",
			mutate: func(r *ReconcileRequest) { r.Cost.Name = "cost.xlsx" },
			check: func(t *testing.T, err error) {
				var target *dataprocessing.UnsupportedFormatError
				assert.ErrorAs(t, err, &target)
			},
			wantKind: "unsupported_format",
		},
		{
			name:   "invalid rate",
			mutate: func(r *ReconcileRequest) { r.Rate = decimal.Zero },
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, dataprocessing.ErrInvalidRate)
			},
			wantKind: "invalid_rate",
		},
		{
			name: "missing column",
			mutate: func(r *ReconcileRequest) {
				r.Revenue.Data = testutil.RevenueExport([]string{"Nation", "Money"}, []string{"India", "1"})
			},
			check: func(t *testing.T, err error) {
				var target *dataprocessing.MissingColumnError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, dataprocessing.DatasetRevenue, target.Dataset)
			},
			wantKind: "missing_column",
		},
		{
			name:   "empty upload",
			mutate: func(r *ReconcileRequest) { r.Revenue.Data = nil },
			check: func(t *testing.T, err error) {
				var appErr *apierrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, apierrors.ErrTypeValidation, appErr.Type)
			},
			wantKind: "validation",
		},
		{
			name:   "unknown report format",
			mutate: func(r *ReconcileRequest) { r.Format = "pdf" },
			check: func(t *testing.T, err error) {
				var appErr *apierrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, apierrors.ErrTypeValidation, appErr.Type)
			},
			wantKind: "validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, 1)
			req := sampleRequest(domain.ReportFormatExcel)
			tt.mutate(&req)

			var buf bytes.Buffer
			result, err := svc.Report(context.Background(), req, &buf)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Zero(t, buf.Len(), "nothing written on failure")
			tt.check(t, err)
			assert.Equal(t, tt.wantKind, errorKind(err))
			assert.Zero(t, svc.InFlight())
		})
	}
}

func TestReconcileService_BusyWhenNoSlot(t *testing.T) {
	svc, logs := newTestService(t, 1)

	require.NoError(t, svc.acquire(context.Background()))
	assert.EqualValues(t, 1, svc.InFlight())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Reconcile(ctx, sampleRequest(domain.ReportFormatExcel))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceBusy)
	assert.False(t, errors.Is(err, context.DeadlineExceeded), "capacity errors do not surface as timeouts")
	assert.Equal(t, "busy", errorKind(err))
	testutil.AssertLogContains(t, logs, slog.LevelWarn, "no reconciliation slot available")

	svc.release(context.Background())
	_, err = svc.Reconcile(context.Background(), sampleRequest(domain.ReportFormatExcel))
	assert.NoError(t, err)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "missing_field", errorKind(&dataprocessing.MissingFieldError{Dataset: dataprocessing.DatasetCost, Field: "country"}))
	assert.Equal(t, "export", errorKind(apierrors.NewExportError("x", nil)))
	assert.Equal(t, "internal", errorKind(errors.New("boom")))
}
