package dataprocessing

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"adrecon/pkg/contracts/domain"
)

// SupportedExtension is the only accepted upload file extension.
const SupportedExtension = ".csv"

// Result is the outcome of one reconciliation run.
type Result struct {
	Aggregated []domain.AggregatedCost    `json:"aggregated"`
	Rows       []domain.ReconciledRow     `json:"rows"`
	Stats      domain.ReconciliationStats `json:"stats"`
}

// Pipeline wires the processing stages together.
type Pipeline struct {
	matcher ColumnMatcher
	labels  Labels
	logger  *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMatcher replaces the default suffix column matcher.
func WithMatcher(m ColumnMatcher) Option {
	return func(p *Pipeline) {
		if m != nil {
			p.matcher = m
		}
	}
}

// WithLabels overrides the header labels. Empty labels keep their default.
func WithLabels(l Labels) Option {
	return func(p *Pipeline) {
		p.labels = l.withDefaults()
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline creates a pipeline using SuffixMatcher and DefaultLabels unless
// overridden.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		matcher: SuffixMatcher{},
		labels:  DefaultLabels(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsSupportedFile reports whether name carries the accepted extension.
func IsSupportedFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), SupportedExtension)
}

// Run reconciles a cost export with a revenue export at the given exchange
// rate. It has no side effects and the same inputs always give the same result.
func (p *Pipeline) Run(costData []byte, costName string, revenueData []byte, revenueName string, rate decimal.Decimal) (*Result, error) {
	if !IsSupportedFile(costName) {
		return nil, &UnsupportedFormatError{Filename: costName}
	}
	if !IsSupportedFile(revenueName) {
		return nil, &UnsupportedFormatError{Filename: revenueName}
	}
	if !rate.IsPositive() || !InExponentRange(rate) {
		return nil, ErrInvalidRate
	}

	costTable := BuildTable(costData, FormatCost)
	revenueTable := BuildTable(revenueData, FormatRevenue)

	p.logger.Debug("tables reconstructed",
		slog.Int("cost_width", costTable.Width),
		slog.Int("cost_rows", len(costTable.Rows)),
		slog.Int("revenue_width", revenueTable.Width),
		slog.Int("revenue_rows", len(revenueTable.Rows)))

	costs, costFirst, err := extractCostRecords(costTable, p.matcher, p.labels)
	if err != nil {
		return nil, err
	}
	revenues, revenueFirst, err := extractRevenueRecords(revenueTable, p.matcher, p.labels)
	if err != nil {
		return nil, err
	}
	if err := checkFirstRows(costFirst, revenueFirst); err != nil {
		return nil, err
	}

	aggregated := AggregateCosts(costs)
	rows, counts, err := reconcile(aggregated, revenues, rate)
	if err != nil {
		return nil, err
	}

	stats := domain.ReconciliationStats{
		CostRowWidth:    costTable.Width,
		RevenueRowWidth: revenueTable.Width,
		CostRecords:     len(costs),
		RevenueRecords:  len(revenues),
		Countries:       len(aggregated),
		RowsEmitted:     len(rows),
		RowsDropped:     counts.dropped,
		UnmatchedRows:   counts.unmatched,
	}

	p.logger.Info("reconciliation complete",
		slog.String("cost_file", costName),
		slog.String("revenue_file", revenueName),
		slog.Int("countries", stats.Countries),
		slog.Int("rows_emitted", stats.RowsEmitted),
		slog.Int("rows_dropped", stats.RowsDropped),
		slog.Int("unmatched", stats.UnmatchedRows))

	return &Result{Aggregated: aggregated, Rows: rows, Stats: stats}, nil
}
