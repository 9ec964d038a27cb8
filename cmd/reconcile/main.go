// Command reconcile joins a cost export with a revenue export and writes the
// profit report to a file.
//
//	reconcile -cost cost.csv -revenue revenue.csv -rate 83.2 -out report.xlsx
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"adrecon/internal/config"
	"adrecon/internal/dataprocessing"
	"adrecon/internal/exporter"
	"adrecon/internal/infrastructure"
	"adrecon/internal/validation"
	"adrecon/pkg/contracts/domain"
)

// options are the parsed command line arguments
type options struct {
	Cost    string `json:"cost" validate:"required"`
	Revenue string `json:"revenue" validate:"required"`
	Rate    string `json:"rate" validate:"required,positive_decimal"`
	Out     string `json:"out" validate:"required"`
	Format  string `json:"format" validate:"omitempty,oneof=xlsx excel csv"`
	Verbose bool   `json:"-"`
}

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	default:
		fmt.Fprintln(os.Stderr, "reconcile:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("reconcile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.Cost, "cost", "", "cost export (.csv, tab separated)")
	fs.StringVar(&opts.Revenue, "revenue", "", "revenue export (.csv, tab separated)")
	fs.StringVar(&opts.Rate, "rate", "", "exchange rate, local currency per USD")
	fs.StringVar(&opts.Out, "out", "", "report file to write")
	fs.StringVar(&opts.Format, "format", "", "report format: xlsx or csv (defaults to the -out extension)")
	fs.BoolVar(&opts.Verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

// reportFormat resolves -format, falling back to the output extension
func (o *options) reportFormat() (domain.ReportFormat, error) {
	if o.Format != "" {
		return domain.ParseReportFormat(o.Format)
	}
	if f, err := domain.ParseReportFormat(strings.TrimPrefix(filepath.Ext(o.Out), ".")); err == nil {
		return f, nil
	}
	return domain.ReportFormatExcel, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if err := validation.NewRequestValidator().ValidateStruct(opts); err != nil {
		return fmt.Errorf("invalid arguments: %s", strings.Join(validation.FailedFields(err), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	level := cfg.Logging.Level
	if opts.Verbose {
		level = "debug"
	}
	logger := infrastructure.WithComponent(infrastructure.NewLogger(stderr, level), "reconcile_cli")

	format, err := opts.reportFormat()
	if err != nil {
		return err
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(opts.Rate))
	if err != nil {
		return fmt.Errorf("invalid rate %q: %w", opts.Rate, err)
	}

	files := validation.NewFileValidator(logger)
	for _, path := range []string{opts.Cost, opts.Revenue} {
		if err := files.ValidateExportFile(path); err != nil {
			return err
		}
	}
	if err := files.ValidateReportPath(opts.Out, format); err != nil {
		return err
	}

	costData, err := os.ReadFile(opts.Cost)
	if err != nil {
		return fmt.Errorf("failed to read cost export: %w", err)
	}
	revenueData, err := os.ReadFile(opts.Revenue)
	if err != nil {
		return fmt.Errorf("failed to read revenue export: %w", err)
	}

	pipeline := dataprocessing.NewPipeline(
		dataprocessing.WithMatcher(cfg.ColumnMatcher()),
		dataprocessing.WithLabels(cfg.Reconcile.Labels),
		dataprocessing.WithLogger(logger),
	)

	result, err := pipeline.Run(costData, filepath.Base(opts.Cost), revenueData, filepath.Base(opts.Revenue), rate)
	if err != nil {
		return err
	}

	if err := exporter.WriteReportFile(opts.Out, format, result.Rows); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("report written",
		slog.String("out", opts.Out),
		slog.String("format", string(format)),
		slog.Int("rows", result.Stats.RowsEmitted),
		slog.Int("dropped", result.Stats.RowsDropped),
		slog.Int("unmatched", result.Stats.UnmatchedRows))

	fmt.Fprintf(stdout, "%d rows written to %s (%d dropped, %d without revenue)\n",
		result.Stats.RowsEmitted, opts.Out, result.Stats.RowsDropped, result.Stats.UnmatchedRows)
	return nil
}
