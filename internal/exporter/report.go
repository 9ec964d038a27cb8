package exporter

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"adrecon/pkg/contracts/domain"
)

// ReportWriter renders reconciled rows to w.
type ReportWriter interface {
	Write(w io.Writer, rows []domain.ReconciledRow) error
	Format() domain.ReportFormat
}

// NewReportWriter returns the writer for format.
func NewReportWriter(format domain.ReportFormat) (ReportWriter, error) {
	switch format {
	case domain.ReportFormatExcel:
		return NewExcelReportWriter(), nil
	case domain.ReportFormatCSV:
		return NewCSVReportWriter(), nil
	default:
		return nil, fmt.Errorf("no report writer for format %q", format)
	}
}

// WriteReportFile writes a report to filePath, creating the parent directory.
func WriteReportFile(filePath string, format domain.ReportFormat, rows []domain.ReconciledRow) error {
	writer, err := NewReportWriter(format)
	if err != nil {
		return err
	}

	slog.Info("Writing report file",
		slog.String("file_path", filePath),
		slog.String("format", string(format)),
		slog.Int("record_count", len(rows)))

	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	buf := bufio.NewWriter(file)
	if err := writer.Write(buf, rows); err != nil {
		file.Close()
		return err
	}
	if err := buf.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush report: %w", err)
	}
	return file.Close()
}
