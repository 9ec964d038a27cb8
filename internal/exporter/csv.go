package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"adrecon/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVReportWriter writes reports as CSV.
type CSVReportWriter struct {
	// BOMPrefix adds a UTF-8 BOM so Excel recognises the encoding.
	BOMPrefix bool
}

// NewCSVReportWriter creates a CSV writer with the BOM prefix enabled.
func NewCSVReportWriter() *CSVReportWriter {
	return &CSVReportWriter{BOMPrefix: true}
}

func (w *CSVReportWriter) Format() domain.ReportFormat {
	return domain.ReportFormatCSV
}

// Write writes the header followed by one record per row.
func (w *CSVReportWriter) Write(out io.Writer, rows []domain.ReconciledRow) error {
	if w.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(domain.ReportColumns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(reportRecord(row)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
