package domain

import (
	"fmt"
	"strings"
)

// ReportFormat defines the output format of a reconciliation report
type ReportFormat string

const (
	ReportFormatExcel ReportFormat = "xlsx"
	ReportFormatCSV   ReportFormat = "csv"
)

// ParseReportFormat resolves a user supplied format name. An empty name selects Excel.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx", "excel":
		return ReportFormatExcel, nil
	case "csv":
		return ReportFormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported report format: %q", s)
	}
}

// ContentType returns the MIME type served for the format
func (f ReportFormat) ContentType() string {
	switch f {
	case ReportFormatCSV:
		return "text/csv"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}

// FileName returns the attachment name used for downloads
func (f ReportFormat) FileName() string {
	if f == ReportFormatCSV {
		return "output.csv"
	}
	return "output.xlsx"
}

// ReportColumns are the report headers in output order
var ReportColumns = []string{
	"country",
	"costINR",
	"revUSD",
	"revINR",
	"profitINR",
	"profitPer",
	"eCPMUSD",
}
