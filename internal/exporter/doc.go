// Package exporter renders reconciliation results as downloadable reports.
//
// Two writers are provided:
//
// ExcelReportWriter: builds an XLSX workbook with a single "Sheet1", a bold
// header row and profit cells coloured green or red by sign.
//
// CSVReportWriter: writes the same columns as CSV, prefixed with a UTF-8 BOM
// for Excel compatibility.
//
// Example usage:
//
//	w, err := exporter.NewReportWriter(domain.ReportFormatExcel)
//	if err != nil {
//	    return err
//	}
//	err = w.Write(resp, result.Rows)
//
// WriteReportFile writes a report to disk, creating parent directories.
package exporter
