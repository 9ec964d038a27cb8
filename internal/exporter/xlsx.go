package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"adrecon/pkg/contracts/domain"
)

const (
	reportSheet  = "Sheet1"
	profitColor  = "56AE57"
	lossColor    = "C23B22"
	countryWidth = 30
	amountWidth  = 10
	numFmtFixed2 = 2 // built-in "0.00"
)

// profit-styled columns, 1-based
const (
	profitINRCol = 5
	profitPerCol = 6
)

type reportStyles struct {
	header int
	amount int
	profit int
	loss   int
}

// ExcelReportWriter writes reports as XLSX workbooks.
type ExcelReportWriter struct{}

func NewExcelReportWriter() *ExcelReportWriter {
	return &ExcelReportWriter{}
}

func (w *ExcelReportWriter) Format() domain.ReportFormat {
	return domain.ReportFormatExcel
}

// Write builds the workbook and streams it to out.
func (w *ExcelReportWriter) Write(out io.Writer, rows []domain.ReconciledRow) error {
	f, _, err := buildWorkbook(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func newReportStyles(f *excelize.File) (reportStyles, error) {
	var s reportStyles
	var err error

	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	}); err != nil {
		return s, err
	}
	if s.amount, err = f.NewStyle(&excelize.Style{NumFmt: numFmtFixed2}); err != nil {
		return s, err
	}
	if s.profit, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: profitColor},
		NumFmt: numFmtFixed2,
	}); err != nil {
		return s, err
	}
	if s.loss, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: lossColor},
		NumFmt: numFmtFixed2,
	}); err != nil {
		return s, err
	}
	return s, nil
}

func buildWorkbook(rows []domain.ReconciledRow) (*excelize.File, reportStyles, error) {
	f := excelize.NewFile()

	styles, err := newReportStyles(f)
	if err != nil {
		f.Close()
		return nil, styles, fmt.Errorf("failed to create styles: %w", err)
	}

	if err := f.SetSheetRow(reportSheet, "A1", &domain.ReportColumns); err != nil {
		f.Close()
		return nil, styles, fmt.Errorf("failed to write headers: %w", err)
	}
	if err := f.SetRowStyle(reportSheet, 1, 1, styles.header); err != nil {
		f.Close()
		return nil, styles, err
	}

	lastCol, _ := excelize.ColumnNumberToName(len(domain.ReportColumns))
	for i, row := range rows {
		rowNum := i + 2
		values := reportValues(row)

		start, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(reportSheet, start, &values); err != nil {
			f.Close()
			return nil, styles, fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}

		first, _ := excelize.CoordinatesToCellName(2, rowNum)
		last := fmt.Sprintf("%s%d", lastCol, rowNum)
		if err := f.SetCellStyle(reportSheet, first, last, styles.amount); err != nil {
			f.Close()
			return nil, styles, err
		}

		if style, ok := styles.forSign(row.ProfitSign()); ok {
			for _, col := range []int{profitINRCol, profitPerCol} {
				cell, _ := excelize.CoordinatesToCellName(col, rowNum)
				if err := f.SetCellStyle(reportSheet, cell, cell, style); err != nil {
					f.Close()
					return nil, styles, err
				}
			}
		}
	}

	if err := f.SetColWidth(reportSheet, "A", "A", countryWidth); err != nil {
		f.Close()
		return nil, styles, err
	}
	if err := f.SetColWidth(reportSheet, "B", lastCol, amountWidth); err != nil {
		f.Close()
		return nil, styles, err
	}

	return f, styles, nil
}

func (s reportStyles) forSign(sign int) (int, bool) {
	switch {
	case sign > 0:
		return s.profit, true
	case sign < 0:
		return s.loss, true
	default:
		return 0, false
	}
}
