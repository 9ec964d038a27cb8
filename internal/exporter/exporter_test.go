package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"adrecon/pkg/contracts/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleRows() []domain.ReconciledRow {
	return []domain.ReconciledRow{
		{Country: "India", CostINR: d("150"), RevUSD: d("10"), RevINR: d("800"), ProfitINR: d("650"), ProfitPercent: d("433.33"), ECPMUSD: d("2")},
		{Country: "Brazil", CostINR: d("150"), RevUSD: d("0"), RevINR: d("0"), ProfitINR: d("-150"), ProfitPercent: d("-100"), ECPMUSD: d("0")},
		{Country: "Chile", CostINR: d("80"), RevUSD: d("1"), RevINR: d("80"), ProfitINR: d("0"), ProfitPercent: d("0"), ECPMUSD: d("0.5")},
	}
}

func TestReportRecord(t *testing.T) {
	got := reportRecord(sampleRows()[0])
	assert.Equal(t, []string{"India", "150.00", "10.00", "800.00", "650.00", "433.33", "2.00"}, got)
}

func TestReportValues(t *testing.T) {
	row := domain.ReconciledRow{Country: "X", CostINR: d("1.005"), ProfitPercent: d("-12.344")}
	got := reportValues(row)
	require.Len(t, got, len(domain.ReportColumns))
	assert.Equal(t, "X", got[0])
	assert.Equal(t, 1.01, got[1])
	assert.Equal(t, -12.34, got[5])
}

func TestNewReportWriter(t *testing.T) {
	w, err := NewReportWriter(domain.ReportFormatExcel)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportFormatExcel, w.Format())

	w, err = NewReportWriter(domain.ReportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportFormatCSV, w.Format())

	_, err = NewReportWriter("pdf")
	assert.Error(t, err)
}

func TestCSVReportWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVReportWriter().Write(&buf, sampleRows()))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, utf8BOM), "missing BOM")

	records, err := csv.NewReader(bytes.NewReader(data[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, domain.ReportColumns, records[0])
	assert.Equal(t, []string{"Brazil", "150.00", "0.00", "0.00", "-150.00", "-100.00", "0.00"}, records[2])
}

func TestCSVReportWriter_NoBOM(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVReportWriter{}
	require.NoError(t, w.Write(&buf, nil))
	assert.Equal(t, "country,costINR,revUSD,revINR,profitINR,profitPer,eCPMUSD\n", buf.String())
}

func TestExcelReportWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExcelReportWriter().Write(&buf, sampleRows()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{reportSheet}, f.GetSheetList())

	rows, err := f.GetRows(reportSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, domain.ReportColumns, rows[0])
	assert.Equal(t, []string{"India", "150", "10", "800", "650", "433.33", "2"}, rows[1])
	assert.Equal(t, "-100", rows[2][5])

	width, err := f.GetColWidth(reportSheet, "A")
	require.NoError(t, err)
	assert.Equal(t, float64(countryWidth), width)
	width, err = f.GetColWidth(reportSheet, "G")
	require.NoError(t, err)
	assert.Equal(t, float64(amountWidth), width)
}

func TestBuildWorkbook_ProfitStyles(t *testing.T) {
	f, styles, err := buildWorkbook(sampleRows())
	require.NoError(t, err)
	defer f.Close()

	tests := []struct {
		cell string
		want int
	}{
		{"E2", styles.profit},
		{"F2", styles.profit},
		{"E3", styles.loss},
		{"F3", styles.loss},
		{"E4", styles.amount},
		{"B2", styles.amount},
		{"A1", styles.header},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got, err := f.GetCellStyle(reportSheet, tt.cell)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.NotEqual(t, styles.profit, styles.loss)
}

func TestReportStyles_ForSign(t *testing.T) {
	s := reportStyles{profit: 3, loss: 4}

	id, ok := s.forSign(1)
	assert.True(t, ok)
	assert.Equal(t, 3, id)

	id, ok = s.forSign(-1)
	assert.True(t, ok)
	assert.Equal(t, 4, id)

	_, ok = s.forSign(0)
	assert.False(t, ok)
}

func TestWriteReportFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("csv in nested directory", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "out", "report.csv")
		require.NoError(t, WriteReportFile(path, domain.ReportFormatCSV, sampleRows()))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "India,150.00")
	})

	t.Run("xlsx", func(t *testing.T) {
		path := filepath.Join(dir, "report.xlsx")
		require.NoError(t, WriteReportFile(path, domain.ReportFormatExcel, sampleRows()))

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()
		v, err := f.GetCellValue(reportSheet, "A2")
		require.NoError(t, err)
		assert.Equal(t, "India", v)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := WriteReportFile(filepath.Join(dir, "x.pdf"), "pdf", nil)
		assert.Error(t, err)
	})
}
