package exporter

import (
	"github.com/shopspring/decimal"

	"adrecon/pkg/contracts/domain"
)

// formatDecimal renders an amount with exactly 2 decimal places.
func formatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// reportRecord converts a row to text cells in domain.ReportColumns order.
func reportRecord(r domain.ReconciledRow) []string {
	return []string{
		r.Country,
		formatDecimal(r.CostINR),
		formatDecimal(r.RevUSD),
		formatDecimal(r.RevINR),
		formatDecimal(r.ProfitINR),
		formatDecimal(r.ProfitPercent),
		formatDecimal(r.ECPMUSD),
	}
}

// reportValues converts a row to typed cell values in domain.ReportColumns
// order. Amounts are rounded to 2 places before leaving decimal arithmetic.
func reportValues(r domain.ReconciledRow) []interface{} {
	return []interface{}{
		r.Country,
		r.CostINR.Round(2).InexactFloat64(),
		r.RevUSD.Round(2).InexactFloat64(),
		r.RevINR.Round(2).InexactFloat64(),
		r.ProfitINR.Round(2).InexactFloat64(),
		r.ProfitPercent.Round(2).InexactFloat64(),
		r.ECPMUSD.Round(2).InexactFloat64(),
	}
}
