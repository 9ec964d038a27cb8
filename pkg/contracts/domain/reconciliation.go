package domain

import (
	"github.com/shopspring/decimal"
)

// CostRecord is one row of the advertising cost export. Several records may
// share a country.
type CostRecord struct {
	Country string          `json:"country"`
	Cost    decimal.Decimal `json:"cost"`
}

// RevenueRecord is one row of the advertising revenue export, already one row
// per country.
type RevenueRecord struct {
	Country    string          `json:"country"`
	RevenueUSD decimal.Decimal `json:"revenue"`
	ECPMUSD    decimal.Decimal `json:"eCPM"`
}

// AggregatedCost is the summed cost of a single country, rounded to 2 decimals.
type AggregatedCost struct {
	Country string          `json:"country"`
	Cost    decimal.Decimal `json:"cost"`
}

// CostString renders the cost with exactly two decimal places.
func (a AggregatedCost) CostString() string {
	return a.Cost.StringFixed(2)
}

// ReconciledRow is a country's cost joined with its revenue and the derived
// profit metrics. Cost and profit are in the local currency (INR), revenue is
// reported in USD and converted with the request's exchange rate.
type ReconciledRow struct {
	Country       string          `json:"country"`
	CostINR       decimal.Decimal `json:"costINR"`
	RevUSD        decimal.Decimal `json:"revUSD"`
	RevINR        decimal.Decimal `json:"revINR"`
	ProfitINR     decimal.Decimal `json:"profitINR"`
	ProfitPercent decimal.Decimal `json:"profitPer"`
	ECPMUSD       decimal.Decimal `json:"eCPMUSD"`
}

// ProfitSign returns 1 for a profitable row, -1 for a loss and 0 for break-even.
func (r ReconciledRow) ProfitSign() int {
	return r.ProfitINR.Sign()
}

// ReconciliationStats summarises one pipeline run.
type ReconciliationStats struct {
	CostRowWidth    int `json:"cost_row_width"`
	RevenueRowWidth int `json:"revenue_row_width"`
	CostRecords     int `json:"cost_records"`
	RevenueRecords  int `json:"revenue_records"`
	Countries       int `json:"countries"`
	RowsEmitted     int `json:"rows_emitted"`
	RowsDropped     int `json:"rows_dropped"`
	UnmatchedRows   int `json:"unmatched_rows"`
}
