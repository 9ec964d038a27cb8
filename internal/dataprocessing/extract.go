package dataprocessing

import (
	"strings"

	"adrecon/pkg/contracts/domain"
)

// firstRow records which required cells of a table's first data row are
// filled. Parsed amounts cannot tell a blank cell from a zero.
type firstRow struct {
	country bool
	value   bool
}

func firstRowOf(t Table, countryIdx, valueIdx int) firstRow {
	if len(t.Rows) == 0 {
		return firstRow{}
	}
	row := t.Rows[0]
	return firstRow{
		country: strings.TrimSpace(Cell(row, countryIdx)) != "",
		value:   strings.TrimSpace(Cell(row, valueIdx)) != "",
	}
}

// ExtractCostRecords maps the rows of a cost table to CostRecords.
func ExtractCostRecords(t Table, m ColumnMatcher, labels Labels) ([]domain.CostRecord, error) {
	records, _, err := extractCostRecords(t, m, labels)
	return records, err
}

func extractCostRecords(t Table, m ColumnMatcher, labels Labels) ([]domain.CostRecord, firstRow, error) {
	labels = labels.withDefaults()

	countryIdx, err := requireColumn(m, t.Header, DatasetCost, labels.CostCountry)
	if err != nil {
		return nil, firstRow{}, err
	}
	costIdx, err := requireColumn(m, t.Header, DatasetCost, labels.Cost)
	if err != nil {
		return nil, firstRow{}, err
	}

	records := make([]domain.CostRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, domain.CostRecord{
			Country: Cell(row, countryIdx),
			Cost:    ParseDecimalOrZero(Cell(row, costIdx)),
		})
	}
	return records, firstRowOf(t, countryIdx, costIdx), nil
}

// ExtractRevenueRecords maps the rows of a revenue table to RevenueRecords.
// The eCPM column is optional.
func ExtractRevenueRecords(t Table, m ColumnMatcher, labels Labels) ([]domain.RevenueRecord, error) {
	records, _, err := extractRevenueRecords(t, m, labels)
	return records, err
}

func extractRevenueRecords(t Table, m ColumnMatcher, labels Labels) ([]domain.RevenueRecord, firstRow, error) {
	labels = labels.withDefaults()

	countryIdx, err := requireColumn(m, t.Header, DatasetRevenue, labels.RevenueCountry)
	if err != nil {
		return nil, firstRow{}, err
	}
	revenueIdx, err := requireColumn(m, t.Header, DatasetRevenue, labels.Revenue)
	if err != nil {
		return nil, firstRow{}, err
	}
	ecpmIdx, _ := m.FindColumn(t.Header, labels.ECPM)

	records := make([]domain.RevenueRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, domain.RevenueRecord{
			Country:    Cell(row, countryIdx),
			RevenueUSD: ParseDecimalOrZero(Cell(row, revenueIdx)),
			ECPMUSD:    ParseDecimalOrZero(Cell(row, ecpmIdx)),
		})
	}
	return records, firstRowOf(t, countryIdx, revenueIdx), nil
}

// checkFirstRows rejects exports whose first data row lacks a country or
// the amount column. The cost export is checked first.
func checkFirstRows(cost, revenue firstRow) error {
	switch {
	case !cost.country:
		return &MissingFieldError{Dataset: DatasetCost, Field: "country"}
	case !cost.value:
		return &MissingFieldError{Dataset: DatasetCost, Field: "cost"}
	case !revenue.country:
		return &MissingFieldError{Dataset: DatasetRevenue, Field: "country"}
	case !revenue.value:
		return &MissingFieldError{Dataset: DatasetRevenue, Field: "revenue"}
	}
	return nil
}
