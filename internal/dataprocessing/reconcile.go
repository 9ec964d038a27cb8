package dataprocessing

import (
	"github.com/shopspring/decimal"

	"adrecon/pkg/contracts/domain"
)

var hundred = decimal.NewFromInt(100)

type reconcileCounts struct {
	dropped   int
	unmatched int
}

// Reconcile joins aggregated costs with revenue by exact country name.
//
// The first revenue record of a country wins. A country without revenue gets
// zero revenue and eCPM. Rows with an empty country or a zero cost are left
// out of the result.
func Reconcile(costs []domain.AggregatedCost, revenues []domain.RevenueRecord, rate decimal.Decimal) ([]domain.ReconciledRow, error) {
	rows, _, err := reconcile(costs, revenues, rate)
	return rows, err
}

func reconcile(costs []domain.AggregatedCost, revenues []domain.RevenueRecord, rate decimal.Decimal) ([]domain.ReconciledRow, reconcileCounts, error) {
	var counts reconcileCounts

	if !rate.IsPositive() || !InExponentRange(rate) {
		return nil, counts, ErrInvalidRate
	}
	if len(costs) == 0 || costs[0].Country == "" {
		return nil, counts, &MissingFieldError{Dataset: DatasetCost, Field: "country"}
	}
	if len(revenues) == 0 || revenues[0].Country == "" {
		return nil, counts, &MissingFieldError{Dataset: DatasetRevenue, Field: "country"}
	}

	byCountry := make(map[string]domain.RevenueRecord, len(revenues))
	for _, r := range revenues {
		if _, seen := byCountry[r.Country]; !seen {
			byCountry[r.Country] = r
		}
	}

	rows := make([]domain.ReconciledRow, 0, len(costs))
	for _, c := range costs {
		if c.Country == "" || c.Cost.IsZero() {
			counts.dropped++
			continue
		}

		rev, ok := byCountry[c.Country]
		if !ok {
			counts.unmatched++
			rev = domain.RevenueRecord{Country: c.Country, RevenueUSD: decimal.Zero, ECPMUSD: decimal.Zero}
		}

		revINR := rev.RevenueUSD.Mul(rate)
		profit := revINR.Sub(c.Cost)
		percent := decimal.Zero
		if !c.Cost.IsZero() {
			percent = profit.Div(c.Cost).Mul(hundred).Round(2)
		}

		rows = append(rows, domain.ReconciledRow{
			Country:       c.Country,
			CostINR:       c.Cost,
			RevUSD:        rev.RevenueUSD,
			RevINR:        revINR,
			ProfitINR:     profit,
			ProfitPercent: percent,
			ECPMUSD:       rev.ECPMUSD,
		})
	}
	return rows, counts, nil
}
