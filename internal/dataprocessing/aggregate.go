package dataprocessing

import (
	"adrecon/pkg/contracts/domain"
)

// AggregateCosts sums cost per country. Countries keep the order of their
// first occurrence and each total is rounded to two decimals.
func AggregateCosts(records []domain.CostRecord) []domain.AggregatedCost {
	index := make(map[string]int, len(records))
	out := make([]domain.AggregatedCost, 0, len(records))

	for _, r := range records {
		if i, ok := index[r.Country]; ok {
			out[i].Cost = out[i].Cost.Add(r.Cost)
			continue
		}
		index[r.Country] = len(out)
		out = append(out, domain.AggregatedCost{Country: r.Country, Cost: r.Cost})
	}

	for i := range out {
		out[i].Cost = out[i].Cost.Round(2)
	}
	return out
}
