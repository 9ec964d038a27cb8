// Package dataprocessing turns raw advertising exports into reconciled
// per-country profit rows.
//
// # Architecture
//
// The package is organized as a chain of small, pure stages:
//
// 1. Tokenizer: decodes the export and splits it into NUL-free tokens
// 2. Table reconstruction: regroups the flat token stream into fixed-width rows
// 3. Column location: finds the columns of interest by header label
// 4. Aggregation: sums cost per country
// 5. Reconciliation: joins cost with revenue and derives profit metrics
//
// # Usage
//
//	p := dataprocessing.NewPipeline(dataprocessing.WithLogger(logger))
//	result, err := p.Run(costCSV, "cost.csv", revenueCSV, "revenue.csv", decimal.NewFromFloat(83.2))
//	if err != nil {
//	    return err
//	}
//	for _, row := range result.Rows {
//	    fmt.Println(row.Country, row.ProfitINR.StringFixed(2))
//	}
//
// # Data Flow
//
//	raw bytes → Tokenize → Chunk → Table → Extract*Records → AggregateCosts → Reconcile
//
// # Error Handling
//
// Structural problems are reported as typed errors that can be matched with
// errors.As: UnsupportedFormatError, MissingColumnError and MissingFieldError.
// A non-positive exchange rate yields ErrInvalidRate. Malformed cells never
// fail a run; they degrade to an empty string or zero and are filtered out.
package dataprocessing
