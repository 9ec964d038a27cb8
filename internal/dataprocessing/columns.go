package dataprocessing

import (
	"strings"
)

// Header labels of the supported exports.
const (
	LabelCostCountry    = "Country/Territory (Matched)"
	LabelCost           = "Cost"
	LabelRevenueCountry = "Country"
	LabelRevenue        = "Est. earnings (USD)"
	LabelECPM           = "Observed eCPM (USD)"
)

// Labels holds the header labels looked up in each export.
type Labels struct {
	CostCountry    string `yaml:"cost_country" envconfig:"COST_COUNTRY"`
	Cost           string `yaml:"cost" envconfig:"COST"`
	RevenueCountry string `yaml:"revenue_country" envconfig:"REVENUE_COUNTRY"`
	Revenue        string `yaml:"revenue" envconfig:"REVENUE"`
	ECPM           string `yaml:"ecpm" envconfig:"ECPM"`
}

// DefaultLabels returns the labels used by the ad network exports.
func DefaultLabels() Labels {
	return Labels{
		CostCountry:    LabelCostCountry,
		Cost:           LabelCost,
		RevenueCountry: LabelRevenueCountry,
		Revenue:        LabelRevenue,
		ECPM:           LabelECPM,
	}
}

// withDefaults fills empty labels from DefaultLabels.
func (l Labels) withDefaults() Labels {
	d := DefaultLabels()
	if l.CostCountry == "" {
		l.CostCountry = d.CostCountry
	}
	if l.Cost == "" {
		l.Cost = d.Cost
	}
	if l.RevenueCountry == "" {
		l.RevenueCountry = d.RevenueCountry
	}
	if l.Revenue == "" {
		l.Revenue = d.Revenue
	}
	if l.ECPM == "" {
		l.ECPM = d.ECPM
	}
	return l
}

// ColumnMatcher finds the index of the header matching label.
type ColumnMatcher interface {
	FindColumn(headers []string, label string) (int, bool)
}

// ColumnMatcherFunc adapts a function to ColumnMatcher.
type ColumnMatcherFunc func(headers []string, label string) (int, bool)

func (f ColumnMatcherFunc) FindColumn(headers []string, label string) (int, bool) {
	return f(headers, label)
}

// SuffixMatcher selects the first header ending with the label. Exports often
// carry a BOM or stray bytes in front of the first header, which a suffix
// comparison tolerates.
type SuffixMatcher struct{}

func (SuffixMatcher) FindColumn(headers []string, label string) (int, bool) {
	for i, h := range headers {
		if strings.HasSuffix(h, label) {
			return i, true
		}
	}
	return -1, false
}

// NormalizedMatcher selects the first header equal to the label after
// trimming whitespace, ignoring case.
type NormalizedMatcher struct{}

func (NormalizedMatcher) FindColumn(headers []string, label string) (int, bool) {
	want := strings.TrimSpace(label)
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return i, true
		}
	}
	return -1, false
}

// MatcherByName resolves a matcher name from configuration.
func MatcherByName(name string) (ColumnMatcher, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "suffix":
		return SuffixMatcher{}, true
	case "normalized":
		return NormalizedMatcher{}, true
	default:
		return nil, false
	}
}

func requireColumn(m ColumnMatcher, headers []string, dataset Dataset, label string) (int, error) {
	idx, ok := m.FindColumn(headers, label)
	if !ok {
		return -1, &MissingColumnError{Dataset: dataset, Column: label}
	}
	return idx, nil
}
