package testutil

import (
	"strings"
)

// CostExport renders rows in the layout of the advertising cost export:
// tab separated, every line tab terminated and CRLF ended.
func CostExport(rows ...[]string) []byte {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\t\r\n")
	}
	return []byte(b.String())
}

// RevenueExport renders rows in the layout of the advertising revenue export.
func RevenueExport(rows ...[]string) []byte {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}

// UTF16LE encodes an ASCII string as UTF-16 little endian with a byte-order mark.
func UTF16LE(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for i := 0; i < len(s); i++ {
		out = append(out, s[i], 0x00)
	}
	return out
}

// SampleCostExport is a small cost export: India 100 + 50, US 200.
func SampleCostExport() []byte {
	return CostExport(
		[]string{"Country/Territory (Matched)", "Cost"},
		[]string{"India", "100"},
		[]string{"India", "50"},
		[]string{"US", "200"},
	)
}

// SampleRevenueExport matches SampleCostExport: India earns 10 USD, US 5 USD.
func SampleRevenueExport() []byte {
	return RevenueExport(
		[]string{"Country", "Est. earnings (USD)", "Observed eCPM (USD)"},
		[]string{"India", "10", "2"},
		[]string{"US", "5", "1"},
	)
}
