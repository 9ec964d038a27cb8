package dataprocessing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"adrecon/internal/shared/testutil"
)

var (
	costExport    = testutil.CostExport
	revenueExport = testutil.RevenueExport
	utf16LE       = testutil.UTF16LE
	sampleCost    = testutil.SampleCostExport
	sampleRevenue = testutil.SampleRevenueExport
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}
