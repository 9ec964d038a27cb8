package dataprocessing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adrecon/pkg/contracts/domain"
)

func agg(country, amount string) domain.AggregatedCost {
	return domain.AggregatedCost{Country: country, Cost: decimal.RequireFromString(amount)}
}

func rev(country, usd, ecpm string) domain.RevenueRecord {
	return domain.RevenueRecord{
		Country:    country,
		RevenueUSD: decimal.RequireFromString(usd),
		ECPMUSD:    decimal.RequireFromString(ecpm),
	}
}

func TestReconcile(t *testing.T) {
	rows, err := Reconcile(
		[]domain.AggregatedCost{agg("India", "150"), agg("US", "200")},
		[]domain.RevenueRecord{rev("India", "10", "2"), rev("US", "5", "1")},
		decimal.NewFromInt(80),
	)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	india := rows[0]
	assert.Equal(t, "India", india.Country)
	assertDecimal(t, "150", india.CostINR)
	assertDecimal(t, "10", india.RevUSD)
	assertDecimal(t, "800", india.RevINR)
	assertDecimal(t, "650", india.ProfitINR)
	assertDecimal(t, "433.33", india.ProfitPercent)
	assertDecimal(t, "2", india.ECPMUSD)

	us := rows[1]
	assertDecimal(t, "400", us.RevINR)
	assertDecimal(t, "200", us.ProfitINR)
	assertDecimal(t, "100", us.ProfitPercent)
}

func TestReconcile_UnmatchedCountry(t *testing.T) {
	rows, err := Reconcile(
		[]domain.AggregatedCost{agg("India", "150"), agg("Brazil", "150")},
		[]domain.RevenueRecord{rev("India", "10", "2")},
		decimal.NewFromInt(80),
	)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	brazil := rows[1]
	assert.True(t, brazil.RevUSD.IsZero())
	assert.True(t, brazil.ECPMUSD.IsZero())
	assertDecimal(t, "-150", brazil.ProfitINR)
	assert.Equal(t, "-100.00", brazil.ProfitPercent.StringFixed(2))
	assert.Equal(t, -1, brazil.ProfitSign())
}

func TestReconcile_FirstRevenueMatchWins(t *testing.T) {
	rows, err := Reconcile(
		[]domain.AggregatedCost{agg("US", "10")},
		[]domain.RevenueRecord{rev("US", "1", "3"), rev("US", "99", "9")},
		decimal.NewFromInt(1),
	)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assertDecimal(t, "1", rows[0].RevUSD)
	assertDecimal(t, "3", rows[0].ECPMUSD)
}

func TestReconcile_FiltersEmptyCountryAndZeroCost(t *testing.T) {
	rows, err := Reconcile(
		[]domain.AggregatedCost{agg("India", "5"), agg("", "40"), agg("US", "0"), agg("UK", "0.00")},
		[]domain.RevenueRecord{rev("India", "1", "1")},
		decimal.NewFromInt(2),
	)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "India", rows[0].Country)

	for _, r := range rows {
		assert.NotEmpty(t, r.Country)
		assert.False(t, r.CostINR.IsZero())
	}
}

func TestReconcile_Errors(t *testing.T) {
	costs := []domain.AggregatedCost{agg("India", "1")}
	revenues := []domain.RevenueRecord{rev("India", "1", "1")}

	tests := []struct {
		name        string
		costs       []domain.AggregatedCost
		revenues    []domain.RevenueRecord
		rate        decimal.Decimal
		wantErr     error
		wantDataset Dataset
		wantField   string
	}{
		{name: "zero rate", costs: costs, revenues: revenues, rate: decimal.Zero, wantErr: ErrInvalidRate},
		{name: "negative rate", costs: costs, revenues: revenues, rate: decimal.NewFromInt(-1), wantErr: ErrInvalidRate},
		{name: "rate exponent out of range", costs: costs, revenues: revenues, rate: decimal.New(1, MaxExponent+1), wantErr: ErrInvalidRate},
		{name: "empty cost", costs: nil, revenues: revenues, rate: decimal.NewFromInt(1), wantErr: ErrMissingField, wantDataset: DatasetCost, wantField: "country"},
		{name: "first cost country blank", costs: []domain.AggregatedCost{agg("", "1")}, revenues: revenues, rate: decimal.NewFromInt(1), wantErr: ErrMissingField, wantDataset: DatasetCost, wantField: "country"},
		{name: "empty revenue", costs: costs, revenues: nil, rate: decimal.NewFromInt(1), wantErr: ErrMissingField, wantDataset: DatasetRevenue, wantField: "country"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reconcile(tt.costs, tt.revenues, tt.rate)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var fieldErr *MissingFieldError
			if errors.As(err, &fieldErr) {
				assert.Equal(t, tt.wantDataset, fieldErr.Dataset)
				assert.Equal(t, tt.wantField, fieldErr.Field)
			}
		})
	}
}

func TestReconcile_OutputNeverExceedsInput(t *testing.T) {
	costs := []domain.AggregatedCost{agg("A", "1"), agg("B", "0"), agg("C", "3")}
	rows, err := Reconcile(costs, []domain.RevenueRecord{rev("Z", "1", "1")}, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(rows), len(costs))
}
