package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotal_NoDiscount(t *testing.T) {
	unit := decimal.RequireFromString("450.00")

	tests := []struct {
		qty  int
		want string
	}{
		{1, "450.00"},
		{2, "900.00"},
		{7, "3150.00"},
	}
	for _, tt := range tests {
		got := ComputeTotal(tt.qty, unit, false)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
			"qty %d: got %s, want %s", tt.qty, got, tt.want)
	}
}

func TestComputeTotal_BirthdayDiscount(t *testing.T) {
	unit := decimal.RequireFromString("450.00")

	// 2 x 450 x 0.9 = 810, exact.
	got := ComputeTotal(2, unit, true)
	assert.True(t, decimal.NewFromInt(810).Equal(got), "got %s", got)
}

func TestComputeTotal_DiscountRoundsHalfUp(t *testing.T) {
	// 1 x 365 x 0.9 = 328.5 → rounds to 329.
	got := ComputeTotal(1, decimal.NewFromInt(365), true)
	assert.True(t, decimal.NewFromInt(329).Equal(got), "got %s", got)

	// 3 x 111 x 0.9 = 299.7 → 300.
	got = ComputeTotal(3, decimal.NewFromInt(111), true)
	assert.True(t, decimal.NewFromInt(300).Equal(got), "got %s", got)
}

func TestComputeTotal_Deterministic(t *testing.T) {
	unit := decimal.RequireFromString("449.99")
	first := ComputeTotal(5, unit, true)
	for range 10 {
		assert.True(t, first.Equal(ComputeTotal(5, unit, true)))
	}
}
