package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestChemicalProduct_RecomputeCost(t *testing.T) {
	cases := []struct {
		price, qty, want string
	}{
		{"20.00", "100", "0.2"},
		{"13.00", "0", "0"},
		{"10.00", "0.5", "10"},
		{"9.00", "1", "9"},
	}
	for _, tc := range cases {
		p := ChemicalProduct{PurchasePrice: decimal.RequireFromString(tc.price), Quantity: decimal.RequireFromString(tc.qty)}
		p.RecomputeCost()
		assert.True(t, decimal.RequireFromString(tc.want).Equal(p.CostPerUnit), "price %s qty %s: got %s", tc.price, tc.qty, p.CostPerUnit)
	}
}
