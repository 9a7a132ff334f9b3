// Package costing computes the material cost of delivering one catalog service
// from the chemical-product and consumable recipes linked to it.
//
// Everything here is a pure function of already-loaded records: no I/O, no
// caching. Callers build an Engine from the current snapshot and ask it again
// whenever the snapshot changes.
package costing

import (
	"nailpos/internal/model"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// ChemicalCostPerUnit is purchasePrice / max(quantity, 1), or 0 when the
// package content is zero or negative.
func ChemicalCostPerUnit(p model.ChemicalProduct) decimal.Decimal {
	if !p.Quantity.IsPositive() {
		return decimal.Zero
	}
	return chemicalRollupUnitCost(p)
}

// chemicalRollupUnitCost is the per-unit price used inside a roll-up:
// purchasePrice / max(quantity, 1). A product whose size was never filled in
// costs its full purchase price per unit used.
func chemicalRollupUnitCost(p model.ChemicalProduct) decimal.Decimal {
	return p.PurchasePrice.Div(decimal.Max(p.Quantity, one))
}

// ConsumableUnitCost is purchasePrice / packageSize when both are known and the
// package size is positive; otherwise the stored legacy unit cost, otherwise 0.
func ConsumableUnitCost(c model.Consumable) decimal.Decimal {
	if c.PurchasePrice != nil && c.PackageSize != nil && c.PackageSize.IsPositive() {
		return c.PurchasePrice.Div(*c.PackageSize)
	}
	if c.UnitCost != nil {
		return *c.UnitCost
	}
	return decimal.Zero
}
