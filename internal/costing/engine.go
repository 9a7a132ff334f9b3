package costing

import (
	"nailpos/internal/model"

	"github.com/shopspring/decimal"
)

// Snapshot is the in-memory state a roll-up reads: the tenant's chemical
// products, consumables and the legacy recipe tables.
type Snapshot struct {
	Chemicals       []model.ChemicalProduct
	Consumables     []model.Consumable
	MaterialRecipes []model.MaterialRecipe
	ServiceRecipes  []model.ServiceRecipe
}

// Line kinds.
const (
	KindChemical   = "chemical"
	KindConsumable = "consumable"
)

// Line is the cost contribution of one recipe entry.
type Line struct {
	Kind     string
	RefID    string
	Name     string
	Qty      decimal.Decimal
	UnitCost decimal.Decimal
	Cost     decimal.Decimal
	Missing  bool
}

// MissingRef is a recipe entry pointing at an unknown record.
type MissingRef struct {
	Kind  string
	RefID string
}

// Breakdown is the material cost of one unit of a service.
type Breakdown struct {
	ChemicalsCost   decimal.Decimal
	ConsumablesCost decimal.Decimal
	TotalCost       decimal.Decimal
	Recipe          Recipe
	Lines           []Line
	Missing         []MissingRef
}

// Engine indexes a Snapshot once and answers resolution and roll-up queries
// against it. It never mutates the snapshot and is safe for concurrent use.
type Engine struct {
	snap        Snapshot
	chemicals   map[string]*model.ChemicalProduct
	consumables map[string]*model.Consumable
}

func NewEngine(snap Snapshot) *Engine {
	e := &Engine{
		snap:        snap,
		chemicals:   make(map[string]*model.ChemicalProduct, len(snap.Chemicals)),
		consumables: make(map[string]*model.Consumable, len(snap.Consumables)),
	}
	for i := range snap.Chemicals {
		e.chemicals[snap.Chemicals[i].ID.String()] = &snap.Chemicals[i]
	}
	for i := range snap.Consumables {
		e.consumables[snap.Consumables[i].ID.String()] = &snap.Consumables[i]
	}
	return e
}

// Resolve picks the recipe lists for svc. A list present on the service is
// authoritative even when empty; an absent list falls back to legacy recipes.
// Display and edit-form callers both go through here.
func (e *Engine) Resolve(svc model.CatalogService) Recipe {
	r := Recipe{}

	if svc.ManualMaterials.Present {
		r.Materials = append([]model.MaterialLine{}, svc.ManualMaterials.Items...)
		r.MaterialsFrom = SourceManual
	} else if lines, ok := LegacyMaterials(svc, e.snap.MaterialRecipes, e.snap.Chemicals); ok {
		r.Materials = lines
		r.MaterialsFrom = SourceLegacy
	} else {
		r.Materials = []model.MaterialLine{}
		r.MaterialsFrom = SourceNone
	}

	if svc.ManualConsumables.Present {
		r.Consumables = append([]model.ConsumableLine{}, svc.ManualConsumables.Items...)
		r.ConsumablesFrom = SourceManual
	} else if lines, ok := LegacyConsumables(svc, e.snap.ServiceRecipes); ok {
		r.Consumables = lines
		r.ConsumablesFrom = SourceLegacy
	} else {
		r.Consumables = []model.ConsumableLine{}
		r.ConsumablesFrom = SourceNone
	}
	return r
}

// RollUp resolves the recipe of svc and prices it.
func (e *Engine) RollUp(svc model.CatalogService) Breakdown {
	return e.Price(e.Resolve(svc))
}

// Price sums the cost of an already resolved recipe. Unknown references and
// non-positive quantities contribute zero; unknown references are reported in
// Breakdown.Missing.
func (e *Engine) Price(r Recipe) Breakdown {
	b := Breakdown{
		ChemicalsCost:   decimal.Zero,
		ConsumablesCost: decimal.Zero,
		Recipe:          r,
		Lines:           make([]Line, 0, len(r.Materials)+len(r.Consumables)),
	}

	for _, m := range r.Materials {
		line := Line{Kind: KindChemical, RefID: m.MaterialID, Qty: m.Qty, UnitCost: decimal.Zero, Cost: decimal.Zero}
		p, ok := e.chemicals[m.MaterialID]
		if !ok {
			line.Missing = true
			b.Missing = append(b.Missing, MissingRef{Kind: KindChemical, RefID: m.MaterialID})
		} else {
			line.Name = p.Name
			line.UnitCost = chemicalRollupUnitCost(*p)
			if m.Qty.IsPositive() {
				line.Cost = line.UnitCost.Mul(m.Qty)
			}
		}
		b.ChemicalsCost = b.ChemicalsCost.Add(line.Cost)
		b.Lines = append(b.Lines, line)
	}

	for _, c := range r.Consumables {
		line := Line{Kind: KindConsumable, RefID: c.ConsumableID, Qty: c.Qty, UnitCost: decimal.Zero, Cost: decimal.Zero}
		item, ok := e.consumables[c.ConsumableID]
		if !ok {
			line.Missing = true
			b.Missing = append(b.Missing, MissingRef{Kind: KindConsumable, RefID: c.ConsumableID})
		} else {
			line.Name = item.Name
			line.UnitCost = ConsumableUnitCost(*item)
			if c.Qty.IsPositive() {
				line.Cost = line.UnitCost.Mul(c.Qty)
			}
		}
		b.ConsumablesCost = b.ConsumablesCost.Add(line.Cost)
		b.Lines = append(b.Lines, line)
	}

	b.TotalCost = b.ChemicalsCost.Add(b.ConsumablesCost)
	return b
}

// RollUp is a convenience for a single service; prefer an Engine when pricing
// many services against the same snapshot.
func RollUp(svc model.CatalogService, snap Snapshot) Breakdown {
	return NewEngine(snap).RollUp(svc)
}
