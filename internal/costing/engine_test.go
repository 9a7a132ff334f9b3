package costing

import (
	"testing"

	"nailpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func chemical(name, price, qty string) model.ChemicalProduct {
	return model.ChemicalProduct{
		ID:            uuid.New(),
		Name:          name,
		PurchasePrice: dec(price),
		Quantity:      dec(qty),
		Unit:          "ml",
		Active:        true,
	}
}

func consumable(name, price, pkg string) model.Consumable {
	return model.Consumable{
		ID:            uuid.New(),
		Name:          name,
		PurchasePrice: decPtr(price),
		PackageSize:   decPtr(pkg),
		Active:        true,
	}
}

// ── Unit costs ────────────────────────────────────────────────────────────────

func TestChemicalCostPerUnit(t *testing.T) {
	assertDec(t, "0.2", ChemicalCostPerUnit(chemical("Gel", "20.00", "100")))
	assertDec(t, "0", ChemicalCostPerUnit(chemical("Gel", "13.00", "0")))
	// content below one unit never raises the per-unit price
	assertDec(t, "10", ChemicalCostPerUnit(chemical("Pigment", "10.00", "0.5")))
}

func TestConsumableUnitCost(t *testing.T) {
	assertDec(t, "0.13", ConsumableUnitCost(consumable("Lima", "13.00", "100")))

	zeroPkg := consumable("Lima", "13.00", "0")
	assertDec(t, "0", ConsumableUnitCost(zeroPkg))

	zeroPkg.UnitCost = decPtr("0.5")
	assertDec(t, "0.5", ConsumableUnitCost(zeroPkg))

	legacy := model.Consumable{ID: uuid.New(), UnitCost: decPtr("0.07")}
	assertDec(t, "0.07", ConsumableUnitCost(legacy))

	assertDec(t, "0", ConsumableUnitCost(model.Consumable{ID: uuid.New()}))
}

// ── Roll-up scenarios ─────────────────────────────────────────────────────────

func TestRollUp_ChemicalOnly(t *testing.T) {
	gel := chemical("Gel", "20.00", "100")
	svc := model.CatalogService{
		ID:                uuid.New(),
		Name:              "Esmaltado",
		ManualMaterials:   model.SetRecipe(model.MaterialLine{MaterialID: gel.ID.String(), Qty: dec("5")}),
		ManualConsumables: model.SetRecipe[model.ConsumableLine](),
	}

	b := RollUp(svc, Snapshot{Chemicals: []model.ChemicalProduct{gel}})
	assertDec(t, "1.00", b.ChemicalsCost)
	assertDec(t, "0", b.ConsumablesCost)
	assertDec(t, "1.00", b.TotalCost)
	assert.Empty(t, b.Missing)
}

func TestRollUp_ConsumableOnly(t *testing.T) {
	lima := consumable("Lima", "13.00", "100")
	svc := model.CatalogService{
		ID:                uuid.New(),
		ManualMaterials:   model.SetRecipe[model.MaterialLine](),
		ManualConsumables: model.SetRecipe(model.ConsumableLine{ConsumableID: lima.ID.String(), Qty: dec("2")}),
	}

	b := RollUp(svc, Snapshot{Consumables: []model.Consumable{lima}})
	assertDec(t, "0.26", b.ConsumablesCost)
	assertDec(t, "0.26", b.TotalCost)
}

func TestRollUp_Combined(t *testing.T) {
	gel := chemical("Gel", "20.00", "100")
	lima := consumable("Lima", "13.00", "100")
	svc := model.CatalogService{
		ID:                uuid.New(),
		ManualMaterials:   model.SetRecipe(model.MaterialLine{MaterialID: gel.ID.String(), Qty: dec("5")}),
		ManualConsumables: model.SetRecipe(model.ConsumableLine{ConsumableID: lima.ID.String(), Qty: dec("2")}),
	}

	b := RollUp(svc, Snapshot{
		Chemicals:   []model.ChemicalProduct{gel},
		Consumables: []model.Consumable{lima},
	})
	assertDec(t, "1.00", b.ChemicalsCost)
	assertDec(t, "0.26", b.ConsumablesCost)
	assertDec(t, "1.26", b.TotalCost)
	require.Len(t, b.Lines, 2)
	assert.Equal(t, "Gel", b.Lines[0].Name)
	assert.Equal(t, KindConsumable, b.Lines[1].Kind)
}

func TestRollUp_DanglingReferenceContributesZero(t *testing.T) {
	gel := chemical("Gel", "20.00", "100")
	ghost := uuid.NewString()
	svc := model.CatalogService{
		ID: uuid.New(),
		ManualMaterials: model.SetRecipe(
			model.MaterialLine{MaterialID: gel.ID.String(), Qty: dec("5")},
			model.MaterialLine{MaterialID: ghost, Qty: dec("3")},
		),
		ManualConsumables: model.SetRecipe(model.ConsumableLine{ConsumableID: "gone", Qty: dec("1")}),
	}

	b := RollUp(svc, Snapshot{Chemicals: []model.ChemicalProduct{gel}})
	assertDec(t, "1.00", b.TotalCost)
	require.Len(t, b.Missing, 2)
	assert.Equal(t, MissingRef{Kind: KindChemical, RefID: ghost}, b.Missing[0])
	assert.Equal(t, MissingRef{Kind: KindConsumable, RefID: "gone"}, b.Missing[1])
	assert.True(t, b.Lines[1].Missing)
}

func TestRollUp_ZeroOrMissingQtyContributesZero(t *testing.T) {
	gel := chemical("Gel", "20.00", "100")
	lima := consumable("Lima", "13.00", "100")
	svc := model.CatalogService{
		ID:                uuid.New(),
		ManualMaterials:   model.SetRecipe(model.MaterialLine{MaterialID: gel.ID.String()}),
		ManualConsumables: model.SetRecipe(model.ConsumableLine{ConsumableID: lima.ID.String(), Qty: dec("0")}),
	}

	b := RollUp(svc, Snapshot{Chemicals: []model.ChemicalProduct{gel}, Consumables: []model.Consumable{lima}})
	assertDec(t, "0", b.TotalCost)
	assert.Empty(t, b.Missing)
}

func TestRollUp_ZeroPackageContentDividesByOne(t *testing.T) {
	p := chemical("Primer", "13.00", "0")
	svc := model.CatalogService{
		ID:                uuid.New(),
		ManualMaterials:   model.SetRecipe(model.MaterialLine{MaterialID: p.ID.String(), Qty: dec("2")}),
		ManualConsumables: model.SetRecipe[model.ConsumableLine](),
	}

	b := RollUp(svc, Snapshot{Chemicals: []model.ChemicalProduct{p}})
	assertDec(t, "26", b.ChemicalsCost)
	assert.False(t, b.TotalCost.IsNegative())
}

func TestRollUp_FractionalPackageContentDividesByOne(t *testing.T) {
	p := chemical("Pigment", "10.00", "0.5")
	svc := model.CatalogService{
		ID:                uuid.New(),
		ManualMaterials:   model.SetRecipe(model.MaterialLine{MaterialID: p.ID.String(), Qty: dec("1")}),
		ManualConsumables: model.SetRecipe[model.ConsumableLine](),
	}

	b := RollUp(svc, Snapshot{Chemicals: []model.ChemicalProduct{p}})
	assertDec(t, "10", b.ChemicalsCost)
	assertDec(t, "10", b.TotalCost)
}

func TestRollUp_IsPure(t *testing.T) {
	gel := chemical("Gel", "20.00", "100")
	lima := consumable("Lima", "13.00", "100")
	snap := Snapshot{Chemicals: []model.ChemicalProduct{gel}, Consumables: []model.Consumable{lima}}
	svc := model.CatalogService{
		ID:                uuid.New(),
		ManualMaterials:   model.SetRecipe(model.MaterialLine{MaterialID: gel.ID.String(), Qty: dec("5")}),
		ManualConsumables: model.SetRecipe(model.ConsumableLine{ConsumableID: lima.ID.String(), Qty: dec("2")}),
	}

	e := NewEngine(snap)
	first := e.RollUp(svc)
	second := e.RollUp(svc)
	third := RollUp(svc, snap)
	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
	assertDec(t, "20.00", snap.Chemicals[0].PurchasePrice)
}

// ── Recipe resolution ─────────────────────────────────────────────────────────

func TestResolve_ExplicitEmptySkipsLegacy(t *testing.T) {
	topCoat := chemical("Top Coat", "30", "15")
	svc := model.CatalogService{
		ID:                uuid.New(),
		Name:              "Manicura",
		ManualMaterials:   model.SetRecipe[model.MaterialLine](),
		ManualConsumables: model.SetRecipe[model.ConsumableLine](),
	}
	snap := Snapshot{
		Chemicals: []model.ChemicalProduct{topCoat},
		MaterialRecipes: []model.MaterialRecipe{
			{ID: "r1", ServiceName: "manicura", ChemicalRefs: datatypes.JSONSlice[string]{"top_coat"}},
		},
		ServiceRecipes: []model.ServiceRecipe{
			{ID: "Manicura", Items: datatypes.JSONSlice[model.ConsumableLine]{{ConsumableID: "x", Qty: dec("1")}}},
		},
	}

	r := NewEngine(snap).Resolve(svc)
	assert.Empty(t, r.Materials)
	assert.Empty(t, r.Consumables)
	assert.Equal(t, SourceManual, r.MaterialsFrom)
	assert.Equal(t, SourceManual, r.ConsumablesFrom)
}

func TestResolve_AbsentUsesLegacyNameMatch(t *testing.T) {
	topCoat := chemical("Top Coat", "30", "15")
	base := chemical("Base", "30", "15")
	svc := model.CatalogService{ID: uuid.New(), Name: "Manicura Semi"}
	snap := Snapshot{
		Chemicals: []model.ChemicalProduct{base, topCoat},
		MaterialRecipes: []model.MaterialRecipe{
			{ID: "other", ServiceName: "Pedicura", ChemicalRefs: datatypes.JSONSlice[string]{"base"}},
			{ID: "r1", ServiceName: "MANICURA SEMI", ChemicalRefs: datatypes.JSONSlice[string]{"top_coat", "unknown_thing"}},
		},
	}

	r := NewEngine(snap).Resolve(svc)
	assert.Equal(t, SourceLegacy, r.MaterialsFrom)
	require.Len(t, r.Materials, 1)
	assert.Equal(t, topCoat.ID.String(), r.Materials[0].MaterialID)
	assertDec(t, "1", r.Materials[0].Qty)
	assert.Equal(t, SourceNone, r.ConsumablesFrom)
	assert.Empty(t, r.Consumables)
}

func TestResolve_LegacyByServiceIDAndExactChemicalID(t *testing.T) {
	gel := chemical("Gel Constructor", "50", "30")
	svc := model.CatalogService{ID: uuid.New(), Name: "Esculpidas"}
	snap := Snapshot{
		Chemicals: []model.ChemicalProduct{gel},
		MaterialRecipes: []model.MaterialRecipe{
			{ID: "r1", ServiceID: svc.ID.String(), ChemicalRefs: datatypes.JSONSlice[string]{gel.ID.String()}},
		},
		ServiceRecipes: []model.ServiceRecipe{
			{ID: svc.ID.String(), Items: datatypes.JSONSlice[model.ConsumableLine]{{ConsumableID: "c1", Qty: dec("3")}}},
		},
	}

	r := NewEngine(snap).Resolve(svc)
	require.Len(t, r.Materials, 1)
	assert.Equal(t, gel.ID.String(), r.Materials[0].MaterialID)
	assert.Equal(t, SourceLegacy, r.ConsumablesFrom)
	require.Len(t, r.Consumables, 1)
	assert.Equal(t, "c1", r.Consumables[0].ConsumableID)
}

func TestResolve_ListsResolveIndependently(t *testing.T) {
	lima := consumable("Lima", "13", "100")
	svc := model.CatalogService{
		ID:                uuid.New(),
		Name:              "Pedicura",
		ManualConsumables: model.SetRecipe(model.ConsumableLine{ConsumableID: lima.ID.String(), Qty: dec("1")}),
	}
	snap := Snapshot{
		Consumables: []model.Consumable{lima},
		ServiceRecipes: []model.ServiceRecipe{
			{ID: "Pedicura", Items: datatypes.JSONSlice[model.ConsumableLine]{{ConsumableID: "old", Qty: dec("9")}}},
		},
	}

	r := NewEngine(snap).Resolve(svc)
	assert.Equal(t, SourceNone, r.MaterialsFrom)
	assert.Equal(t, SourceManual, r.ConsumablesFrom)
	assert.Equal(t, lima.ID.String(), r.Consumables[0].ConsumableID)
}
