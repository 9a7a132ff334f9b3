package dto

import "github.com/shopspring/decimal"

// ─── Chemical products ───────────────────────────────────────────────────────

type CreateChemicalRequest struct {
	Name          string          `json:"name"           validate:"required,min=2,max=120"`
	Quantity      decimal.Decimal `json:"quantity"       validate:"gte=0"`
	Unit          string          `json:"unit"           validate:"required,oneof=ml g un"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"gte=0"`
	Stock         int             `json:"stock"          validate:"min=0"`
	MinStock      int             `json:"min_stock"      validate:"min=0"`
}

type UpdateChemicalRequest struct {
	Name          *string          `json:"name"           validate:"omitempty,min=2,max=120"`
	Quantity      *decimal.Decimal `json:"quantity"       validate:"omitempty,gte=0"`
	Unit          *string          `json:"unit"           validate:"omitempty,oneof=ml g un"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" validate:"omitempty,gte=0"`
	Stock         *int             `json:"stock"          validate:"omitempty,min=0"`
	MinStock      *int             `json:"min_stock"      validate:"omitempty,min=0"`
}

type ChemicalResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
	Stock         int             `json:"stock"`
	MinStock      int             `json:"min_stock"`
	LowStock      bool            `json:"low_stock"`
	Active        bool            `json:"active"`
}

type ChemicalListResponse struct {
	Data []ChemicalResponse `json:"data"`
	PageMeta
}

// ─── Consumables ─────────────────────────────────────────────────────────────

type CreateConsumableRequest struct {
	Name          string           `json:"name"            validate:"required,min=2,max=120"`
	Unit          string           `json:"unit"            validate:"omitempty,max=10"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"  validate:"omitempty,gte=0"`
	PackageSize   *decimal.Decimal `json:"package_size"    validate:"omitempty,gte=0"`
	UnitCost      *decimal.Decimal `json:"unit_cost"       validate:"omitempty,gte=0"`
	StockQuantity int              `json:"stock_quantity"  validate:"min=0"`
	MinStockAlert int              `json:"min_stock_alert" validate:"min=0"`
}

type UpdateConsumableRequest struct {
	Name          *string          `json:"name"            validate:"omitempty,min=2,max=120"`
	Unit          *string          `json:"unit"            validate:"omitempty,max=10"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"  validate:"omitempty,gte=0"`
	PackageSize   *decimal.Decimal `json:"package_size"    validate:"omitempty,gte=0"`
	UnitCost      *decimal.Decimal `json:"unit_cost"       validate:"omitempty,gte=0"`
	StockQuantity *int             `json:"stock_quantity"  validate:"omitempty,min=0"`
	MinStockAlert *int             `json:"min_stock_alert" validate:"omitempty,min=0"`
}

type ConsumableResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Unit          string           `json:"unit"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	PackageSize   *decimal.Decimal `json:"package_size"`
	UnitCost      decimal.Decimal  `json:"unit_cost"` // effective value used by the roll-up
	StockQuantity int              `json:"stock_quantity"`
	MinStockAlert int              `json:"min_stock_alert"`
	LowStock      bool             `json:"low_stock"`
	Active        bool             `json:"active"`
}

type ConsumableListResponse struct {
	Data []ConsumableResponse `json:"data"`
	PageMeta
}

// ─── Extras ──────────────────────────────────────────────────────────────────

type CreateExtraRequest struct {
	Name  string          `json:"name"  validate:"required,min=2,max=120"`
	Price decimal.Decimal `json:"price" validate:"gte=0"`
}

type UpdateExtraRequest struct {
	Name   *string          `json:"name"   validate:"omitempty,min=2,max=120"`
	Price  *decimal.Decimal `json:"price"  validate:"omitempty,gte=0"`
	Active *bool            `json:"active"`
}

type ExtraResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Active bool            `json:"active"`
}

type ExtraListResponse struct {
	Data []ExtraResponse `json:"data"`
	PageMeta
}

// ─── Catalog services ────────────────────────────────────────────────────────

type MaterialLine struct {
	MaterialID string          `json:"material_id" validate:"required"`
	Qty        decimal.Decimal `json:"qty"         validate:"gte=0"`
}

type ConsumableLine struct {
	ConsumableID string          `json:"consumable_id" validate:"required"`
	Qty          decimal.Decimal `json:"qty"           validate:"gte=0"`
}

type CreateServiceRequest struct {
	Name     string          `json:"name"     validate:"required,min=2,max=120"`
	Category string          `json:"category" validate:"required,oneof=manicure pedicure"`
	Price    decimal.Decimal `json:"price"    validate:"gte=0"`
}

type UpdateServiceRequest struct {
	Name     *string          `json:"name"     validate:"omitempty,min=2,max=120"`
	Category *string          `json:"category" validate:"omitempty,oneof=manicure pedicure"`
	Price    *decimal.Decimal `json:"price"    validate:"omitempty,gte=0"`
}

// SetRecipeRequest replaces the manual recipe. A nil list leaves that side
// unchanged; an empty list stores an explicit empty recipe.
type SetRecipeRequest struct {
	Materials   *[]MaterialLine   `json:"materials"   validate:"omitempty,dive"`
	Consumables *[]ConsumableLine `json:"consumables" validate:"omitempty,dive"`
}

type ServiceResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Category       string           `json:"category"`
	Price          decimal.Decimal  `json:"price"`
	Active         bool             `json:"active"`
	HasMaterials   bool             `json:"has_manual_materials"`
	HasConsumables bool             `json:"has_manual_consumables"`
	MaterialCost   *decimal.Decimal `json:"material_cost,omitempty"`
	Margin         *decimal.Decimal `json:"margin,omitempty"`
}

type ServiceListResponse struct {
	Data []ServiceResponse `json:"data"`
	PageMeta
}

// RecipeResponse is the resolved recipe shown in the edit form.
type RecipeResponse struct {
	ServiceID       string           `json:"service_id"`
	Materials       []MaterialLine   `json:"materials"`
	Consumables     []ConsumableLine `json:"consumables"`
	MaterialsFrom   string           `json:"materials_source"`   // manual | legacy | none
	ConsumablesFrom string           `json:"consumables_source"` // manual | legacy | none
}

type CostLine struct {
	Kind     string          `json:"kind"`
	RefID    string          `json:"ref_id"`
	Name     string          `json:"name,omitempty"`
	Qty      decimal.Decimal `json:"qty"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Cost     decimal.Decimal `json:"cost"`
	Missing  bool            `json:"missing,omitempty"`
}

type MissingRef struct {
	Kind  string `json:"kind"`
	RefID string `json:"ref_id"`
}

type CostResponse struct {
	ServiceID       string          `json:"service_id"`
	ChemicalsCost   decimal.Decimal `json:"chemicals_cost"`
	ConsumablesCost decimal.Decimal `json:"consumables_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Recipe          RecipeResponse  `json:"recipe"`
	Lines           []CostLine      `json:"lines"`
	Missing         []MissingRef    `json:"missing"`
}
