package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChemicalProduct is a purchasable chemical (gel, acrylic, top coat...).
// Quantity is the content of one package expressed in Unit; PurchasePrice is the
// cost of one package. CostPerUnit is derived and recomputed on every save.
type ChemicalProduct struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID      string          `gorm:"type:varchar(64);not null;index"`
	Name          string          `gorm:"not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Unit          string          `gorm:"type:varchar(10);not null;default:'ml'"` // ml | g | un
	PurchasePrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostPerUnit   decimal.Decimal `gorm:"type:decimal(14,6);not null;default:0"`
	Stock         int             `gorm:"not null;default:0"`
	MinStock      int             `gorm:"not null;default:0"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *ChemicalProduct) BeforeCreate(*gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// BeforeSave keeps CostPerUnit in step with PurchasePrice and Quantity.
func (p *ChemicalProduct) BeforeSave(*gorm.DB) error {
	p.RecomputeCost()
	return nil
}

// RecomputeCost sets CostPerUnit = PurchasePrice / max(Quantity, 1), or 0
// when the package content is not positive.
func (p *ChemicalProduct) RecomputeCost() {
	if p.Quantity.IsPositive() {
		p.CostPerUnit = p.PurchasePrice.DivRound(decimal.Max(p.Quantity, decimal.NewFromInt(1)), 6)
		return
	}
	p.CostPerUnit = decimal.Zero
}

// LowStock reports whether an active product fell below its threshold.
func (p *ChemicalProduct) LowStock() bool {
	return p.Active && p.Stock < p.MinStock
}
