package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Consumable is a disposable item bought in packages (files, cotton, gloves).
// UnitCost is a precomputed value kept by older records; new records derive the
// unit cost from PurchasePrice / PackageSize.
type Consumable struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TenantID      string           `gorm:"type:varchar(64);not null;index"`
	Name          string           `gorm:"not null;index"`
	Unit          string           `gorm:"type:varchar(10);not null;default:'un'"`
	PurchasePrice *decimal.Decimal `gorm:"type:decimal(12,2)"`
	PackageSize   *decimal.Decimal `gorm:"type:decimal(12,3)"`
	UnitCost      *decimal.Decimal `gorm:"type:decimal(14,6)"`
	StockQuantity int              `gorm:"not null;default:0"`
	MinStockAlert int              `gorm:"not null;default:0"`
	Active        bool             `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c *Consumable) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// LowStock reports whether an active consumable fell below its alert threshold.
func (c *Consumable) LowStock() bool {
	return c.Active && c.StockQuantity < c.MinStockAlert
}
