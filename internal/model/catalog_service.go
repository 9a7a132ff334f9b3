package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service categories offered by the salon.
const (
	CategoryManicure = "manicure"
	CategoryPedicure = "pedicure"
)

// CatalogService is a sellable service offering with an optional manual
// recipe. See RecipeList for the absent/empty distinction on the two lists.
type CatalogService struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID          string          `gorm:"type:varchar(64);not null;index"`
	Name              string          `gorm:"not null;index"`
	Category          string          `gorm:"type:varchar(20);not null"`
	Price             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Active            bool            `gorm:"not null;default:true"`
	ManualMaterials   MaterialList
	ManualConsumables ConsumableList
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (s *CatalogService) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// Extra is an add-on sold together with a service (nail art, gems...).
type Extra struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TenantID  string          `gorm:"type:varchar(64);not null;index"`
	Name      string          `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Extra) BeforeCreate(*gorm.DB) error {
	ensureID(&e.ID)
	return nil
}
