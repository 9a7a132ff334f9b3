package model

import (
	"gorm.io/datatypes"
)

// MaterialRecipe is a pre-migration recipe keyed by service id or service name.
// ChemicalRefs holds either chemical ids or free-form chemical names
// ("top_coat"). Read-only: nothing in the application writes these rows.
type MaterialRecipe struct {
	ID           string                      `gorm:"type:varchar(64);primaryKey"`
	TenantID     string                      `gorm:"type:varchar(64);not null;index"`
	ServiceID    string                      `gorm:"type:varchar(64);index"`
	ServiceName  string                      `gorm:"index"`
	ChemicalRefs datatypes.JSONSlice[string] `gorm:"column:chemical_ids"`
}

// ServiceRecipe is a pre-migration consumable recipe whose ID is either the
// catalog service id or the service name.
type ServiceRecipe struct {
	ID       string                              `gorm:"type:varchar(128);primaryKey"`
	TenantID string                              `gorm:"type:varchar(64);primaryKey"`
	Items    datatypes.JSONSlice[ConsumableLine] `gorm:"column:items"`
}
