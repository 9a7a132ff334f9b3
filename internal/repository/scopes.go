package repository

import (
	"strings"

	"nailpos/internal/dto"

	"gorm.io/gorm"
)

// tenant scopes every query to one salon.
func tenant(id string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Where("tenant_id = ?", id) }
}

// listQuery builds the filtered, unpaginated query for a catalog list. The
// conditions are applied eagerly so the same chain serves Count and Find.
func listQuery(db *gorm.DB, tenantID string, f dto.ListFilter) *gorm.DB {
	q := db.Where("tenant_id = ?", tenantID)
	switch f.Active {
	case "false":
		q = q.Where("active = ?", false)
	case "all":
	default:
		q = q.Where("active = ?", true)
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	return q
}

// affected turns a zero-row write into gorm.ErrRecordNotFound.
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
