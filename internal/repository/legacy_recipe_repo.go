package repository

import (
	"context"

	"nailpos/internal/model"

	"gorm.io/gorm"
)

// LegacyRecipeRepository reads pre-migration recipes. There is no write path.
type LegacyRecipeRepository interface {
	MaterialRecipes(ctx context.Context, tenantID string) ([]model.MaterialRecipe, error)
	ServiceRecipes(ctx context.Context, tenantID string) ([]model.ServiceRecipe, error)
}

type legacyRecipeRepo struct{ db *gorm.DB }

func NewLegacyRecipeRepository(db *gorm.DB) LegacyRecipeRepository {
	return &legacyRecipeRepo{db: db}
}

// Row order is stable so that "first match wins" lookups are deterministic.
func (r *legacyRecipeRepo) MaterialRecipes(ctx context.Context, tenantID string) ([]model.MaterialRecipe, error) {
	var list []model.MaterialRecipe
	err := r.db.WithContext(ctx).Scopes(tenant(tenantID)).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *legacyRecipeRepo) ServiceRecipes(ctx context.Context, tenantID string) ([]model.ServiceRecipe, error) {
	var list []model.ServiceRecipe
	err := r.db.WithContext(ctx).Scopes(tenant(tenantID)).Order("id ASC").Find(&list).Error
	return list, err
}
