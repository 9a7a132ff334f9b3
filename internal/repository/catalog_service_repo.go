package repository

import (
	"context"

	"nailpos/internal/dto"
	"nailpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogServiceRepository stores sellable services together with their
// manual recipe columns.
type CatalogServiceRepository interface {
	Create(ctx context.Context, s *model.CatalogService) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.CatalogService, error)
	List(ctx context.Context, tenantID string, filter dto.ListFilter) ([]model.CatalogService, int64, error)
	Update(ctx context.Context, s *model.CatalogService) error
	SetActive(ctx context.Context, tenantID string, id uuid.UUID, active bool) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

type catalogServiceRepo struct{ db *gorm.DB }

func NewCatalogServiceRepository(db *gorm.DB) CatalogServiceRepository {
	return &catalogServiceRepo{db: db}
}

func (r *catalogServiceRepo) Create(ctx context.Context, s *model.CatalogService) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *catalogServiceRepo) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.CatalogService, error) {
	var s model.CatalogService
	err := r.db.WithContext(ctx).Scopes(tenant(tenantID)).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *catalogServiceRepo) List(ctx context.Context, tenantID string, filter dto.ListFilter) ([]model.CatalogService, int64, error) {
	var list []model.CatalogService
	var total int64
	q := listQuery(r.db.WithContext(ctx).Model(&model.CatalogService{}), tenantID, filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("category ASC, name ASC").Offset(offset).Limit(filter.Limit).Find(&list).Error
	return list, total, err
}

// Update writes every column, so an absent recipe list is stored as NULL.
func (r *catalogServiceRepo) Update(ctx context.Context, s *model.CatalogService) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *catalogServiceRepo) SetActive(ctx context.Context, tenantID string, id uuid.UUID, active bool) error {
	return affected(r.db.WithContext(ctx).Model(&model.CatalogService{}).
		Scopes(tenant(tenantID)).Where("id = ?", id).Update("active", active))
}

func (r *catalogServiceRepo) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Scopes(tenant(tenantID)).Delete(&model.CatalogService{}, "id = ?", id))
}
