package repository

import (
	"context"

	"nailpos/internal/dto"
	"nailpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChemicalRepository is the data access contract for chemical products.
type ChemicalRepository interface {
	Create(ctx context.Context, p *model.ChemicalProduct) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.ChemicalProduct, error)
	List(ctx context.Context, tenantID string, filter dto.ListFilter) ([]model.ChemicalProduct, int64, error)
	// All returns active and inactive rows; recipes may still point at inactive products.
	All(ctx context.Context, tenantID string) ([]model.ChemicalProduct, error)
	Update(ctx context.Context, p *model.ChemicalProduct) error
	SetActive(ctx context.Context, tenantID string, id uuid.UUID, active bool) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
	// LowStock lists active products under their threshold. An empty tenantID
	// covers every tenant.
	LowStock(ctx context.Context, tenantID string) ([]model.ChemicalProduct, error)
}

type chemicalRepo struct{ db *gorm.DB }

func NewChemicalRepository(db *gorm.DB) ChemicalRepository { return &chemicalRepo{db: db} }

func (r *chemicalRepo) Create(ctx context.Context, p *model.ChemicalProduct) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *chemicalRepo) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.ChemicalProduct, error) {
	var p model.ChemicalProduct
	err := r.db.WithContext(ctx).Scopes(tenant(tenantID)).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *chemicalRepo) List(ctx context.Context, tenantID string, filter dto.ListFilter) ([]model.ChemicalProduct, int64, error) {
	var list []model.ChemicalProduct
	var total int64
	q := listQuery(r.db.WithContext(ctx).Model(&model.ChemicalProduct{}), tenantID, filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Offset(offset).Limit(filter.Limit).Find(&list).Error
	return list, total, err
}

func (r *chemicalRepo) All(ctx context.Context, tenantID string) ([]model.ChemicalProduct, error) {
	var list []model.ChemicalProduct
	err := r.db.WithContext(ctx).Scopes(tenant(tenantID)).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *chemicalRepo) Update(ctx context.Context, p *model.ChemicalProduct) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *chemicalRepo) SetActive(ctx context.Context, tenantID string, id uuid.UUID, active bool) error {
	// hooks would recompute cost on the empty model
	return affected(r.db.WithContext(ctx).Session(&gorm.Session{SkipHooks: true}).
		Model(&model.ChemicalProduct{}).Scopes(tenant(tenantID)).Where("id = ?", id).Update("active", active))
}

func (r *chemicalRepo) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Scopes(tenant(tenantID)).Delete(&model.ChemicalProduct{}, "id = ?", id))
}

func (r *chemicalRepo) LowStock(ctx context.Context, tenantID string) ([]model.ChemicalProduct, error) {
	var list []model.ChemicalProduct
	q := r.db.WithContext(ctx).Where("active = ? AND stock < min_stock", true)
	if tenantID != "" {
		q = q.Scopes(tenant(tenantID))
	}
	err := q.Order("tenant_id ASC, name ASC").Find(&list).Error
	return list, err
}
