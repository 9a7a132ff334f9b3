package repository

import (
	"context"

	"nailpos/internal/dto"
	"nailpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsumableRepository interface {
	Create(ctx context.Context, c *model.Consumable) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Consumable, error)
	List(ctx context.Context, tenantID string, filter dto.ListFilter) ([]model.Consumable, int64, error)
	All(ctx context.Context, tenantID string) ([]model.Consumable, error)
	Update(ctx context.Context, c *model.Consumable) error
	SetActive(ctx context.Context, tenantID string, id uuid.UUID, active bool) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
	LowStock(ctx context.Context, tenantID string) ([]model.Consumable, error)
}

type consumableRepo struct{ db *gorm.DB }

func NewConsumableRepository(db *gorm.DB) ConsumableRepository { return &consumableRepo{db: db} }

func (r *consumableRepo) Create(ctx context.Context, c *model.Consumable) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *consumableRepo) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Consumable, error) {
	var c model.Consumable
	err := r.db.WithContext(ctx).Scopes(tenant(tenantID)).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *consumableRepo) List(ctx context.Context, tenantID string, filter dto.ListFilter) ([]model.Consumable, int64, error) {
	var list []model.Consumable
	var total int64
	q := listQuery(r.db.WithContext(ctx).Model(&model.Consumable{}), tenantID, filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Offset(offset).Limit(filter.Limit).Find(&list).Error
	return list, total, err
}

func (r *consumableRepo) All(ctx context.Context, tenantID string) ([]model.Consumable, error) {
	var list []model.Consumable
	err := r.db.WithContext(ctx).Scopes(tenant(tenantID)).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *consumableRepo) Update(ctx context.Context, c *model.Consumable) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *consumableRepo) SetActive(ctx context.Context, tenantID string, id uuid.UUID, active bool) error {
	return affected(r.db.WithContext(ctx).Model(&model.Consumable{}).
		Scopes(tenant(tenantID)).Where("id = ?", id).Update("active", active))
}

func (r *consumableRepo) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Scopes(tenant(tenantID)).Delete(&model.Consumable{}, "id = ?", id))
}

func (r *consumableRepo) LowStock(ctx context.Context, tenantID string) ([]model.Consumable, error) {
	var list []model.Consumable
	q := r.db.WithContext(ctx).Where("active = ? AND stock_quantity < min_stock_alert", true)
	if tenantID != "" {
		q = q.Scopes(tenant(tenantID))
	}
	err := q.Order("tenant_id ASC, name ASC").Find(&list).Error
	return list, err
}
