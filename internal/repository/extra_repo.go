package repository

import (
	"context"

	"nailpos/internal/dto"
	"nailpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExtraRepository interface {
	Create(ctx context.Context, e *model.Extra) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Extra, error)
	List(ctx context.Context, tenantID string, filter dto.ListFilter) ([]model.Extra, int64, error)
	Update(ctx context.Context, e *model.Extra) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

type extraRepo struct{ db *gorm.DB }

func NewExtraRepository(db *gorm.DB) ExtraRepository { return &extraRepo{db: db} }

func (r *extraRepo) Create(ctx context.Context, e *model.Extra) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *extraRepo) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Extra, error) {
	var e model.Extra
	err := r.db.WithContext(ctx).Scopes(tenant(tenantID)).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *extraRepo) List(ctx context.Context, tenantID string, filter dto.ListFilter) ([]model.Extra, int64, error) {
	var list []model.Extra
	var total int64
	q := listQuery(r.db.WithContext(ctx).Model(&model.Extra{}), tenantID, filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Offset(offset).Limit(filter.Limit).Find(&list).Error
	return list, total, err
}

func (r *extraRepo) Update(ctx context.Context, e *model.Extra) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *extraRepo) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Scopes(tenant(tenantID)).Delete(&model.Extra{}, "id = ?", id))
}
