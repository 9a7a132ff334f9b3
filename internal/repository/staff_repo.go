package repository

import (
	"context"

	"nailpos/internal/dto"
	"nailpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(ctx context.Context, s *model.Staff) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Staff, error)
	List(ctx context.Context, tenantID string, filter dto.ListFilter) ([]model.Staff, int64, error)
	Update(ctx context.Context, s *model.Staff) error
	SetActive(ctx context.Context, tenantID string, id uuid.UUID, active bool) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

type staffRepo struct{ db *gorm.DB }

func NewStaffRepository(db *gorm.DB) StaffRepository { return &staffRepo{db: db} }

func (r *staffRepo) Create(ctx context.Context, s *model.Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *staffRepo) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Staff, error) {
	var s model.Staff
	err := r.db.WithContext(ctx).Scopes(tenant(tenantID)).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *staffRepo) List(ctx context.Context, tenantID string, filter dto.ListFilter) ([]model.Staff, int64, error) {
	var list []model.Staff
	var total int64
	q := listQuery(r.db.WithContext(ctx).Model(&model.Staff{}), tenantID, filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Offset(offset).Limit(filter.Limit).Find(&list).Error
	return list, total, err
}

func (r *staffRepo) Update(ctx context.Context, s *model.Staff) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *staffRepo) SetActive(ctx context.Context, tenantID string, id uuid.UUID, active bool) error {
	return affected(r.db.WithContext(ctx).Model(&model.Staff{}).
		Scopes(tenant(tenantID)).Where("id = ?", id).Update("active", active))
}

func (r *staffRepo) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Scopes(tenant(tenantID)).Delete(&model.Staff{}, "id = ?", id))
}
