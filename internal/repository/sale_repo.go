package repository

import (
	"context"
	"time"

	"nailpos/internal/history"
	"nailpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleRepository reads the sales ledger by keyset and applies the few
// administrative corrections a ledger row allows.
type SaleRepository interface {
	Create(ctx context.Context, s *model.Sale) error
	FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Sale, error)
	// Latest returns the newest limit rows, soft-deleted ones included.
	Latest(ctx context.Context, tenantID string, limit int) ([]model.Sale, error)
	// PageBefore returns up to limit rows strictly older than cursor.
	PageBefore(ctx context.Context, tenantID string, cursor history.Cursor, limit int) ([]model.Sale, error)
	// Range returns non-deleted rows with occurred_at in [from, to).
	Range(ctx context.Context, tenantID string, from, to time.Time) ([]model.Sale, error)
	UpdateCost(ctx context.Context, tenantID string, id uuid.UUID, cost decimal.Decimal) error
	SetDeleted(ctx context.Context, tenantID string, id uuid.UUID, deleted bool) error
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

const ledgerOrder = "occurred_at DESC, id DESC"

// SaleCursor is the ledger position of s.
func SaleCursor(s model.Sale) history.Cursor {
	return history.Cursor{Timestamp: s.OccurredAt, ID: s.ID.String()}
}

func (r *saleRepo) Create(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Scopes(tenant(tenantID)).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) Latest(ctx context.Context, tenantID string, limit int) ([]model.Sale, error) {
	var list []model.Sale
	err := r.db.WithContext(ctx).Scopes(tenant(tenantID)).
		Order(ledgerOrder).Limit(limit).Find(&list).Error
	return list, err
}

func (r *saleRepo) PageBefore(ctx context.Context, tenantID string, cursor history.Cursor, limit int) ([]model.Sale, error) {
	var list []model.Sale
	err := r.db.WithContext(ctx).Scopes(tenant(tenantID)).
		Where("occurred_at < ? OR (occurred_at = ? AND id < ?)", cursor.Timestamp, cursor.Timestamp, cursor.ID).
		Order(ledgerOrder).Limit(limit).Find(&list).Error
	return list, err
}

func (r *saleRepo) Range(ctx context.Context, tenantID string, from, to time.Time) ([]model.Sale, error) {
	var list []model.Sale
	err := r.db.WithContext(ctx).Scopes(tenant(tenantID)).
		Where("deleted = ? AND occurred_at >= ? AND occurred_at < ?", false, from.UTC(), to.UTC()).
		Order(ledgerOrder).Find(&list).Error
	return list, err
}

// Corrections use UpdateColumn: the save hook would otherwise recompute the
// sort key from an empty model.

func (r *saleRepo) UpdateCost(ctx context.Context, tenantID string, id uuid.UUID, cost decimal.Decimal) error {
	return affected(r.db.WithContext(ctx).Model(&model.Sale{}).
		Scopes(tenant(tenantID)).Where("id = ?", id).UpdateColumn("cost", cost))
}

func (r *saleRepo) SetDeleted(ctx context.Context, tenantID string, id uuid.UUID, deleted bool) error {
	return affected(r.db.WithContext(ctx).Model(&model.Sale{}).
		Scopes(tenant(tenantID)).Where("id = ?", id).UpdateColumn("deleted", deleted))
}

func (r *saleRepo) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	return affected(r.db.WithContext(ctx).Scopes(tenant(tenantID)).Delete(&model.Sale{}, "id = ?", id))
}
