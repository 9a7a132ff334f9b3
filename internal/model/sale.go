package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SaleItem is one service line of a sale.
type SaleItem struct {
	ServiceID    string          `json:"serviceId"`
	ServiceName  string          `json:"serviceName"`
	ServicePrice decimal.Decimal `json:"servicePrice"`
}

// SaleExtra is an add-on charged on a sale.
type SaleExtra struct {
	ExtraID string          `json:"extraId"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
}

// Sale is an entry of the append-only sales ledger. Rows are soft-deleted via
// Deleted; only Cost and Deleted are ever corrected after creation.
//
// OccurredAt is the ledger sort key: Timestamp when present, otherwise Date at
// midnight UTC, falling back to the creation time. Together with ID it orders the ledger totally.
type Sale struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID      string    `gorm:"type:varchar(64);not null;index:idx_sales_ledger,priority:1"`
	Date          string    `gorm:"type:varchar(10);not null"` // YYYY-MM-DD
	Timestamp     *time.Time
	OccurredAt    time.Time `gorm:"not null;index:idx_sales_ledger,priority:2,sort:desc"`
	ClientName    string
	Items         datatypes.JSONSlice[SaleItem]
	Extras        datatypes.JSONSlice[SaleExtra]
	Cost          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UserID        string          `gorm:"type:varchar(64);index"`
	UserName      string
	PaymentMethod string          `gorm:"type:varchar(20)"`
	CommissionPct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Deleted       bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time
}

func (s *Sale) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (s *Sale) BeforeSave(*gorm.DB) error {
	s.OccurredAt = s.sortTime()
	return nil
}

func (s *Sale) sortTime() time.Time {
	if s.Timestamp != nil && !s.Timestamp.IsZero() {
		return s.Timestamp.UTC()
	}
	if d, err := time.Parse("2006-01-02", s.Date); err == nil {
		return d
	}
	if !s.CreatedAt.IsZero() {
		return s.CreatedAt.UTC()
	}
	return time.Now().UTC()
}

// Commission is the amount owed to the staff member for this sale.
func (s *Sale) Commission() decimal.Decimal {
	return s.Cost.Mul(s.CommissionPct).Div(decimal.NewFromInt(100)).Round(2)
}
