package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Staff is a salon employee. PinHash stores a bcrypt hash; the PIN itself is
// never persisted.
type Staff struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID      string    `gorm:"type:varchar(64);not null;index"`
	Name          string    `gorm:"not null"`
	Role          string    `gorm:"type:varchar(20);not null;default:'staff'"`
	Phone         *string
	CommissionPct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	PinHash       string          `gorm:"not null"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s *Staff) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

func (Staff) TableName() string { return "staff" }

// Client is an entry of the salon's client directory.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  string    `gorm:"type:varchar(64);not null;index"`
	Name      string    `gorm:"not null;index"`
	Phone     *string
	Email     *string
	Notes     *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
