package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleItem struct {
	ServiceID    string          `json:"service_id"`
	ServiceName  string          `json:"service_name"`
	ServicePrice decimal.Decimal `json:"service_price"`
}

type SaleExtra struct {
	ExtraID string          `json:"extra_id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
}

type SaleResponse struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	Timestamp     *time.Time      `json:"timestamp"`
	OccurredAt    time.Time       `json:"occurred_at"`
	ClientName    string          `json:"client_name"`
	Items         []SaleItem      `json:"items"`
	Extras        []SaleExtra     `json:"extras"`
	Cost          decimal.Decimal `json:"cost"`
	UserID        string          `json:"user_id"`
	UserName      string          `json:"user_name"`
	PaymentMethod string          `json:"payment_method"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
	Commission    decimal.Decimal `json:"commission"`
	Deleted       bool            `json:"deleted"`
}

// SalePageFilter is a stateless keyset request. Without a cursor it returns
// the newest page.
type SalePageFilter struct {
	BeforeTS *time.Time `form:"before_ts" time_format:"2006-01-02T15:04:05Z07:00"`
	BeforeID string     `form:"before_id" validate:"omitempty,uuid"`
	Limit    int        `form:"limit,default=50" validate:"min=1,max=200"`
}

type Cursor struct {
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
}

type SalePageResponse struct {
	Data []SaleResponse `json:"data"`
	// Next is nil when the page was not full.
	Next *Cursor `json:"next"`
}

type UpdateSaleCostRequest struct {
	Cost decimal.Decimal `json:"cost" validate:"gte=0"`
}

// ─── Ledger sessions ─────────────────────────────────────────────────────────

type LedgerSessionResponse struct {
	SessionID string         `json:"session_id"`
	State     string         `json:"state"` // idle | loading | exhausted
	Cursor    *Cursor        `json:"cursor"`
	LiveCount int            `json:"live_count"`
	Loaded    int            `json:"loaded,omitempty"`
	Data      []SaleResponse `json:"data"`
}

// ─── Commissions ─────────────────────────────────────────────────────────────

// RangeFilter is a half-open date range [from, to), both YYYY-MM-DD.
type RangeFilter struct {
	From string `form:"from" validate:"required,datetime=2006-01-02"`
	To   string `form:"to"   validate:"required,datetime=2006-01-02"`
}

type CommissionLine struct {
	UserID     string          `json:"user_id"`
	Name       string          `json:"name"`
	Sales      int             `json:"sales"`
	Revenue    decimal.Decimal `json:"revenue"`
	Commission decimal.Decimal `json:"commission"`
}

type CommissionReport struct {
	From  string           `json:"from"`
	To    string           `json:"to"`
	Lines []CommissionLine `json:"lines"`
	Total decimal.Decimal  `json:"total_commission"`
}
