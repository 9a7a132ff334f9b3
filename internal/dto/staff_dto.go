package dto

import "github.com/shopspring/decimal"

// ─── Staff ───────────────────────────────────────────────────────────────────

type CreateStaffRequest struct {
	Name          string          `json:"name"           validate:"required,min=2,max=120"`
	Role          string          `json:"role"           validate:"required,oneof=owner admin staff"`
	Phone         *string         `json:"phone"          validate:"omitempty,max=30"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
	PIN           string          `json:"pin"            validate:"required,numeric,min=4,max=12"`
}

type UpdateStaffRequest struct {
	Name          *string          `json:"name"           validate:"omitempty,min=2,max=120"`
	Role          *string          `json:"role"           validate:"omitempty,oneof=owner admin staff"`
	Phone         *string          `json:"phone"          validate:"omitempty,max=30"`
	CommissionPct *decimal.Decimal `json:"commission_pct"`
	PIN           *string          `json:"pin"            validate:"omitempty,numeric,min=4,max=12"`
}

type VerifyPINRequest struct {
	PIN string `json:"pin" validate:"required"`
}

type VerifyPINResponse struct {
	Valid bool `json:"valid"`
}

type StaffResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Role          string          `json:"role"`
	Phone         *string         `json:"phone"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
	Active        bool            `json:"active"`
}

type StaffListResponse struct {
	Data []StaffResponse `json:"data"`
	PageMeta
}

// ─── Clients ─────────────────────────────────────────────────────────────────

type CreateClientRequest struct {
	Name  string  `json:"name"  validate:"required,min=2,max=120"`
	Phone *string `json:"phone" validate:"omitempty,max=30"`
	Email *string `json:"email" validate:"omitempty,email"`
	Notes *string `json:"notes" validate:"omitempty,max=500"`
}

type UpdateClientRequest struct {
	Name   *string `json:"name"   validate:"omitempty,min=2,max=120"`
	Phone  *string `json:"phone"  validate:"omitempty,max=30"`
	Email  *string `json:"email"  validate:"omitempty,email"`
	Notes  *string `json:"notes"  validate:"omitempty,max=500"`
	Active *bool   `json:"active"`
}

type ClientResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Phone  *string `json:"phone"`
	Email  *string `json:"email"`
	Notes  *string `json:"notes"`
	Active bool    `json:"active"`
}

type ClientListResponse struct {
	Data []ClientResponse `json:"data"`
	PageMeta
}
