package service

import (
	"context"
	"strings"
	"unicode"

	"nailpos/internal/dto"
	"nailpos/internal/infra"
	"nailpos/internal/model"
	"nailpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const minPINLength = 4

var hundred = decimal.NewFromInt(100)

type StaffService interface {
	Create(ctx context.Context, actor Actor, req dto.CreateStaffRequest) (*dto.StaffResponse, error)
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.StaffResponse, error)
	List(ctx context.Context, tenantID string, filter dto.ListFilter) (*dto.StaffListResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error)
	SetActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) error
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	VerifyPIN(ctx context.Context, tenantID string, id uuid.UUID, pin string) (bool, error)
}

type staffService struct {
	repo repository.StaffRepository
	pub  Publisher
}

func NewStaffService(repo repository.StaffRepository, pub Publisher) StaffService {
	return &staffService{repo: repo, pub: pub}
}

func mapStaff(s model.Staff) dto.StaffResponse {
	return dto.StaffResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		Role:          s.Role,
		Phone:         s.Phone,
		CommissionPct: s.CommissionPct,
		Active:        s.Active,
	}
}

// validCommission rejects percentages outside [0, 100] and rounds to cents.
func validCommission(pct decimal.Decimal) (decimal.Decimal, error) {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return decimal.Zero, invalid("commission_pct", "must be between 0 and 100")
	}
	return pct.Round(2), nil
}

// HashPIN validates and bcrypt-hashes a staff PIN.
func HashPIN(pin string) (string, error) {
	if len(pin) < minPINLength {
		return "", invalid("pin", "must have at least 4 digits")
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return "", invalid("pin", "must contain digits only")
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *staffService) Create(ctx context.Context, actor Actor, req dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	if req.Role == model.RoleOwner && actor.Role != model.RoleOwner {
		return nil, invalid("role", "only an owner can create another owner")
	}
	pct, err := validCommission(req.CommissionPct)
	if err != nil {
		return nil, err
	}
	hash, err := HashPIN(req.PIN)
	if err != nil {
		return nil, err
	}
	st := &model.Staff{
		TenantID:      actor.TenantID,
		Name:          strings.TrimSpace(req.Name),
		Role:          req.Role,
		Phone:         req.Phone,
		CommissionPct: pct,
		PinHash:       hash,
		Active:        true,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionStaff)
	resp := mapStaff(*st)
	return &resp, nil
}

func (s *staffService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.StaffResponse, error) {
	st, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFound(err, "staff member")
	}
	resp := mapStaff(*st)
	return &resp, nil
}

func (s *staffService) List(ctx context.Context, tenantID string, filter dto.ListFilter) (*dto.StaffListResponse, error) {
	filter = filter.Normalize()
	list, total, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StaffResponse, 0, len(list))
	for _, st := range list {
		out = append(out, mapStaff(st))
	}
	return &dto.StaffListResponse{Data: out, PageMeta: dto.PageMeta{Total: total, Page: filter.Page, Limit: filter.Limit}}, nil
}

func (s *staffService) Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	st, err := s.repo.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, notFound(err, "staff member")
	}
	if err := actor.canEditStaff(st); err != nil {
		return nil, err
	}
	if req.Name != nil {
		st.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		if *req.Role == model.RoleOwner && actor.Role != model.RoleOwner {
			return nil, invalid("role", "only an owner can grant the owner role")
		}
		st.Role = *req.Role
	}
	if req.Phone != nil {
		st.Phone = req.Phone
	}
	if req.CommissionPct != nil {
		pct, err := validCommission(*req.CommissionPct)
		if err != nil {
			return nil, err
		}
		st.CommissionPct = pct
	}
	if req.PIN != nil {
		hash, err := HashPIN(*req.PIN)
		if err != nil {
			return nil, err
		}
		st.PinHash = hash
	}
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionStaff)
	resp := mapStaff(*st)
	return &resp, nil
}

func (s *staffService) SetActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) error {
	if err := actor.canWrite(); err != nil {
		return err
	}
	st, err := s.repo.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return notFound(err, "staff member")
	}
	if err := actor.canEditStaff(st); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, actor.TenantID, id, active); err != nil {
		return notFound(err, "staff member")
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionStaff)
	return nil
}

func (s *staffService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := actor.canDelete(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, actor.TenantID, id); err != nil {
		return notFound(err, "staff member")
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionStaff)
	return nil
}

// VerifyPIN reports whether pin matches. Inactive staff never match.
func (s *staffService) VerifyPIN(ctx context.Context, tenantID string, id uuid.UUID, pin string) (bool, error) {
	st, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return false, notFound(err, "staff member")
	}
	if !st.Active {
		return false, nil
	}
	return bcrypt.CompareHashAndPassword([]byte(st.PinHash), []byte(pin)) == nil, nil
}
