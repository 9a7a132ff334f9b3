package service

import (
	"context"
	"strings"

	"nailpos/internal/dto"
	"nailpos/internal/infra"
	"nailpos/internal/model"
	"nailpos/internal/repository"

	"github.com/google/uuid"
)

// ChemicalService manages chemical products. Every save recomputes the
// stored cost per unit.
type ChemicalService interface {
	Create(ctx context.Context, actor Actor, req dto.CreateChemicalRequest) (*dto.ChemicalResponse, error)
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.ChemicalResponse, error)
	List(ctx context.Context, tenantID string, filter dto.ListFilter) (*dto.ChemicalListResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateChemicalRequest) (*dto.ChemicalResponse, error)
	SetActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) error
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type chemicalService struct {
	repo repository.ChemicalRepository
	pub  Publisher
}

func NewChemicalService(repo repository.ChemicalRepository, pub Publisher) ChemicalService {
	return &chemicalService{repo: repo, pub: pub}
}

func mapChemical(p model.ChemicalProduct) dto.ChemicalResponse {
	return dto.ChemicalResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Quantity:      p.Quantity,
		Unit:          p.Unit,
		PurchasePrice: p.PurchasePrice,
		CostPerUnit:   p.CostPerUnit,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		LowStock:      p.LowStock(),
		Active:        p.Active,
	}
}

func (s *chemicalService) Create(ctx context.Context, actor Actor, req dto.CreateChemicalRequest) (*dto.ChemicalResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	p := &model.ChemicalProduct{
		TenantID:      actor.TenantID,
		Name:          strings.TrimSpace(req.Name),
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		PurchasePrice: req.PurchasePrice,
		Stock:         req.Stock,
		MinStock:      req.MinStock,
		Active:        true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionChemicals)
	resp := mapChemical(*p)
	return &resp, nil
}

func (s *chemicalService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.ChemicalResponse, error) {
	p, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFound(err, "chemical product")
	}
	resp := mapChemical(*p)
	return &resp, nil
}

func (s *chemicalService) List(ctx context.Context, tenantID string, filter dto.ListFilter) (*dto.ChemicalListResponse, error) {
	filter = filter.Normalize()
	list, total, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChemicalResponse, 0, len(list))
	for _, p := range list {
		out = append(out, mapChemical(p))
	}
	return &dto.ChemicalListResponse{Data: out, PageMeta: dto.PageMeta{Total: total, Page: filter.Page, Limit: filter.Limit}}, nil
}

func (s *chemicalService) Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateChemicalRequest) (*dto.ChemicalResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, notFound(err, "chemical product")
	}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.PurchasePrice != nil {
		p.PurchasePrice = *req.PurchasePrice
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.MinStock != nil {
		p.MinStock = *req.MinStock
	}
	// the save hook does this too; stubs in tests skip hooks
	p.RecomputeCost()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionChemicals)
	resp := mapChemical(*p)
	return &resp, nil
}

func (s *chemicalService) SetActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) error {
	if err := actor.canWrite(); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, actor.TenantID, id, active); err != nil {
		return notFound(err, "chemical product")
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionChemicals)
	return nil
}

func (s *chemicalService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := actor.canDelete(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, actor.TenantID, id); err != nil {
		return notFound(err, "chemical product")
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionChemicals)
	return nil
}
