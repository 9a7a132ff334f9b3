package service

import (
	"context"
	"strings"

	"nailpos/internal/costing"
	"nailpos/internal/dto"
	"nailpos/internal/infra"
	"nailpos/internal/model"
	"nailpos/internal/repository"

	"github.com/google/uuid"
)

type ConsumableService interface {
	Create(ctx context.Context, actor Actor, req dto.CreateConsumableRequest) (*dto.ConsumableResponse, error)
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.ConsumableResponse, error)
	List(ctx context.Context, tenantID string, filter dto.ListFilter) (*dto.ConsumableListResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateConsumableRequest) (*dto.ConsumableResponse, error)
	SetActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) error
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type consumableService struct {
	repo repository.ConsumableRepository
	pub  Publisher
}

func NewConsumableService(repo repository.ConsumableRepository, pub Publisher) ConsumableService {
	return &consumableService{repo: repo, pub: pub}
}

func mapConsumable(c model.Consumable) dto.ConsumableResponse {
	return dto.ConsumableResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Unit:          c.Unit,
		PurchasePrice: c.PurchasePrice,
		PackageSize:   c.PackageSize,
		UnitCost:      costing.ConsumableUnitCost(c),
		StockQuantity: c.StockQuantity,
		MinStockAlert: c.MinStockAlert,
		LowStock:      c.LowStock(),
		Active:        c.Active,
	}
}

func (s *consumableService) Create(ctx context.Context, actor Actor, req dto.CreateConsumableRequest) (*dto.ConsumableResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	unit := req.Unit
	if unit == "" {
		unit = "un"
	}
	c := &model.Consumable{
		TenantID:      actor.TenantID,
		Name:          strings.TrimSpace(req.Name),
		Unit:          unit,
		PurchasePrice: req.PurchasePrice,
		PackageSize:   req.PackageSize,
		UnitCost:      req.UnitCost,
		StockQuantity: req.StockQuantity,
		MinStockAlert: req.MinStockAlert,
		Active:        true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionConsumables)
	resp := mapConsumable(*c)
	return &resp, nil
}

func (s *consumableService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.ConsumableResponse, error) {
	c, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFound(err, "consumable")
	}
	resp := mapConsumable(*c)
	return &resp, nil
}

func (s *consumableService) List(ctx context.Context, tenantID string, filter dto.ListFilter) (*dto.ConsumableListResponse, error) {
	filter = filter.Normalize()
	list, total, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConsumableResponse, 0, len(list))
	for _, c := range list {
		out = append(out, mapConsumable(c))
	}
	return &dto.ConsumableListResponse{Data: out, PageMeta: dto.PageMeta{Total: total, Page: filter.Page, Limit: filter.Limit}}, nil
}

func (s *consumableService) Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateConsumableRequest) (*dto.ConsumableResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, notFound(err, "consumable")
	}
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Unit != nil {
		c.Unit = *req.Unit
	}
	if req.PurchasePrice != nil {
		c.PurchasePrice = req.PurchasePrice
	}
	if req.PackageSize != nil {
		c.PackageSize = req.PackageSize
	}
	if req.UnitCost != nil {
		c.UnitCost = req.UnitCost
	}
	if req.StockQuantity != nil {
		c.StockQuantity = *req.StockQuantity
	}
	if req.MinStockAlert != nil {
		c.MinStockAlert = *req.MinStockAlert
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionConsumables)
	resp := mapConsumable(*c)
	return &resp, nil
}

func (s *consumableService) SetActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) error {
	if err := actor.canWrite(); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, actor.TenantID, id, active); err != nil {
		return notFound(err, "consumable")
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionConsumables)
	return nil
}

func (s *consumableService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := actor.canDelete(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, actor.TenantID, id); err != nil {
		return notFound(err, "consumable")
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionConsumables)
	return nil
}
