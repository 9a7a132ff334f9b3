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
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// CatalogService manages sellable services and their material cost.
type CatalogService interface {
	Create(ctx context.Context, actor Actor, req dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.ServiceResponse, error)
	// ListWithCost lists services with the current material cost of each.
	ListWithCost(ctx context.Context, tenantID string, filter dto.ListFilter) (*dto.ServiceListResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	SetActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) error
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error

	Cost(ctx context.Context, tenantID string, id uuid.UUID) (*dto.CostResponse, error)
	Recipe(ctx context.Context, tenantID string, id uuid.UUID) (*dto.RecipeResponse, error)
	SetRecipe(ctx context.Context, actor Actor, id uuid.UUID, req dto.SetRecipeRequest) (*dto.RecipeResponse, error)
	// ClearRecipe drops the manual recipe so legacy recipes apply again.
	ClearRecipe(ctx context.Context, actor Actor, id uuid.UUID) error
}

type catalogService struct {
	services    repository.CatalogServiceRepository
	chemicals   repository.ChemicalRepository
	consumables repository.ConsumableRepository
	legacy      repository.LegacyRecipeRepository
	pub         Publisher
}

func NewCatalogService(
	services repository.CatalogServiceRepository,
	chemicals repository.ChemicalRepository,
	consumables repository.ConsumableRepository,
	legacy repository.LegacyRecipeRepository,
	pub Publisher,
) CatalogService {
	return &catalogService{services: services, chemicals: chemicals, consumables: consumables, legacy: legacy, pub: pub}
}

// snapshot loads everything a roll-up reads. Costs are never cached.
func (s *catalogService) snapshot(ctx context.Context, tenantID string) (costing.Snapshot, error) {
	var snap costing.Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Chemicals, err = s.chemicals.All(ctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		snap.Consumables, err = s.consumables.All(ctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		snap.MaterialRecipes, err = s.legacy.MaterialRecipes(ctx, tenantID)
		return err
	})
	g.Go(func() (err error) {
		snap.ServiceRecipes, err = s.legacy.ServiceRecipes(ctx, tenantID)
		return err
	})
	return snap, g.Wait()
}

func logMissing(tenantID string, svc model.CatalogService, missing []costing.MissingRef) {
	for _, m := range missing {
		log.Warn().
			Str("tenant", tenantID).
			Str("service_id", svc.ID.String()).
			Str("kind", m.Kind).
			Str("ref_id", m.RefID).
			Msg("recipe references an unknown record, counted as zero cost")
	}
}

func mapService(svc model.CatalogService) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:             svc.ID.String(),
		Name:           svc.Name,
		Category:       svc.Category,
		Price:          svc.Price,
		Active:         svc.Active,
		HasMaterials:   svc.ManualMaterials.Present,
		HasConsumables: svc.ManualConsumables.Present,
	}
}

func withCost(resp dto.ServiceResponse, svc model.CatalogService, b costing.Breakdown) dto.ServiceResponse {
	cost := b.TotalCost.Round(2)
	margin := svc.Price.Sub(cost)
	resp.MaterialCost = &cost
	resp.Margin = &margin
	return resp
}

func mapRecipe(svcID string, r costing.Recipe) dto.RecipeResponse {
	out := dto.RecipeResponse{
		ServiceID:       svcID,
		Materials:       make([]dto.MaterialLine, 0, len(r.Materials)),
		Consumables:     make([]dto.ConsumableLine, 0, len(r.Consumables)),
		MaterialsFrom:   string(r.MaterialsFrom),
		ConsumablesFrom: string(r.ConsumablesFrom),
	}
	for _, m := range r.Materials {
		out.Materials = append(out.Materials, dto.MaterialLine{MaterialID: m.MaterialID, Qty: m.Qty})
	}
	for _, c := range r.Consumables {
		out.Consumables = append(out.Consumables, dto.ConsumableLine{ConsumableID: c.ConsumableID, Qty: c.Qty})
	}
	return out
}

func mapBreakdown(svcID string, b costing.Breakdown) dto.CostResponse {
	out := dto.CostResponse{
		ServiceID:       svcID,
		ChemicalsCost:   b.ChemicalsCost.Round(2),
		ConsumablesCost: b.ConsumablesCost.Round(2),
		TotalCost:       b.TotalCost.Round(2),
		Recipe:          mapRecipe(svcID, b.Recipe),
		Lines:           make([]dto.CostLine, 0, len(b.Lines)),
		Missing:         make([]dto.MissingRef, 0, len(b.Missing)),
	}
	for _, l := range b.Lines {
		out.Lines = append(out.Lines, dto.CostLine{
			Kind: l.Kind, RefID: l.RefID, Name: l.Name, Qty: l.Qty,
			UnitCost: l.UnitCost, Cost: l.Cost.Round(4), Missing: l.Missing,
		})
	}
	for _, m := range b.Missing {
		out.Missing = append(out.Missing, dto.MissingRef{Kind: m.Kind, RefID: m.RefID})
	}
	return out
}

func (s *catalogService) find(ctx context.Context, tenantID string, id uuid.UUID) (*model.CatalogService, error) {
	svc, err := s.services.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFound(err, "service")
	}
	return svc, nil
}

func (s *catalogService) Create(ctx context.Context, actor Actor, req dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	svc := &model.CatalogService{
		TenantID:          actor.TenantID,
		Name:              strings.TrimSpace(req.Name),
		Category:          req.Category,
		Price:             req.Price,
		Active:            true,
		ManualMaterials:   model.SetRecipe[model.MaterialLine](),
		ManualConsumables: model.SetRecipe[model.ConsumableLine](),
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionServices)
	resp := withCost(mapService(*svc), *svc, costing.Breakdown{TotalCost: decimal.Zero})
	return &resp, nil
}

func (s *catalogService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.ServiceResponse, error) {
	svc, err := s.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	b := costing.RollUp(*svc, snap)
	logMissing(tenantID, *svc, b.Missing)
	resp := withCost(mapService(*svc), *svc, b)
	return &resp, nil
}

func (s *catalogService) ListWithCost(ctx context.Context, tenantID string, filter dto.ListFilter) (*dto.ServiceListResponse, error) {
	filter = filter.Normalize()
	list, total, err := s.services.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	engine := costing.NewEngine(snap)
	out := make([]dto.ServiceResponse, 0, len(list))
	for _, svc := range list {
		b := engine.RollUp(svc)
		logMissing(tenantID, svc, b.Missing)
		out = append(out, withCost(mapService(svc), svc, b))
	}
	return &dto.ServiceListResponse{Data: out, PageMeta: dto.PageMeta{Total: total, Page: filter.Page, Limit: filter.Limit}}, nil
}

func (s *catalogService) Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	svc, err := s.find(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionServices)
	snap, err := s.snapshot(ctx, actor.TenantID)
	if err != nil {
		return nil, err
	}
	b := costing.RollUp(*svc, snap)
	logMissing(actor.TenantID, *svc, b.Missing)
	resp := withCost(mapService(*svc), *svc, b)
	return &resp, nil
}

func (s *catalogService) SetActive(ctx context.Context, actor Actor, id uuid.UUID, active bool) error {
	if err := actor.canWrite(); err != nil {
		return err
	}
	if err := s.services.SetActive(ctx, actor.TenantID, id, active); err != nil {
		return notFound(err, "service")
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionServices)
	return nil
}

func (s *catalogService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := actor.canDelete(); err != nil {
		return err
	}
	if err := s.services.Delete(ctx, actor.TenantID, id); err != nil {
		return notFound(err, "service")
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionServices)
	return nil
}

func (s *catalogService) Cost(ctx context.Context, tenantID string, id uuid.UUID) (*dto.CostResponse, error) {
	svc, err := s.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	b := costing.RollUp(*svc, snap)
	logMissing(tenantID, *svc, b.Missing)
	resp := mapBreakdown(svc.ID.String(), b)
	return &resp, nil
}

// Recipe resolves exactly as Cost does, so the edit form shows what is priced.
func (s *catalogService) Recipe(ctx context.Context, tenantID string, id uuid.UUID) (*dto.RecipeResponse, error) {
	svc, err := s.find(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	snap, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	resp := mapRecipe(svc.ID.String(), costing.NewEngine(snap).Resolve(*svc))
	return &resp, nil
}

func (s *catalogService) SetRecipe(ctx context.Context, actor Actor, id uuid.UUID, req dto.SetRecipeRequest) (*dto.RecipeResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	svc, err := s.find(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Materials != nil {
		lines := make([]model.MaterialLine, 0, len(*req.Materials))
		for _, m := range *req.Materials {
			lines = append(lines, model.MaterialLine{MaterialID: m.MaterialID, Qty: m.Qty})
		}
		svc.ManualMaterials = model.SetRecipe(lines...)
	}
	if req.Consumables != nil {
		lines := make([]model.ConsumableLine, 0, len(*req.Consumables))
		for _, c := range *req.Consumables {
			lines = append(lines, model.ConsumableLine{ConsumableID: c.ConsumableID, Qty: c.Qty})
		}
		svc.ManualConsumables = model.SetRecipe(lines...)
	}
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionServices)
	return s.Recipe(ctx, actor.TenantID, id)
}

func (s *catalogService) ClearRecipe(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := actor.canWrite(); err != nil {
		return err
	}
	svc, err := s.find(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	svc.ManualMaterials = model.MaterialList{}
	svc.ManualConsumables = model.ConsumableList{}
	if err := s.services.Update(ctx, svc); err != nil {
		return err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionServices)
	return nil
}
