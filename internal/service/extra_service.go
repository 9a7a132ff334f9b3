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

type ExtraService interface {
	Create(ctx context.Context, actor Actor, req dto.CreateExtraRequest) (*dto.ExtraResponse, error)
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.ExtraResponse, error)
	List(ctx context.Context, tenantID string, filter dto.ListFilter) (*dto.ExtraListResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateExtraRequest) (*dto.ExtraResponse, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type extraService struct {
	repo repository.ExtraRepository
	pub  Publisher
}

func NewExtraService(repo repository.ExtraRepository, pub Publisher) ExtraService {
	return &extraService{repo: repo, pub: pub}
}

func mapExtra(e model.Extra) dto.ExtraResponse {
	return dto.ExtraResponse{ID: e.ID.String(), Name: e.Name, Price: e.Price, Active: e.Active}
}

func (s *extraService) Create(ctx context.Context, actor Actor, req dto.CreateExtraRequest) (*dto.ExtraResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	e := &model.Extra{TenantID: actor.TenantID, Name: strings.TrimSpace(req.Name), Price: req.Price, Active: true}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionExtras)
	resp := mapExtra(*e)
	return &resp, nil
}

func (s *extraService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.ExtraResponse, error) {
	e, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFound(err, "extra")
	}
	resp := mapExtra(*e)
	return &resp, nil
}

func (s *extraService) List(ctx context.Context, tenantID string, filter dto.ListFilter) (*dto.ExtraListResponse, error) {
	filter = filter.Normalize()
	list, total, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExtraResponse, 0, len(list))
	for _, e := range list {
		out = append(out, mapExtra(e))
	}
	return &dto.ExtraListResponse{Data: out, PageMeta: dto.PageMeta{Total: total, Page: filter.Page, Limit: filter.Limit}}, nil
}

func (s *extraService) Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateExtraRequest) (*dto.ExtraResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	e, err := s.repo.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, notFound(err, "extra")
	}
	if req.Name != nil {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		e.Price = *req.Price
	}
	if req.Active != nil {
		e.Active = *req.Active
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionExtras)
	resp := mapExtra(*e)
	return &resp, nil
}

func (s *extraService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := actor.canDelete(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, actor.TenantID, id); err != nil {
		return notFound(err, "extra")
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionExtras)
	return nil
}
