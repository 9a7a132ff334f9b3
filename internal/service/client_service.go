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

type ClientService interface {
	Create(ctx context.Context, actor Actor, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.ClientResponse, error)
	List(ctx context.Context, tenantID string, filter dto.ListFilter) (*dto.ClientListResponse, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type clientService struct {
	repo repository.ClientRepository
	pub  Publisher
}

func NewClientService(repo repository.ClientRepository, pub Publisher) ClientService {
	return &clientService{repo: repo, pub: pub}
}

func mapClient(c model.Client) dto.ClientResponse {
	return dto.ClientResponse{ID: c.ID.String(), Name: c.Name, Phone: c.Phone, Email: c.Email, Notes: c.Notes, Active: c.Active}
}

func (s *clientService) Create(ctx context.Context, actor Actor, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	c := &model.Client{
		TenantID: actor.TenantID,
		Name:     strings.TrimSpace(req.Name),
		Phone:    req.Phone,
		Email:    req.Email,
		Notes:    req.Notes,
		Active:   true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionClients)
	resp := mapClient(*c)
	return &resp, nil
}

func (s *clientService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.ClientResponse, error) {
	c, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFound(err, "client")
	}
	resp := mapClient(*c)
	return &resp, nil
}

func (s *clientService) List(ctx context.Context, tenantID string, filter dto.ListFilter) (*dto.ClientListResponse, error) {
	filter = filter.Normalize()
	list, total, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, mapClient(c))
	}
	return &dto.ClientListResponse{Data: out, PageMeta: dto.PageMeta{Total: total, Page: filter.Page, Limit: filter.Limit}}, nil
}

func (s *clientService) Update(ctx context.Context, actor Actor, id uuid.UUID, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, notFound(err, "client")
	}
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionClients)
	resp := mapClient(*c)
	return &resp, nil
}

func (s *clientService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := actor.canDelete(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, actor.TenantID, id); err != nil {
		return notFound(err, "client")
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionClients)
	return nil
}
