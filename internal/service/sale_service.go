package service

import (
	"context"
	"time"

	"nailpos/internal/analytics"
	"nailpos/internal/dto"
	"nailpos/internal/history"
	"nailpos/internal/infra"
	"nailpos/internal/model"
	"nailpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleService exposes ledger reads and the corrections an admin may apply.
// Sales themselves are created at the point of sale, outside this service.
type SaleService interface {
	Page(ctx context.Context, tenantID string, filter dto.SalePageFilter) (*dto.SalePageResponse, error)
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.SaleResponse, error)
	UpdateCost(ctx context.Context, actor Actor, id uuid.UUID, cost decimal.Decimal) (*dto.SaleResponse, error)
	SoftDelete(ctx context.Context, actor Actor, id uuid.UUID) error
	Restore(ctx context.Context, actor Actor, id uuid.UUID) error
	PermanentDelete(ctx context.Context, actor Actor, id uuid.UUID) error
	CommissionReport(ctx context.Context, tenantID string, rng dto.RangeFilter) (*dto.CommissionReport, error)
}

type saleService struct {
	repo repository.SaleRepository
	pub  Publisher
}

func NewSaleService(repo repository.SaleRepository, pub Publisher) SaleService {
	return &saleService{repo: repo, pub: pub}
}

// MapSale converts a ledger row to its API shape.
func MapSale(s model.Sale) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:            s.ID.String(),
		Date:          s.Date,
		Timestamp:     s.Timestamp,
		OccurredAt:    s.OccurredAt,
		ClientName:    s.ClientName,
		Items:         make([]dto.SaleItem, 0, len(s.Items)),
		Extras:        make([]dto.SaleExtra, 0, len(s.Extras)),
		Cost:          s.Cost,
		UserID:        s.UserID,
		UserName:      s.UserName,
		PaymentMethod: s.PaymentMethod,
		CommissionPct: s.CommissionPct,
		Commission:    s.Commission(),
		Deleted:       s.Deleted,
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItem{ServiceID: it.ServiceID, ServiceName: it.ServiceName, ServicePrice: it.ServicePrice})
	}
	for _, ex := range s.Extras {
		resp.Extras = append(resp.Extras, dto.SaleExtra{ExtraID: ex.ExtraID, Name: ex.Name, Price: ex.Price})
	}
	return resp
}

func mapSales(list []model.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, MapSale(s))
	}
	return out
}

func (s *saleService) Page(ctx context.Context, tenantID string, filter dto.SalePageFilter) (*dto.SalePageResponse, error) {
	limit := filter.Limit
	if limit < 1 {
		limit = history.DefaultPageSize
	}
	if (filter.BeforeTS == nil) != (filter.BeforeID == "") {
		return nil, invalid("before_ts", "before_ts and before_id go together")
	}

	var (
		rows []model.Sale
		err  error
	)
	if filter.BeforeTS == nil {
		rows, err = s.repo.Latest(ctx, tenantID, limit)
	} else {
		cur := history.Cursor{Timestamp: filter.BeforeTS.UTC(), ID: filter.BeforeID}
		rows, err = s.repo.PageBefore(ctx, tenantID, cur, limit)
	}
	if err != nil {
		return nil, err
	}

	resp := &dto.SalePageResponse{Data: mapSales(rows)}
	if len(rows) == limit {
		c := repository.SaleCursor(rows[len(rows)-1])
		resp.Next = &dto.Cursor{Timestamp: c.Timestamp, ID: c.ID}
	}
	return resp, nil
}

func (s *saleService) Get(ctx context.Context, tenantID string, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, notFound(err, "sale")
	}
	resp := MapSale(*sale)
	return &resp, nil
}

func (s *saleService) UpdateCost(ctx context.Context, actor Actor, id uuid.UUID, cost decimal.Decimal) (*dto.SaleResponse, error) {
	if err := actor.canWrite(); err != nil {
		return nil, err
	}
	if cost.IsNegative() {
		return nil, invalid("cost", "must be zero or more")
	}
	if err := s.repo.UpdateCost(ctx, actor.TenantID, id, cost.Round(2)); err != nil {
		return nil, notFound(err, "sale")
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionSales)
	return s.Get(ctx, actor.TenantID, id)
}

func (s *saleService) setDeleted(ctx context.Context, actor Actor, id uuid.UUID, deleted bool) error {
	if err := actor.canWrite(); err != nil {
		return err
	}
	if err := s.repo.SetDeleted(ctx, actor.TenantID, id, deleted); err != nil {
		return notFound(err, "sale")
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionSales)
	return nil
}

func (s *saleService) SoftDelete(ctx context.Context, actor Actor, id uuid.UUID) error {
	return s.setDeleted(ctx, actor, id, true)
}

func (s *saleService) Restore(ctx context.Context, actor Actor, id uuid.UUID) error {
	return s.setDeleted(ctx, actor, id, false)
}

func (s *saleService) PermanentDelete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := actor.canDelete(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, actor.TenantID, id); err != nil {
		return notFound(err, "sale")
	}
	publish(ctx, s.pub, actor.TenantID, infra.CollectionSales)
	return nil
}

func (s *saleService) CommissionReport(ctx context.Context, tenantID string, rng dto.RangeFilter) (*dto.CommissionReport, error) {
	from, to, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.Range(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	report := &dto.CommissionReport{From: rng.From, To: rng.To, Lines: []dto.CommissionLine{}, Total: decimal.Zero}
	for _, st := range analytics.ByStaff(rows) {
		report.Lines = append(report.Lines, dto.CommissionLine{
			UserID:     st.UserID,
			Name:       st.Name,
			Sales:      st.Sales,
			Revenue:    st.Revenue,
			Commission: st.Commission,
		})
		report.Total = report.Total.Add(st.Commission)
	}
	return report, nil
}

const dateLayout = "2006-01-02"

// parseRange reads a half-open [from, to) day range in UTC.
func parseRange(rng dto.RangeFilter) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, rng.From)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("from", "expected YYYY-MM-DD")
	}
	to, err := time.Parse(dateLayout, rng.To)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("to", "expected YYYY-MM-DD")
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, invalid("to", "must be after from")
	}
	return from, to, nil
}
