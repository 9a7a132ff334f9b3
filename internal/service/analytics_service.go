package service

import (
	"context"

	"nailpos/internal/analytics"
	"nailpos/internal/dto"
	"nailpos/internal/repository"
)

type AnalyticsService interface {
	Summary(ctx context.Context, tenantID string, rng dto.RangeFilter) (*dto.AnalyticsSummary, error)
}

type analyticsService struct {
	sales repository.SaleRepository
}

func NewAnalyticsService(sales repository.SaleRepository) AnalyticsService {
	return &analyticsService{sales: sales}
}

func (s *analyticsService) Summary(ctx context.Context, tenantID string, rng dto.RangeFilter) (*dto.AnalyticsSummary, error) {
	from, to, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	rows, err := s.sales.Range(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	sum := analytics.Summarize(rows, nil)

	out := &dto.AnalyticsSummary{
		From:         rng.From,
		To:           rng.To,
		Sales:        sum.Totals.Sales,
		Revenue:      sum.Totals.Revenue,
		MeanTicket:   sum.Totals.MeanTicket,
		MedianTicket: sum.Totals.MedianTicket,
		ByWeekday:    make([]dto.WeekdayRevenue, 0, len(sum.ByWeekday)),
		Staff:        make([]dto.StaffRanking, 0, len(sum.Staff)),
		Services:     make([]dto.ServiceRanking, 0, len(sum.Services)),
	}
	for _, w := range sum.ByWeekday {
		out.ByWeekday = append(out.ByWeekday, dto.WeekdayRevenue{Weekday: w.Weekday.String(), Sales: w.Sales, Revenue: w.Revenue})
	}
	for _, st := range sum.Staff {
		out.Staff = append(out.Staff, dto.StaffRanking{UserID: st.UserID, Name: st.Name, Sales: st.Sales, Revenue: st.Revenue})
	}
	for _, sv := range sum.Services {
		out.Services = append(out.Services, dto.ServiceRanking{ServiceID: sv.ServiceID, Name: sv.Name, Count: sv.Count, Revenue: sv.Revenue})
	}
	if len(out.Staff) > 0 {
		top := out.Staff[0]
		out.TopStaff = &top
	}
	if len(out.Services) > 0 {
		top := out.Services[0]
		out.TopService = &top
	}
	return out, nil
}
