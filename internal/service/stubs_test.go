package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"nailpos/internal/dto"
	"nailpos/internal/history"
	"nailpos/internal/model"
	"nailpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Publisher ────────────────────────────────────────────────────────────────

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, tenantID, collection string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, tenantID+":"+collection)
	return nil
}

func (p *recordingPublisher) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

// ── ChemicalRepository ───────────────────────────────────────────────────────

type stubChemicalRepo struct {
	rows map[uuid.UUID]*model.ChemicalProduct
}

var _ repository.ChemicalRepository = (*stubChemicalRepo)(nil)

func newStubChemicalRepo(rows ...model.ChemicalProduct) *stubChemicalRepo {
	r := &stubChemicalRepo{rows: map[uuid.UUID]*model.ChemicalProduct{}}
	for i := range rows {
		p := rows[i]
		r.rows[p.ID] = &p
	}
	return r
}

func (r *stubChemicalRepo) Create(_ context.Context, p *model.ChemicalProduct) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.RecomputeCost()
	r.rows[p.ID] = p
	return nil
}

func (r *stubChemicalRepo) FindByID(_ context.Context, tenantID string, id uuid.UUID) (*model.ChemicalProduct, error) {
	p, ok := r.rows[id]
	if !ok || p.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubChemicalRepo) List(ctx context.Context, tenantID string, _ dto.ListFilter) ([]model.ChemicalProduct, int64, error) {
	all, _ := r.All(ctx, tenantID)
	return all, int64(len(all)), nil
}

func (r *stubChemicalRepo) All(_ context.Context, tenantID string) ([]model.ChemicalProduct, error) {
	var out []model.ChemicalProduct
	for _, p := range r.rows {
		if p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubChemicalRepo) Update(_ context.Context, p *model.ChemicalProduct) error {
	p.RecomputeCost()
	cp := *p
	r.rows[p.ID] = &cp
	return nil
}

func (r *stubChemicalRepo) SetActive(_ context.Context, tenantID string, id uuid.UUID, active bool) error {
	p, ok := r.rows[id]
	if !ok || p.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	p.Active = active
	return nil
}

func (r *stubChemicalRepo) Delete(_ context.Context, tenantID string, id uuid.UUID) error {
	p, ok := r.rows[id]
	if !ok || p.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *stubChemicalRepo) LowStock(_ context.Context, tenantID string) ([]model.ChemicalProduct, error) {
	var out []model.ChemicalProduct
	for _, p := range r.rows {
		if (tenantID == "" || p.TenantID == tenantID) && p.LowStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

// ── ConsumableRepository ─────────────────────────────────────────────────────

type stubConsumableRepo struct {
	rows map[uuid.UUID]*model.Consumable
}

var _ repository.ConsumableRepository = (*stubConsumableRepo)(nil)

func newStubConsumableRepo(rows ...model.Consumable) *stubConsumableRepo {
	r := &stubConsumableRepo{rows: map[uuid.UUID]*model.Consumable{}}
	for i := range rows {
		c := rows[i]
		r.rows[c.ID] = &c
	}
	return r
}

func (r *stubConsumableRepo) Create(_ context.Context, c *model.Consumable) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.rows[c.ID] = c
	return nil
}

func (r *stubConsumableRepo) FindByID(_ context.Context, tenantID string, id uuid.UUID) (*model.Consumable, error) {
	c, ok := r.rows[id]
	if !ok || c.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubConsumableRepo) List(ctx context.Context, tenantID string, _ dto.ListFilter) ([]model.Consumable, int64, error) {
	all, _ := r.All(ctx, tenantID)
	return all, int64(len(all)), nil
}

func (r *stubConsumableRepo) All(_ context.Context, tenantID string) ([]model.Consumable, error) {
	var out []model.Consumable
	for _, c := range r.rows {
		if c.TenantID == tenantID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubConsumableRepo) Update(_ context.Context, c *model.Consumable) error {
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *stubConsumableRepo) SetActive(_ context.Context, tenantID string, id uuid.UUID, active bool) error {
	c, ok := r.rows[id]
	if !ok || c.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	c.Active = active
	return nil
}

func (r *stubConsumableRepo) Delete(_ context.Context, tenantID string, id uuid.UUID) error {
	c, ok := r.rows[id]
	if !ok || c.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *stubConsumableRepo) LowStock(_ context.Context, tenantID string) ([]model.Consumable, error) {
	var out []model.Consumable
	for _, c := range r.rows {
		if (tenantID == "" || c.TenantID == tenantID) && c.LowStock() {
			out = append(out, *c)
		}
	}
	return out, nil
}

// ── CatalogServiceRepository ─────────────────────────────────────────────────

type stubServiceRepo struct {
	rows map[uuid.UUID]*model.CatalogService
}

var _ repository.CatalogServiceRepository = (*stubServiceRepo)(nil)

func newStubServiceRepo(rows ...model.CatalogService) *stubServiceRepo {
	r := &stubServiceRepo{rows: map[uuid.UUID]*model.CatalogService{}}
	for i := range rows {
		s := rows[i]
		r.rows[s.ID] = &s
	}
	return r
}

func (r *stubServiceRepo) Create(_ context.Context, s *model.CatalogService) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, tenantID string, id uuid.UUID) (*model.CatalogService, error) {
	s, ok := r.rows[id]
	if !ok || s.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubServiceRepo) List(_ context.Context, tenantID string, _ dto.ListFilter) ([]model.CatalogService, int64, error) {
	var out []model.CatalogService
	for _, s := range r.rows {
		if s.TenantID == tenantID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

func (r *stubServiceRepo) Update(_ context.Context, s *model.CatalogService) error {
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *stubServiceRepo) SetActive(_ context.Context, tenantID string, id uuid.UUID, active bool) error {
	s, ok := r.rows[id]
	if !ok || s.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	s.Active = active
	return nil
}

func (r *stubServiceRepo) Delete(_ context.Context, tenantID string, id uuid.UUID) error {
	s, ok := r.rows[id]
	if !ok || s.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

// ── LegacyRecipeRepository ───────────────────────────────────────────────────

type stubLegacyRepo struct {
	materials []model.MaterialRecipe
	services  []model.ServiceRecipe
}

var _ repository.LegacyRecipeRepository = (*stubLegacyRepo)(nil)

func (r *stubLegacyRepo) MaterialRecipes(_ context.Context, tenantID string) ([]model.MaterialRecipe, error) {
	var out []model.MaterialRecipe
	for _, m := range r.materials {
		if m.TenantID == tenantID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubLegacyRepo) ServiceRecipes(_ context.Context, tenantID string) ([]model.ServiceRecipe, error) {
	var out []model.ServiceRecipe
	for _, s := range r.services {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

// ── StaffRepository ──────────────────────────────────────────────────────────

type stubStaffRepo struct{ rows map[uuid.UUID]*model.Staff }

var _ repository.StaffRepository = (*stubStaffRepo)(nil)

func newStubStaffRepo() *stubStaffRepo {
	return &stubStaffRepo{rows: map[uuid.UUID]*model.Staff{}}
}

func (r *stubStaffRepo) Create(_ context.Context, s *model.Staff) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *stubStaffRepo) FindByID(_ context.Context, tenantID string, id uuid.UUID) (*model.Staff, error) {
	s, ok := r.rows[id]
	if !ok || s.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubStaffRepo) List(_ context.Context, tenantID string, _ dto.ListFilter) ([]model.Staff, int64, error) {
	var out []model.Staff
	for _, s := range r.rows {
		if s.TenantID == tenantID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubStaffRepo) Update(_ context.Context, s *model.Staff) error {
	cp := *s
	r.rows[s.ID] = &cp
	return nil
}

func (r *stubStaffRepo) SetActive(_ context.Context, tenantID string, id uuid.UUID, active bool) error {
	s, ok := r.rows[id]
	if !ok || s.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	s.Active = active
	return nil
}

func (r *stubStaffRepo) Delete(_ context.Context, tenantID string, id uuid.UUID) error {
	s, ok := r.rows[id]
	if !ok || s.TenantID != tenantID {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

// ── SaleRepository ───────────────────────────────────────────────────────────

type stubSaleRepo struct {
	mu   sync.Mutex
	rows []model.Sale
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

func (r *stubSaleRepo) Create(_ context.Context, s *model.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.rows = append(r.rows, *s)
	return nil
}

func (r *stubSaleRepo) find(tenantID string, id uuid.UUID) *model.Sale {
	for i := range r.rows {
		if r.rows[i].ID == id && r.rows[i].TenantID == tenantID {
			return &r.rows[i]
		}
	}
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, tenantID string, id uuid.UUID) (*model.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.find(tenantID, id)
	if s == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSaleRepo) sorted(tenantID string) []model.Sale {
	var out []model.Sale
	for _, s := range r.rows {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return repository.SaleCursor(out[j]).Before(repository.SaleCursor(out[i]))
	})
	return out
}

func (r *stubSaleRepo) Latest(_ context.Context, tenantID string, limit int) ([]model.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(tenantID)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubSaleRepo) PageBefore(_ context.Context, tenantID string, cursor history.Cursor, limit int) ([]model.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Sale
	for _, s := range r.sorted(tenantID) {
		if repository.SaleCursor(s).Before(cursor) {
			out = append(out, s)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *stubSaleRepo) Range(_ context.Context, tenantID string, from, to time.Time) ([]model.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Sale
	for _, s := range r.sorted(tenantID) {
		if !s.Deleted && !s.OccurredAt.Before(from) && s.OccurredAt.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) UpdateCost(_ context.Context, tenantID string, id uuid.UUID, cost decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.find(tenantID, id)
	if s == nil {
		return gorm.ErrRecordNotFound
	}
	s.Cost = cost
	return nil
}

func (r *stubSaleRepo) SetDeleted(_ context.Context, tenantID string, id uuid.UUID, deleted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.find(tenantID, id)
	if s == nil {
		return gorm.ErrRecordNotFound
	}
	s.Deleted = deleted
	return nil
}

func (r *stubSaleRepo) Delete(_ context.Context, tenantID string, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id && r.rows[i].TenantID == tenantID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
