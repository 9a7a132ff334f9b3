package service

import (
	"context"
	"sort"

	"nailpos/internal/dto"
	"nailpos/internal/repository"
)

// Low-stock item kinds.
const (
	StockKindChemical   = "chemical"
	StockKindConsumable = "consumable"
)

type InventoryService interface {
	// Alerts lists the tenant's active items under their threshold.
	Alerts(ctx context.Context, tenantID string) (*dto.LowStockResponse, error)
	// ScanAll groups low-stock items of every tenant, for the periodic alert job.
	ScanAll(ctx context.Context) (map[string][]dto.LowStockItem, error)
}

type inventoryService struct {
	chemicals   repository.ChemicalRepository
	consumables repository.ConsumableRepository
}

func NewInventoryService(chemicals repository.ChemicalRepository, consumables repository.ConsumableRepository) InventoryService {
	return &inventoryService{chemicals: chemicals, consumables: consumables}
}

func (s *inventoryService) lowStock(ctx context.Context, tenantID string) (map[string][]dto.LowStockItem, error) {
	chems, err := s.chemicals.LowStock(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	cons, err := s.consumables.LowStock(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	byTenant := map[string][]dto.LowStockItem{}
	for _, p := range chems {
		byTenant[p.TenantID] = append(byTenant[p.TenantID], dto.LowStockItem{
			Kind: StockKindChemical, ID: p.ID.String(), Name: p.Name, Stock: p.Stock, Threshold: p.MinStock,
		})
	}
	for _, c := range cons {
		byTenant[c.TenantID] = append(byTenant[c.TenantID], dto.LowStockItem{
			Kind: StockKindConsumable, ID: c.ID.String(), Name: c.Name, Stock: c.StockQuantity, Threshold: c.MinStockAlert,
		})
	}
	for _, items := range byTenant {
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Kind != items[j].Kind {
				return items[i].Kind < items[j].Kind
			}
			return items[i].Name < items[j].Name
		})
	}
	return byTenant, nil
}

func (s *inventoryService) Alerts(ctx context.Context, tenantID string) (*dto.LowStockResponse, error) {
	byTenant, err := s.lowStock(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	items := byTenant[tenantID]
	if items == nil {
		items = []dto.LowStockItem{}
	}
	return &dto.LowStockResponse{Items: items}, nil
}

func (s *inventoryService) ScanAll(ctx context.Context) (map[string][]dto.LowStockItem, error) {
	return s.lowStock(ctx, "")
}
