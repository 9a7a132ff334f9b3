// seedcatalog resets one tenant and fills it with a demo catalog, a legacy
// recipe and a month of sales.
// Usage: go run ./cmd/seedcatalog -tenant demo-salon
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"nailpos/internal/config"
	"nailpos/internal/infra"
	"nailpos/internal/model"
	"nailpos/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	tenant := flag.String("tenant", "demo-salon", "tenant id to reset and seed")
	days := flag.Int("days", 30, "days of sales history")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect error")
	}

	ctx := context.Background()
	var sales int
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := reset(tx, *tenant); err != nil {
			return err
		}
		var err error
		sales, err = seed(tx, *tenant, *days, time.Now().UTC())
		return err
	})
	if err != nil {
		log.Fatal().Err(err).Str("tenant", *tenant).Msg("seed failed")
	}
	fmt.Printf("tenant %q seeded with %d sales\n", *tenant, sales)
}

func reset(tx *gorm.DB, tenant string) error {
	for _, m := range infra.Models() {
		if err := tx.Where("tenant_id = ?", tenant).Delete(m).Error; err != nil {
			return fmt.Errorf("reset %T: %w", m, err)
		}
	}
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func seed(tx *gorm.DB, tenant string, days int, now time.Time) (int, error) {
	base := &model.ChemicalProduct{TenantID: tenant, Name: "Base Coat", Quantity: dec("15"), Unit: "ml", PurchasePrice: dec("12"), Stock: 4, MinStock: 2, Active: true}
	gel := &model.ChemicalProduct{TenantID: tenant, Name: "Gel Polish Red", Quantity: dec("10"), Unit: "ml", PurchasePrice: dec("18.50"), Stock: 1, MinStock: 3, Active: true}
	top := &model.ChemicalProduct{TenantID: tenant, Name: "Top Coat", Quantity: dec("15"), Unit: "ml", PurchasePrice: dec("14"), Stock: 6, MinStock: 2, Active: true}
	for _, p := range []*model.ChemicalProduct{base, gel, top} {
		if err := tx.Create(p).Error; err != nil {
			return 0, err
		}
	}

	files := &model.Consumable{TenantID: tenant, Name: "Nail File", Unit: "un", PurchasePrice: decPtr("9"), PackageSize: decPtr("50"), UnitCost: decPtr("0.18"), StockQuantity: 40, MinStockAlert: 20, Active: true}
	cotton := &model.Consumable{TenantID: tenant, Name: "Cotton Pad", Unit: "un", PurchasePrice: decPtr("4"), PackageSize: decPtr("100"), UnitCost: decPtr("0.04"), StockQuantity: 5, MinStockAlert: 30, Active: true}
	foil := &model.Consumable{TenantID: tenant, Name: "Remover Foil", Unit: "un", StockQuantity: 100, MinStockAlert: 10, Active: true} // no unit cost yet
	for _, c := range []*model.Consumable{files, cotton, foil} {
		if err := tx.Create(c).Error; err != nil {
			return 0, err
		}
	}

	gelMani := &model.CatalogService{
		TenantID: tenant, Name: "Gel Manicure", Category: model.CategoryManicure, Price: dec("25"), Active: true,
		ManualMaterials: model.SetRecipe(
			model.MaterialLine{MaterialID: base.ID.String(), Qty: dec("0.5")},
			model.MaterialLine{MaterialID: gel.ID.String(), Qty: dec("1")},
			model.MaterialLine{MaterialID: top.ID.String(), Qty: dec("0.5")},
		),
		ManualConsumables: model.SetRecipe(
			model.ConsumableLine{ConsumableID: files.ID.String(), Qty: dec("1")},
			model.ConsumableLine{ConsumableID: cotton.ID.String(), Qty: dec("2")},
		),
	}
	// No manual recipe: costed from the legacy tables below.
	pedi := &model.CatalogService{TenantID: tenant, Name: "Classic Pedicure", Category: model.CategoryPedicure, Price: dec("30"), Active: true}
	for _, s := range []*model.CatalogService{gelMani, pedi} {
		if err := tx.Create(s).Error; err != nil {
			return 0, err
		}
	}

	legacy := []interface{}{
		&model.MaterialRecipe{ID: "legacy-pedi", TenantID: tenant, ServiceName: "classic pedicure", ChemicalRefs: datatypes.JSONSlice[string]{"base_coat", "top coat"}},
		&model.ServiceRecipe{ID: "Classic Pedicure", TenantID: tenant, Items: datatypes.JSONSlice[model.ConsumableLine]{
			{ConsumableID: files.ID.String(), Qty: dec("2")},
			{ConsumableID: cotton.ID.String(), Qty: dec("4")},
		}},
	}
	for _, r := range legacy {
		if err := tx.Create(r).Error; err != nil {
			return 0, err
		}
	}

	if err := tx.Create(&model.Extra{TenantID: tenant, Name: "Nail Art", Price: dec("5"), Active: true}).Error; err != nil {
		return 0, err
	}

	staff := make([]*model.Staff, 0, 3)
	for i, s := range []struct {
		name, role, pct, pin string
	}{
		{"Vale", model.RoleOwner, "0", "1234"},
		{"Caro", model.RoleAdmin, "40", "2345"},
		{"Meli", model.RoleStaff, "35", "3456"},
	} {
		hash, err := service.HashPIN(s.pin)
		if err != nil {
			return 0, fmt.Errorf("staff %d: %w", i, err)
		}
		m := &model.Staff{TenantID: tenant, Name: s.name, Role: s.role, CommissionPct: dec(s.pct), PinHash: hash, Active: true}
		if err := tx.Create(m).Error; err != nil {
			return 0, err
		}
		staff = append(staff, m)
	}

	// Fixed seed so repeated runs give the same history.
	rng := rand.New(rand.NewSource(42))
	services := []*model.CatalogService{gelMani, pedi}
	methods := []string{"cash", "card", "transfer"}
	count := 0
	for d := days; d >= 0; d-- {
		day := now.AddDate(0, 0, -d).Truncate(24 * time.Hour)
		for n := rng.Intn(5); n > 0; n-- {
			svc := services[rng.Intn(len(services))]
			who := staff[rng.Intn(len(staff))]
			ts := day.Add(time.Duration(9+rng.Intn(10))*time.Hour + time.Duration(rng.Intn(60))*time.Minute)
			sale := &model.Sale{
				TenantID:      tenant,
				Date:          ts.Format("2006-01-02"),
				Timestamp:     &ts,
				ClientName:    fmt.Sprintf("Client %d", rng.Intn(40)+1),
				Items:         datatypes.JSONSlice[model.SaleItem]{{ServiceID: svc.ID.String(), ServiceName: svc.Name, ServicePrice: svc.Price}},
				Cost:          svc.Price,
				UserID:        who.ID.String(),
				UserName:      who.Name,
				PaymentMethod: methods[rng.Intn(len(methods))],
				CommissionPct: who.CommissionPct,
			}
			if err := tx.Create(sale).Error; err != nil {
				return 0, err
			}
			count++
		}
	}

	// One sale from an old import: date only, no timestamp.
	old := &model.Sale{
		TenantID: tenant, Date: now.AddDate(0, 0, -days-1).Format("2006-01-02"),
		ClientName: "Walk-in", Cost: dec("25"), UserID: staff[2].ID.String(), UserName: staff[2].Name,
		PaymentMethod: "cash", CommissionPct: staff[2].CommissionPct,
		Items: datatypes.JSONSlice[model.SaleItem]{{ServiceID: gelMani.ID.String(), ServiceName: gelMani.Name, ServicePrice: gelMani.Price}},
	}
	if err := tx.Create(old).Error; err != nil {
		return 0, err
	}
	return count + 1, nil
}
