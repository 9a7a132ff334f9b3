package infra

import (
	"fmt"

	"nailpos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the Postgres connection pool and brings the schema up to
// date: AutoMigrate for tables and columns, then the Postgres-only indexes
// GORM tags cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&model.ChemicalProduct{},
		&model.Consumable{},
		&model.CatalogService{},
		&model.Extra{},
		&model.Staff{},
		&model.Client{},
		&model.MaterialRecipe{},
		&model.ServiceRecipe{},
		&model.Sale{},
	}
}

// RunMigrations migrates db. It works on any dialect; the extra indexes are
// only applied on Postgres.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM tags cannot express.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// full keyset index: (tenant, occurred_at, id) backs Latest and PageBefore
		{"ledger keyset index", `
CREATE INDEX IF NOT EXISTS idx_sales_keyset
    ON sales (tenant_id, occurred_at DESC, id DESC)`},
		// analytics and commission reports only read live rows
		{"live sales partial index", `
CREATE INDEX IF NOT EXISTS idx_sales_live_range
    ON sales (tenant_id, occurred_at)
    WHERE deleted = false`},
		// low-stock cron scans every tenant
		{"chemical low stock partial index", `
CREATE INDEX IF NOT EXISTS idx_chemical_products_low_stock
    ON chemical_products (tenant_id)
    WHERE active = true AND stock < min_stock`},
		{"consumable low stock partial index", `
CREATE INDEX IF NOT EXISTS idx_consumables_low_stock
    ON consumables (tenant_id)
    WHERE active = true AND stock_quantity < min_stock_alert`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
