package router

import (
	"time"

	"nailpos/internal/config"
	"nailpos/internal/handler"
	"nailpos/internal/infra"
	"nailpos/internal/ledger"
	"nailpos/internal/middleware"
	"nailpos/internal/model"
	"nailpos/internal/repository"
	"nailpos/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the long-lived pieces cmd/server also drives (session sweeper,
// stock scanner, mail worker).
type Deps struct {
	Notifier  *infra.Notifier
	Sessions  *ledger.Sessions
	Inventory service.InventoryService
	MailCB    *infra.CircuitBreaker
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, deps Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	chemicalRepo := repository.NewChemicalRepository(db)
	consumableRepo := repository.NewConsumableRepository(db)
	catalogRepo := repository.NewCatalogServiceRepository(db)
	legacyRepo := repository.NewLegacyRecipeRepository(db)
	extraRepo := repository.NewExtraRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	clientRepo := repository.NewClientRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	var pub service.Publisher
	if deps.Notifier != nil {
		pub = deps.Notifier
	}
	chemicalSvc := service.NewChemicalService(chemicalRepo, pub)
	consumableSvc := service.NewConsumableService(consumableRepo, pub)
	catalogSvc := service.NewCatalogService(catalogRepo, chemicalRepo, consumableRepo, legacyRepo, pub)
	extraSvc := service.NewExtraService(extraRepo, pub)
	staffSvc := service.NewStaffService(staffRepo, pub)
	clientSvc := service.NewClientService(clientRepo, pub)
	saleSvc := service.NewSaleService(saleRepo, pub)
	analyticsSvc := service.NewAnalyticsService(saleRepo)
	ledgerSvc := service.NewLedgerService(deps.Sessions)

	inventorySvc := deps.Inventory
	if inventorySvc == nil {
		inventorySvc = service.NewInventoryService(chemicalRepo, consumableRepo)
	}

	// ── Handlers ─────────────────────────────────────────────────────────────
	chemicalsH := handler.NewChemicalsHandler(chemicalSvc)
	consumablesH := handler.NewConsumablesHandler(consumableSvc)
	servicesH := handler.NewServicesHandler(catalogSvc)
	extrasH := handler.NewExtrasHandler(extraSvc)
	staffH := handler.NewStaffHandler(staffSvc)
	clientsH := handler.NewClientsHandler(clientSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	ledgerH := handler.NewLedgerHandler(ledgerSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, deps.MailCB))

	anyRole := middleware.RequireRole(model.RoleOwner, model.RoleAdmin, model.RoleStaff)
	managers := middleware.RequireRole(model.RoleOwner, model.RoleAdmin)
	ownerOnly := middleware.RequireRole(model.RoleOwner)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		chem := v1.Group("/chemicals")
		{
			chem.GET("", anyRole, chemicalsH.List)
			chem.GET("/:id", anyRole, chemicalsH.Get)
			chem.POST("", managers, chemicalsH.Create)
			chem.PUT("/:id", managers, chemicalsH.Update)
			chem.PATCH("/:id/active", managers, chemicalsH.SetActive)
			chem.DELETE("/:id", ownerOnly, chemicalsH.Delete)
		}

		cons := v1.Group("/consumables")
		{
			cons.GET("", anyRole, consumablesH.List)
			cons.GET("/:id", anyRole, consumablesH.Get)
			cons.POST("", managers, consumablesH.Create)
			cons.PUT("/:id", managers, consumablesH.Update)
			cons.PATCH("/:id/active", managers, consumablesH.SetActive)
			cons.DELETE("/:id", ownerOnly, consumablesH.Delete)
		}

		extras := v1.Group("/extras")
		{
			extras.GET("", anyRole, extrasH.List)
			extras.GET("/:id", anyRole, extrasH.Get)
			extras.POST("", managers, extrasH.Create)
			extras.PUT("/:id", managers, extrasH.Update)
			extras.DELETE("/:id", ownerOnly, extrasH.Delete)
		}

		svcs := v1.Group("/services")
		{
			svcs.GET("", anyRole, servicesH.List)
			svcs.GET("/:id", anyRole, servicesH.Get)
			svcs.GET("/:id/cost", anyRole, servicesH.Cost)
			svcs.GET("/:id/recipe", anyRole, servicesH.Recipe)
			svcs.POST("", managers, servicesH.Create)
			svcs.PUT("/:id", managers, servicesH.Update)
			svcs.PATCH("/:id/active", managers, servicesH.SetActive)
			svcs.PUT("/:id/recipe", managers, servicesH.SetRecipe)
			svcs.DELETE("/:id/recipe", managers, servicesH.ClearRecipe)
			svcs.DELETE("/:id", ownerOnly, servicesH.Delete)
		}

		staff := v1.Group("/staff")
		{
			staff.GET("", anyRole, staffH.List)
			staff.GET("/:id", anyRole, staffH.Get)
			staff.POST("/:id/verify-pin", anyRole, staffH.VerifyPIN)
			staff.POST("", managers, staffH.Create)
			staff.PUT("/:id", managers, staffH.Update)
			staff.PATCH("/:id/active", managers, staffH.SetActive)
			staff.DELETE("/:id", ownerOnly, staffH.Delete)
		}

		clients := v1.Group("/clients")
		{
			clients.GET("", anyRole, clientsH.List)
			clients.GET("/:id", anyRole, clientsH.Get)
			clients.POST("", managers, clientsH.Create)
			clients.PUT("/:id", managers, clientsH.Update)
			clients.DELETE("/:id", ownerOnly, clientsH.Delete)
		}

		sales := v1.Group("/sales")
		{
			sales.GET("", anyRole, salesH.Page)
			sales.PATCH("/:id/cost", managers, salesH.UpdateCost)
			sales.DELETE("/:id", managers, salesH.SoftDelete)
			sales.POST("/:id/restore", managers, salesH.Restore)
			sales.DELETE("/:id/permanent", ownerOnly, salesH.PermanentDelete)
		}

		led := v1.Group("/ledger/sessions", anyRole)
		{
			led.POST("", ledgerH.Open)
			led.GET("/:id", ledgerH.Get)
			led.POST("/:id/more", ledgerH.More)
			led.GET("/:id/stream", ledgerH.Stream)
			led.DELETE("/:id", ledgerH.Close)
		}

		reports := v1.Group("", managers)
		{
			reports.GET("/analytics/summary", analyticsH.Summary)
			reports.GET("/analytics/commissions", salesH.Commissions)
			reports.GET("/inventory/alerts", inventoryH.Alerts)
		}
	}

	// Swagger UI, outside production only
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
