// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"bizledger/internal/core/dbctx"
	"bizledger/internal/domain/catalogs/analytic"
	"bizledger/internal/domain/catalogs/budget"
	"bizledger/internal/domain/catalogs/contact"
	"bizledger/internal/domain/catalogs/product"
	"bizledger/internal/domain/documents/invoice"
	"bizledger/internal/domain/documents/purchaseorder"
	"bizledger/internal/domain/documents/salesorder"
	"bizledger/internal/domain/reports"
	"bizledger/internal/infrastructure/http/v1/handlers"
	"bizledger/internal/infrastructure/http/v1/middleware"
	"bizledger/internal/infrastructure/pdf"
	"bizledger/internal/infrastructure/storage/postgres"
	"bizledger/internal/infrastructure/storage/postgres/catalog_repo"
	"bizledger/internal/infrastructure/storage/postgres/document_repo"
	"bizledger/internal/infrastructure/storage/postgres/report_repo"
	"bizledger/pkg/logger"
	"bizledger/pkg/numerator"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// Numerator for document number generation
	Numerator *numerator.Service

	// CompanyName appears on rendered documents
	CompanyName string

	// IdempotencyEnabled enables idempotency middleware
	IdempotencyEnabled bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no database context required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		v1.Use(middleware.Database(cfg.Pool.Unwrap()))

		// Apply idempotency middleware for mutating operations
		if cfg.IdempotencyEnabled {
			v1.Use(idempotencyMiddleware(10 * time.Minute))
		}

		registerCatalogRoutes(v1, cfg)
		registerDocumentRoutes(v1, cfg)
		registerReportRoutes(v1, cfg)
	}

	return router
}

// idempotencyMiddleware creates idempotency middleware that uses the pool + TxManager from context.
func idempotencyMiddleware(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		pool := dbctx.MustGetPool(ctx)
		txm := postgres.MustGetTxManager(ctx)
		store := postgres.NewIdempotencyStoreFromRawPool(pool, txm, ttl)
		middleware.Idempotency(store)(c)
	}
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// Note: Repos and services are created once but TxManager is obtained from context per-request

	// --- CONTACTS ---
	{
		repo := catalog_repo.NewContactRepo()
		service := contact.NewService(repo, cfg.Numerator)
		handler := handlers.NewContactHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/contacts"), handler)
	}

	// --- PRODUCTS ---
	{
		repo := catalog_repo.NewProductRepo()
		service := product.NewService(repo, cfg.Numerator)
		handler := handlers.NewProductHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/products"), handler)
	}

	// --- ANALYTICAL ACCOUNTS ---
	{
		repo := catalog_repo.NewAnalyticRepo()
		service := analytic.NewService(repo, cfg.Numerator)
		handler := handlers.NewAnalyticHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/analytical-accounts"), handler)
	}

	// --- BUDGETS ---
	{
		repo := catalog_repo.NewBudgetRepo()
		service := budget.NewService(repo, cfg.Numerator)
		handler := handlers.NewBudgetHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/budgets"), handler)
	}
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	auditService, err := postgres.NewAuditService(postgres.NewTxManager(cfg.Pool))
	if err != nil {
		cfg.Logger.Warnw("audit service disabled", "error", err)
		auditService = nil
	}
	var auditor invoice.Auditor
	if auditService != nil {
		auditor = auditService
	}

	renderer := pdf.NewRenderer(cfg.CompanyName)

	salesOrderService := salesorder.NewService(document_repo.NewSalesOrderRepo(), cfg.Numerator, nil)
	purchaseOrderService := purchaseorder.NewService(document_repo.NewPurchaseOrderRepo(), cfg.Numerator, nil)
	contactService := contact.NewService(catalog_repo.NewContactRepo(), cfg.Numerator)

	// --- SALES ORDERS ---
	{
		handler := handlers.NewSalesOrderHandler(baseHandler, salesOrderService)
		handler.RegisterRoutes(rg.Group("/sales-orders"))
	}

	// --- PURCHASE ORDERS ---
	{
		handler := handlers.NewPurchaseOrderHandler(baseHandler, purchaseOrderService)
		handler.RegisterRoutes(rg.Group("/purchase-orders"))
	}

	// --- CUSTOMER INVOICES ---
	{
		repo := document_repo.NewInvoiceRepo()
		service := invoice.NewService(repo, salesOrderService, auditor, cfg.Numerator, nil)
		handler := handlers.NewInvoiceHandler(baseHandler, service, contactService, auditService, renderer)
		handler.RegisterRoutes(rg.Group("/customer-invoices"))
	}
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	reportService := reports.NewService(report_repo.NewReportRepo())
	reportHandler := handlers.NewReportsHandler(baseHandler, reportService)

	reportHandler.RegisterRoutes(rg.Group("/dashboard"))
}
