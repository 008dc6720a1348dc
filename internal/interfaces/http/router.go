package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dukapos/pos-api/internal/application/auth"
	"github.com/dukapos/pos-api/internal/application/catalog"
	"github.com/dukapos/pos-api/internal/application/customers"
	"github.com/dukapos/pos-api/internal/application/ledger"
	"github.com/dukapos/pos-api/internal/application/sales"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	CreateSale *sales.CreateSaleUseCase
	UpdateSale *sales.UpdateSaleUseCase
	ItemUC     *catalog.ItemUseCase
	CustomerUC *customers.CustomerUseCase
	Aggregator *ledger.Aggregator
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(MetricsMiddleware())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protected)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/low-stock", itemHandler.ListLowStock)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Post("/:id/restock", itemHandler.Restock)
	items.Get("/:id/transactions", itemHandler.ListTransactions)

	// Customers (protected)
	custGroup := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	custGroup.Post("/", customerHandler.Create)
	custGroup.Get("/", customerHandler.List)
	custGroup.Get("/:id", customerHandler.GetByID)
	custGroup.Get("/:id/transactions", customerHandler.ListTransactions)

	// Sales (protected)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.UpdateSale)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Delete("/:id", saleHandler.Delete)

	// Reports (protected)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Aggregator)
	reports.Get("/profit-loss", reportHandler.ProfitLoss)
	reports.Get("/cash-flow", reportHandler.CashFlow)
	reports.Get("/valuation", reportHandler.Valuation)
	reports.Get("/customer-balances", reportHandler.CustomerBalances)
}
