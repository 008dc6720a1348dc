package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dukapos/pos-api/internal/application/auth"
	"github.com/dukapos/pos-api/internal/application/catalog"
	"github.com/dukapos/pos-api/internal/application/customers"
	"github.com/dukapos/pos-api/internal/application/ledger"
	"github.com/dukapos/pos-api/internal/application/sales"
	"github.com/dukapos/pos-api/internal/domain/pricing"
	"github.com/dukapos/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/dukapos/pos-api/internal/interfaces/http"
	"github.com/dukapos/pos-api/pkg/config"
	"github.com/dukapos/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	invTxRepo := postgres.NewInventoryTransactionRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	custTxRepo := postgres.NewCustomerTransactionRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	policy := pricing.PolicyReject
	if cfg.Sales.WholeUnitPolicy == config.WholeUnitRoundDown {
		policy = pricing.PolicyRoundDown
	}

	aggregator := ledger.NewAggregator(reportRepo, customerRepo, custTxRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, saleRepo, customerRepo, itemRepo, policy)
	updateSaleUC := sales.NewUpdateSaleUseCase(txRunner, policy)
	itemUC := catalog.NewItemUseCase(itemRepo, invTxRepo, txRunner)
	customerUC := customers.NewCustomerUseCase(customerRepo, custTxRepo, aggregator)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Duka POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateSale: createSaleUC,
		UpdateSale: updateSaleUC,
		ItemUC:     itemUC,
		CustomerUC: customerUC,
		Aggregator: aggregator,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
