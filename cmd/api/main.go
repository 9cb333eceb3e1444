package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/bikarpharma/suivi-stock/internal/application/auth"
	"github.com/bikarpharma/suivi-stock/internal/application/catalog"
	appcosting "github.com/bikarpharma/suivi-stock/internal/application/costing"
	"github.com/bikarpharma/suivi-stock/internal/application/order"
	"github.com/bikarpharma/suivi-stock/internal/application/receipt"
	"github.com/bikarpharma/suivi-stock/internal/application/stock"
	"github.com/bikarpharma/suivi-stock/internal/infrastructure/postgres"
	httpRouter "github.com/bikarpharma/suivi-stock/internal/interfaces/http"
	"github.com/bikarpharma/suivi-stock/pkg/config"
	"github.com/bikarpharma/suivi-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("chargement de la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	componentRepo := postgres.NewComponentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	bomRepo := postgres.NewBomRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	balanceRepo := postgres.NewStockBalanceRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	snapshotRepo := postgres.NewCostSnapshotRepository(pool)
	ofRepo := postgres.NewManufacturingOrderRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	invoiceRepo := postgres.NewPurchaseInvoiceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := stock.NewUseCase(txRunner, movementRepo, balanceRepo)
	receiptUC := receipt.NewUseCase(txRunner, componentRepo, invoiceRepo, locationRepo, balanceRepo, snapshotRepo)
	orderUC := order.NewUseCase(txRunner, ofRepo, productRepo, locationRepo)
	costingUC := appcosting.NewUseCase(productRepo, componentRepo, bomRepo, snapshotRepo, ofRepo)
	componentUC := catalog.NewComponentUseCase(componentRepo)
	productUC := catalog.NewProductUseCase(productRepo, bomRepo, componentRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo, invoiceRepo)
	locationUC := catalog.NewLocationUseCase(locationRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
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

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ComponentUC:  componentUC,
		ProductUC:    productUC,
		SupplierUC:   supplierUC,
		LocationUC:   locationUC,
		StockUC:      stockUC,
		ReceiptUC:    receiptUC,
		OrderUC:      orderUC,
		CostingUC:    costingUC,
		LocationRepo: locationRepo,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP arrêté")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
