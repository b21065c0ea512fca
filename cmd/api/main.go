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
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	appmilling "github.com/chamodh/ricemill-api/internal/application/milling"
	"github.com/chamodh/ricemill-api/internal/application/usecase"
	domainmilling "github.com/chamodh/ricemill-api/internal/domain/milling"
	"github.com/chamodh/ricemill-api/internal/infrastructure/postgres"
	httpRouter "github.com/chamodh/ricemill-api/internal/interfaces/http"
	"github.com/chamodh/ricemill-api/internal/jobs"
	"github.com/chamodh/ricemill-api/pkg/config"
	"github.com/chamodh/ricemill-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	purchaseRepo := postgres.NewPaddyPurchaseRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	baggedRepo := postgres.NewBaggedStockRepository(pool)
	totalsRepo := postgres.NewStockTotalsRepository(pool)
	inventoryRepo := postgres.NewProductInventoryRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	bagSizeRepo := postgres.NewBagSizeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	millDefaults := appmilling.MillDefaults{
		ByproductRates: map[string]decimal.Decimal{
			domainmilling.ProductHunuSahal:   decimal.NewFromFloat(cfg.Mill.HunuSahalRatePerKg),
			domainmilling.ProductKadunuSahal: decimal.NewFromFloat(cfg.Mill.KadunuSahalRatePerKg),
			domainmilling.ProductRicePolish:  decimal.NewFromFloat(cfg.Mill.RicePolishRatePerKg),
			domainmilling.ProductDahaiyya:    decimal.NewFromFloat(cfg.Mill.DahaiyyaRatePerKg),
		},
		ProfitPercentage: decimal.NewFromFloat(cfg.Mill.ProfitPercentage),
	}

	recordConversionUC := appmilling.NewRecordConversionUseCase(txRunner, batchRepo, purchaseRepo, employeeRepo, millDefaults)
	createBagsUC := appmilling.NewCreateBagsUseCase(txRunner, domainmilling.DefaultCodeRegistry())
	sellBagsUC := appmilling.NewSellBagsUseCase(txRunner)
	stockOverviewUC := appmilling.NewStockOverviewUseCase(txRunner, totalsRepo, inventoryRepo, baggedRepo)
	purchaseUC := usecase.NewPurchaseUseCase(purchaseRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo)
	settingsUC := usecase.NewSettingsUseCase(bagSizeRepo)

	var scheduler *cron.Cron
	if cfg.Jobs.Enabled {
		scheduler = cron.New()
		integrityJob := jobs.NewTotalsIntegrityJob(postgres.NewIntegrityReader(pool), log.Zerolog())
		if err := integrityJob.Register(scheduler, cfg.Jobs.TotalsIntegritySpec); err != nil {
			log.Fatal().Err(err).Msg("register totals integrity job")
		}
		scheduler.Start()
	}

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
		Title:    "Ricemill API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RecordConversion: recordConversionUC,
		CreateBags:       createBagsUC,
		SellBags:         sellBagsUC,
		StockOverview:    stockOverviewUC,
		PurchaseUC:       purchaseUC,
		EmployeeUC:       employeeUC,
		SettingsUC:       settingsUC,
		JWTSecret:        cfg.JWT.Secret,
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

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
