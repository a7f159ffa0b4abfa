package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/stockmaster-api/internal/application/analytics"
	"github.com/jhoicas/stockmaster-api/internal/application/auth"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/application/ports"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/stockmaster-api/internal/infrastructure/pdf"
	infraredis "github.com/jhoicas/stockmaster-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/stockmaster-api/internal/interfaces/http"
	"github.com/jhoicas/stockmaster-api/pkg/config"
	"github.com/jhoicas/stockmaster-api/pkg/logger"
	"github.com/jhoicas/stockmaster-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	// Caché del dashboard: Redis si REDIS_URL está definido, si no deshabilitada.
	var cache ports.DashboardCache = ports.NopCache{}
	if cfg.Redis.Enabled() {
		client, err := infraredis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, dashboard sin caché")
		} else {
			defer client.Close()
			cache = infraredis.NewDashboardCache(client, cfg.Redis.CacheTTL)
		}
	}

	var reg *prometheus.Registry
	if cfg.App.MetricsEnabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	var ledgerMetrics *metrics.LedgerMetrics
	if reg != nil {
		ledgerMetrics = metrics.NewLedgerMetrics(reg)
	}

	threshold := cfg.Inventory.LowStockThreshold
	ledgerUC := inventory.NewLedgerUseCase(store.tx, store.products, store.locations, store.moves, cache, ledgerMetrics, log)
	adjustmentUC := inventory.NewAdjustmentUseCase(store.tx, store.products, store.locations, cache, ledgerMetrics, log)
	reconcileUC := inventory.NewReconcileUseCase(store.moves, store.stock, log)
	productUC := usecase.NewProductUseCase(store.products, store.stock, store.moves, cache, threshold, log)
	locationUC := usecase.NewLocationUseCase(store.locations)
	dashboardUC := appanalytics.NewDashboardUseCase(store.products, store.moves, cache, threshold, log)
	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: comprobante de movimiento hecho
	slipGenerator := infrapdf.NewMarotoSlipGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(log, ledgerMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockMaster API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.StorageDriver})
	})
	if reg != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		LocationUC:   locationUC,
		LedgerUC:     ledgerUC,
		AdjustmentUC: adjustmentUC,
		ReconcileUC:  reconcileUC,
		DashboardUC:  dashboardUC,
		SlipPDF:      slipGenerator,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
