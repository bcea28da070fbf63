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
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/language"

	appanalytics "github.com/jhoicas/stock-analytics/internal/application/analytics"
	"github.com/jhoicas/stock-analytics/internal/application/auth"
	"github.com/jhoicas/stock-analytics/internal/application/inventory"
	"github.com/jhoicas/stock-analytics/internal/application/report"
	"github.com/jhoicas/stock-analytics/internal/application/usecase"
	"github.com/jhoicas/stock-analytics/internal/infrastructure/cache"
	infraexcel "github.com/jhoicas/stock-analytics/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/stock-analytics/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-analytics/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-analytics/internal/interfaces/http"
	"github.com/jhoicas/stock-analytics/pkg/config"
	"github.com/jhoicas/stock-analytics/pkg/logger"
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
		Msg("iniciando aplicación")

	loc, err := cfg.Analytics.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de analítica")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.RunMigrations {
		if err := postgres.RunMigrations(ctx, pool, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	// Caché de analítica: sin REDIS_ADDR el cliente queda nil y todo va directo al store.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se consultará el store en cada lectura")
		}
	}
	analyticsCache := cache.NewAnalyticsCache(redisClient, cfg.Analytics.CacheTTL(), log.Component("cache"))

	userRepo := postgres.NewUserRepository(pool)
	lineRepo := postgres.NewProductLineRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(lineRepo).WithCache(analyticsCache, log.Component("products"))
	recordMovementUC := inventory.NewRecordMovementUseCase(txRunner, movementRepo, analyticsCache, loc, log.Component("inventory"))
	replenishmentUC := inventory.NewReplenishmentUseCase(lineRepo, movementRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(movementRepo, lineRepo, analyticsCache, loc, log.Component("analytics"))
	dashboardUC := appanalytics.NewDashboardUseCase(movementRepo, loc, log.Component("dashboard"))

	// Reportes anuales: PDF con formato numérico es-CO y libro XLSX
	reportUC := report.NewReportUseCase(
		analyticsUC,
		infrapdf.NewMarotoReportGenerator(language.Spanish),
		infraexcel.NewYearlyWorkbook(),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    6 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	metrics := httpRouter.NewMetrics("stock_analytics")
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Analytics API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		ProductUC:      productUC,
		RecordMovement: recordMovementUC,
		Replenishment:  replenishmentUC,
		AnalyticsUC:    analyticsUC,
		DashboardUC:    dashboardUC,
		ReportUC:       reportUC,
		Location:       loc,
		JWTSecret:      cfg.JWT.Secret,
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
