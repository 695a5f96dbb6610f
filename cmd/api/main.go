package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"userextra/docs"
	"userextra/internal/client"
	"userextra/internal/config"
	"userextra/internal/database"
	"userextra/internal/database/migration"
	handlers "userextra/internal/http/handler"
	"userextra/internal/http/middleware"
	"userextra/internal/logging"
	"userextra/internal/otel"
	"userextra/internal/repository/postgres"
	"userextra/internal/service"
	"userextra/internal/storage"
	"userextra/internal/store"
	"userextra/internal/view"
	"userextra/internal/web"
)

// @title UserExtra API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logging.Component(logger, "tracing"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize tracing")
	}
	defer shutdownTracing(context.Background())

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logging.Component(logger, "migration"), cfg.Database.Host); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	// Object storage for the front/back images (MinIO-compatible)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	repo := postgres.NewUserExtraPostgres(db)
	svc := service.NewUserExtraService(objStore, repo, cfg.MinIO.PresignExpiry())

	metrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to register metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(metrics.Handler())

	handlers.RegisterRoutes(app, db, svc)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// The entity screens read through the REST API, by default the one served above.
	apiClient, err := client.New(cfg.UI.APIBaseURL, cfg.UI.APITimeout())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build api client")
	}
	storeLog := logging.Component(logger, "store")
	uiStores := func() view.Store { return store.New(apiClient, storeLog) }
	ui, err := web.New(uiStores, view.Paths{Base: cfg.UI.BasePath, API: handlers.APIPrefix}, logging.Component(logger, "web"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load ui templates")
	}
	ui.Register(app)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		if err := app.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("ui", cfg.UI.BasePath).Msg("server starting")
	if err := app.Listen(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
