package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"clinicapi/docs"
	"clinicapi/internal/auth"
	"clinicapi/internal/config"
	"clinicapi/internal/database"
	"clinicapi/internal/database/migration"
	handlers "clinicapi/internal/http/handler"
	"clinicapi/internal/http/middleware"
	"clinicapi/internal/logger"
	"clinicapi/internal/metrics"
	"clinicapi/internal/otel"
	"clinicapi/internal/realtime"
	"clinicapi/internal/repository/sqlrepo"
	"clinicapi/internal/service"
	"clinicapi/internal/session"
	"clinicapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Clinic API
// @version 1.0
// @description Patient records, documents and mobile upload handoff.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	serveCommand := serveCmd()
	root := &cobra.Command{
		Use:           "clinicapi",
		Short:         "Clinic management API with mobile document upload",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Without a subcommand the server runs.
		RunE: serveCommand.RunE,
	}
	root.AddCommand(serveCommand, migrateCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			if err := serve(cmd.Context(), cfg, log); err != nil {
				log.Error().Err(err).Msg("server stopped with error")
				return err
			}
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema if it does not exist yet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				log.Error().Err(err).Msg("failed to connect to database")
				return err
			}
			defer db.Close()
			return migration.EnsureMigrated(cmd.Context(), db, cfg.Database.Driver, log)
		},
	}
}

// bootstrap loads configuration (.env auto-loaded if present) and builds the root logger.
func bootstrap() (*config.AppConfig, zerolog.Logger, error) {
	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.LogLevel, cfg.IsDev(), cfg.Location())
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return nil, log, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, log, nil
}

func serve(ctx context.Context, cfg *config.AppConfig, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Driver, log); err != nil {
		return err
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize document storage: %w", err)
	}

	registry := session.NewRegistry(cfg.Upload.SessionTTL, logger.Component(log, "session"))
	defer registry.Close()
	hub := realtime.NewHub(logger.Component(log, "realtime"))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	uploads, err := metrics.NewUpload(reg, metrics.Gauges{
		ActiveSessions:  registry.Len,
		RealtimeClients: hub.ClientCount,
	})
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	app, err := newApp(cfg, log, db, store, registry, hub, uploads, reg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ":"+cfg.Port).Str("public_base_url", cfg.PublicBaseURL).Msg("listening")
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		_ = shutdownTracing(context.Background())
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := app.ShutdownWithContext(sctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := shutdownTracing(sctx); err != nil {
		errs = append(errs, fmt.Errorf("tracing shutdown: %w", err))
	}
	return errors.Join(errs...)
}

// newApp builds the Fiber application with every service, middleware and route wired.
func newApp(
	cfg *config.AppConfig,
	log zerolog.Logger,
	db *sql.DB,
	store storage.Storage,
	registry *session.Registry,
	hub *realtime.Hub,
	uploads *metrics.Upload,
	reg *prometheus.Registry,
) (*fiber.App, error) {
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	users := sqlrepo.NewUserRepo(db)
	patients := sqlrepo.NewPatientRepo(db)
	documents := sqlrepo.NewDocumentRepo(db)

	services := handlers.Services{
		Auth:        service.NewAuthService(users, tokens),
		Patients:    service.NewPatientService(patients, documents, store, log),
		Clinical:    service.NewClinicalService(patients, sqlrepo.NewVisitRepo(db), sqlrepo.NewMedicationRepo(db), sqlrepo.NewLabTestRepo(db)),
		Documents:   service.NewDocumentService(store, documents, patients, log),
		Mobile:      service.NewMobileUploadService(registry, patients, documents, store, hub, uploads, log),
		WaitingRoom: service.NewWaitingRoomService(sqlrepo.NewWaitingRoomRepo(db), patients),
	}

	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register http metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "clinicapi",
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.Upload.MaxBodyBytes,
	})

	app.Use(middleware.Recover(log))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/healthz" || c.Path() == "/metrics"
	})))
	app.Use(middleware.Logger(log, "/healthz", "/metrics"))
	app.Use(promMW.Handler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(otelhttp.NewHandler(
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), "metrics",
	)))

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

	realtime.NewHandler(hub, logger.Component(log, "realtime")).RegisterRoutes(app)

	handlers.RegisterRoutes(app, services, handlers.Options{
		DB:             db,
		Tokens:         tokens,
		PublicBaseURL:  cfg.PublicBaseURL,
		MobileMaxFiles: cfg.Upload.MobileMaxFiles,
	})

	return app, nil
}
