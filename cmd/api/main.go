package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fitmap/docs"
	"fitmap/internal/config"
	"fitmap/internal/database"
	"fitmap/internal/database/migration"
	"fitmap/internal/docstore"
	"fitmap/internal/docstore/firestore"
	"fitmap/internal/docstore/postgres"
	handlers "fitmap/internal/http/handler"
	"fitmap/internal/http/middleware"
	"fitmap/internal/logger"
	"fitmap/internal/otel"
	"fitmap/internal/service"
	"fitmap/internal/storage"
	"fitmap/internal/validation"
)

// @title fitmap API
// @version 1.0
// @description Gyms, personal trainers and training focuses.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	zl, err := logger.New(cfg.Log, cfg.Location)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, zl)
	if err != nil {
		return errors.Wrap(err, "init tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			zl.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	store, closeStore, err := openStore(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer closeStore()

	// Gallery uploads are optional; without MinIO the upload endpoint answers 500.
	var objects storage.Storage
	if cfg.MinIO.Enabled() {
		objects, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return errors.Wrap(err, "init object storage")
		}
	} else {
		zl.Info("object storage disabled, gallery uploads unavailable")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return errors.Wrap(err, "register metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(zl),
	})

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath
	})))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(zl))
	app.Use(promMiddleware.Handler())

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	app.Get("/swagger/*", handlers.Swagger(docs.SwaggerInfo, cfg.AppHost))

	handlers.RegisterRoutes(app, handlers.Dependencies{
		Store:            store,
		Validator:        validation.New(),
		Focus:            service.NewFocusService(store),
		Gyms:             service.NewGymService(store, objects, zl),
		PersonalTrainers: service.NewPersonalTrainerService(store, objects, zl),
	})

	go func() {
		<-ctx.Done()
		zl.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zl.Warn("graceful shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	zl.Info("listening", zap.String("addr", addr), zap.String("store", cfg.StoreDriver))
	if err := app.Listen(addr); err != nil {
		return errors.Wrap(err, "listen")
	}
	return nil
}

// openStore builds the document store selected by STORE_DRIVER, wrapped with
// tracing spans, and returns its close function.
func openStore(ctx context.Context, cfg *config.AppConfig, zl *zap.Logger) (docstore.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreFirestore:
		fs, err := firestore.New(ctx, cfg.Firestore)
		if err != nil {
			return nil, nil, errors.Wrap(err, "init firestore")
		}
		closeFn := func() {
			if err := fs.Close(); err != nil {
				zl.Warn("firestore close failed", zap.Error(err))
			}
		}
		return docstore.WithTracing(fs, "firestore"), closeFn, nil

	case config.StorePostgres:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, errors.Wrap(err, "connect to database")
		}
		if err := migration.EnsureMigrated(ctx, db, zl, cfg.Database.Host); err != nil {
			_ = db.Close()
			return nil, nil, errors.Wrap(err, "migrate database")
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				zl.Warn("database close failed", zap.Error(err))
			}
		}
		return docstore.WithTracing(postgres.New(db), "postgresql"), closeFn, nil

	case config.StoreMemory:
		zl.Warn("using in-memory document store, data is lost on restart")
		return docstore.WithTracing(docstore.NewMemory(), "memory"), func() {}, nil

	default:
		return nil, nil, errors.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
