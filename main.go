package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fra-atlas/fra-atlas-backend/config"
	"github.com/fra-atlas/fra-atlas-backend/db"
	"github.com/fra-atlas/fra-atlas-backend/handlers"
	"github.com/fra-atlas/fra-atlas-backend/internal/nlp"
	"github.com/fra-atlas/fra-atlas-backend/internal/ocr"
	"github.com/fra-atlas/fra-atlas-backend/internal/recommend"
	"github.com/fra-atlas/fra-atlas-backend/internal/store"
	"github.com/fra-atlas/fra-atlas-backend/internal/store/memory"
	"github.com/fra-atlas/fra-atlas-backend/internal/store/postgres"
	"github.com/fra-atlas/fra-atlas-backend/logger"
	"github.com/fra-atlas/fra-atlas-backend/router"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	dataStore := openStore(cfg)
	defer dataStore.Close()

	// OCR pipeline
	engine := ocr.NewTesseractEngine(cfg.OCR.TessdataPrefix)
	normalizer := ocr.NewNormalizer(cfg.OCR.MinDimension, log)
	strategies := ocr.DefaultStrategies(cfg.OCR.PrimaryLanguage, cfg.OCR.SecondaryLanguage)
	runner := ocr.NewRunner(engine, strategies, cfg.OCR.SecondaryLanguage, log)
	processor := ocr.NewProcessor(normalizer, runner, log)

	extractor := nlp.NewExtractor(log)
	scorer := recommend.NewEngine(cfg.Recommend.MinScore, cfg.Recommend.MaxResults, log)

	r := router.SetupRouter(router.Dependencies{
		Config: cfg,
		UploadHandler: handlers.NewUploadHandler(
			processor, extractor, dataStore.Claims(), cfg.Upload.MaxFileSizeBytes),
		ClaimHandler: handlers.NewClaimHandler(dataStore.Claims()),
		RecommendationHandler: handlers.NewRecommendationHandler(
			dataStore.Claims(), dataStore.Schemes(), dataStore.Recommendations(), scorer),
		MapHandler:    handlers.NewMapHandler(dataStore.Claims()),
		HealthHandler: handlers.NewHealthHandler(dataStore),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server shutdown failed", "error", err)
	}
}

// openStore selects the persistence backend. The postgres backend falls back
// to the seeded in-memory store when the database is unreachable, so the
// service still comes up for demos and local development.
func openStore(cfg *config.Config) store.Store {
	log := logger.GetLogger()

	if cfg.Store.Backend == config.StoreBackendMemory {
		log.Info("Using in-memory store with demo data")
		return memory.NewSeededStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Infow("Connecting to PostgreSQL", "url", logger.MaskConnectionString(cfg.Database.URL()))

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL())
	if err != nil {
		log.Warnw("Invalid database config, falling back to in-memory store", "error", err)
		return memory.NewSeededStore()
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		log.Warnw("Database unreachable, falling back to in-memory store",
			"host", cfg.Database.Host, "error", err)
		if pool != nil {
			pool.Close()
		}
		return memory.NewSeededStore()
	}

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Warnw("Migrations failed, falling back to in-memory store", "error", err)
		pool.Close()
		return memory.NewSeededStore()
	}

	log.Infow("Connected to PostgreSQL",
		"host", cfg.Database.Host, "database", cfg.Database.Name)
	return postgres.NewStore(pool)
}
