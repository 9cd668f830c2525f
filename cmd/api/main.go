package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nicco6598/sillage-sub000/internal/api"
	"github.com/Nicco6598/sillage-sub000/internal/api/handler"
	"github.com/Nicco6598/sillage-sub000/internal/api/middleware"
	"github.com/Nicco6598/sillage-sub000/internal/config"
	"github.com/Nicco6598/sillage-sub000/internal/logger"
	"github.com/Nicco6598/sillage-sub000/internal/repository"
	"github.com/Nicco6598/sillage-sub000/internal/service"
	"github.com/Nicco6598/sillage-sub000/internal/source"
	"github.com/Nicco6598/sillage-sub000/internal/source/seedfile"
	"github.com/Nicco6598/sillage-sub000/internal/storage"
)

func main() {
	// Initialize logger from environment
	appLogger := logger.NewFromEnv(logger.LoadFromEnv())
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	fragranceRepo := repository.NewFragranceRepository(db)
	similarityRepo := repository.NewSimilarityRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	collectionRepo := repository.NewCollectionRepository(db)
	jobRepo := repository.NewJobRepository(db)

	// Initialize S3-compatible storage (supports R2, S3, etc.)
	objectStorage, err := storage.NewStorage(&storage.S3Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize storage")
	}

	// Initialize services
	catalogService := service.NewCatalogService(fragranceRepo, appLogger)
	similarityService := service.NewSimilarityService(similarityRepo, fragranceRepo, appLogger)
	reviewService := service.NewReviewService(reviewRepo, fragranceRepo, service.AllowAllModerator{}, appLogger)
	collectionService := service.NewCollectionService(collectionRepo, fragranceRepo, appLogger)
	ingestService := service.NewIngestService(
		fragranceRepo,
		jobRepo,
		objectStorage,
		appLogger,
		&service.IngestConfig{
			Workers:    cfg.Ingest.Workers,
			BatchSize:  cfg.Ingest.BatchSize,
			RetryCount: cfg.Ingest.RetryCount,
		},
	)

	// Initialize data sources
	sources := map[string]source.Source{}
	if cfg.Sources.Seed.Enabled {
		sources[seedfile.SourceID] = seedfile.NewAdapter(cfg.Sources.Seed.DatasetPath)
	}

	// Setup router
	router := api.SetupRouter(api.Handlers{
		Health:     handler.NewHealthHandler(),
		Fragrance:  handler.NewFragranceHandler(catalogService),
		Similarity: handler.NewSimilarityHandler(similarityService),
		Review:     handler.NewReviewHandler(reviewService),
		Collection: handler.NewCollectionHandler(collectionService),
		Admin:      handler.NewAdminHandler(ingestService, sources, jobRepo, fragranceRepo, appLogger),
	}, appLogger, cfg.Server.Mode, middleware.CORSConfig{
		AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
		AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
