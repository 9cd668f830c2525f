package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nicco6598/sillage-sub000/internal/config"
	"github.com/Nicco6598/sillage-sub000/internal/logger"
	"github.com/Nicco6598/sillage-sub000/internal/repository"
	"github.com/Nicco6598/sillage-sub000/internal/service"
	"github.com/Nicco6598/sillage-sub000/internal/source"
	"github.com/Nicco6598/sillage-sub000/internal/source/seedfile"
	"github.com/Nicco6598/sillage-sub000/internal/storage"
)

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "sillage-ingest",
	})
	logger.SetDefaultLogger(appLogger)

	// Parse command line flags
	sourceType := flag.String("source", seedfile.SourceID, "Data source to ingest from")
	limit := flag.Int("limit", 100, "Maximum number of items to ingest")
	force := flag.Bool("force", false, "Force re-process items, skip duplicate checks")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	appLogger.WithFields(logger.Fields{
		"source": *sourceType,
		"limit":  *limit,
		"force":  *force,
	}).Info("Starting ingestion")

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	fragranceRepo := repository.NewFragranceRepository(db)
	jobRepo := repository.NewJobRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	// Initialize ingest service
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

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	// Get data source
	var src source.Source
	switch *sourceType {
	case seedfile.SourceID:
		src = seedfile.NewAdapter(cfg.Sources.Seed.DatasetPath)
	default:
		appLogger.WithField("source", *sourceType).Fatal("Unknown source type")
	}

	// Run ingestion
	stats, err := ingestService.IngestFromSource(ctx, src, *limit, &service.IngestOptions{
		Force: *force,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to ingest from source")
	}
	appLogger.WithFields(logger.Fields{
		"total":     stats.TotalItems,
		"processed": stats.ProcessedItems,
		"skipped":   stats.SkippedItems,
		"failed":    stats.FailedItems,
	}).Info("Ingestion completed")
}
