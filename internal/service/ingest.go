package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
	"github.com/Nicco6598/sillage-sub000/internal/logger"
	"github.com/Nicco6598/sillage-sub000/internal/repository"
	"github.com/Nicco6598/sillage-sub000/internal/source"
	"github.com/Nicco6598/sillage-sub000/internal/storage"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// IngestService handles the catalog ingestion pipeline: seed items in, brand
// and fragrance rows out, with imagery pushed to object storage.
type IngestService struct {
	fragranceRepo *repository.FragranceRepository
	jobRepo       *repository.JobRepository
	storage       storage.ObjectStorage
	http          *resty.Client
	logger        *logger.Logger
	workers       int
	batchSize     int
}

// IngestConfig holds configuration for the ingest service
type IngestConfig struct {
	Workers    int
	BatchSize  int
	RetryCount int
}

// NewIngestService creates a new ingest service.
// Parameters:
//   - fragranceRepo: repository for fragrance and brand records.
//   - jobRepo: repository for job bookkeeping.
//   - objectStorage: destination for fragrance imagery.
//   - log: logger instance.
//   - cfg: worker and batch settings.
// Returns:
//   - *IngestService: initialized service.
func NewIngestService(
	fragranceRepo *repository.FragranceRepository,
	jobRepo *repository.JobRepository,
	objectStorage storage.ObjectStorage,
	log *logger.Logger,
	cfg *IngestConfig,
) *IngestService {
	workers := 1
	batchSize := 10
	retryCount := 0
	if cfg != nil {
		if cfg.Workers > 0 {
			workers = cfg.Workers
		}
		if cfg.BatchSize > 0 {
			batchSize = cfg.BatchSize
		}
		retryCount = cfg.RetryCount
	}
	return &IngestService{
		fragranceRepo: fragranceRepo,
		jobRepo:       jobRepo,
		storage:       objectStorage,
		http:          resty.New().SetRetryCount(retryCount).SetTimeout(30 * time.Second),
		logger:        log,
		workers:       workers,
		batchSize:     batchSize,
	}
}

// log returns a logger from context if available, otherwise returns the default logger
func (s *IngestService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// IngestStats holds statistics for an ingestion run
type IngestStats struct {
	TotalItems     int64
	ProcessedItems int64
	SkippedItems   int64
	FailedItems    int64
	StartTime      time.Time
	EndTime        time.Time
}

// IngestOptions holds options for ingestion
type IngestOptions struct {
	Force bool // If true, skip existence checks and force re-process
}

type processResult struct {
	sourceID string
	skipped  bool
	err      error
}

// IngestFromSource ingests fragrances from a catalog data source.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - src: catalog data source.
//   - limit: maximum number of items to ingest.
//   - opts: ingestion options; nil uses defaults.
// Returns:
//   - *IngestStats: run statistics.
//   - error: non-nil if the run could not start.
func (s *IngestService) IngestFromSource(ctx context.Context, src source.Source, limit int, opts *IngestOptions) (*IngestStats, error) {
	if opts == nil {
		opts = &IngestOptions{}
	}

	stats := &IngestStats{
		StartTime: time.Now(),
	}

	job := &domain.IngestJob{
		ID:       uuid.New().String(),
		SourceID: src.GetSourceID(),
		Status:   domain.JobStatusRunning,
	}
	now := time.Now().UTC()
	job.StartedAt = &now
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to record ingest job: %w", err)
	}
	ctx = logger.SetJobID(ctx, job.ID)

	s.log(ctx).WithFields(logger.Fields{
		"source": src.GetSourceID(),
		"limit":  limit,
		"force":  opts.Force,
	}).Info("Starting ingestion")

	itemsChan := make(chan source.FragranceItem, s.workers*2)
	resultsChan := make(chan *processResult, s.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, src.GetSourceID(), itemsChan, resultsChan, opts)
		}()
	}

	// Result collector
	done := make(chan struct{})
	go func() {
		for result := range resultsChan {
			atomic.AddInt64(&stats.ProcessedItems, 1)
			if result.skipped {
				atomic.AddInt64(&stats.SkippedItems, 1)
			} else if result.err != nil {
				atomic.AddInt64(&stats.FailedItems, 1)
				s.log(ctx).WithFields(logger.Fields{
					"source_id": result.sourceID,
				}).WithError(result.err).Error("Failed to process item")
			}
		}
		close(done)
	}()

	// Fetch items from source
	cursor := ""
	totalFetched := 0
	for {
		if ctx.Err() != nil {
			break
		}

		remaining := limit - totalFetched
		if remaining <= 0 {
			break
		}

		batchLimit := s.batchSize
		if batchLimit > remaining {
			batchLimit = remaining
		}

		items, nextCursor, err := src.FetchBatch(ctx, cursor, batchLimit)
		if err != nil {
			s.log(ctx).WithError(err).Error("Failed to fetch batch")
			break
		}

		if len(items) == 0 {
			break
		}

		atomic.AddInt64(&stats.TotalItems, int64(len(items)))
		totalFetched += len(items)

		for _, item := range items {
			select {
			case itemsChan <- item:
			case <-ctx.Done():
				break
			}
		}

		if nextCursor == "" {
			break
		}
		cursor = nextCursor
	}

	close(itemsChan)
	wg.Wait()
	close(resultsChan)
	<-done

	stats.EndTime = time.Now()

	job.Status = domain.JobStatusCompleted
	if stats.FailedItems > 0 && stats.FailedItems == stats.TotalItems {
		job.Status = domain.JobStatusFailed
	}
	job.TotalItems = int(stats.TotalItems)
	job.ProcessedItems = int(stats.ProcessedItems)
	job.FailedItems = int(stats.FailedItems)
	completed := time.Now().UTC()
	job.CompletedAt = &completed
	if err := s.jobRepo.Update(ctx, job); err != nil {
		s.log(ctx).WithError(err).Warn("Failed to update ingest job record")
	}

	s.log(ctx).WithFields(logger.Fields{
		"total":     stats.TotalItems,
		"processed": stats.ProcessedItems,
		"skipped":   stats.SkippedItems,
		"failed":    stats.FailedItems,
		"duration":  stats.EndTime.Sub(stats.StartTime).String(),
	}).Info("Ingestion completed")

	return stats, nil
}

func (s *IngestService) worker(ctx context.Context, sourceType string, items <-chan source.FragranceItem, results chan<- *processResult, opts *IngestOptions) {
	for item := range items {
		select {
		case <-ctx.Done():
			return
		default:
		}

		result := &processResult{sourceID: item.SourceID}

		if !opts.Force {
			exists, err := s.fragranceRepo.ExistsBySourceID(ctx, sourceType, item.SourceID)
			if err != nil {
				result.err = fmt.Errorf("failed to check existence: %w", err)
				results <- result
				continue
			}
			if exists {
				result.skipped = true
				results <- result
				continue
			}
		}

		if err := s.processItem(ctx, sourceType, &item); err != nil {
			result.err = err
		}
		results <- result
	}
}

func (s *IngestService) processItem(ctx context.Context, sourceType string, item *source.FragranceItem) error {
	brand := &domain.Brand{
		ID:      uuid.New().String(),
		Name:    item.Brand,
		Country: item.BrandCountry,
	}
	if err := s.fragranceRepo.UpsertBrand(ctx, brand); err != nil {
		return fmt.Errorf("failed to upsert brand: %w", err)
	}

	fragrance := &domain.Fragrance{
		ID:            uuid.New().String(),
		SourceType:    sourceType,
		SourceID:      item.SourceID,
		BrandID:       brand.ID,
		Name:          item.Name,
		Gender:        strings.ToLower(item.Gender),
		LaunchYear:    item.LaunchYear,
		Concentration: item.Concentration,
		Description:   item.Description,
		TopNotes:      item.TopNotes,
		HeartNotes:    item.HeartNotes,
		BaseNotes:     item.BaseNotes,
		CatalogGender: domain.GenderUnisex,
		Status:        domain.FragranceStatusActive,
	}

	if item.ImageURL != "" {
		key, width, height, err := s.storeImage(ctx, fragrance.ID, item.ImageURL)
		if err != nil {
			// Imagery is best-effort; a catalog row without an image is
			// still useful.
			s.log(ctx).WithFields(logger.Fields{
				"source_id": item.SourceID,
			}).WithError(err).Warn("Failed to store fragrance image")
		} else {
			fragrance.ImageKey = key
			fragrance.ImageWidth = width
			fragrance.ImageHeight = height
		}
	}

	if err := s.fragranceRepo.Upsert(ctx, fragrance); err != nil {
		return fmt.Errorf("failed to upsert fragrance: %w", err)
	}
	return nil
}

// storeImage downloads the remote image, probes its dimensions, and uploads it
// to object storage under a fragrance-scoped key.
func (s *IngestService) storeImage(ctx context.Context, fragranceID, imageURL string) (string, int, int, error) {
	resp, err := s.http.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return "", 0, 0, fmt.Errorf("failed to download image: %w", err)
	}
	if resp.IsError() {
		return "", 0, 0, fmt.Errorf("image download returned status %d", resp.StatusCode())
	}
	data := resp.Body()

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	ext := format
	if ext == "jpeg" {
		ext = "jpg"
	}
	key := path.Join("fragrances", fragranceID+"."+ext)
	contentType := "image/" + format

	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", 0, 0, fmt.Errorf("failed to upload image: %w", err)
	}
	return key, cfg.Width, cfg.Height, nil
}
