package service

import (
	"context"
	"errors"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
	"github.com/Nicco6598/sillage-sub000/internal/logger"
	"github.com/Nicco6598/sillage-sub000/internal/repository"
	"gorm.io/gorm"
)

// CatalogService handles read access to the fragrance catalog.
type CatalogService struct {
	fragranceRepo *repository.FragranceRepository
	logger        *logger.Logger
}

// NewCatalogService creates a new catalog service.
// Parameters:
//   - fragranceRepo: repository for fragrance and brand records.
//   - log: logger instance.
// Returns:
//   - *CatalogService: initialized service.
func NewCatalogService(fragranceRepo *repository.FragranceRepository, log *logger.Logger) *CatalogService {
	return &CatalogService{
		fragranceRepo: fragranceRepo,
		logger:        log,
	}
}

// ListResult is a page of catalog fragrances.
type ListResult struct {
	Fragrances []domain.Fragrance `json:"fragrances"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}

// List returns active fragrances matching the filter, paginated.
func (s *CatalogService) List(ctx context.Context, filter repository.ListFilter, limit, offset int) (*ListResult, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	fragrances, err := s.fragranceRepo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Fragrances: fragrances,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

// Get returns one fragrance by ID with its brand.
// Returns ErrFragranceNotFound when no such record exists.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Fragrance, error) {
	fragrance, err := s.fragranceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFragranceNotFound
		}
		return nil, err
	}
	return fragrance, nil
}

// Brands returns all perfume houses in the catalog.
func (s *CatalogService) Brands(ctx context.Context) ([]domain.Brand, error) {
	return s.fragranceRepo.ListBrands(ctx)
}

// StatsDefaultsFor returns the catalog-level fallback values the stats
// aggregator uses when a filtered review set carries no votes for a metric.
func StatsDefaultsFor(fragrance *domain.Fragrance) StatsDefaults {
	return StatsDefaults{
		Sillage:   fragrance.CatalogSillage,
		Longevity: fragrance.CatalogLongevity,
	}
}
