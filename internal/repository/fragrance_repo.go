package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FragranceRepository handles fragrance and brand data operations.
type FragranceRepository struct {
	db *gorm.DB
}

// NewFragranceRepository creates a new FragranceRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *FragranceRepository: repository instance bound to db.
func NewFragranceRepository(db *gorm.DB) *FragranceRepository {
	return &FragranceRepository{db: db}
}

// Create inserts a new fragrance record.
func (r *FragranceRepository) Create(ctx context.Context, fragrance *domain.Fragrance) error {
	return r.db.WithContext(ctx).Create(fragrance).Error
}

// Upsert creates or updates a fragrance record keyed by source fields.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - fragrance: fragrance record to create or update.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *FragranceRepository) Upsert(ctx context.Context, fragrance *domain.Fragrance) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_type"}, {Name: "source_id"}},
		UpdateAll: true,
	}).Create(fragrance).Error
}

// GetByID retrieves a fragrance by its ID, with its brand preloaded.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: fragrance ID.
// Returns:
//   - *domain.Fragrance: fragrance record if found.
//   - error: non-nil if lookup fails.
func (r *FragranceRepository) GetByID(ctx context.Context, id string) (*domain.Fragrance, error) {
	var fragrance domain.Fragrance
	if err := r.db.WithContext(ctx).Preload("Brand").First(&fragrance, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &fragrance, nil
}

// ExistsBySourceID checks if a fragrance exists by source type and source ID.
func (r *FragranceRepository) ExistsBySourceID(ctx context.Context, sourceType, sourceID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Fragrance{}).
		Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFilter narrows the catalog listing.
type ListFilter struct {
	BrandID string
	Gender  string
	Query   string // substring match on fragrance name
}

// List retrieves active fragrances matching a filter, with pagination.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filter: optional narrowing criteria; zero values mean no constraint.
//   - limit: maximum number of records to return.
//   - offset: number of records to skip.
// Returns:
//   - []domain.Fragrance: matching fragrance records.
//   - error: non-nil if the query fails.
func (r *FragranceRepository) List(ctx context.Context, filter ListFilter, limit, offset int) ([]domain.Fragrance, error) {
	var fragrances []domain.Fragrance
	query := r.db.WithContext(ctx).Preload("Brand")
	if filter.BrandID != "" {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}
	if filter.Query != "" {
		query = query.Where("name LIKE ?", "%"+filter.Query+"%")
	}
	if err := query.
		Where("status = ?", domain.FragranceStatusActive).
		Limit(limit).
		Offset(offset).
		Order("name ASC").
		Find(&fragrances).Error; err != nil {
		return nil, err
	}
	return fragrances, nil
}

// GetByIDs retrieves fragrances by a list of IDs.
func (r *FragranceRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Fragrance, error) {
	if len(ids) == 0 {
		return []domain.Fragrance{}, nil
	}
	var fragrances []domain.Fragrance
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&fragrances).Error; err != nil {
		return nil, fmt.Errorf("failed to get fragrances by IDs: %w", err)
	}
	return fragrances, nil
}

// CountByStatus counts fragrances by status.
func (r *FragranceRepository) CountByStatus(ctx context.Context, status domain.FragranceStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Fragrance{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpsertBrand creates a brand by name if missing and returns its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - brand: brand record; ID is filled from the existing row on conflict.
// Returns:
//   - error: non-nil if the lookup or insert fails.
func (r *FragranceRepository) UpsertBrand(ctx context.Context, brand *domain.Brand) error {
	var existing domain.Brand
	err := r.db.WithContext(ctx).Where("name = ?", brand.Name).Take(&existing).Error
	if err == nil {
		brand.ID = existing.ID
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up brand: %w", err)
	}
	return r.db.WithContext(ctx).Create(brand).Error
}

// ListBrands retrieves all brands ordered by name.
func (r *FragranceRepository) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	var brands []domain.Brand
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

// Delete removes a fragrance by ID.
func (r *FragranceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Fragrance{}, "id = ?", id).Error
}
