package repository

import (
	"context"
	"fmt"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
	"gorm.io/gorm"
)

// ReviewRepository handles review data operations. Reviews are written once by
// their author and consumed read-only by the stats aggregator.
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *ReviewRepository: repository instance bound to db.
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a new review record.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	var review domain.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByFragrance retrieves all reviews for a fragrance, newest first. The
// full set is returned as plain data; filtering and aggregation happen in the
// pure stats layer, not in SQL, so every filter change reuses the same rows.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - fragranceID: fragrance whose reviews to fetch.
// Returns:
//   - []domain.Review: matching review records.
//   - error: non-nil if the query fails.
func (r *ReviewRepository) ListByFragrance(ctx context.Context, fragranceID string) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := r.db.WithContext(ctx).
		Where("fragrance_id = ?", fragranceID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// CountByFragrance counts reviews for a fragrance.
func (r *ReviewRepository) CountByFragrance(ctx context.Context, fragranceID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("fragrance_id = ?", fragranceID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Delete removes a review by ID, restricted to its author.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: review ID to delete.
//   - userID: requesting user; only the author's row is matched.
// Returns:
//   - error: gorm.ErrRecordNotFound when no owned row matches.
func (r *ReviewRepository) Delete(ctx context.Context, id, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
