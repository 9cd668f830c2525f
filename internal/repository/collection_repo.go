package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
	"gorm.io/gorm"
)

// CollectionRepository handles collection and favorites data operations.
type CollectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository creates a new CollectionRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *CollectionRepository: repository instance bound to db.
func NewCollectionRepository(db *gorm.DB) *CollectionRepository {
	return &CollectionRepository{db: db}
}

// Create inserts a new collection record.
func (r *CollectionRepository) Create(ctx context.Context, collection *domain.Collection) error {
	return r.db.WithContext(ctx).Create(collection).Error
}

// GetByID retrieves a collection by its ID.
func (r *CollectionRepository) GetByID(ctx context.Context, id string) (*domain.Collection, error) {
	var collection domain.Collection
	if err := r.db.WithContext(ctx).First(&collection, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

// ListByUser retrieves all collections owned by a user.
func (r *CollectionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Collection, error) {
	var collections []domain.Collection
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&collections).Error; err != nil {
		return nil, err
	}
	return collections, nil
}

// GetFavorites retrieves a user's favorites collection, if one exists.
func (r *CollectionRepository) GetFavorites(ctx context.Context, userID string) (*domain.Collection, error) {
	var collection domain.Collection
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, domain.CollectionKindFavorites).
		Take(&collection).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

// AddItem adds a fragrance to a collection. Adding a fragrance that is already
// present is a no-op rather than an error.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - item: collection item to insert; ID must be preset.
// Returns:
//   - error: non-nil if the insert fails.
func (r *CollectionRepository) AddItem(ctx context.Context, item *domain.CollectionItem) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.CollectionItem{}).
		Where("collection_id = ? AND fragrance_id = ?", item.CollectionID, item.FragranceID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing item: %w", err)
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(item).Error
}

// RemoveItem removes a fragrance from a collection.
func (r *CollectionRepository) RemoveItem(ctx context.Context, collectionID, fragranceID string) error {
	return r.db.WithContext(ctx).
		Where("collection_id = ? AND fragrance_id = ?", collectionID, fragranceID).
		Delete(&domain.CollectionItem{}).Error
}

// ListItems retrieves the items of a collection with fragrances preloaded.
func (r *CollectionRepository) ListItems(ctx context.Context, collectionID string) ([]domain.CollectionItem, error) {
	var items []domain.CollectionItem
	if err := r.db.WithContext(ctx).
		Preload("Fragrance").
		Preload("Fragrance.Brand").
		Where("collection_id = ?", collectionID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a collection and its items, restricted to its owner.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: collection ID to delete.
//   - userID: requesting user; only the owner's collection is matched.
// Returns:
//   - error: gorm.ErrRecordNotFound when no owned collection matches.
func (r *CollectionRepository) Delete(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var collection domain.Collection
		err := tx.Where("id = ? AND user_id = ?", id, userID).Take(&collection).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		} else if err != nil {
			return err
		}
		if err := tx.Where("collection_id = ?", id).Delete(&domain.CollectionItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&collection).Error
	})
}
