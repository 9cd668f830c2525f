package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
	"github.com/Nicco6598/sillage-sub000/internal/logger"
	"github.com/Nicco6598/sillage-sub000/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollectionService handles user collections and the built-in favorites list.
type CollectionService struct {
	collectionRepo *repository.CollectionRepository
	fragranceRepo  *repository.FragranceRepository
	logger         *logger.Logger
}

// NewCollectionService creates a new collection service.
// Parameters:
//   - collectionRepo: repository for collections and items.
//   - fragranceRepo: repository for catalog lookups.
//   - log: logger instance.
// Returns:
//   - *CollectionService: initialized service.
func NewCollectionService(
	collectionRepo *repository.CollectionRepository,
	fragranceRepo *repository.FragranceRepository,
	log *logger.Logger,
) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		fragranceRepo:  fragranceRepo,
		logger:         log,
	}
}

// Create makes a new named shelf for the user.
func (s *CollectionService) Create(ctx context.Context, userID, name string) (*domain.Collection, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if name == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	collection := &domain.Collection{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   name,
		Kind:   domain.CollectionKindShelf,
	}
	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// ListForUser returns the user's collections.
func (s *CollectionService) ListForUser(ctx context.Context, userID string) ([]domain.Collection, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.collectionRepo.ListByUser(ctx, userID)
}

// Favorites returns the user's favorites collection, creating it on first use.
func (s *CollectionService) Favorites(ctx context.Context, userID string) (*domain.Collection, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	favorites, err := s.collectionRepo.GetFavorites(ctx, userID)
	if err == nil {
		return favorites, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	favorites = &domain.Collection{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   "Favorites",
		Kind:   domain.CollectionKindFavorites,
	}
	if err := s.collectionRepo.Create(ctx, favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddItem puts a fragrance into one of the user's collections. Adding a
// fragrance that is already present is a no-op.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: acting user; must own the collection.
//   - collectionID: target collection.
//   - fragranceID: fragrance to add.
// Returns:
//   - error: ErrUnauthenticated, ErrNotOwner, ErrFragranceNotFound, or a
//     storage failure.
func (s *CollectionService) AddItem(ctx context.Context, userID, collectionID, fragranceID string) error {
	collection, err := s.ownedCollection(ctx, userID, collectionID)
	if err != nil {
		return err
	}
	if _, err := s.fragranceRepo.GetByID(ctx, fragranceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFragranceNotFound
		}
		return err
	}

	item := &domain.CollectionItem{
		ID:           uuid.New().String(),
		CollectionID: collection.ID,
		FragranceID:  fragranceID,
	}
	return s.collectionRepo.AddItem(ctx, item)
}

// RemoveItem takes a fragrance out of one of the user's collections.
func (s *CollectionService) RemoveItem(ctx context.Context, userID, collectionID, fragranceID string) error {
	if _, err := s.ownedCollection(ctx, userID, collectionID); err != nil {
		return err
	}
	return s.collectionRepo.RemoveItem(ctx, collectionID, fragranceID)
}

// Items returns the contents of one of the user's collections.
func (s *CollectionService) Items(ctx context.Context, userID, collectionID string) ([]domain.CollectionItem, error) {
	if _, err := s.ownedCollection(ctx, userID, collectionID); err != nil {
		return nil, err
	}
	return s.collectionRepo.ListItems(ctx, collectionID)
}

// Delete removes one of the user's collections and its items.
func (s *CollectionService) Delete(ctx context.Context, userID, collectionID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	err := s.collectionRepo.Delete(ctx, collectionID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotOwner
	}
	return err
}

// ownedCollection loads a collection and checks the caller owns it.
func (s *CollectionService) ownedCollection(ctx context.Context, userID, collectionID string) (*domain.Collection, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	collection, err := s.collectionRepo.GetByID(ctx, collectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotOwner
		}
		return nil, err
	}
	if collection.UserID != userID {
		return nil, ErrNotOwner
	}
	return collection, nil
}
