package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
	"github.com/Nicco6598/sillage-sub000/internal/logger"
	"github.com/Nicco6598/sillage-sub000/internal/repository"
	"gorm.io/gorm"
)

func newTestCollectionService(t *testing.T) (*CollectionService, *gorm.DB) {
	t.Helper()

	db := newServiceTestDB(t)
	return NewCollectionService(
		repository.NewCollectionRepository(db),
		repository.NewFragranceRepository(db),
		logger.NewDefault(),
	), db
}

func TestCollectionService_FavoritesCreatedOnFirstUse(t *testing.T) {
	svc, _ := newTestCollectionService(t)
	ctx := context.Background()

	first, err := svc.Favorites(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Kind != domain.CollectionKindFavorites {
		t.Errorf("kind = %q, want %q", first.Kind, domain.CollectionKindFavorites)
	}

	second, err := svc.Favorites(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Error("favorites must be created once and then reused")
	}

	other, err := svc.Favorites(ctx, "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.ID == first.ID {
		t.Error("each user gets their own favorites collection")
	}
}

func TestCollectionService_OwnerScoping(t *testing.T) {
	svc, db := newTestCollectionService(t)
	ctx := context.Background()
	fragranceID := createFragrance(t, db, "Vetiver Extraordinaire")

	shelf, err := svc.Create(ctx, "owner", "Summer rotation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.AddItem(ctx, "intruder", shelf.ID, fragranceID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for foreign add, got %v", err)
	}
	if _, err := svc.Items(ctx, "intruder", shelf.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for foreign read, got %v", err)
	}
	if err := svc.Delete(ctx, "intruder", shelf.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for foreign delete, got %v", err)
	}

	if err := svc.AddItem(ctx, "owner", shelf.ID, fragranceID); err != nil {
		t.Fatalf("owner add failed: %v", err)
	}
}

func TestCollectionService_AddItemIdempotent(t *testing.T) {
	svc, db := newTestCollectionService(t)
	ctx := context.Background()
	fragranceID := createFragrance(t, db, "Timbuktu")

	shelf, err := svc.Create(ctx, "user-1", "Niche")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.AddItem(ctx, "user-1", shelf.ID, fragranceID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.AddItem(ctx, "user-1", shelf.ID, fragranceID); err != nil {
		t.Fatalf("second add must be a no-op, got %v", err)
	}

	items, err := svc.Items(ctx, "user-1", shelf.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected one item, got %d", len(items))
	}

	if err := svc.AddItem(ctx, "user-1", shelf.ID, "missing"); !errors.Is(err, ErrFragranceNotFound) {
		t.Errorf("expected ErrFragranceNotFound, got %v", err)
	}
}

func TestCollectionService_RemoveAndDelete(t *testing.T) {
	svc, db := newTestCollectionService(t)
	ctx := context.Background()
	fragranceID := createFragrance(t, db, "Fat Electrician")

	shelf, err := svc.Create(ctx, "user-1", "Gourmands")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.AddItem(ctx, "user-1", shelf.ID, fragranceID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.RemoveItem(ctx, "user-1", shelf.ID, fragranceID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, err := svc.Items(ctx, "user-1", shelf.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty shelf, got %d items", len(items))
	}

	if err := svc.Delete(ctx, "user-1", shelf.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	collections, err := svc.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(collections) != 0 {
		t.Errorf("expected no collections left, got %d", len(collections))
	}
}
