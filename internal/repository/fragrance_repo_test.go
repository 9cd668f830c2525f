package repository

import (
	"context"
	"testing"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
	"github.com/google/uuid"
)

func TestUpsertBrand_GetOrCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewFragranceRepository(db)
	ctx := context.Background()

	first := domain.Brand{ID: uuid.New().String(), Name: "Maison Lavande"}
	if err := repo.UpsertBrand(ctx, &first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := domain.Brand{ID: uuid.New().String(), Name: "Maison Lavande"}
	if err := repo.UpsertBrand(ctx, &second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second upsert ID = %s, want existing %s", second.ID, first.ID)
	}

	var count int64
	if err := db.Model(&domain.Brand{}).Where("name = ?", "Maison Lavande").Count(&count).Error; err != nil {
		t.Fatalf("failed to count brands: %v", err)
	}
	if count != 1 {
		t.Errorf("brand rows = %d, want 1", count)
	}

	other := domain.Brand{ID: uuid.New().String(), Name: "Maison Neroli"}
	if err := repo.UpsertBrand(ctx, &other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.ID == first.ID {
		t.Error("distinct brand names must not share an ID")
	}
}
