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

// rejectAllModerator declines everything, standing in for an external
// moderation verdict.
type rejectAllModerator struct{}

func (rejectAllModerator) Allow(ctx context.Context, body string) (bool, error) {
	return false, nil
}

func newTestReviewService(t *testing.T, moderator ContentModerator) (*ReviewService, *gorm.DB) {
	t.Helper()

	db := newServiceTestDB(t)
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewFragranceRepository(db),
		moderator,
		logger.NewDefault(),
	), db
}

func TestReviewService_SubmitGuards(t *testing.T) {
	svc, db := newTestReviewService(t, nil)
	ctx := context.Background()
	id := createFragrance(t, db, "Portrait of a Lady")

	if _, err := svc.Submit(ctx, "", id, ReviewInput{}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Submit(ctx, "user-1", "missing", ReviewInput{}); !errors.Is(err, ErrFragranceNotFound) {
		t.Errorf("expected ErrFragranceNotFound, got %v", err)
	}
	if _, err := svc.Submit(ctx, "user-1", id, ReviewInput{Rating: 9}); !errors.Is(err, ErrInvalidReview) {
		t.Errorf("expected ErrInvalidReview, got %v", err)
	}
}

func TestReviewService_SubmitModeration(t *testing.T) {
	svc, db := newTestReviewService(t, rejectAllModerator{})
	ctx := context.Background()
	id := createFragrance(t, db, "Molecule 01")

	// Body-less reviews skip the moderator entirely.
	review, err := svc.Submit(ctx, "user-1", id, ReviewInput{Rating: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.ID == "" {
		t.Error("expected stored review to carry an ID")
	}

	_, err = svc.Submit(ctx, "user-1", id, ReviewInput{Body: "some text"})
	if !errors.Is(err, ErrReviewRejected) {
		t.Errorf("expected ErrReviewRejected, got %v", err)
	}
}

func TestReviewService_DeleteIsOwnerScoped(t *testing.T) {
	svc, db := newTestReviewService(t, nil)
	ctx := context.Background()
	id := createFragrance(t, db, "Musc Ravageur")

	review, err := svc.Submit(ctx, "owner", id, ReviewInput{Rating: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(ctx, review.ID, "someone-else"); err == nil {
		t.Error("expected delete by non-owner to fail")
	}
	if err := svc.Delete(ctx, review.ID, "owner"); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
}

func TestReviewService_StatsYearFilterAndTrend(t *testing.T) {
	svc, db := newTestReviewService(t, nil)
	ctx := context.Background()
	id := createFragrance(t, db, "Eau Sauvage")

	seed := []ReviewInput{
		{Sillage: 4, Longevity: 4, ProductionDate: "2016-03"},
		{Sillage: 4, Longevity: 4, ProductionDate: "2016-09"},
		{Sillage: 2, Longevity: 2, ProductionDate: "2023-01"},
	}
	for i, input := range seed {
		if _, err := svc.Submit(ctx, "user-1", id, input); err != nil {
			t.Fatalf("failed to seed review %d: %v", i, err)
		}
	}

	unfiltered, err := svc.Stats(ctx, id, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unfiltered.Stats.Count != 3 {
		t.Errorf("unfiltered count = %d, want 3", unfiltered.Stats.Count)
	}
	if unfiltered.Verdict != TrendNone {
		t.Errorf("unfiltered verdict = %q, want %q", unfiltered.Verdict, TrendNone)
	}

	// The 2023 batch sits well below the baseline mean.
	filtered, err := svc.Stats(ctx, id, []int{2023})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filtered.Stats.Count != 1 {
		t.Errorf("filtered count = %d, want 1", filtered.Stats.Count)
	}
	if !filtered.Stats.IsFiltered {
		t.Error("expected IsFiltered to be set")
	}
	if filtered.Verdict != TrendReformulation {
		t.Errorf("filtered verdict = %q, want %q", filtered.Verdict, TrendReformulation)
	}

	_, err = svc.Stats(ctx, id, []int{1999})
	if !errors.Is(err, ErrNoMatchingReviews) {
		t.Errorf("expected ErrNoMatchingReviews, got %v", err)
	}

	_, err = svc.Stats(ctx, "missing", nil)
	if !errors.Is(err, ErrFragranceNotFound) {
		t.Errorf("expected ErrFragranceNotFound, got %v", err)
	}
}

func TestReviewService_StatsUsesCatalogDefaults(t *testing.T) {
	svc, db := newTestReviewService(t, nil)
	ctx := context.Background()
	id := createFragrance(t, db, "Bel Ami")
	if err := db.Model(&domain.Fragrance{}).Where("id = ?", id).
		Updates(map[string]interface{}{"catalog_sillage": 3.4, "catalog_longevity": 2.1}).Error; err != nil {
		t.Fatalf("failed to set catalog defaults: %v", err)
	}

	// Rating-only review set: sillage and longevity have no votes.
	if _, err := svc.Submit(ctx, "user-1", id, ReviewInput{Rating: 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.Stats(ctx, id, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stats.Sillage != 3.4 {
		t.Errorf("sillage = %v, want catalog default 3.4", result.Stats.Sillage)
	}
	if result.Stats.Longevity != 2.1 {
		t.Errorf("longevity = %v, want catalog default 2.1", result.Stats.Longevity)
	}
}
