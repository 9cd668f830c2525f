package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
	"github.com/Nicco6598/sillage-sub000/internal/logger"
	"github.com/Nicco6598/sillage-sub000/internal/repository"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestSimilarityService(t *testing.T) (*SimilarityService, *gorm.DB) {
	t.Helper()

	db := newServiceTestDB(t)
	return NewSimilarityService(
		repository.NewSimilarityRepository(db),
		repository.NewFragranceRepository(db),
		logger.NewDefault(),
	), db
}

func createFragrance(t *testing.T, db *gorm.DB, name string) string {
	t.Helper()

	brand := domain.Brand{ID: uuid.New().String(), Name: name + " house"}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("failed to create brand: %v", err)
	}
	fragrance := domain.Fragrance{
		ID:         uuid.New().String(),
		SourceType: "test",
		SourceID:   uuid.New().String(),
		BrandID:    brand.ID,
		Name:       name,
		Status:     domain.FragranceStatusActive,
	}
	if err := db.Create(&fragrance).Error; err != nil {
		t.Fatalf("failed to create fragrance: %v", err)
	}
	return fragrance.ID
}

func TestSimilarityService_SuggestRequiresUser(t *testing.T) {
	svc, db := newTestSimilarityService(t)
	id := createFragrance(t, db, "Ombre Leather")

	_, err := svc.Suggest(context.Background(), "", id, id)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSimilarityService_SuggestUnknownFragrance(t *testing.T) {
	svc, db := newTestSimilarityService(t)
	id := createFragrance(t, db, "Tuscan Leather")

	_, err := svc.Suggest(context.Background(), "user-1", id, "missing")
	if !errors.Is(err, ErrFragranceNotFound) {
		t.Errorf("expected ErrFragranceNotFound, got %v", err)
	}

	_, err = svc.Suggest(context.Background(), "user-1", "missing", id)
	if !errors.Is(err, ErrFragranceNotFound) {
		t.Errorf("expected ErrFragranceNotFound for unknown source, got %v", err)
	}
}

func TestSimilarityService_SuggestNoOps(t *testing.T) {
	svc, db := newTestSimilarityService(t)
	ctx := context.Background()
	source := createFragrance(t, db, "Interlude")
	target := createFragrance(t, db, "Amber Absolute")

	// Self-reference succeeds with no edge.
	edgeID, err := svc.Suggest(ctx, "user-1", source, source)
	if err != nil || edgeID != "" {
		t.Errorf("self-suggestion: edge %q, err %v; want empty, nil", edgeID, err)
	}

	first, err := svc.Suggest(ctx, "user-1", source, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == "" {
		t.Fatal("expected an edge ID")
	}

	// A different user repeating the pair is still a silent no-op.
	second, err := svc.Suggest(ctx, "user-2", source, target)
	if err != nil || second != "" {
		t.Errorf("duplicate suggestion: edge %q, err %v; want empty, nil", second, err)
	}
}

func TestSimilarityService_CastVoteValidation(t *testing.T) {
	svc, _ := newTestSimilarityService(t)
	ctx := context.Background()

	if _, err := svc.CastVote(ctx, "edge", "", domain.VoteUp); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.CastVote(ctx, "edge", "user-1", 0); !errors.Is(err, ErrInvalidVoteValue) {
		t.Errorf("expected ErrInvalidVoteValue for 0, got %v", err)
	}
	if _, err := svc.CastVote(ctx, "edge", "user-1", 5); !errors.Is(err, ErrInvalidVoteValue) {
		t.Errorf("expected ErrInvalidVoteValue for 5, got %v", err)
	}
	if _, err := svc.CastVote(ctx, "missing", "user-1", domain.VoteUp); !errors.Is(err, ErrEdgeNotFound) {
		t.Errorf("expected ErrEdgeNotFound, got %v", err)
	}
}

func TestSimilarityService_RejectedEdgeHiddenButRecoverable(t *testing.T) {
	svc, db := newTestSimilarityService(t)
	ctx := context.Background()
	source := createFragrance(t, db, "Layton")
	target := createFragrance(t, db, "Herod")

	edgeID, err := svc.Suggest(ctx, "suggester", source, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Push the edge to the rejection boundary: -3 stays visible.
	for i := 0; i < 3; i++ {
		if _, err := svc.CastVote(ctx, edgeID, fmt.Sprintf("down-%d", i), domain.VoteDown); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	visible, total, err := svc.ListSimilar(ctx, source, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(visible) != 1 {
		t.Fatalf("score -3 must stay visible, got total %d", total)
	}

	// One more downvote hides it.
	if _, err := svc.CastVote(ctx, edgeID, "down-3", domain.VoteDown); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	visible, total, err = svc.ListSimilar(ctx, source, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 || len(visible) != 0 {
		t.Fatalf("score -4 must be hidden, got total %d", total)
	}

	// Hidden edges still accept votes and can climb back.
	if _, err := svc.CastVote(ctx, "up-1", "", domain.VoteUp); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("guard check failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.CastVote(ctx, edgeID, fmt.Sprintf("up-%d", i), domain.VoteUp); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	_, total, err = svc.ListSimilar(ctx, source, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 {
		t.Errorf("edge back at -2 must be visible again, got total %d", total)
	}
}

func TestSimilarityService_UserVotes(t *testing.T) {
	svc, db := newTestSimilarityService(t)
	ctx := context.Background()
	source := createFragrance(t, db, "Naxos")
	target := createFragrance(t, db, "Kalan")

	edgeID, err := svc.Suggest(ctx, "user-1", source, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CastVote(ctx, edgeID, "user-1", domain.VoteUp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	votes, err := svc.UserVotes(ctx, source, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if votes[edgeID] != domain.VoteUp {
		t.Errorf("votes[%s] = %d, want %d", edgeID, votes[edgeID], domain.VoteUp)
	}

	anonymous, err := svc.UserVotes(ctx, source, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(anonymous) != 0 {
		t.Errorf("anonymous votes = %v, want empty", anonymous)
	}
}
