package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
	"github.com/Nicco6598/sillage-sub000/internal/logger"
	"github.com/Nicco6598/sillage-sub000/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentModerator is the external moderation collaborator. The service only
// consumes its pass/fail verdict; rate limiting and the moderation model
// itself live outside this codebase.
type ContentModerator interface {
	// Allow reports whether the free-text body may be published.
	Allow(ctx context.Context, body string) (bool, error)
}

// AllowAllModerator passes every submission. Used in development and tests.
type AllowAllModerator struct{}

// Allow always reports true.
func (AllowAllModerator) Allow(ctx context.Context, body string) (bool, error) {
	return true, nil
}

// ReviewService handles review submission and the live stats recomputation.
type ReviewService struct {
	reviewRepo    *repository.ReviewRepository
	fragranceRepo *repository.FragranceRepository
	moderator     ContentModerator
	logger        *logger.Logger
}

// NewReviewService creates a new review service.
// Parameters:
//   - reviewRepo: repository for review records.
//   - fragranceRepo: repository for catalog lookups and stats defaults.
//   - moderator: external content moderation verdict provider.
//   - log: logger instance.
// Returns:
//   - *ReviewService: initialized service.
func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	fragranceRepo *repository.FragranceRepository,
	moderator ContentModerator,
	log *logger.Logger,
) *ReviewService {
	if moderator == nil {
		moderator = AllowAllModerator{}
	}
	return &ReviewService{
		reviewRepo:    reviewRepo,
		fragranceRepo: fragranceRepo,
		moderator:     moderator,
		logger:        log,
	}
}

// log returns a logger from context if available, otherwise returns the default logger
func (s *ReviewService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// ReviewInput is a review submission. Zero numeric values mean "not provided".
type ReviewInput struct {
	Rating         float64 `json:"rating"`
	PriceValue     float64 `json:"price_value"`
	Sillage        float64 `json:"sillage"`
	Longevity      float64 `json:"longevity"`
	GenderVote     string  `json:"gender_vote"`
	SeasonVote     string  `json:"season_vote"`
	BatchCode      string  `json:"batch_code"`
	ProductionDate string  `json:"production_date"`
	Body           string  `json:"body"`
}

// validate checks ranges and enum tokens without mutating the input.
func (in *ReviewInput) validate() error {
	for name, v := range map[string]float64{
		"rating":      in.Rating,
		"price_value": in.PriceValue,
		"sillage":     in.Sillage,
		"longevity":   in.Longevity,
	} {
		if v != 0 && (v < 1 || v > 5) {
			return fmt.Errorf("%s must be between 1 and 5", name)
		}
	}
	switch in.GenderVote {
	case "", domain.GenderMasculine, domain.GenderFeminine, domain.GenderUnisex:
	default:
		return fmt.Errorf("unknown gender vote %q", in.GenderVote)
	}
	if in.SeasonVote != "" {
		for _, token := range strings.Split(in.SeasonVote, ",") {
			switch strings.TrimSpace(strings.ToLower(token)) {
			case domain.SeasonSpring, domain.SeasonSummer, domain.SeasonAutumn, domain.SeasonWinter:
			default:
				return fmt.Errorf("unknown season vote %q", token)
			}
		}
	}
	return nil
}

// Submit validates, moderates, and persists a review.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: submitting user; required.
//   - fragranceID: fragrance being reviewed.
//   - input: review attributes.
// Returns:
//   - *domain.Review: the stored review.
//   - error: ErrUnauthenticated, ErrFragranceNotFound, ErrReviewRejected, a
//     validation error, or a storage failure.
func (s *ReviewService) Submit(ctx context.Context, userID, fragranceID string, input ReviewInput) (*domain.Review, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if err := input.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReview, err)
	}
	if _, err := s.fragranceRepo.GetByID(ctx, fragranceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFragranceNotFound
		}
		return nil, err
	}

	if input.Body != "" {
		allowed, err := s.moderator.Allow(ctx, input.Body)
		if err != nil {
			return nil, fmt.Errorf("moderation check failed: %w", err)
		}
		if !allowed {
			return nil, ErrReviewRejected
		}
	}

	review := &domain.Review{
		ID:             uuid.New().String(),
		FragranceID:    fragranceID,
		UserID:         userID,
		Rating:         input.Rating,
		PriceValue:     input.PriceValue,
		Sillage:        input.Sillage,
		Longevity:      input.Longevity,
		GenderVote:     strings.ToLower(input.GenderVote),
		SeasonVote:     strings.ToLower(input.SeasonVote),
		BatchCode:      input.BatchCode,
		ProductionDate: input.ProductionDate,
		Body:           input.Body,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}

	s.log(ctx).WithFields(logger.Fields{
		logger.FieldFragranceID: fragranceID,
		"review_id":             review.ID,
	}).Info("Review stored")
	return review, nil
}

// ListForFragrance returns the raw review rows for a fragrance, newest first.
// Clients run the pure stats aggregator over these locally per filter change.
func (s *ReviewService) ListForFragrance(ctx context.Context, fragranceID string) ([]domain.Review, error) {
	return s.reviewRepo.ListByFragrance(ctx, fragranceID)
}

// Delete removes the caller's own review.
func (s *ReviewService) Delete(ctx context.Context, reviewID, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	err := s.reviewRepo.Delete(ctx, reviewID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotOwner
	}
	return err
}

// StatsResult bundles the recomputed aggregate with its trend classification.
type StatsResult struct {
	Stats       ReviewStats  `json:"stats"`
	Trend       TrendDeltas  `json:"trend"`
	Verdict     TrendVerdict `json:"verdict"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// Stats recomputes the community attributes for a fragrance under an optional
// production-year filter, including the trend against the unfiltered baseline.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - fragranceID: fragrance whose reviews to aggregate.
//   - years: selected production years; empty means no filter.
// Returns:
//   - *StatsResult: aggregate plus trend verdict.
//   - error: ErrFragranceNotFound, ErrNoMatchingReviews, or a storage failure.
func (s *ReviewService) Stats(ctx context.Context, fragranceID string, years []int) (*StatsResult, error) {
	fragrance, err := s.fragranceRepo.GetByID(ctx, fragranceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFragranceNotFound
		}
		return nil, err
	}
	reviews, err := s.reviewRepo.ListByFragrance(ctx, fragranceID)
	if err != nil {
		return nil, err
	}

	selectedYears := make(map[int]bool, len(years))
	for _, year := range years {
		selectedYears[year] = true
	}

	stats, err := ComputeReviewStats(reviews, selectedYears, StatsDefaultsFor(fragrance))
	if err != nil {
		return nil, err
	}
	deltas, verdict := ComputeTrend(reviews, selectedYears)

	return &StatsResult{
		Stats:       stats,
		Trend:       deltas,
		Verdict:     verdict,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
