package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
	"github.com/Nicco6598/sillage-sub000/internal/logger"
	"github.com/Nicco6598/sillage-sub000/internal/repository"
	"gorm.io/gorm"
)

const (
	// rejectionThreshold is the fixed score below which an edge drops out of
	// default display. Hidden edges stay in storage and keep accepting votes,
	// so a rejected suggestion can recover.
	rejectionThreshold = -3

	// defaultSimilarPageSize is the number of suggestions shown before the
	// user asks for all of them. Display-only: edge counts per fragrance are
	// small, so no server cursor is needed.
	defaultSimilarPageSize = 6
)

// SimilarityService handles community "reminds me of" suggestions and their
// vote aggregation.
type SimilarityService struct {
	similarityRepo *repository.SimilarityRepository
	fragranceRepo  *repository.FragranceRepository
	logger         *logger.Logger
}

// NewSimilarityService creates a new similarity service.
// Parameters:
//   - similarityRepo: repository for edges and votes.
//   - fragranceRepo: repository for catalog lookups.
//   - log: logger instance.
// Returns:
//   - *SimilarityService: initialized service.
func NewSimilarityService(
	similarityRepo *repository.SimilarityRepository,
	fragranceRepo *repository.FragranceRepository,
	log *logger.Logger,
) *SimilarityService {
	return &SimilarityService{
		similarityRepo: similarityRepo,
		fragranceRepo:  fragranceRepo,
		logger:         log,
	}
}

// log returns a logger from context if available, otherwise returns the default logger
func (s *SimilarityService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// Suggest records a community suggestion that sourceID reminds of targetID.
// Self-referential and already-suggested pairs succeed as no-ops with an empty
// edge ID; they are not user-actionable errors.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: suggesting user; required.
//   - sourceID: fragrance the suggestion is attached to.
//   - targetID: fragrance it reminds of.
// Returns:
//   - string: new edge ID, or empty on no-op.
//   - error: ErrUnauthenticated, ErrFragranceNotFound, or a storage failure.
func (s *SimilarityService) Suggest(ctx context.Context, userID, sourceID, targetID string) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}

	// The edge references two catalog items; confirm both exist so a stale
	// client cannot create dangling suggestions.
	for _, id := range []string{sourceID, targetID} {
		if _, err := s.fragranceRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrFragranceNotFound
			}
			return "", fmt.Errorf("failed to verify fragrance %s: %w", id, err)
		}
	}

	edgeID, err := s.similarityRepo.CreateEdge(ctx, sourceID, targetID)
	if err != nil {
		return "", err
	}
	if edgeID == "" {
		s.log(ctx).WithFields(logger.Fields{
			"source_id": sourceID,
			"target_id": targetID,
		}).Debug("Similarity suggestion absorbed as no-op")
		return "", nil
	}

	s.log(ctx).WithFields(logger.Fields{
		"edge_id":   edgeID,
		"source_id": sourceID,
		"target_id": targetID,
	}).Info("Similarity suggestion created")
	return edgeID, nil
}

// ListSimilar returns the visible similarity suggestions for a fragrance:
// edges with their fresh aggregates, score-filtered and display-paginated.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - fragranceID: fragrance whose suggestions to list.
//   - showAll: when false, only the first page of visible edges is returned.
// Returns:
//   - []domain.ScoredEdge: visible edges, score descending.
//   - int: total number of visible edges before pagination.
//   - error: non-nil if the query fails.
func (s *SimilarityService) ListSimilar(ctx context.Context, fragranceID string, showAll bool) ([]domain.ScoredEdge, int, error) {
	edges, err := s.similarityRepo.ListEdgesWithScores(ctx, fragranceID, 0)
	if err != nil {
		return nil, 0, err
	}
	visible := Visible(edges)
	return VisiblePage(visible, defaultSimilarPageSize, showAll), len(visible), nil
}

// CastVote applies one user's vote to an edge through the three-state
// toggle machine and returns the fresh aggregate from the same transaction.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - edgeID: edge being voted on.
//   - userID: voting user; required.
//   - value: +1 or -1.
// Returns:
//   - domain.AggregatedScore: aggregate after the transition.
//   - error: ErrUnauthenticated, ErrInvalidVoteValue, ErrEdgeNotFound, or a
//     storage failure.
func (s *SimilarityService) CastVote(ctx context.Context, edgeID, userID string, value int) (domain.AggregatedScore, error) {
	if userID == "" {
		return domain.AggregatedScore{}, ErrUnauthenticated
	}
	if value != domain.VoteUp && value != domain.VoteDown {
		return domain.AggregatedScore{}, ErrInvalidVoteValue
	}

	agg, err := s.similarityRepo.UpsertOrToggleVote(ctx, edgeID, userID, value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AggregatedScore{}, ErrEdgeNotFound
		}
		return domain.AggregatedScore{}, err
	}

	s.log(ctx).WithFields(logger.Fields{
		"edge_id": edgeID,
		"value":   value,
		"score":   agg.Score,
	}).Info("Similarity vote applied")
	return agg, nil
}

// UserVotes returns the user's existing votes on a fragrance's suggestion
// edges, keyed by edge ID. Anonymous viewers get an empty map.
func (s *SimilarityService) UserVotes(ctx context.Context, fragranceID, userID string) (map[string]int, error) {
	if userID == "" {
		return map[string]int{}, nil
	}
	return s.similarityRepo.GetUserVotesForFragrance(ctx, fragranceID, userID)
}

// Visible filters out edges whose score fell below the rejection threshold.
// Hidden edges are not deleted or altered; additional upvotes can bring an
// edge back above the threshold and it reappears.
func Visible(edges []domain.ScoredEdge) []domain.ScoredEdge {
	visible := make([]domain.ScoredEdge, 0, len(edges))
	for _, edge := range edges {
		if edge.Score >= rejectionThreshold {
			visible = append(visible, edge)
		}
	}
	return visible
}

// VisiblePage returns the first pageSize entries of the filtered list unless
// the caller asked for all of them.
func VisiblePage(edges []domain.ScoredEdge, pageSize int, showAll bool) []domain.ScoredEdge {
	if showAll || len(edges) <= pageSize {
		return edges
	}
	return edges[:pageSize]
}
