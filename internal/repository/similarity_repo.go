package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SimilarityRepository handles similarity edge and vote data operations.
// The vote ledger guarantees at most one vote row per (edge, user); every
// mutation runs as a single transaction that also recomputes the aggregate,
// so no caller can observe a score reflecting a partial write.
type SimilarityRepository struct {
	db *gorm.DB
}

// NewSimilarityRepository creates a new SimilarityRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *SimilarityRepository: repository instance bound to db.
func NewSimilarityRepository(db *gorm.DB) *SimilarityRepository {
	return &SimilarityRepository{db: db}
}

// CreateEdge inserts a "reminds me of" suggestion between two fragrances.
// Self-referential and duplicate suggestions are absorbed as no-ops: the
// returned edge ID is empty and the error nil, since neither case is
// actionable by the suggesting user.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - sourceID: the fragrance the suggestion is attached to.
//   - targetID: the fragrance it reminds the community of.
// Returns:
//   - string: new edge ID, or empty on no-op.
//   - error: non-nil if the insert fails for any other reason.
func (r *SimilarityRepository) CreateEdge(ctx context.Context, sourceID, targetID string) (string, error) {
	if sourceID == targetID {
		return "", nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.SimilarityEdge{}).
		Where("source_id = ? AND target_id = ?", sourceID, targetID).
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to check for existing edge: %w", err)
	}
	if count > 0 {
		return "", nil
	}

	edge := domain.SimilarityEdge{
		ID:       uuid.New().String(),
		SourceID: sourceID,
		TargetID: targetID,
	}
	if err := r.db.WithContext(ctx).Create(&edge).Error; err != nil {
		// A concurrent suggest for the same pair may have won the race; the
		// unique index makes that a duplicate, which is still a no-op.
		var recheck int64
		if rcErr := r.db.WithContext(ctx).Model(&domain.SimilarityEdge{}).
			Where("source_id = ? AND target_id = ?", sourceID, targetID).
			Count(&recheck).Error; rcErr == nil && recheck > 0 {
			return "", nil
		}
		return "", fmt.Errorf("failed to create similarity edge: %w", err)
	}
	return edge.ID, nil
}

// GetEdge retrieves a similarity edge by ID.
func (r *SimilarityRepository) GetEdge(ctx context.Context, edgeID string) (*domain.SimilarityEdge, error) {
	var edge domain.SimilarityEdge
	if err := r.db.WithContext(ctx).First(&edge, "id = ?", edgeID).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

// scoredEdgeRow is the scan target for the grouped aggregation query.
type scoredEdgeRow struct {
	ID        string
	TargetID  string
	CreatedAt time.Time
	Score     int
	Upvotes   int
	Downvotes int
}

// ListEdgesWithScores retrieves the similarity edges sourced from a fragrance,
// each joined with its vote aggregate and target fragrance, ordered by score
// descending with creation order (oldest first) as a stable tie-break.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - sourceID: fragrance whose suggestions to list.
//   - limit: maximum number of edges to return; 0 means no limit.
// Returns:
//   - []domain.ScoredEdge: scored edges including hidden ones.
//   - error: non-nil if the query fails.
func (r *SimilarityRepository) ListEdgesWithScores(ctx context.Context, sourceID string, limit int) ([]domain.ScoredEdge, error) {
	var rows []scoredEdgeRow
	query := r.db.WithContext(ctx).
		Table("similarity_edges AS e").
		Select(`e.id,
			e.target_id,
			e.created_at,
			COALESCE(SUM(v.value), 0) AS score,
			COUNT(CASE WHEN v.value > 0 THEN 1 END) AS upvotes,
			COUNT(CASE WHEN v.value < 0 THEN 1 END) AS downvotes`).
		Joins("LEFT JOIN similarity_votes v ON v.edge_id = e.id").
		Where("e.source_id = ?", sourceID).
		Group("e.id, e.target_id, e.created_at").
		Order("score DESC, e.created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list similarity edges: %w", err)
	}

	if len(rows) == 0 {
		return []domain.ScoredEdge{}, nil
	}

	targetIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		targetIDs = append(targetIDs, row.TargetID)
	}
	var targets []domain.Fragrance
	if err := r.db.WithContext(ctx).Preload("Brand").
		Where("id IN ?", targetIDs).
		Find(&targets).Error; err != nil {
		return nil, fmt.Errorf("failed to load target fragrances: %w", err)
	}
	targetByID := make(map[string]*domain.Fragrance, len(targets))
	for i := range targets {
		targetByID[targets[i].ID] = &targets[i]
	}

	edges := make([]domain.ScoredEdge, 0, len(rows))
	for _, row := range rows {
		edges = append(edges, domain.ScoredEdge{
			EdgeID:    row.ID,
			Target:    targetByID[row.TargetID],
			Score:     row.Score,
			Upvotes:   row.Upvotes,
			Downvotes: row.Downvotes,
			CreatedAt: row.CreatedAt,
		})
	}
	return edges, nil
}

// UpsertOrToggleVote applies one user's vote to an edge through the three-state
// machine {no vote, upvoted, downvoted}:
//   - no prior vote: insert the new vote.
//   - prior vote with the same value: delete it (toggle-off).
//   - prior vote with the opposite value: update it in place (switch).
//
// The transition and the aggregate recomputation run in one transaction.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - edgeID: edge being voted on.
//   - userID: voting user; the vote row is exclusively theirs.
//   - value: +1 or -1.
// Returns:
//   - domain.AggregatedScore: fresh aggregate after the transition.
//   - error: gorm.ErrRecordNotFound if the edge does not exist, otherwise any
//     storage failure.
func (r *SimilarityRepository) UpsertOrToggleVote(ctx context.Context, edgeID, userID string, value int) (domain.AggregatedScore, error) {
	var agg domain.AggregatedScore
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.SimilarityEdge{}).Where("id = ?", edgeID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check edge: %w", err)
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		var existing domain.SimilarityVote
		err := tx.Where("edge_id = ? AND user_id = ?", edgeID, userID).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := domain.SimilarityVote{
				ID:     uuid.New().String(),
				EdgeID: edgeID,
				UserID: userID,
				Value:  value,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return fmt.Errorf("failed to insert vote: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to load existing vote: %w", err)
		case existing.Value == value:
			// Re-casting the identical vote retracts it.
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("failed to retract vote: %w", err)
			}
		default:
			if err := tx.Model(&existing).Update("value", value).Error; err != nil {
				return fmt.Errorf("failed to switch vote: %w", err)
			}
		}

		return aggregateScore(tx, edgeID, &agg)
	})
	if err != nil {
		return domain.AggregatedScore{}, err
	}
	return agg, nil
}

// AggregateScore recomputes the vote aggregate for one edge.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - edgeID: edge to aggregate.
// Returns:
//   - domain.AggregatedScore: score, upvotes, and downvotes.
//   - error: non-nil if the query fails.
func (r *SimilarityRepository) AggregateScore(ctx context.Context, edgeID string) (domain.AggregatedScore, error) {
	var agg domain.AggregatedScore
	if err := aggregateScore(r.db.WithContext(ctx), edgeID, &agg); err != nil {
		return domain.AggregatedScore{}, err
	}
	return agg, nil
}

// aggregateScore runs the single grouped aggregation over the vote rows for an
// edge. A lone SUM avoids any read-then-loop race under concurrent voting.
func aggregateScore(tx *gorm.DB, edgeID string, agg *domain.AggregatedScore) error {
	if err := tx.Model(&domain.SimilarityVote{}).
		Select(`COALESCE(SUM(value), 0) AS score,
			COUNT(CASE WHEN value > 0 THEN 1 END) AS upvotes,
			COUNT(CASE WHEN value < 0 THEN 1 END) AS downvotes`).
		Where("edge_id = ?", edgeID).
		Scan(agg).Error; err != nil {
		return fmt.Errorf("failed to aggregate votes: %w", err)
	}
	return nil
}

// GetUserVotesForFragrance returns the user's existing votes across all edges
// sourced from a fragrance, keyed by edge ID. Used to hydrate "did I already
// vote" state on page load.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - fragranceID: fragrance whose suggestion edges to inspect.
//   - userID: user whose votes to collect.
// Returns:
//   - map[string]int: edge ID to vote value (+1 or -1).
//   - error: non-nil if the query fails.
func (r *SimilarityRepository) GetUserVotesForFragrance(ctx context.Context, fragranceID, userID string) (map[string]int, error) {
	type voteRow struct {
		EdgeID string
		Value  int
	}
	var rows []voteRow
	if err := r.db.WithContext(ctx).
		Table("similarity_votes AS v").
		Select("v.edge_id, v.value").
		Joins("JOIN similarity_edges e ON e.id = v.edge_id").
		Where("e.source_id = ? AND v.user_id = ?", fragranceID, userID).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load user votes: %w", err)
	}

	votes := make(map[string]int, len(rows))
	for _, row := range rows {
		votes[row.EdgeID] = row.Value
	}
	return votes, nil
}
