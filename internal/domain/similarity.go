package domain

import "time"

// Vote values accepted by the similarity vote ledger.
const (
	VoteUp   = 1
	VoteDown = -1
)

// SimilarityEdge represents a community "reminds me of" suggestion between two
// distinct fragrances. At most one edge exists per ordered (source, target)
// pair; nobody owns an edge after creation.
type SimilarityEdge struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	SourceID  string    `gorm:"type:text;not null;index:idx_similarity_pair,unique" json:"source_id"`
	TargetID  string    `gorm:"type:text;not null;index:idx_similarity_pair,unique" json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for SimilarityEdge.
func (SimilarityEdge) TableName() string {
	return "similarity_edges"
}

// SimilarityVote is one user's vote on a similarity edge. The unique index on
// (edge_id, user_id) is the only guard the ledger needs: each mutation is a
// single statement under that constraint.
type SimilarityVote struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	EdgeID    string    `gorm:"type:text;not null;index:idx_similarity_votes_edge_user,unique" json:"edge_id"`
	UserID    string    `gorm:"type:text;not null;index:idx_similarity_votes_edge_user,unique" json:"user_id"`
	Value     int       `gorm:"not null" json:"value"` // +1 or -1
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for SimilarityVote.
func (SimilarityVote) TableName() string {
	return "similarity_votes"
}

// AggregatedScore is the derived vote aggregate for one edge. It is never
// stored as a column; every read recomputes it from the vote rows so the sum
// cannot drift.
type AggregatedScore struct {
	Score     int `json:"score"`
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// ScoredEdge is an edge joined with its aggregate and the target fragrance,
// as returned by the per-fragrance similarity listing.
type ScoredEdge struct {
	EdgeID    string     `json:"edge_id"`
	Target    *Fragrance `json:"target"`
	Score     int        `json:"score"`
	Upvotes   int        `json:"upvotes"`
	Downvotes int        `json:"downvotes"`
	CreatedAt time.Time  `json:"created_at"`
}
