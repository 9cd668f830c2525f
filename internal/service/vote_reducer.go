package service

import "github.com/Nicco6598/sillage-sub000/internal/domain"

// VoteState is the per-edge aggregate as one viewer sees it: the public score
// triple plus that viewer's own vote (0 when they have not voted).
//
// Apply is the single transition function shared by the server tests and any
// optimistic client mirror, so the two can never diverge in their arithmetic.
// The optimistic copy is best-effort UI responsiveness only; the server value
// returned by CastVote is the system of record, reconciled on the next full
// fetch.
type VoteState struct {
	Score     int `json:"score"`
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	UserVote  int `json:"user_vote"`
}

// Apply advances the state machine for a click on the given value (+1 or -1):
//   - no prior vote: the contribution is added (score moves by ±1).
//   - same value again: the prior contribution is reversed (toggle-off).
//   - opposite value: old contribution reversed and new one added (net ±2).
//
// Any other value returns the state unchanged.
func (s VoteState) Apply(value int) VoteState {
	if value != domain.VoteUp && value != domain.VoteDown {
		return s
	}

	next := s
	switch {
	case s.UserVote == 0:
		next.Score += value
		if value > 0 {
			next.Upvotes++
		} else {
			next.Downvotes++
		}
		next.UserVote = value
	case s.UserVote == value:
		next.Score -= value
		if value > 0 {
			next.Upvotes--
		} else {
			next.Downvotes--
		}
		next.UserVote = 0
	default:
		next.Score += 2 * value
		if value > 0 {
			next.Upvotes++
			next.Downvotes--
		} else {
			next.Upvotes--
			next.Downvotes++
		}
		next.UserVote = value
	}
	return next
}

// Aggregate returns the public portion of the state.
func (s VoteState) Aggregate() domain.AggregatedScore {
	return domain.AggregatedScore{
		Score:     s.Score,
		Upvotes:   s.Upvotes,
		Downvotes: s.Downvotes,
	}
}
