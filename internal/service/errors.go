package service

import "errors"

// Sentinel errors shared across the service layer. Handlers translate these
// into user-facing responses; anything else is treated as a storage failure
// and surfaced generically.
var (
	// ErrUnauthenticated is returned when a vote, suggestion, or other
	// user-owned action arrives without an identified user.
	ErrUnauthenticated = errors.New("user must be logged in")

	// ErrInvalidVoteValue is returned when a vote value is not +1 or -1.
	ErrInvalidVoteValue = errors.New("vote value must be +1 or -1")

	// ErrEdgeNotFound is returned when a vote targets a similarity edge that
	// does not exist.
	ErrEdgeNotFound = errors.New("similarity edge not found")

	// ErrFragranceNotFound is returned when an operation references an
	// unknown fragrance.
	ErrFragranceNotFound = errors.New("fragrance not found")

	// ErrNotOwner is returned when a user tries to mutate a resource owned
	// by somebody else.
	ErrNotOwner = errors.New("resource is owned by another user")

	// ErrReviewRejected is returned when the external content moderator
	// declines a review submission.
	ErrReviewRejected = errors.New("review was rejected by moderation")

	// ErrInvalidReview wraps field validation failures on review input.
	ErrInvalidReview = errors.New("invalid review")

	// ErrNoMatchingReviews signals an aggregation data gap: the requested
	// filter matched zero reviews. Callers must render an explicit empty
	// state instead of misleading zero averages.
	ErrNoMatchingReviews = errors.New("no reviews match the requested filter")
)
