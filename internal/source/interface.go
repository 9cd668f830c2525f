package source

import "context"

// FragranceItem represents one catalog entry from a data source.
type FragranceItem struct {
	SourceID      string   // Unique ID within the source
	Name          string   // Fragrance name
	Brand         string   // Perfume house name
	BrandCountry  string   // House country, when known
	Gender        string   // Marketed gender
	LaunchYear    int      // Year of release
	Concentration string   // EdT, EdP, extrait, ...
	TopNotes      []string // Notes pyramid
	HeartNotes    []string
	BaseNotes     []string
	Description   string
	ImageURL      string // Remote image URL, when available
}

// Source defines the interface for fragrance catalog data sources.
type Source interface {
	// GetSourceID returns the unique identifier for this source.
	GetSourceID() string

	// GetDisplayName returns a human-readable name for this source.
	GetDisplayName() string

	// FetchBatch fetches a batch of catalog items starting from the given cursor.
	// Parameters:
	//   - ctx: context for cancellation and deadlines.
	//   - cursor: pagination cursor or empty for first page.
	//   - limit: maximum number of items to fetch.
	// Returns:
	//   - items: batch of catalog items.
	//   - nextCursor: cursor for the next batch or empty if done.
	//   - err: non-nil if fetching fails.
	FetchBatch(ctx context.Context, cursor string, limit int) (items []FragranceItem, nextCursor string, err error)

	// SupportsIncremental returns true if this source supports incremental updates.
	SupportsIncremental() bool
}
