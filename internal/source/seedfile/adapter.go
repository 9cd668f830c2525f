package seedfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/Nicco6598/sillage-sub000/internal/source"
)

const (
	SourceID   = "seedfile"
	SourceName = "Seed dataset"
)

// seedRecord is the on-disk JSON shape of one dataset entry.
type seedRecord struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	BrandCountry  string   `json:"brand_country"`
	Gender        string   `json:"gender"`
	LaunchYear    int      `json:"launch_year"`
	Concentration string   `json:"concentration"`
	TopNotes      []string `json:"top_notes"`
	HeartNotes    []string `json:"heart_notes"`
	BaseNotes     []string `json:"base_notes"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
}

// Adapter implements the Source interface over a directory of JSON dataset
// files. The whole dataset is loaded on first fetch and paged by index cursor.
type Adapter struct {
	datasetPath string
	items       []source.FragranceItem
	loaded      bool
}

// NewAdapter creates a new seed dataset adapter.
func NewAdapter(datasetPath string) *Adapter {
	return &Adapter{
		datasetPath: datasetPath,
	}
}

// GetSourceID returns the unique identifier for this source
func (a *Adapter) GetSourceID() string {
	return SourceID
}

// GetDisplayName returns a human-readable name for this source
func (a *Adapter) GetDisplayName() string {
	return SourceName
}

// SupportsIncremental returns true if this source supports incremental updates
func (a *Adapter) SupportsIncremental() bool {
	return false // Static dataset, no incremental updates
}

// FetchBatch fetches a batch of catalog items
func (a *Adapter) FetchBatch(ctx context.Context, cursor string, limit int) ([]source.FragranceItem, string, error) {
	if !a.loaded {
		if err := a.loadItems(); err != nil {
			return nil, "", fmt.Errorf("failed to load dataset: %w", err)
		}
		a.loaded = true
	}

	startIndex := 0
	if cursor != "" {
		var err error
		startIndex, err = strconv.Atoi(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", err)
		}
	}

	if startIndex >= len(a.items) {
		return []source.FragranceItem{}, "", nil // No more items
	}

	endIndex := startIndex + limit
	if endIndex > len(a.items) {
		endIndex = len(a.items)
	}

	batch := a.items[startIndex:endIndex]

	nextCursor := ""
	if endIndex < len(a.items) {
		nextCursor = strconv.Itoa(endIndex)
	}

	return batch, nextCursor, nil
}

// loadItems reads every *.json file under the dataset path.
func (a *Adapter) loadItems() error {
	if _, err := os.Stat(a.datasetPath); os.IsNotExist(err) {
		return fmt.Errorf("dataset path does not exist: %s", a.datasetPath)
	}

	paths, err := filepath.Glob(filepath.Join(a.datasetPath, "*.json"))
	if err != nil {
		return err
	}
	sort.Strings(paths)

	a.items = []source.FragranceItem{}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		var records []seedRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for _, rec := range records {
			if rec.ID == "" || rec.Name == "" || rec.Brand == "" {
				continue
			}
			a.items = append(a.items, source.FragranceItem{
				SourceID:      rec.ID,
				Name:          rec.Name,
				Brand:         rec.Brand,
				BrandCountry:  rec.BrandCountry,
				Gender:        rec.Gender,
				LaunchYear:    rec.LaunchYear,
				Concentration: rec.Concentration,
				TopNotes:      rec.TopNotes,
				HeartNotes:    rec.HeartNotes,
				BaseNotes:     rec.BaseNotes,
				Description:   rec.Description,
				ImageURL:      rec.ImageURL,
			})
		}
	}

	return nil
}
