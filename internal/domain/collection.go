package domain

import "time"

// CollectionKind distinguishes the built-in favorites list from user-named shelves.
type CollectionKind string

const (
	CollectionKindFavorites CollectionKind = "favorites"
	CollectionKindShelf     CollectionKind = "shelf"
)

// Collection is a user-owned list of fragrances (favorites or a named shelf).
type Collection struct {
	ID        string         `gorm:"type:text;primaryKey" json:"id"`
	UserID    string         `gorm:"type:text;not null;index:idx_collections_user" json:"user_id"`
	Name      string         `gorm:"type:text;not null" json:"name"`
	Kind      CollectionKind `gorm:"type:text;not null;default:shelf" json:"kind"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName returns the database table name for Collection.
func (Collection) TableName() string {
	return "collections"
}

// CollectionItem is one fragrance inside a collection; a fragrance appears at
// most once per collection.
type CollectionItem struct {
	ID           string    `gorm:"type:text;primaryKey" json:"id"`
	CollectionID string    `gorm:"type:text;not null;index:idx_collection_items_pair,unique" json:"collection_id"`
	FragranceID  string    `gorm:"type:text;not null;index:idx_collection_items_pair,unique" json:"fragrance_id"`
	CreatedAt    time.Time `json:"created_at"`

	Fragrance *Fragrance `gorm:"foreignKey:FragranceID" json:"fragrance,omitempty"`
}

// TableName returns the database table name for CollectionItem.
func (CollectionItem) TableName() string {
	return "collection_items"
}
