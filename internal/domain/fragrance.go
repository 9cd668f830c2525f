package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// FragranceStatus represents the catalog lifecycle status of a fragrance record.
// Values include FragranceStatusPending, FragranceStatusActive, and FragranceStatusHidden.
type FragranceStatus string

const (
	FragranceStatusPending FragranceStatus = "pending"
	FragranceStatusActive  FragranceStatus = "active"
	FragranceStatusHidden  FragranceStatus = "hidden"
)

// StringArray is a custom type for storing string arrays as JSON in the database.
type StringArray []string

// Value implements the driver.Valuer interface for database serialization.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StringArray")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, a)
}

// Brand represents a perfume house in the catalog.
type Brand struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null;uniqueIndex:idx_brands_name" json:"name"`
	Country   string    `gorm:"type:text" json:"country,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Brand.
func (Brand) TableName() string {
	return "brands"
}

// Fragrance represents a perfume in the catalog.
// The Catalog* fields are precomputed catalog-level community averages used as
// fallback defaults when a filtered review set carries no value for a metric.
type Fragrance struct {
	ID            string      `gorm:"type:text;primaryKey" json:"id"`
	SourceType    string      `gorm:"type:text;not null;index:idx_fragrances_source,unique" json:"source_type"`
	SourceID      string      `gorm:"type:text;not null;index:idx_fragrances_source,unique" json:"source_id"`
	BrandID       string      `gorm:"type:text;not null;index:idx_fragrances_brand" json:"brand_id"`
	Name          string      `gorm:"type:text;not null" json:"name"`
	Gender        string      `gorm:"type:text" json:"gender"`
	LaunchYear    int         `json:"launch_year,omitempty"`
	Concentration string      `gorm:"type:text" json:"concentration,omitempty"`
	Description   string      `gorm:"type:text" json:"description,omitempty"`
	TopNotes      StringArray `gorm:"type:text" json:"top_notes"`
	HeartNotes    StringArray `gorm:"type:text" json:"heart_notes"`
	BaseNotes     StringArray `gorm:"type:text" json:"base_notes"`
	ImageKey      string      `gorm:"type:text" json:"image_key,omitempty"`
	ImageWidth    int         `json:"image_width,omitempty"`
	ImageHeight   int         `json:"image_height,omitempty"`

	CatalogSillage   float64 `json:"catalog_sillage"`
	CatalogLongevity float64 `json:"catalog_longevity"`
	CatalogGender    string  `gorm:"type:text" json:"catalog_gender"`

	Status    FragranceStatus `gorm:"type:text;index:idx_fragrances_status;default:active" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Brand *Brand `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

// TableName returns the database table name for Fragrance.
func (Fragrance) TableName() string {
	return "fragrances"
}
