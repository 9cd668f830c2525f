package domain

import "time"

// Gender vote categories accepted on a review.
const (
	GenderMasculine = "masculine"
	GenderFeminine  = "feminine"
	GenderUnisex    = "unisex"
)

// Season tokens accepted in a review's comma-joined season vote.
const (
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
	SeasonWinter = "winter"
)

// Seasons lists the season tokens in display order.
var Seasons = []string{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}

// Review is a community review of a fragrance. Numeric attributes use zero for
// "not provided"; the stats aggregator only averages positive values. The
// record is immutable input to aggregation and is never mutated there.
type Review struct {
	ID          string `gorm:"type:text;primaryKey" json:"id"`
	FragranceID string `gorm:"type:text;not null;index:idx_reviews_fragrance" json:"fragrance_id"`
	UserID      string `gorm:"type:text;not null;index:idx_reviews_user" json:"user_id"`

	Rating     float64 `json:"rating,omitempty"`      // overall 1-5, 0 when absent
	PriceValue float64 `json:"price_value,omitempty"` // value for money 1-5, 0 when absent
	Sillage    float64 `json:"sillage,omitempty"`     // projection 1-5, 0 when absent
	Longevity  float64 `json:"longevity,omitempty"`   // duration 1-5, 0 when absent

	GenderVote string `gorm:"type:text" json:"gender_vote,omitempty"` // masculine, feminine, unisex
	SeasonVote string `gorm:"type:text" json:"season_vote,omitempty"` // comma-joined season tokens

	BatchCode      string `gorm:"type:text" json:"batch_code,omitempty"`
	ProductionDate string `gorm:"type:text" json:"production_date,omitempty"` // year-bearing, "YYYY-..."

	Body      string    `gorm:"type:text" json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Review.
func (Review) TableName() string {
	return "reviews"
}
