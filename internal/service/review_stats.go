package service

import (
	"strconv"
	"strings"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
)

// significantTrendDelta is the absolute mean shift that counts as a real
// change between a filtered review subset and the catalog baseline.
const significantTrendDelta = 0.5

// StatsDefaults carries the precomputed catalog-level values used when a
// non-empty review set has no usable votes for a metric. Returning the
// default instead of zero avoids a misleading 0.0 display. Gender has no
// default here: the gender reduction always yields a category.
type StatsDefaults struct {
	Sillage   float64
	Longevity float64
}

// ReviewStats is the recomputed community aggregate for one review set.
type ReviewStats struct {
	Sillage           float64            `json:"sillage"`
	Longevity         float64            `json:"longevity"`
	Gender            string             `json:"gender"`
	SeasonPercentages map[string]float64 `json:"season_percentages"`
	Count             int                `json:"count"`
	IsFiltered        bool               `json:"is_filtered"`
}

// TrendVerdict classifies the delta between a filtered subset and the
// unfiltered baseline.
type TrendVerdict string

const (
	// TrendNone means no significant shift, or no active filter to compare.
	TrendNone TrendVerdict = "none"
	// TrendReformulation flags a significant drop in sillage or longevity,
	// the heuristic signal that the formula may have changed.
	TrendReformulation TrendVerdict = "reformulation"
	// TrendStrongBatch flags any other significant shift.
	TrendStrongBatch TrendVerdict = "strong_batch"
)

// TrendDeltas holds filtered-minus-baseline mean shifts.
type TrendDeltas struct {
	Sillage   float64 `json:"sillage"`
	Longevity float64 `json:"longevity"`
	Rating    float64 `json:"rating"`
}

// ExtractYear parses the leading 4-digit year out of a production-date string
// of the form "YYYY-...". Records with unparsable or absent production dates
// are excluded from year-based filtering but still count when no filter is
// active.
func ExtractYear(productionDate string) (int, bool) {
	if len(productionDate) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(productionDate[:4])
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}

// ComputeReviewStats recomputes the community attributes over a review set,
// optionally narrowed to production years. It is pure and cheap (one pass,
// no I/O), so callers re-run it synchronously on every filter change.
//
// When the filtered source set is empty, ErrNoMatchingReviews is returned so
// the caller renders an explicit empty state rather than zero metrics.
// Parameters:
//   - reviews: full review set for one fragrance, treated as immutable.
//   - selectedYears: production years to keep; empty or nil means no filter.
//   - defaults: catalog fallback values for metrics with no usable votes.
// Returns:
//   - ReviewStats: recomputed aggregate for the source set.
//   - error: ErrNoMatchingReviews when the source set is empty.
func ComputeReviewStats(reviews []domain.Review, selectedYears map[int]bool, defaults StatsDefaults) (ReviewStats, error) {
	selected := selectReviews(reviews, selectedYears)
	if len(selected) == 0 {
		return ReviewStats{}, ErrNoMatchingReviews
	}

	means := numericMeans(selected)
	sillage := means.Sillage
	if means.SillageCount == 0 {
		sillage = defaults.Sillage
	}
	longevity := means.Longevity
	if means.LongevityCount == 0 {
		longevity = defaults.Longevity
	}

	return ReviewStats{
		Sillage:           sillage,
		Longevity:         longevity,
		Gender:            dominantGender(selected),
		SeasonPercentages: seasonPercentages(selected),
		Count:             len(selected),
		IsFiltered:        len(selectedYears) > 0,
	}, nil
}

// ComputeTrend compares the year-filtered subset against the entire unfiltered
// set as a baseline. Trends only exist when a filter is active; an unfiltered
// request yields TrendNone with zero deltas, since the comparison would be
// trivially zero.
// Parameters:
//   - reviews: full review set for one fragrance.
//   - selectedYears: active production-year filter.
// Returns:
//   - TrendDeltas: filtered-minus-baseline mean shifts.
//   - TrendVerdict: classification of the shift.
func ComputeTrend(reviews []domain.Review, selectedYears map[int]bool) (TrendDeltas, TrendVerdict) {
	if len(selectedYears) == 0 {
		return TrendDeltas{}, TrendNone
	}
	selected := selectReviews(reviews, selectedYears)
	if len(selected) == 0 {
		return TrendDeltas{}, TrendNone
	}

	filtered := numericMeans(selected)
	baseline := numericMeans(reviews)
	deltas := TrendDeltas{
		Sillage:   filtered.Sillage - baseline.Sillage,
		Longevity: filtered.Longevity - baseline.Longevity,
		Rating:    filtered.Rating - baseline.Rating,
	}
	return deltas, classifyTrend(deltas)
}

// classifyTrend applies the significance threshold: a significant negative
// shift on sillage or longevity reads as a possible reformulation, any other
// significant shift as a strong batch.
func classifyTrend(deltas TrendDeltas) TrendVerdict {
	significant := abs(deltas.Sillage) >= significantTrendDelta ||
		abs(deltas.Longevity) >= significantTrendDelta ||
		abs(deltas.Rating) >= significantTrendDelta
	if !significant {
		return TrendNone
	}
	if deltas.Sillage <= -significantTrendDelta || deltas.Longevity <= -significantTrendDelta {
		return TrendReformulation
	}
	return TrendStrongBatch
}

// selectReviews applies the production-year filter, or returns the full set
// when no filter is active.
func selectReviews(reviews []domain.Review, selectedYears map[int]bool) []domain.Review {
	if len(selectedYears) == 0 {
		return reviews
	}
	selected := make([]domain.Review, 0, len(reviews))
	for _, review := range reviews {
		year, ok := ExtractYear(review.ProductionDate)
		if !ok {
			continue
		}
		if selectedYears[year] {
			selected = append(selected, review)
		}
	}
	return selected
}

// reviewMeans holds per-metric averages over present positive values only,
// with the contributing counts so callers can tell "no votes" from "zero".
type reviewMeans struct {
	Sillage        float64
	SillageCount   int
	Longevity      float64
	LongevityCount int
	Rating         float64
	RatingCount    int
}

func numericMeans(reviews []domain.Review) reviewMeans {
	var m reviewMeans
	var sillageSum, longevitySum, ratingSum float64
	for _, review := range reviews {
		if review.Sillage > 0 {
			sillageSum += review.Sillage
			m.SillageCount++
		}
		if review.Longevity > 0 {
			longevitySum += review.Longevity
			m.LongevityCount++
		}
		if review.Rating > 0 {
			ratingSum += review.Rating
			m.RatingCount++
		}
	}
	if m.SillageCount > 0 {
		m.Sillage = sillageSum / float64(m.SillageCount)
	}
	if m.LongevityCount > 0 {
		m.Longevity = longevitySum / float64(m.LongevityCount)
	}
	if m.RatingCount > 0 {
		m.Rating = ratingSum / float64(m.RatingCount)
	}
	return m
}

// dominantGender picks the mode of the gender votes. The iteration order and
// the strictly-greater comparison starting from -1 are load-bearing: on a tie
// the earlier category wins, and with zero votes the result is "masculine".
// Kept bit-for-bit for compatibility with existing consumers; see DESIGN.md.
func dominantGender(reviews []domain.Review) string {
	counts := map[string]int{}
	for _, review := range reviews {
		switch review.GenderVote {
		case domain.GenderMasculine, domain.GenderFeminine, domain.GenderUnisex:
			counts[review.GenderVote]++
		}
	}

	gender := ""
	maxCount := -1
	for _, candidate := range []string{domain.GenderMasculine, domain.GenderFeminine, domain.GenderUnisex} {
		if counts[candidate] > maxCount {
			maxCount = counts[candidate]
			gender = candidate
		}
	}
	return gender
}

// seasonPercentages tallies the multi-label season votes. Every valid token
// increments both its season and the shared denominator, so a review casting
// two seasons contributes two votes, not one.
func seasonPercentages(reviews []domain.Review) map[string]float64 {
	counts := map[string]int{}
	total := 0
	for _, review := range reviews {
		if review.SeasonVote == "" {
			continue
		}
		for _, token := range strings.Split(review.SeasonVote, ",") {
			season := strings.TrimSpace(strings.ToLower(token))
			switch season {
			case domain.SeasonSpring, domain.SeasonSummer, domain.SeasonAutumn, domain.SeasonWinter:
				counts[season]++
				total++
			}
		}
	}

	percentages := make(map[string]float64, len(domain.Seasons))
	for _, season := range domain.Seasons {
		if total == 0 {
			percentages[season] = 0
			continue
		}
		percentages[season] = float64(counts[season]) / float64(total) * 100
	}
	return percentages
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
