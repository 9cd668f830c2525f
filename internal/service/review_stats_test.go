package service

import (
	"errors"
	"math"
	"testing"

	"github.com/Nicco6598/sillage-sub000/internal/domain"
)

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		year     int
		ok       bool
	}{
		{name: "full date", input: "2019-03-15", year: 2019, ok: true},
		{name: "bare year", input: "2021", year: 2021, ok: true},
		{name: "too short", input: "19", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "not a number", input: "abcd-01", ok: false},
		{name: "zero year", input: "0000-01", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, ok := ExtractYear(tt.input)
			if ok != tt.ok {
				t.Fatalf("ExtractYear(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && year != tt.year {
				t.Errorf("ExtractYear(%q) = %d, want %d", tt.input, year, tt.year)
			}
		})
	}
}

func TestComputeReviewStats_EmptySet(t *testing.T) {
	_, err := ComputeReviewStats(nil, nil, StatsDefaults{})
	if !errors.Is(err, ErrNoMatchingReviews) {
		t.Errorf("expected ErrNoMatchingReviews, got %v", err)
	}
}

func TestComputeReviewStats_FilterMatchesNothing(t *testing.T) {
	reviews := []domain.Review{
		{Sillage: 4, ProductionDate: "2020-01"},
		{Sillage: 3, ProductionDate: "2021-05"},
	}

	_, err := ComputeReviewStats(reviews, map[int]bool{1999: true}, StatsDefaults{})
	if !errors.Is(err, ErrNoMatchingReviews) {
		t.Errorf("expected ErrNoMatchingReviews, got %v", err)
	}
}

func TestComputeReviewStats_MeansSkipAbsentValues(t *testing.T) {
	reviews := []domain.Review{
		{Sillage: 4, Longevity: 5},
		{Sillage: 2}, // longevity absent
		{},           // nothing voted
	}

	stats, err := ComputeReviewStats(reviews, nil, StatsDefaults{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Sillage != 3 {
		t.Errorf("sillage = %v, want 3 (mean of 4 and 2)", stats.Sillage)
	}
	if stats.Longevity != 5 {
		t.Errorf("longevity = %v, want 5 (single vote)", stats.Longevity)
	}
	if stats.Count != 3 {
		t.Errorf("count = %d, want 3", stats.Count)
	}
	if stats.IsFiltered {
		t.Error("expected IsFiltered to be false without a year filter")
	}
}

func TestComputeReviewStats_DefaultsWhenNoVotes(t *testing.T) {
	reviews := []domain.Review{
		{Rating: 4},
		{Rating: 5},
	}
	defaults := StatsDefaults{Sillage: 3.5, Longevity: 2.5}

	stats, err := ComputeReviewStats(reviews, nil, defaults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Sillage != defaults.Sillage {
		t.Errorf("sillage = %v, want catalog default %v", stats.Sillage, defaults.Sillage)
	}
	if stats.Longevity != defaults.Longevity {
		t.Errorf("longevity = %v, want catalog default %v", stats.Longevity, defaults.Longevity)
	}
}

func TestStatsDefaultsFor(t *testing.T) {
	fragrance := &domain.Fragrance{
		CatalogSillage:   3.5,
		CatalogLongevity: 2.5,
	}

	defaults := StatsDefaultsFor(fragrance)
	if defaults.Sillage != 3.5 {
		t.Errorf("sillage default = %v, want 3.5", defaults.Sillage)
	}
	if defaults.Longevity != 2.5 {
		t.Errorf("longevity default = %v, want 2.5", defaults.Longevity)
	}
}

func TestComputeReviewStats_YearFilter(t *testing.T) {
	reviews := []domain.Review{
		{Sillage: 5, ProductionDate: "2018-02"},
		{Sillage: 1, ProductionDate: "2022-11"},
		{Sillage: 3}, // no production date, excluded under any filter
	}

	stats, err := ComputeReviewStats(reviews, map[int]bool{2018: true}, StatsDefaults{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Count != 1 {
		t.Fatalf("count = %d, want 1", stats.Count)
	}
	if stats.Sillage != 5 {
		t.Errorf("sillage = %v, want 5", stats.Sillage)
	}
	if !stats.IsFiltered {
		t.Error("expected IsFiltered to be true")
	}
}

func TestDominantGender(t *testing.T) {
	tests := []struct {
		name    string
		votes   []string
		want    string
	}{
		{name: "clear winner", votes: []string{"feminine", "feminine", "masculine"}, want: "feminine"},
		{name: "tie goes to earlier category", votes: []string{"masculine", "feminine"}, want: "masculine"},
		{name: "feminine unisex tie", votes: []string{"feminine", "unisex"}, want: "feminine"},
		{name: "no votes at all", votes: nil, want: "masculine"},
		{name: "only invalid tokens", votes: []string{"other", ""}, want: "masculine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := make([]domain.Review, len(tt.votes))
			for i, vote := range tt.votes {
				reviews[i] = domain.Review{GenderVote: vote}
			}
			if got := dominantGender(reviews); got != tt.want {
				t.Errorf("dominantGender = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeasonPercentages_MultiLabel(t *testing.T) {
	reviews := []domain.Review{
		{SeasonVote: "summer,spring"},
		{SeasonVote: "summer"},
		{SeasonVote: ""},
	}

	got := seasonPercentages(reviews)

	// Three valid tokens total: summer twice, spring once.
	wantApprox := map[string]float64{
		domain.SeasonSpring: 100.0 / 3,
		domain.SeasonSummer: 200.0 / 3,
		domain.SeasonAutumn: 0,
		domain.SeasonWinter: 0,
	}
	for season, want := range wantApprox {
		if math.Abs(got[season]-want) > 0.001 {
			t.Errorf("%s = %v, want %v", season, got[season], want)
		}
	}
}

func TestSeasonPercentages_NoVotes(t *testing.T) {
	got := seasonPercentages([]domain.Review{{}, {SeasonVote: "monsoon"}})

	if len(got) != len(domain.Seasons) {
		t.Fatalf("expected all %d seasons present, got %d", len(domain.Seasons), len(got))
	}
	for season, pct := range got {
		if pct != 0 {
			t.Errorf("%s = %v, want 0 with no valid votes", season, pct)
		}
	}
}

func TestSeasonPercentages_TokenNormalization(t *testing.T) {
	got := seasonPercentages([]domain.Review{{SeasonVote: " Winter , AUTUMN"}})

	if got[domain.SeasonWinter] != 50 || got[domain.SeasonAutumn] != 50 {
		t.Errorf("expected 50/50 winter/autumn, got %v", got)
	}
}

func TestComputeTrend_NoFilterMeansNoTrend(t *testing.T) {
	reviews := []domain.Review{
		{Sillage: 5, ProductionDate: "2018-01"},
		{Sillage: 1, ProductionDate: "2022-01"},
	}

	deltas, verdict := ComputeTrend(reviews, nil)
	if verdict != TrendNone {
		t.Errorf("verdict = %q, want %q", verdict, TrendNone)
	}
	if deltas != (TrendDeltas{}) {
		t.Errorf("deltas = %+v, want zero", deltas)
	}
}

func TestComputeTrend_FilterMatchesNothing(t *testing.T) {
	reviews := []domain.Review{{Sillage: 4, ProductionDate: "2020-01"}}

	_, verdict := ComputeTrend(reviews, map[int]bool{1999: true})
	if verdict != TrendNone {
		t.Errorf("verdict = %q, want %q", verdict, TrendNone)
	}
}

func TestComputeTrend_Classification(t *testing.T) {
	tests := []struct {
		name    string
		reviews []domain.Review
		years   map[int]bool
		verdict TrendVerdict
	}{
		{
			// Filtered sillage mean 2, baseline 3: delta -1.
			name: "sillage drop reads as reformulation",
			reviews: []domain.Review{
				{Sillage: 4, ProductionDate: "2018-01"},
				{Sillage: 2, ProductionDate: "2022-01"},
			},
			years:   map[int]bool{2022: true},
			verdict: TrendReformulation,
		},
		{
			// Filtered rating mean 5, baseline 4: delta +1 with stable sillage.
			name: "rating jump reads as strong batch",
			reviews: []domain.Review{
				{Rating: 3, ProductionDate: "2018-01"},
				{Rating: 5, ProductionDate: "2022-01"},
			},
			years:   map[int]bool{2022: true},
			verdict: TrendStrongBatch,
		},
		{
			// Filtered sillage mean 3.2, baseline 3.0: delta +0.2, below threshold.
			name: "small shift is not significant",
			reviews: []domain.Review{
				{Sillage: 2.8, ProductionDate: "2018-01"},
				{Sillage: 3.2, ProductionDate: "2022-01"},
			},
			years:   map[int]bool{2022: true},
			verdict: TrendNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, verdict := ComputeTrend(tt.reviews, tt.years)
			if verdict != tt.verdict {
				t.Errorf("verdict = %q, want %q", verdict, tt.verdict)
			}
		})
	}
}

func TestClassifyTrend_Boundary(t *testing.T) {
	if got := classifyTrend(TrendDeltas{Sillage: -0.5}); got != TrendReformulation {
		t.Errorf("delta exactly -0.5 should be significant, got %q", got)
	}
	if got := classifyTrend(TrendDeltas{Sillage: -0.49}); got != TrendNone {
		t.Errorf("delta -0.49 should not be significant, got %q", got)
	}
	if got := classifyTrend(TrendDeltas{Longevity: -0.6, Rating: 0.9}); got != TrendReformulation {
		t.Errorf("longevity drop should win over rating jump, got %q", got)
	}
}
