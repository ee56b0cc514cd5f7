package services

import (
	"fmt"
	"slices"
	"strings"

	"nearbite/internal/models/response_models"
	"nearbite/pkg/utils"
)

// PairedCandidate binds a candidate to its own travel estimate so later
// stages can reorder freely.
type PairedCandidate struct {
	Candidate response_models.Candidate
	Travel    *response_models.TravelEstimate
}

type Filters struct {
	MinRating   float64
	PriceLevels []int
	OpenNow     bool
	Keyword     string
}

// PairCandidates zips candidates with the enricher output. Both slices must
// have the same length.
func PairCandidates(candidates []response_models.Candidate, travel []*response_models.TravelEstimate) ([]PairedCandidate, error) {
	if len(candidates) != len(travel) {
		return nil, fmt.Errorf("%w: %d candidates but %d travel estimates", utils.ErrInternal, len(candidates), len(travel))
	}
	pairs := make([]PairedCandidate, len(candidates))
	for i := range candidates {
		pairs[i] = PairedCandidate{Candidate: candidates[i], Travel: travel[i]}
	}
	return pairs, nil
}

// Assemble sorts by travel time, filters, then cuts out the requested page.
// total is the filtered count before pagination.
func Assemble(pairs []PairedCandidate, f Filters, page, pageSize int) ([]response_models.ResultRecord, int) {
	records := make([]response_models.ResultRecord, 0, len(pairs))
	for _, p := range pairs {
		records = append(records, response_models.ResultRecord{Candidate: p.Candidate, Travel: p.Travel})
	}

	SortByTravelTime(records)

	filtered := records[:0]
	for _, r := range records {
		if f.Match(r) {
			filtered = append(filtered, r)
		}
	}

	return Paginate(filtered, page, pageSize), len(filtered)
}

// SortByTravelTime orders records by ascending duration. Records without an
// estimate go last; ties keep their provider order.
func SortByTravelTime(records []response_models.ResultRecord) {
	slices.SortStableFunc(records, func(a, b response_models.ResultRecord) int {
		switch {
		case a.Travel == nil && b.Travel == nil:
			return 0
		case a.Travel == nil:
			return 1
		case b.Travel == nil:
			return -1
		}
		return a.Travel.Seconds - b.Travel.Seconds
	})
}

func (f Filters) Match(r response_models.ResultRecord) bool {
	rating := 0.0
	if r.Rating != nil {
		rating = *r.Rating
	}
	if rating < f.MinRating {
		return false
	}

	// An unknown price level never passes an active price filter.
	if len(f.PriceLevels) > 0 {
		if r.PriceLevel == nil || !slices.Contains(f.PriceLevels, *r.PriceLevel) {
			return false
		}
	}

	if f.OpenNow && (r.IsOpenNow == nil || !*r.IsOpenNow) {
		return false
	}

	if f.Keyword != "" {
		if r.Name == "" || !strings.Contains(strings.ToLower(r.Name), strings.ToLower(f.Keyword)) {
			return false
		}
	}

	return true
}

func Paginate(records []response_models.ResultRecord, page, pageSize int) []response_models.ResultRecord {
	if page < 1 || pageSize < 1 {
		return []response_models.ResultRecord{}
	}
	// Compare page counts first; (page-1)*pageSize overflows for huge pages.
	if page-1 >= (len(records)+pageSize-1)/pageSize {
		return []response_models.ResultRecord{}
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(records))
	return records[start:end]
}
