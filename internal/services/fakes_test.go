package services

import (
	"context"
	"fmt"
	"time"

	"nearbite/internal/models/response_models"
	"nearbite/pkg/logger"
)

type fakePlaces struct {
	nearby func(call int, req NearbyPageRequest) (NearbyPage, error)
	find   func(query string) (*response_models.Candidate, error)

	calls     []NearbyPageRequest
	findCalls []string
}

func (f *fakePlaces) SearchNearby(_ context.Context, req NearbyPageRequest) (NearbyPage, error) {
	f.calls = append(f.calls, req)
	return f.nearby(len(f.calls)-1, req)
}

func (f *fakePlaces) FindPlace(_ context.Context, query string) (*response_models.Candidate, error) {
	f.findCalls = append(f.findCalls, query)
	return f.find(query)
}

// endlessPages serves exactly the requested page size and always has a next page.
func endlessPages(call int, req NearbyPageRequest) (NearbyPage, error) {
	return NearbyPage{
		Candidates:    makeCandidates(fmt.Sprintf("p%d-", call), req.PageSize),
		NextPageToken: fmt.Sprintf("token-%d", call+1),
	}, nil
}

func makeCandidates(prefix string, n int) []response_models.Candidate {
	out := make([]response_models.Candidate, n)
	for i := range out {
		out[i] = response_models.Candidate{
			ID:       fmt.Sprintf("%s%d", prefix, i),
			Name:     fmt.Sprintf("Place %s%d", prefix, i),
			Location: response_models.Coordinate{Lat: float64(i), Lng: float64(i)},
		}
	}
	return out
}

type fakeMatrix struct {
	enrich func(destinations []response_models.Coordinate) ([]*response_models.TravelEstimate, error)
	calls  [][]response_models.Coordinate
	modes  []response_models.TravelMode
}

func (f *fakeMatrix) Enrich(_ context.Context, _ response_models.Coordinate, destinations []response_models.Coordinate, mode response_models.TravelMode) ([]*response_models.TravelEstimate, error) {
	f.calls = append(f.calls, destinations)
	f.modes = append(f.modes, mode)
	return f.enrich(destinations)
}

func newTestCollector(places PlacesProvider, maxPages int) (*CandidateCollector, *[]time.Duration) {
	waits := []time.Duration{}
	c := NewCandidateCollector(places, CollectorConfig{MaxPages: maxPages, PageDelay: 1200 * time.Millisecond}, logger.Discard())
	c.wait = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	return c, &waits
}

func estimate(seconds int) *response_models.TravelEstimate {
	return &response_models.TravelEstimate{
		DistanceText: fmt.Sprintf("%d m", seconds),
		DurationText: fmt.Sprintf("%d secs", seconds),
		Seconds:      seconds,
	}
}

func ptr[T any](v T) *T {
	return &v
}
