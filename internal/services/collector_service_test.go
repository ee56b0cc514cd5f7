package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nearbite/internal/models/response_models"
	"nearbite/pkg/logger"
	"nearbite/pkg/utils"
)

var sydney = response_models.Coordinate{Lat: -33.87, Lng: 151.21}

func TestCollectSmallWantUsesSinglePage(t *testing.T) {
	for _, want := range []int{1, 5, 10, 20} {
		places := &fakePlaces{nearby: endlessPages}
		c, waits := newTestCollector(places, 5)

		res, err := c.Collect(context.Background(), CollectParams{Origin: sydney, Radius: 1000, Want: want})
		require.NoError(t, err)

		assert.Len(t, places.calls, 1, "want=%d", want)
		assert.Equal(t, want, places.calls[0].PageSize)
		assert.Empty(t, places.calls[0].PageToken)
		assert.Len(t, res.Candidates, want)
		assert.Equal(t, StopWantReached, res.Stop)
		assert.Empty(t, *waits)
	}
}

func TestCollectPagesWithTokensAndDelay(t *testing.T) {
	places := &fakePlaces{nearby: endlessPages}
	c, waits := newTestCollector(places, 5)

	res, err := c.Collect(context.Background(), CollectParams{Origin: sydney, Radius: 1000, Want: 45})
	require.NoError(t, err)

	require.Len(t, places.calls, 3)
	assert.Equal(t, []int{20, 20, 5}, []int{places.calls[0].PageSize, places.calls[1].PageSize, places.calls[2].PageSize})
	assert.Equal(t, "", places.calls[0].PageToken)
	assert.Equal(t, "token-1", places.calls[1].PageToken)
	assert.Equal(t, "token-2", places.calls[2].PageToken)
	assert.Equal(t, []time.Duration{1200 * time.Millisecond, 1200 * time.Millisecond}, *waits)
	assert.Len(t, res.Candidates, 45)
	assert.Equal(t, "p0-0", res.Candidates[0].ID)
	assert.Equal(t, "p2-4", res.Candidates[44].ID)
}

func TestCollectStopsAtPageBound(t *testing.T) {
	places := &fakePlaces{nearby: func(call int, req NearbyPageRequest) (NearbyPage, error) {
		return NearbyPage{Candidates: makeCandidates("x", 7), NextPageToken: "more"}, nil
	}}
	c, waits := newTestCollector(places, 5)

	res, err := c.Collect(context.Background(), CollectParams{Want: 60})
	require.NoError(t, err)

	assert.Len(t, places.calls, 5)
	assert.Len(t, *waits, 4)
	assert.Len(t, res.Candidates, 35)
	assert.Equal(t, StopPageBound, res.Stop)
}

func TestCollectStopsWithoutToken(t *testing.T) {
	places := &fakePlaces{nearby: func(call int, req NearbyPageRequest) (NearbyPage, error) {
		return NearbyPage{Candidates: makeCandidates("x", 12)}, nil
	}}
	c, waits := newTestCollector(places, 5)

	res, err := c.Collect(context.Background(), CollectParams{Want: 40})
	require.NoError(t, err)

	assert.Len(t, places.calls, 1)
	assert.Empty(t, *waits)
	assert.Len(t, res.Candidates, 12)
	assert.Equal(t, StopNoMorePages, res.Stop)
}

func TestCollectMalformedPageKeepsEarlierPages(t *testing.T) {
	places := &fakePlaces{nearby: func(call int, req NearbyPageRequest) (NearbyPage, error) {
		if call == 1 {
			return NearbyPage{Malformed: true}, nil
		}
		return endlessPages(call, req)
	}}
	c, _ := newTestCollector(places, 5)

	res, err := c.Collect(context.Background(), CollectParams{Want: 60})
	require.NoError(t, err)

	assert.Len(t, places.calls, 2)
	assert.Len(t, res.Candidates, 20)
	assert.Equal(t, StopMalformed, res.Stop)
	require.Error(t, res.Warning)
	assert.True(t, errors.Is(res.Warning, utils.ErrUpstreamMalformed))
	assert.False(t, errors.Is(res.Warning, utils.ErrUpstream))
}

func TestCollectCleanStopHasNoWarning(t *testing.T) {
	places := &fakePlaces{nearby: endlessPages}
	c, _ := newTestCollector(places, 5)

	res, err := c.Collect(context.Background(), CollectParams{Want: 10})
	require.NoError(t, err)
	assert.Equal(t, StopWantReached, res.Stop)
	assert.NoError(t, res.Warning)
}

func TestCollectUpstreamErrorIsReturned(t *testing.T) {
	places := &fakePlaces{nearby: func(call int, req NearbyPageRequest) (NearbyPage, error) {
		if call == 1 {
			return NearbyPage{}, utils.NewUpstreamError("places.searchNearby", errors.New("503"))
		}
		return endlessPages(call, req)
	}}
	c, _ := newTestCollector(places, 5)

	res, err := c.Collect(context.Background(), CollectParams{Want: 60})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrUpstream))
	assert.Empty(t, res.Candidates)
}

func TestCollectTruncatesOversizedPages(t *testing.T) {
	places := &fakePlaces{nearby: func(call int, req NearbyPageRequest) (NearbyPage, error) {
		return NearbyPage{Candidates: makeCandidates("x", 20), NextPageToken: "more"}, nil
	}}
	c, _ := newTestCollector(places, 5)

	res, err := c.Collect(context.Background(), CollectParams{Want: 3})
	require.NoError(t, err)
	assert.Len(t, res.Candidates, 3)
}

func TestCollectPassesSearchParameters(t *testing.T) {
	places := &fakePlaces{nearby: endlessPages}
	c, _ := newTestCollector(places, 5)

	_, err := c.Collect(context.Background(), CollectParams{
		Origin:  sydney,
		Radius:  1000,
		OpenNow: true,
		Keyword: "ramen",
		Want:    5,
	})
	require.NoError(t, err)

	got := places.calls[0]
	assert.Equal(t, sydney, got.Origin)
	assert.Equal(t, 1000, got.Radius)
	assert.True(t, got.OpenNow)
	assert.Equal(t, "ramen", got.Keyword)
}

func TestCollectNeverExceedsWantOrPageBound(t *testing.T) {
	for want := 1; want <= MaxCandidates; want++ {
		places := &fakePlaces{nearby: endlessPages}
		c, _ := newTestCollector(places, 5)

		res, err := c.Collect(context.Background(), CollectParams{Want: want})
		require.NoError(t, err)

		assert.LessOrEqual(t, len(res.Candidates), want)
		assert.LessOrEqual(t, len(places.calls), 5)
		if want <= providerPageLimit {
			assert.Len(t, places.calls, 1)
		}
	}
}

func TestCollectWaitHonoursContext(t *testing.T) {
	places := &fakePlaces{nearby: endlessPages}
	c := NewCandidateCollector(places, CollectorConfig{MaxPages: 5, PageDelay: time.Hour}, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Collect(ctx, CollectParams{Want: 40})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, places.calls, 1)
}
