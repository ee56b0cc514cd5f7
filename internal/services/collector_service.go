package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nearbite/internal/models/response_models"
	"nearbite/pkg/utils"
)

const (
	// MaxCandidates is the most candidates a single search may gather.
	MaxCandidates = 60
	// providerPageLimit is the largest page the places provider serves.
	providerPageLimit = 20
)

// StopReason says why collection ended. Only StopMalformed signals trouble,
// and even then the candidates gathered so far are kept.
type StopReason string

const (
	StopWantReached StopReason = "want_reached"
	StopNoMorePages StopReason = "no_more_pages"
	StopPageBound   StopReason = "page_bound"
	StopMalformed   StopReason = "malformed_page"
)

type CollectorConfig struct {
	MaxPages  int
	PageDelay time.Duration
}

type CollectParams struct {
	Origin  response_models.Coordinate
	Radius  int
	OpenNow bool
	Keyword string
	Want    int
}

type CollectResult struct {
	Candidates []response_models.Candidate
	Pages      int
	Stop       StopReason
	// Warning wraps utils.ErrUpstreamMalformed when Stop is StopMalformed.
	Warning error
}

type CandidateCollectorInterface interface {
	Collect(ctx context.Context, params CollectParams) (CollectResult, error)
}

type CandidateCollector struct {
	places PlacesProvider
	cfg    CollectorConfig
	logger *slog.Logger
	wait   func(ctx context.Context, d time.Duration) error
}

func NewCandidateCollector(places PlacesProvider, cfg CollectorConfig, logger *slog.Logger) *CandidateCollector {
	if cfg.MaxPages < 1 {
		cfg.MaxPages = 1
	}
	return &CandidateCollector{
		places: places,
		cfg:    cfg,
		logger: logger,
		wait:   sleepContext,
	}
}

// Collect pages through nearby results until it has params.Want candidates,
// the provider runs out of pages, the page bound is hit or a page comes back
// malformed.
func (c *CandidateCollector) Collect(ctx context.Context, params CollectParams) (CollectResult, error) {
	want := min(max(params.Want, 1), MaxCandidates)
	res := CollectResult{Candidates: make([]response_models.Candidate, 0, want)}
	token := ""

	for res.Pages < c.cfg.MaxPages {
		if res.Pages > 0 {
			// A fresh page token is rejected until it has had time to propagate.
			if err := c.wait(ctx, c.cfg.PageDelay); err != nil {
				return CollectResult{}, err
			}
		}

		page, err := c.places.SearchNearby(ctx, NearbyPageRequest{
			Origin:    params.Origin,
			Radius:    params.Radius,
			OpenNow:   params.OpenNow,
			Keyword:   params.Keyword,
			PageSize:  min(providerPageLimit, want-len(res.Candidates)),
			PageToken: token,
		})
		res.Pages++
		if err != nil {
			return CollectResult{}, fmt.Errorf("collect page %d: %w", res.Pages, err)
		}

		if page.Malformed {
			res.Stop = StopMalformed
			res.Warning = fmt.Errorf("%w: page %d has no results field", utils.ErrUpstreamMalformed, res.Pages)
			c.logger.Warn("places page missing results, keeping earlier pages",
				"op", "collector.collect",
				"page", res.Pages,
				"collected", len(res.Candidates),
				"error", res.Warning)
			return res, nil
		}

		remaining := want - len(res.Candidates)
		if len(page.Candidates) > remaining {
			page.Candidates = page.Candidates[:remaining]
		}
		res.Candidates = append(res.Candidates, page.Candidates...)

		if len(res.Candidates) >= want {
			res.Stop = StopWantReached
			return res, nil
		}
		if page.NextPageToken == "" {
			res.Stop = StopNoMorePages
			return res, nil
		}
		token = page.NextPageToken
	}

	res.Stop = StopPageBound
	return res, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
