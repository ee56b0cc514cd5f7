package services

import (
	"context"
	"log/slog"

	"nearbite/internal/models/request_models"
	"nearbite/internal/models/response_models"
	"nearbite/pkg/utils"
)

const (
	DefaultRadius   = 1500
	DefaultPage     = 1
	DefaultPageSize = 10
)

type SearchServiceInterface interface {
	Search(ctx context.Context, req request_models.SearchRequest) (response_models.SearchResponse, error)
}

type SearchService struct {
	collector CandidateCollectorInterface
	matrix    DistanceMatrixService
	logger    *slog.Logger
}

func NewSearchService(collector CandidateCollectorInterface, matrix DistanceMatrixService, logger *slog.Logger) *SearchService {
	return &SearchService{
		collector: collector,
		matrix:    matrix,
		logger:    logger,
	}
}

// searchQuery is a SearchRequest with every default applied.
type searchQuery struct {
	origin   response_models.Coordinate
	radius   int
	want     int
	mode     response_models.TravelMode
	page     int
	pageSize int
	filters  Filters
}

func newSearchQuery(req request_models.SearchRequest) searchQuery {
	q := searchQuery{
		origin:   response_models.Coordinate{Lat: *req.Lat, Lng: *req.Lng},
		radius:   DefaultRadius,
		mode:     response_models.TravelModeWalking,
		page:     DefaultPage,
		pageSize: DefaultPageSize,
		filters: Filters{
			OpenNow:     true,
			Keyword:     req.Keyword,
			PriceLevels: req.PriceLevels,
		},
	}

	if req.Radius != nil {
		q.radius = *req.Radius
	}
	if req.Mode != "" {
		q.mode = response_models.TravelMode(req.Mode)
	}
	if req.Page != nil {
		q.page = *req.Page
	}
	if req.PageSize != nil {
		q.pageSize = *req.PageSize
	}
	if req.OpenNow != nil {
		q.filters.OpenNow = *req.OpenNow
	}
	if req.MinRating != nil {
		q.filters.MinRating = *req.MinRating
	}

	q.want = q.pageSize
	if req.Max != nil {
		q.want = *req.Max
	}
	q.want = min(q.want, MaxCandidates)

	return q
}

// Search runs collect, enrich and assemble in sequence. Stages never overlap:
// each one consumes the previous stage's complete output.
func (s *SearchService) Search(ctx context.Context, req request_models.SearchRequest) (response_models.SearchResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return response_models.SearchResponse{}, err
	}
	q := newSearchQuery(req)

	// Upstream calls run to completion even if the client goes away.
	ctx = context.WithoutCancel(ctx)

	out := response_models.SearchResponse{
		Page:     q.page,
		PageSize: q.pageSize,
		Results:  []response_models.ResultRecord{},
		Origin:   q.origin,
		Mode:     q.mode,
	}

	collected, err := s.collector.Collect(ctx, CollectParams{
		Origin:  q.origin,
		Radius:  q.radius,
		OpenNow: q.filters.OpenNow,
		Keyword: q.filters.Keyword,
		Want:    q.want,
	})
	if err != nil {
		return response_models.SearchResponse{}, err
	}

	s.logger.Info("candidates collected",
		"op", "search.collect",
		"count", len(collected.Candidates),
		"pages", collected.Pages,
		"stop", collected.Stop)

	if len(collected.Candidates) == 0 {
		return out, nil
	}

	destinations := make([]response_models.Coordinate, len(collected.Candidates))
	for i, c := range collected.Candidates {
		destinations[i] = c.Location
	}

	travel, err := s.matrix.Enrich(ctx, q.origin, destinations, q.mode)
	if err != nil {
		return response_models.SearchResponse{}, err
	}

	pairs, err := PairCandidates(collected.Candidates, travel)
	if err != nil {
		return response_models.SearchResponse{}, err
	}

	results, total := Assemble(pairs, q.filters, q.page, q.pageSize)
	out.Total = total
	out.Count = len(results)
	out.Results = results

	return out, nil
}
