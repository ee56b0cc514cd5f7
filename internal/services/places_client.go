package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"google.golang.org/api/places/v1"
	"nearbite/internal/models/response_models"
	"nearbite/pkg/utils"
)

const (
	DefaultNearbySearchEndpoint = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

	diningCategory = "restaurant"

	resolveFieldMask = "places.id,places.displayName,places.location"
	placeURLPrefix   = "https://www.google.com/maps/place/?q=place_id:"
)

type NearbyPageRequest struct {
	Origin    response_models.Coordinate
	Radius    int
	OpenNow   bool
	Keyword   string
	PageSize  int
	PageToken string
}

type NearbyPage struct {
	Candidates    []response_models.Candidate
	NextPageToken string
	// Malformed is set when the reply carries no results field at all.
	Malformed bool
}

type PlacesProvider interface {
	SearchNearby(ctx context.Context, req NearbyPageRequest) (NearbyPage, error)
	FindPlace(ctx context.Context, query string) (*response_models.Candidate, error)
}

// GooglePlacesClient pages through the nearby search endpoint, which restricts
// results to the radius, and resolves names through the Places API (New).
type GooglePlacesClient struct {
	svc            *places.Service
	http           *http.Client
	apiKey         string
	nearbyEndpoint string
	logger         *slog.Logger
}

func NewGooglePlacesClient(
	svc *places.Service,
	httpClient *http.Client,
	apiKey, nearbyEndpoint string,
	logger *slog.Logger,
) *GooglePlacesClient {
	if nearbyEndpoint == "" {
		nearbyEndpoint = DefaultNearbySearchEndpoint
	}
	return &GooglePlacesClient{
		svc:            svc,
		http:           httpClient,
		apiKey:         apiKey,
		nearbyEndpoint: nearbyEndpoint,
		logger:         logger,
	}
}

type nearbyPayload struct {
	Status        string          `json:"status"`
	ErrorMessage  string          `json:"error_message"`
	Results       *[]nearbyResult `json:"results"`
	NextPageToken string          `json:"next_page_token"`
}

type nearbyResult struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Vicinity string `json:"vicinity"`
	Geometry *struct {
		Location *struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Rating       *float64        `json:"rating"`
	PriceLevel   json.RawMessage `json:"price_level"`
	OpeningHours *struct {
		OpenNow *bool `json:"open_now"`
	} `json:"opening_hours"`
}

// SearchNearby fetches one page of dining places inside the radius around the
// origin. The endpoint serves at most 20 results per page; the reply is cut to
// req.PageSize.
func (g *GooglePlacesClient) SearchNearby(ctx context.Context, req NearbyPageRequest) (NearbyPage, error) {
	q := url.Values{}
	q.Set("location", formatCoordinate(req.Origin))
	q.Set("radius", strconv.Itoa(req.Radius))
	q.Set("type", diningCategory)
	if req.Keyword != "" {
		q.Set("keyword", req.Keyword)
	}
	if req.OpenNow {
		q.Set("opennow", "true")
	}
	if req.PageToken != "" {
		q.Set("pagetoken", req.PageToken)
	}
	q.Set("key", g.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.nearbyEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return NearbyPage{}, utils.NewUpstreamError("places.searchNearby", err)
	}

	g.logger.Debug("calling places nearby search",
		"lat", req.Origin.Lat,
		"lng", req.Origin.Lng,
		"radius", req.Radius,
		"page_size", req.PageSize,
		"has_page_token", req.PageToken != "")

	resp, err := g.http.Do(httpReq)
	if err != nil {
		return NearbyPage{}, utils.NewUpstreamError("places.searchNearby", redactKey(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return NearbyPage{}, utils.NewUpstreamError("places.searchNearby",
			fmt.Errorf("bad status %s: %s", resp.Status, strings.TrimSpace(string(body))))
	}

	var payload nearbyPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return NearbyPage{}, utils.NewUpstreamError("places.searchNearby", fmt.Errorf("decode: %w", err))
	}
	if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
		return NearbyPage{}, utils.NewUpstreamError("places.searchNearby",
			fmt.Errorf("status %s: %s", payload.Status, payload.ErrorMessage))
	}
	if payload.Results == nil {
		return NearbyPage{Malformed: true}, nil
	}

	results := *payload.Results
	if req.PageSize > 0 && len(results) > req.PageSize {
		results = results[:req.PageSize]
	}

	page := NearbyPage{
		Candidates:    make([]response_models.Candidate, 0, len(results)),
		NextPageToken: payload.NextPageToken,
	}
	for _, r := range results {
		page.Candidates = append(page.Candidates, r.toCandidate())
	}

	return page, nil
}

func (r nearbyResult) toCandidate() response_models.Candidate {
	c := response_models.Candidate{
		ID:         r.PlaceID,
		Name:       r.Name,
		Address:    r.Vicinity,
		Rating:     r.Rating,
		PriceLevel: NormalizePriceLevel(strings.Trim(string(r.PriceLevel), `"`)),
	}
	if r.PlaceID != "" {
		c.MapsURL = placeURLPrefix + r.PlaceID
	}
	if r.Geometry != nil && r.Geometry.Location != nil {
		c.Location = response_models.Coordinate{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng}
	}
	if r.OpeningHours != nil {
		c.IsOpenNow = r.OpeningHours.OpenNow
	}
	return c
}

// FindPlace returns the provider's first match for a free-text query, or nil.
func (g *GooglePlacesClient) FindPlace(ctx context.Context, query string) (*response_models.Candidate, error) {
	call := g.svc.Places.SearchText(&places.GoogleMapsPlacesV1SearchTextRequest{
		TextQuery: query,
		PageSize:  1,
	})
	call.Header().Set("X-Goog-FieldMask", resolveFieldMask)

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, utils.NewUpstreamError("places.resolve", err)
	}

	for _, p := range resp.Places {
		if p == nil || p.Location == nil {
			continue
		}
		c := toCandidate(p)
		return &c, nil
	}
	return nil, nil
}

func toCandidate(p *places.GoogleMapsPlacesV1Place) response_models.Candidate {
	c := response_models.Candidate{
		ID:         p.Id,
		Address:    p.FormattedAddress,
		PriceLevel: NormalizePriceLevel(p.PriceLevel),
		Phone:      p.NationalPhoneNumber,
		Website:    p.WebsiteUri,
		MapsURL:    p.GoogleMapsUri,
	}

	if p.DisplayName != nil {
		c.Name = p.DisplayName.Text
	}
	if p.Location != nil {
		c.Location = response_models.Coordinate{Lat: p.Location.Latitude, Lng: p.Location.Longitude}
	}
	// Ratings run 1..5, so zero means the place has none.
	if p.Rating > 0 {
		rating := p.Rating
		c.Rating = &rating
	}
	if p.CurrentOpeningHours != nil {
		open := p.CurrentOpeningHours.OpenNow
		c.IsOpenNow = &open
	}

	return c
}
