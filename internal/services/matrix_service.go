package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"nearbite/internal/models/response_models"
	"nearbite/pkg/utils"
)

const (
	DefaultDistanceMatrixEndpoint = "https://maps.googleapis.com/maps/api/distancematrix/json"
	// MaxMatrixDestinations is the provider's hard limit per request.
	MaxMatrixDestinations = 25
)

type DistanceMatrixService interface {
	Enrich(ctx context.Context, origin response_models.Coordinate, destinations []response_models.Coordinate, mode response_models.TravelMode) ([]*response_models.TravelEstimate, error)
}

// -------------- Google Distance Matrix client ---------------

type GoogleMatrixClient struct {
	HTTP      *http.Client
	APIKey    string
	Endpoint  string
	BatchSize int
	logger    *slog.Logger
}

func NewGoogleMatrixClient(httpClient *http.Client, apiKey, endpoint string, batchSize int, logger *slog.Logger) *GoogleMatrixClient {
	if endpoint == "" {
		endpoint = DefaultDistanceMatrixEndpoint
	}
	if batchSize < 1 || batchSize > MaxMatrixDestinations {
		batchSize = MaxMatrixDestinations
	}
	return &GoogleMatrixClient{
		HTTP:      httpClient,
		APIKey:    apiKey,
		Endpoint:  endpoint,
		BatchSize: batchSize,
		logger:    logger,
	}
}

type matrixPayload struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []matrixElement `json:"elements"`
	} `json:"rows"`
}

type matrixElement struct {
	Status   string `json:"status"`
	Distance *struct {
		Text string `json:"text"`
	} `json:"distance"`
	Duration *struct {
		Text  string `json:"text"`
		Value int    `json:"value"`
	} `json:"duration"`
}

// Enrich returns one estimate slot per destination, in input order. A slot is
// nil when the provider could not route that pair.
func (c *GoogleMatrixClient) Enrich(
	ctx context.Context,
	origin response_models.Coordinate,
	destinations []response_models.Coordinate,
	mode response_models.TravelMode,
) ([]*response_models.TravelEstimate, error) {
	out := make([]*response_models.TravelEstimate, 0, len(destinations))

	for start := 0; start < len(destinations); start += c.BatchSize {
		end := min(start+c.BatchSize, len(destinations))
		batch, err := c.fetchBatch(ctx, origin, destinations[start:end], mode)
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
	}

	return out, nil
}

func (c *GoogleMatrixClient) fetchBatch(
	ctx context.Context,
	origin response_models.Coordinate,
	batch []response_models.Coordinate,
	mode response_models.TravelMode,
) ([]*response_models.TravelEstimate, error) {
	dests := make([]string, 0, len(batch))
	for _, d := range batch {
		dests = append(dests, formatCoordinate(d))
	}

	q := url.Values{}
	q.Set("origins", formatCoordinate(origin))
	q.Set("destinations", strings.Join(dests, "|"))
	q.Set("mode", string(mode))
	q.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, utils.NewUpstreamError("distancematrix", err)
	}

	c.logger.Debug("calling distance matrix",
		"destinations", len(batch),
		"mode", mode)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, utils.NewUpstreamError("distancematrix", redactKey(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, utils.NewUpstreamError("distancematrix",
			fmt.Errorf("bad status %s: %s", resp.Status, strings.TrimSpace(string(body))))
	}

	var payload matrixPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, utils.NewUpstreamError("distancematrix", fmt.Errorf("decode: %w", err))
	}
	if payload.Status != "OK" {
		return nil, utils.NewUpstreamError("distancematrix",
			fmt.Errorf("status %s: %s", payload.Status, payload.ErrorMessage))
	}

	// Missing rows or elements degrade to nil slots so alignment holds.
	var elements []matrixElement
	if len(payload.Rows) > 0 {
		elements = payload.Rows[0].Elements
	}

	out := make([]*response_models.TravelEstimate, len(batch))
	for i := range batch {
		if i >= len(elements) {
			continue
		}
		out[i] = toEstimate(elements[i])
	}
	return out, nil
}

func toEstimate(el matrixElement) *response_models.TravelEstimate {
	if el.Status != "OK" || el.Duration == nil {
		return nil
	}
	est := &response_models.TravelEstimate{
		DurationText: el.Duration.Text,
		Seconds:      el.Duration.Value,
	}
	if el.Distance != nil {
		est.DistanceText = el.Distance.Text
	}
	return est
}

func formatCoordinate(c response_models.Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lng)
}

// redactKey strips the request URL (and its key) from transport errors.
func redactKey(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s request failed: %w", uerr.Op, uerr.Err)
	}
	return err
}
