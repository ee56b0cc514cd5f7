package infra

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/places/v1"
	"nearbite/internal/config"
)

// NewPlacesService builds the Places API (New) client. The API key is the
// only credential and is shared read-only by every request.
func NewPlacesService(ctx context.Context, cfg *config.Config) (*places.Service, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.GoogleAPIKey)}
	if cfg.PlacesEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.PlacesEndpoint))
	}

	svc, err := places.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create places client: %w", err)
	}
	return svc, nil
}

// NewUpstreamHTTPClient returns the client used for nearby search and the
// distance matrix. It carries no timeout of its own.
func NewUpstreamHTTPClient() *http.Client {
	return &http.Client{Transport: http.DefaultTransport}
}
