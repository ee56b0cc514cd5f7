package poisfx

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"google.golang.org/api/places/v1"
	"nearbite/internal/config"
	"nearbite/internal/infra"
	"nearbite/internal/services"
)

var Module = fx.Provide(
	providePlacesClient, providePlacesProvider)

func providePlacesClient(cfg *config.Config) (*places.Service, error) {
	return infra.NewPlacesService(context.Background(), cfg)
}

func providePlacesProvider(svc *places.Service, cfg *config.Config, logger *slog.Logger) services.PlacesProvider {
	return services.NewGooglePlacesClient(
		svc,
		infra.NewUpstreamHTTPClient(),
		cfg.GoogleAPIKey,
		cfg.NearbySearchEndpoint,
		logger,
	)
}
