package distance_matrix_fx

import (
	"log/slog"

	"go.uber.org/fx"
	"nearbite/internal/config"
	"nearbite/internal/infra"
	"nearbite/internal/services"
)

var Module = fx.Provide(provideMatrixClient)

func provideMatrixClient(cfg *config.Config, logger *slog.Logger) services.DistanceMatrixService {
	return services.NewGoogleMatrixClient(
		infra.NewUpstreamHTTPClient(),
		cfg.GoogleAPIKey,
		cfg.DistanceMatrixEndpoint,
		cfg.MatrixBatchSize,
		logger,
	)
}
