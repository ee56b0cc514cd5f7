package search_fx

import (
	"log/slog"

	"go.uber.org/fx"
	"nearbite/internal/config"
	"nearbite/internal/services"
)

var Module = fx.Provide(
	provideCollector, provideSearchService, provideResolveService)

func provideCollector(places services.PlacesProvider, cfg *config.Config, logger *slog.Logger) services.CandidateCollectorInterface {
	return services.NewCandidateCollector(places, services.CollectorConfig{
		MaxPages:  cfg.MaxPages,
		PageDelay: cfg.PageDelay,
	}, logger)
}

func provideSearchService(
	collector services.CandidateCollectorInterface,
	matrix services.DistanceMatrixService,
	logger *slog.Logger) services.SearchServiceInterface {
	return services.NewSearchService(collector, matrix, logger)
}

func provideResolveService(places services.PlacesProvider) services.ResolveServiceInterface {
	return services.NewResolveService(places)
}
