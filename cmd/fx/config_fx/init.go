package config_fx

import (
	"log/slog"

	"go.uber.org/fx"
	"nearbite/internal/config"
	"nearbite/pkg/logger"
)

var Module = fx.Provide(
	config.Load, provideLogger)

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.New(cfg.Env, cfg.LogLevel)
}
