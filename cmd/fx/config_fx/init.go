package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"guidelk/internal/config"
	"guidelk/internal/infra"
)

var Module = fx.Provide(
	config.Load,
	provideLogger,
	provideServerConfig,
	provideDatabaseConfig,
	provideAuthConfig)

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return infra.NewLogger(cfg)
}

func provideServerConfig(cfg *config.Config) config.ServerConfig {
	return cfg.Server
}

func provideDatabaseConfig(cfg *config.Config) config.DatabaseConfig {
	return cfg.Database
}

func provideAuthConfig(cfg *config.Config) config.AuthConfig {
	return cfg.Auth
}
