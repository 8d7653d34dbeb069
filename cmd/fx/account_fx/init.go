package account_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"guidelk/internal/config"
	"guidelk/internal/repositories"
	"guidelk/internal/services"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideIdentityProvider)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideIdentityProvider(cfg config.AuthConfig, log *zap.Logger) (services.IdentityProvider, error) {
	log.Info("identity provider", zap.String("provider", cfg.Provider))
	return services.NewIdentityProvider(context.Background(), cfg)
}

func provideAccountService(accountRepo repositories.AccountRepository, identity services.IdentityProvider, log *zap.Logger) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, identity, log)
}
