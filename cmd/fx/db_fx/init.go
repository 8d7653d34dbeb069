package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"guidelk/internal/config"
	"guidelk/internal/infra"
	"guidelk/internal/spatial"
)

var Module = fx.Provide(
	provideDB, provideCodec)

func provideDB(lc fx.Lifecycle, cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := infra.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.Close(db, log)
			return nil
		},
	})
	return db, nil
}

// provideCodec fixes the point encoding for the lifetime of the process.
func provideCodec(db *gorm.DB) spatial.Codec {
	return spatial.NewCodec(infra.BackendOf(db))
}
