package infra

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"guidelk/internal/config"
	"guidelk/internal/models/db_models"
	"guidelk/internal/spatial"
)

// Open connects to the configured database and migrates the schema. The
// returned handle is the only process-wide database state.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.PostgresURL)
	case config.DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.SQLitePath))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == config.DriverSQLite {
		// SQLite allows a single writer, and an in-memory database lives only
		// as long as its connection.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxConns)
		sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)
	}

	if err := Migrate(db); err != nil {
		Close(db, log)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info("database ready",
		zap.String("driver", cfg.Driver),
		zap.Stringer("backend", BackendOf(db)))
	return db, nil
}

// gormLogger sends slow queries and failures to zap. Missing rows are an
// expected lookup result and are not logged.
func gormLogger(log *zap.Logger) logger.Interface {
	std, err := zap.NewStdLogAt(log.Named("gorm"), zapcore.WarnLevel)
	if err != nil {
		std = zap.NewStdLog(log.Named("gorm"))
	}
	return logger.New(std, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// BackendOf reports the spatial tier of an open database.
func BackendOf(db *gorm.DB) spatial.Backend {
	return spatial.BackendFor(db.Dialector.Name())
}

func Migrate(db *gorm.DB) error {
	spatialBackend := BackendOf(db) == spatial.SpatialBackend

	if spatialBackend {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS postgis").Error; err != nil {
			return fmt.Errorf("enable postgis: %w", err)
		}
	}

	if err := db.AutoMigrate(
		&db_models.User{},
		&db_models.PointOfInterest{},
		&db_models.PartnerProperty{},
		&db_models.Trip{},
		&db_models.TripStop{},
		&db_models.Booking{},
	); err != nil {
		return err
	}

	if spatialBackend {
		for _, table := range []string{"pois", "properties"} {
			stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_geom ON %s USING GIST (geom)", table, table)
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index %s.geom: %w", table, err)
			}
		}
	}
	return nil
}

func Close(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("Error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("Error closing database connection", zap.Error(err))
	} else {
		log.Info("Database connection closed successfully")
	}
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}
