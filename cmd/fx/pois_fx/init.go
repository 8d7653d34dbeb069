package poisfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"guidelk/internal/repositories"
	"guidelk/internal/services"
	"guidelk/internal/spatial"
)

var Module = fx.Provide(
	providePoisRepo, providePoisService,
	providePropertyRepo, providePropertyService)

func providePoisRepo(db *gorm.DB, codec spatial.Codec) repositories.POIRepository {
	return repositories.NewPOIRepository(db, codec)
}

func providePoisService(poiRepo repositories.POIRepository, log *zap.Logger) services.POIServiceInterface {
	return services.NewPOIService(poiRepo, log)
}

func providePropertyRepo(db *gorm.DB, codec spatial.Codec) repositories.PropertyRepository {
	return repositories.NewPropertyRepository(db, codec)
}

func providePropertyService(propertyRepo repositories.PropertyRepository, log *zap.Logger) services.PropertyServiceInterface {
	return services.NewPropertyService(propertyRepo, log)
}
