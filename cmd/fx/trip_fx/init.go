package trip_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"guidelk/internal/repositories"
	"guidelk/internal/services"
)

var Module = fx.Provide(
	provideTripRepo, provideTripService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideTripService(
	tripRepo repositories.TripRepository,
	poiRepo repositories.POIRepository,
	propertyRepo repositories.PropertyRepository,
	log *zap.Logger,
) services.TripServiceInterface {
	return services.NewTripService(tripRepo, poiRepo, propertyRepo, log)
}
