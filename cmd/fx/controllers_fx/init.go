package controllers_fx

import (
	"go.uber.org/fx"

	"guidelk/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewPOIsController),
	fx.Provide(controllers.NewPropertiesController),
	fx.Provide(controllers.NewTripsController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewHealthController))
