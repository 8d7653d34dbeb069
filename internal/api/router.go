package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"guidelk/internal/api/controllers"
	"guidelk/pkg/middleware"
)

type Controllers struct {
	POIs       *controllers.POIsController
	Properties *controllers.PropertiesController
	Trips      *controllers.TripsController
	Account    *controllers.AccountController
	Health     *controllers.HealthController
}

// NewRouter mounts every route under rootPath. auth guards the routes that
// need a user.
func NewRouter(rootPath string, log *zap.Logger, auth gin.HandlerFunc, ctrl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))

	RegisterRoutes(r.Group(rootPath), auth, ctrl)
	return r
}

func RegisterRoutes(root *gin.RouterGroup, auth gin.HandlerFunc, ctrl Controllers) {
	root.GET("/health", ctrl.Health.Health)

	root.POST("/auth/verify", ctrl.Account.VerifyToken)
	me := root.Group("/me", auth)
	me.GET("", ctrl.Account.Me)
	me.DELETE("", ctrl.Account.DeleteMe)

	poisGroup := root.Group("/pois")
	poisGroup.GET("", ctrl.POIs.ListPois)
	poisGroup.GET("/:id", ctrl.POIs.GetPoiById)
	poisGroup.POST("", auth, ctrl.POIs.CreatePoi)
	poisGroup.PATCH("/:id", auth, ctrl.POIs.UpdatePoi)
	poisGroup.DELETE("/:id", auth, ctrl.POIs.DeletePoi)

	propertiesGroup := root.Group("/properties")
	propertiesGroup.GET("", ctrl.Properties.ListProperties)
	propertiesGroup.GET("/:id", ctrl.Properties.GetProperty)
	propertiesGroup.POST("", auth, ctrl.Properties.CreateProperty)
	propertiesGroup.PATCH("/:id", auth, ctrl.Properties.UpdateProperty)
	propertiesGroup.DELETE("/:id", auth, ctrl.Properties.DeleteProperty)

	tripsGroup := root.Group("/trips", auth)
	tripsGroup.GET("", ctrl.Trips.ListTrips)
	tripsGroup.POST("", ctrl.Trips.CreateTrip)
	tripsGroup.GET("/:id", ctrl.Trips.GetTrip)
	tripsGroup.PATCH("/:id", ctrl.Trips.UpdateTrip)
	tripsGroup.DELETE("/:id", ctrl.Trips.DeleteTrip)

	tripsGroup.POST("/:id/stops", ctrl.Trips.AddStop)
	tripsGroup.POST("/:id/stops/reorder", ctrl.Trips.ReorderStops)
	tripsGroup.PATCH("/:id/stops/:stopId", ctrl.Trips.UpdateStop)
	tripsGroup.DELETE("/:id/stops/:stopId", ctrl.Trips.RemoveStop)
	tripsGroup.POST("/stops/:stopId/mark", ctrl.Trips.MarkStop)

	tripsGroup.GET("/:id/bookings", ctrl.Trips.ListBookings)
	tripsGroup.POST("/:id/bookings", ctrl.Trips.AddBooking)
	tripsGroup.POST("/:id/bookings/import", ctrl.Trips.ImportBookings)
	tripsGroup.DELETE("/:id/bookings/:bookingId", ctrl.Trips.DeleteBooking)
}
