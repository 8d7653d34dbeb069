package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guidelk/internal/models/request_models"
	"guidelk/internal/services"
	"guidelk/pkg/utils"
)

type TripsController struct {
	tripService services.TripServiceInterface
}

func NewTripsController(tripService services.TripServiceInterface) *TripsController {
	return &TripsController{
		tripService: tripService,
	}
}

// ListTrips godoc
// @Summary List the caller's trips
// @Description Most recently created first, each with its ordered stops
// @Tags Trips
// @Produce json
// @Success 200 {array} response_models.Trip
// @Security BearerAuth
// @Router /trips [get]
func (t *TripsController) ListTrips(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	trips, err := t.tripService.ListTrips(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// GetTrip godoc
// @Summary Get a trip
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} response_models.Trip
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [get]
func (t *TripsController) GetTrip(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	trip, err := t.tripService.GetTrip(c.Request.Context(), userID, tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip fetched successfully")
}

// CreateTrip godoc
// @Summary Create a trip
// @Description Stops without an explicit sort keep their position in the request
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "Trip payload"
// @Success 201 {object} response_models.Trip
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripsController) CreateTrip(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.CreateTrip(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, trip, "Trip created successfully")
}

// UpdateTrip godoc
// @Summary Patch a trip
// @Description A stops array, when present, replaces every existing stop
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.UpdateTripRequest true "Fields to change"
// @Success 200 {object} response_models.Trip
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [patch]
func (t *TripsController) UpdateTrip(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.UpdateTrip(c.Request.Context(), userID, tripID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip updated successfully")
}

// DeleteTrip godoc
// @Summary Delete a trip with its stops and bookings
// @Tags Trips
// @Param id path string true "Trip ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [delete]
func (t *TripsController) DeleteTrip(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := t.tripService.DeleteTrip(c.Request.Context(), userID, tripID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}

// AddStop godoc
// @Summary Append a stop to a trip
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.TripStopRequest true "Stop payload"
// @Success 201 {object} response_models.TripStop
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/stops [post]
func (t *TripsController) AddStop(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.TripStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	stop, err := t.tripService.AddStop(c.Request.Context(), userID, tripID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, stop, "Stop added successfully")
}

// UpdateStop godoc
// @Summary Patch a stop
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param stopId path string true "Stop ID"
// @Param request body request_models.UpdateTripStopRequest true "Fields to change"
// @Success 200 {object} response_models.TripStop
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/stops/{stopId} [patch]
func (t *TripsController) UpdateStop(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	stopID, ok := uuidParam(c, "stopId")
	if !ok {
		return
	}

	var req request_models.UpdateTripStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	stop, err := t.tripService.UpdateStop(c.Request.Context(), userID, tripID, stopID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stop, "Stop updated successfully")
}

// RemoveStop godoc
// @Summary Remove a stop
// @Tags Trips
// @Param id path string true "Trip ID"
// @Param stopId path string true "Stop ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/stops/{stopId} [delete]
func (t *TripsController) RemoveStop(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	stopID, ok := uuidParam(c, "stopId")
	if !ok {
		return
	}

	if err := t.tripService.RemoveStop(c.Request.Context(), userID, tripID, stopID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}

// ReorderStops godoc
// @Summary Reorder the stops of a trip
// @Description Listed stops get sort equal to their index. Unlisted stops keep their sort; foreign ids are ignored.
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.ReorderStopsRequest true "Stop ids in their new order"
// @Success 200 {object} response_models.Trip
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/stops/reorder [post]
func (t *TripsController) ReorderStops(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.ReorderStopsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := t.tripService.ReorderStops(c.Request.Context(), userID, tripID, req.StopIDs)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Stops reordered successfully")
}

// MarkStop godoc
// @Summary Mark a stop planned, visited or skipped
// @Tags Trips
// @Accept json
// @Produce json
// @Param stopId path string true "Stop ID"
// @Param request body request_models.MarkStopRequest true "New status"
// @Success 200 {object} response_models.TripStop
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/stops/{stopId}/mark [post]
func (t *TripsController) MarkStop(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	stopID, ok := uuidParam(c, "stopId")
	if !ok {
		return
	}

	var req request_models.MarkStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	stop, err := t.tripService.MarkStop(c.Request.Context(), userID, stopID, req.Status)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, stop, "Stop marked successfully")
}

// ListBookings godoc
// @Summary List the bookings of a trip
// @Description Ordered by check-in date, undated bookings last
// @Tags Bookings
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {array} response_models.Booking
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/bookings [get]
func (t *TripsController) ListBookings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	bookings, err := t.tripService.ListBookings(c.Request.Context(), userID, tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bookings, "Bookings fetched successfully")
}

// AddBooking godoc
// @Summary Add a booking to a trip
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.CreateBookingRequest true "Booking payload"
// @Success 201 {object} response_models.Booking
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/bookings [post]
func (t *TripsController) AddBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	booking, err := t.tripService.AddBooking(c.Request.Context(), userID, tripID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, booking, "Booking added successfully")
}

// ImportBookings godoc
// @Summary Import reservations from a Booking.com data export
// @Description Reservations already imported into the trip are skipped
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.ImportBookingsRequest true "Exported reservations"
// @Success 201 {array} response_models.Booking
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/bookings/import [post]
func (t *TripsController) ImportBookings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.ImportBookingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	bookings, err := t.tripService.ImportBookings(c.Request.Context(), userID, tripID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, bookings, "Bookings imported successfully")
}

// DeleteBooking godoc
// @Summary Delete a booking
// @Tags Bookings
// @Param id path string true "Trip ID"
// @Param bookingId path string true "Booking ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/bookings/{bookingId} [delete]
func (t *TripsController) DeleteBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tripID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	bookingID, ok := uuidParam(c, "bookingId")
	if !ok {
		return
	}

	if err := t.tripService.DeleteBooking(c.Request.Context(), userID, tripID, bookingID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}
