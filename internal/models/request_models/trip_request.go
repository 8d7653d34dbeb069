package request_models

import (
	"encoding/json"

	"github.com/google/uuid"
)

type TripStopRequest struct {
	Kind     string     `json:"kind" binding:"required,oneof=poi stay"`
	PoiID    *uuid.UUID `json:"poi_id"`
	StayID   *uuid.UUID `json:"stay_id"`
	DayIndex int        `json:"day_index" binding:"gte=0"`
	Sort     int        `json:"sort" binding:"gte=0"`
	Status   string     `json:"status" binding:"omitempty,oneof=planned visited skipped"`
}

// Dates use the YYYY-MM-DD form.
type CreateTripRequest struct {
	Name      string            `json:"name" binding:"required,max=255"`
	StartDate *string           `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string           `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Status    string            `json:"status" binding:"omitempty,oneof=draft active archived"`
	Stops     []TripStopRequest `json:"stops" binding:"omitempty,dive"`
}

// UpdateTripRequest is a merge patch, except that a present stops array
// replaces the whole stop list.
type UpdateTripRequest struct {
	Name      *string            `json:"name" binding:"omitempty,max=255"`
	StartDate *string            `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string            `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Status    *string            `json:"status" binding:"omitempty,oneof=draft active archived"`
	Stops     *[]TripStopRequest `json:"stops" binding:"omitempty,dive"`
}

type UpdateTripStopRequest struct {
	Kind     *string    `json:"kind" binding:"omitempty,oneof=poi stay"`
	PoiID    *uuid.UUID `json:"poi_id"`
	StayID   *uuid.UUID `json:"stay_id"`
	DayIndex *int       `json:"day_index" binding:"omitempty,gte=0"`
	Sort     *int       `json:"sort" binding:"omitempty,gte=0"`
	Status   *string    `json:"status" binding:"omitempty,oneof=planned visited skipped"`
}

type ReorderStopsRequest struct {
	StopIDs []uuid.UUID `json:"stop_ids"`
}

type MarkStopRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateBookingRequest struct {
	StayID   *uuid.UUID      `json:"stay_id"`
	CheckIn  *string         `json:"check_in" binding:"omitempty,datetime=2006-01-02"`
	CheckOut *string         `json:"check_out" binding:"omitempty,datetime=2006-01-02"`
	Source   string          `json:"source" binding:"omitempty,oneof=manual booking_import"`
	RawJSON  json.RawMessage `json:"raw_json"`
}

// ImportBookingsRequest carries records of a Booking.com portability export.
type ImportBookingsRequest struct {
	Reservations []json.RawMessage `json:"reservations" binding:"required"`
}
