package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"guidelk/internal/models/db_models"
	"guidelk/internal/models/response_models"
	"guidelk/pkg/utils"
)

const dateLayout = "2006-01-02"

func parseDate(raw *string) (*datatypes.Date, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	d := datatypes.Date(t)
	return &d, nil
}

func formatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(dateLayout)
	return &s
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func photos(p []string) []string {
	if p == nil {
		return []string{}
	}
	return p
}

func toPOIResponse(poi *db_models.PointOfInterest) response_models.POI {
	return response_models.POI{
		ID:          poi.ID.String(),
		Name:        poi.Name,
		Category:    poi.Category,
		Description: poi.Description,
		Photos:      photos(poi.Photos),
		Latitude:    poi.Latitude,
		Longitude:   poi.Longitude,
		Geohash:     poi.Geohash,
		IsPublished: poi.IsPublished,
		CreatedAt:   poi.CreatedAt,
		UpdatedAt:   poi.UpdatedAt,
	}
}

func toPropertyResponse(prop *db_models.PartnerProperty) response_models.Property {
	return response_models.Property{
		ID:          prop.ID.String(),
		Name:        prop.Name,
		Address:     prop.Address,
		Phone:       prop.Phone,
		Website:     prop.Website,
		Photos:      photos(prop.Photos),
		Latitude:    prop.Latitude,
		Longitude:   prop.Longitude,
		Geohash:     prop.Geohash,
		IsPublished: prop.IsPublished,
		CreatedAt:   prop.CreatedAt,
		UpdatedAt:   prop.UpdatedAt,
	}
}

func toStopResponse(stop *db_models.TripStop) response_models.TripStop {
	resp := response_models.TripStop{
		ID:        stop.ID.String(),
		TripID:    stop.TripID.String(),
		Kind:      string(stop.Kind),
		PoiID:     uuidString(stop.PoiID),
		StayID:    uuidString(stop.StayID),
		DayIndex:  stop.DayIndex,
		Sort:      stop.Sort,
		Status:    string(stop.Status),
		CreatedAt: stop.CreatedAt,
		UpdatedAt: stop.UpdatedAt,
	}
	if stop.POI != nil {
		poi := toPOIResponse(stop.POI)
		resp.POI = &poi
	}
	if stop.Stay != nil {
		stay := toPropertyResponse(stop.Stay)
		resp.Stay = &stay
	}
	return resp
}

func toTripResponse(trip *db_models.Trip) response_models.Trip {
	stops := make([]response_models.TripStop, 0, len(trip.Stops))
	for i := range trip.Stops {
		stops = append(stops, toStopResponse(&trip.Stops[i]))
	}
	return response_models.Trip{
		ID:        trip.ID.String(),
		UserID:    trip.UserID.String(),
		Name:      trip.Name,
		StartDate: formatDate(trip.StartDate),
		EndDate:   formatDate(trip.EndDate),
		Status:    string(trip.Status),
		Stops:     stops,
		CreatedAt: trip.CreatedAt,
		UpdatedAt: trip.UpdatedAt,
	}
}

func toBookingResponse(b *db_models.Booking) response_models.Booking {
	var raw json.RawMessage
	if len(b.RawJSON) > 0 {
		raw = json.RawMessage(b.RawJSON)
	}
	return response_models.Booking{
		ID:        b.ID.String(),
		TripID:    b.TripID.String(),
		StayID:    uuidString(b.StayID),
		CheckIn:   formatDate(b.CheckIn),
		CheckOut:  formatDate(b.CheckOut),
		Source:    string(b.Source),
		RawJSON:   raw,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toAccountResponse(u *db_models.User) response_models.AccountResponse {
	return response_models.AccountResponse{
		ID:          u.ID.String(),
		FirebaseUID: u.FirebaseUID,
		Email:       u.Email,
		Name:        u.FullName,
		Locale:      u.Locale,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
