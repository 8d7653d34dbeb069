package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dbm "guidelk/internal/models/db_models"
	"guidelk/internal/models/request_models"
	"guidelk/internal/models/response_models"
	"guidelk/internal/repositories"
	"guidelk/pkg/utils"
)

// TripServiceInterface works on trips owned by userID only. A trip of another
// user is reported exactly like a missing one.
type TripServiceInterface interface {
	ListTrips(ctx context.Context, userID uuid.UUID) ([]response_models.Trip, error)
	GetTrip(ctx context.Context, userID, tripID uuid.UUID) (response_models.Trip, error)
	CreateTrip(ctx context.Context, userID uuid.UUID, req request_models.CreateTripRequest) (response_models.Trip, error)
	UpdateTrip(ctx context.Context, userID, tripID uuid.UUID, req request_models.UpdateTripRequest) (response_models.Trip, error)
	DeleteTrip(ctx context.Context, userID, tripID uuid.UUID) error

	AddStop(ctx context.Context, userID, tripID uuid.UUID, req request_models.TripStopRequest) (response_models.TripStop, error)
	UpdateStop(ctx context.Context, userID, tripID, stopID uuid.UUID, req request_models.UpdateTripStopRequest) (response_models.TripStop, error)
	RemoveStop(ctx context.Context, userID, tripID, stopID uuid.UUID) error
	ReorderStops(ctx context.Context, userID, tripID uuid.UUID, stopIDs []uuid.UUID) (response_models.Trip, error)
	MarkStop(ctx context.Context, userID, stopID uuid.UUID, status string) (response_models.TripStop, error)

	AddBooking(ctx context.Context, userID, tripID uuid.UUID, req request_models.CreateBookingRequest) (response_models.Booking, error)
	ImportBookings(ctx context.Context, userID, tripID uuid.UUID, req request_models.ImportBookingsRequest) ([]response_models.Booking, error)
	ListBookings(ctx context.Context, userID, tripID uuid.UUID) ([]response_models.Booking, error)
	DeleteBooking(ctx context.Context, userID, tripID, bookingID uuid.UUID) error
}

type TripService struct {
	tripRepo     repositories.TripRepository
	poiRepo      repositories.POIRepository
	propertyRepo repositories.PropertyRepository
	log          *zap.Logger
}

func NewTripService(
	tripRepo repositories.TripRepository,
	poiRepo repositories.POIRepository,
	propertyRepo repositories.PropertyRepository,
	log *zap.Logger,
) TripServiceInterface {
	return &TripService{
		tripRepo:     tripRepo,
		poiRepo:      poiRepo,
		propertyRepo: propertyRepo,
		log:          log.Named("trip"),
	}
}

// storageError logs an unexpected repository failure and hides it behind
// ErrDatabaseError. Constraint violations are caller errors.
func (s *TripService) storageError(op string, err error, fields ...zap.Field) error {
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %s", utils.ErrInvalidReference, op)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %s", utils.ErrInvalidInput, op)
	}
	s.log.Error(op, append(fields, zap.Error(err))...)
	return utils.ErrDatabaseError
}

func (s *TripService) ownedTrip(ctx context.Context, userID, tripID uuid.UUID) (*dbm.Trip, error) {
	trip, err := s.tripRepo.Get(ctx, tripID)
	if err != nil {
		return nil, s.storageError("get trip", err, zap.Stringer("trip_id", tripID))
	}
	if trip == nil || trip.UserID != userID {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

func (s *TripService) ListTrips(ctx context.Context, userID uuid.UUID) ([]response_models.Trip, error) {
	trips, err := s.tripRepo.ForUser(ctx, userID)
	if err != nil {
		return nil, s.storageError("list trips", err, zap.Stringer("user_id", userID))
	}

	resp := make([]response_models.Trip, 0, len(trips))
	for i := range trips {
		resp = append(resp, toTripResponse(&trips[i]))
	}
	return resp, nil
}

func (s *TripService) GetTrip(ctx context.Context, userID, tripID uuid.UUID) (response_models.Trip, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return response_models.Trip{}, err
	}
	return toTripResponse(trip), nil
}

func checkDateRange(from, to *datatypes.Date) error {
	if from != nil && to != nil && time.Time(*to).Before(time.Time(*from)) {
		return fmt.Errorf("%w: end date is before start date", utils.ErrInvalidInput)
	}
	return nil
}

func parseTripStatus(raw string) (dbm.TripStatus, error) {
	status := dbm.TripStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("%w: trip status %q", utils.ErrInvalidStatus, raw)
	}
	return status, nil
}

func parseStopStatus(raw string) (dbm.TripStopStatus, error) {
	status := dbm.TripStopStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("%w: stop status %q", utils.ErrInvalidStatus, raw)
	}
	return status, nil
}

// validateStop checks the kind/reference pairing and that the referenced
// point exists.
func (s *TripService) validateStop(ctx context.Context, stop *dbm.TripStop) error {
	if stop.DayIndex < 0 || stop.Sort < 0 {
		return fmt.Errorf("%w: day_index and sort must not be negative", utils.ErrInvalidInput)
	}
	if stop.Status != "" && !stop.Status.Valid() {
		return fmt.Errorf("%w: stop status %q", utils.ErrInvalidStatus, stop.Status)
	}

	switch stop.Kind {
	case dbm.TripStopKindPOI:
		if stop.PoiID == nil || stop.StayID != nil {
			return fmt.Errorf("%w: a poi stop needs poi_id and no stay_id", utils.ErrInvalidInput)
		}
		poi, err := s.poiRepo.GetByID(ctx, *stop.PoiID)
		if err != nil {
			return s.storageError("get poi", err, zap.Stringer("poi_id", *stop.PoiID))
		}
		if poi == nil {
			return fmt.Errorf("%w: poi %s", utils.ErrInvalidReference, *stop.PoiID)
		}
	case dbm.TripStopKindStay:
		if stop.StayID == nil || stop.PoiID != nil {
			return fmt.Errorf("%w: a stay stop needs stay_id and no poi_id", utils.ErrInvalidInput)
		}
		return s.checkStay(ctx, stop.StayID)
	default:
		return fmt.Errorf("%w: unknown stop kind %q", utils.ErrInvalidInput, stop.Kind)
	}
	return nil
}

func (s *TripService) checkStay(ctx context.Context, stayID *uuid.UUID) error {
	if stayID == nil {
		return nil
	}
	prop, err := s.propertyRepo.GetByID(ctx, *stayID)
	if err != nil {
		return s.storageError("get property", err, zap.Stringer("property_id", *stayID))
	}
	if prop == nil {
		return fmt.Errorf("%w: property %s", utils.ErrInvalidReference, *stayID)
	}
	return nil
}

func (s *TripService) buildStops(ctx context.Context, reqs []request_models.TripStopRequest) ([]dbm.TripStop, error) {
	stops := make([]dbm.TripStop, 0, len(reqs))
	for i, req := range reqs {
		stop := dbm.TripStop{
			Kind:     dbm.TripStopKind(req.Kind),
			PoiID:    req.PoiID,
			StayID:   req.StayID,
			DayIndex: req.DayIndex,
			Sort:     req.Sort,
			Status:   dbm.TripStopStatus(req.Status),
		}
		if err := s.validateStop(ctx, &stop); err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

// reload reads the aggregate back so the response carries embedded points and
// the stored stop order.
func (s *TripService) reload(ctx context.Context, tripID uuid.UUID) (response_models.Trip, error) {
	trip, err := s.tripRepo.Get(ctx, tripID)
	if err != nil {
		return response_models.Trip{}, s.storageError("get trip", err, zap.Stringer("trip_id", tripID))
	}
	if trip == nil {
		return response_models.Trip{}, utils.ErrTripNotFound
	}
	return toTripResponse(trip), nil
}

func (s *TripService) CreateTrip(ctx context.Context, userID uuid.UUID, req request_models.CreateTripRequest) (response_models.Trip, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return response_models.Trip{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return response_models.Trip{}, err
	}
	if err := checkDateRange(start, end); err != nil {
		return response_models.Trip{}, err
	}

	status := dbm.TripStatusDraft
	if req.Status != "" {
		if status, err = parseTripStatus(req.Status); err != nil {
			return response_models.Trip{}, err
		}
	}

	stops, err := s.buildStops(ctx, req.Stops)
	if err != nil {
		return response_models.Trip{}, err
	}

	trip := &dbm.Trip{
		UserID:    userID,
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
	if err := s.tripRepo.Create(ctx, trip, stops); err != nil {
		return response_models.Trip{}, s.storageError("create trip", err, zap.Stringer("user_id", userID))
	}

	s.log.Info("trip created",
		zap.Stringer("trip_id", trip.ID),
		zap.Stringer("user_id", userID),
		zap.Int("stops", len(stops)))
	return s.reload(ctx, trip.ID)
}

// UpdateTrip merges the present fields. A present stops array replaces every
// existing stop.
func (s *TripService) UpdateTrip(ctx context.Context, userID, tripID uuid.UUID, req request_models.UpdateTripRequest) (response_models.Trip, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return response_models.Trip{}, err
	}

	if req.Name != nil {
		trip.Name = *req.Name
	}
	if req.StartDate != nil {
		if trip.StartDate, err = parseDate(req.StartDate); err != nil {
			return response_models.Trip{}, err
		}
	}
	if req.EndDate != nil {
		if trip.EndDate, err = parseDate(req.EndDate); err != nil {
			return response_models.Trip{}, err
		}
	}
	if err := checkDateRange(trip.StartDate, trip.EndDate); err != nil {
		return response_models.Trip{}, err
	}
	if req.Status != nil {
		if trip.Status, err = parseTripStatus(*req.Status); err != nil {
			return response_models.Trip{}, err
		}
	}

	var stops []dbm.TripStop
	if req.Stops != nil {
		if stops, err = s.buildStops(ctx, *req.Stops); err != nil {
			return response_models.Trip{}, err
		}
	}

	if err := s.tripRepo.Update(ctx, trip, stops, req.Stops != nil); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response_models.Trip{}, utils.ErrTripNotFound
		}
		return response_models.Trip{}, s.storageError("update trip", err, zap.Stringer("trip_id", tripID))
	}
	return s.reload(ctx, trip.ID)
}

func (s *TripService) DeleteTrip(ctx context.Context, userID, tripID uuid.UUID) error {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return err
	}
	if err := s.tripRepo.Delete(ctx, trip); err != nil {
		return s.storageError("delete trip", err, zap.Stringer("trip_id", tripID))
	}
	return nil
}

func (s *TripService) ownedStop(ctx context.Context, tripID, stopID uuid.UUID) (*dbm.TripStop, error) {
	stop, err := s.tripRepo.GetStop(ctx, tripID, stopID)
	if err != nil {
		return nil, s.storageError("get stop", err, zap.Stringer("stop_id", stopID))
	}
	if stop == nil {
		return nil, utils.ErrStopNotFound
	}
	return stop, nil
}

func (s *TripService) AddStop(ctx context.Context, userID, tripID uuid.UUID, req request_models.TripStopRequest) (response_models.TripStop, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return response_models.TripStop{}, err
	}

	stops, err := s.buildStops(ctx, []request_models.TripStopRequest{req})
	if err != nil {
		return response_models.TripStop{}, err
	}
	stop := stops[0]

	if err := s.tripRepo.AddStop(ctx, trip, &stop); err != nil {
		return response_models.TripStop{}, s.storageError("add stop", err, zap.Stringer("trip_id", tripID))
	}

	stored, err := s.ownedStop(ctx, trip.ID, stop.ID)
	if err != nil {
		return response_models.TripStop{}, err
	}
	return toStopResponse(stored), nil
}

func (s *TripService) UpdateStop(ctx context.Context, userID, tripID, stopID uuid.UUID, req request_models.UpdateTripStopRequest) (response_models.TripStop, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return response_models.TripStop{}, err
	}
	stop, err := s.ownedStop(ctx, trip.ID, stopID)
	if err != nil {
		return response_models.TripStop{}, err
	}

	// Switching kinds drops the old reference so only the new id is needed.
	if req.Kind != nil && dbm.TripStopKind(*req.Kind) != stop.Kind {
		switch stop.Kind {
		case dbm.TripStopKindPOI:
			stop.PoiID = nil
		case dbm.TripStopKindStay:
			stop.StayID = nil
		}
		stop.Kind = dbm.TripStopKind(*req.Kind)
	}
	if req.PoiID != nil {
		stop.PoiID = req.PoiID
	}
	if req.StayID != nil {
		stop.StayID = req.StayID
	}
	if req.DayIndex != nil {
		stop.DayIndex = *req.DayIndex
	}
	if req.Sort != nil {
		stop.Sort = *req.Sort
	}
	if req.Status != nil {
		if stop.Status, err = parseStopStatus(*req.Status); err != nil {
			return response_models.TripStop{}, err
		}
	}
	if err := s.validateStop(ctx, stop); err != nil {
		return response_models.TripStop{}, err
	}

	stop.POI, stop.Stay = nil, nil
	if err := s.tripRepo.UpdateStop(ctx, stop); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response_models.TripStop{}, utils.ErrStopNotFound
		}
		return response_models.TripStop{}, s.storageError("update stop", err, zap.Stringer("stop_id", stopID))
	}

	stored, err := s.ownedStop(ctx, trip.ID, stop.ID)
	if err != nil {
		return response_models.TripStop{}, err
	}
	return toStopResponse(stored), nil
}

func (s *TripService) RemoveStop(ctx context.Context, userID, tripID, stopID uuid.UUID) error {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return err
	}
	stop, err := s.ownedStop(ctx, trip.ID, stopID)
	if err != nil {
		return err
	}
	if err := s.tripRepo.RemoveStop(ctx, stop); err != nil {
		return s.storageError("remove stop", err, zap.Stringer("stop_id", stopID))
	}
	return nil
}

func (s *TripService) ReorderStops(ctx context.Context, userID, tripID uuid.UUID, stopIDs []uuid.UUID) (response_models.Trip, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return response_models.Trip{}, err
	}
	if err := s.tripRepo.ReorderStops(ctx, trip, stopIDs); err != nil {
		return response_models.Trip{}, s.storageError("reorder stops", err, zap.Stringer("trip_id", tripID))
	}
	return toTripResponse(trip), nil
}

// MarkStop sets the status of a stop in any trip of userID. Marking a stop
// with the status it already has succeeds.
func (s *TripService) MarkStop(ctx context.Context, userID, stopID uuid.UUID, status string) (response_models.TripStop, error) {
	next, err := parseStopStatus(status)
	if err != nil {
		return response_models.TripStop{}, err
	}

	stop, err := s.tripRepo.GetStopOwnedBy(ctx, stopID, userID)
	if err != nil {
		return response_models.TripStop{}, s.storageError("get stop", err, zap.Stringer("stop_id", stopID))
	}
	if stop == nil {
		return response_models.TripStop{}, utils.ErrStopNotFound
	}

	if err := s.tripRepo.MarkStopStatus(ctx, stop, next); err != nil {
		return response_models.TripStop{}, s.storageError("mark stop", err, zap.Stringer("stop_id", stopID))
	}
	return toStopResponse(stop), nil
}

func (s *TripService) AddBooking(ctx context.Context, userID, tripID uuid.UUID, req request_models.CreateBookingRequest) (response_models.Booking, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return response_models.Booking{}, err
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return response_models.Booking{}, err
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return response_models.Booking{}, err
	}
	if err := checkDateRange(checkIn, checkOut); err != nil {
		return response_models.Booking{}, err
	}
	if err := s.checkStay(ctx, req.StayID); err != nil {
		return response_models.Booking{}, err
	}

	source := dbm.BookingSourceManual
	if req.Source != "" {
		source = dbm.BookingSource(req.Source)
		if !source.Valid() {
			return response_models.Booking{}, fmt.Errorf("%w: booking source %q", utils.ErrInvalidInput, req.Source)
		}
	}

	booking := &dbm.Booking{
		TripID:   trip.ID,
		StayID:   req.StayID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Source:   source,
	}
	if len(req.RawJSON) > 0 {
		if !json.Valid(req.RawJSON) {
			return response_models.Booking{}, fmt.Errorf("%w: raw_json is not valid JSON", utils.ErrInvalidInput)
		}
		booking.RawJSON = datatypes.JSON(req.RawJSON)
	}

	if err := s.tripRepo.AddBooking(ctx, booking); err != nil {
		return response_models.Booking{}, s.storageError("add booking", err, zap.Stringer("trip_id", tripID))
	}
	return toBookingResponse(booking), nil
}

// bookingExportRecord holds the fields read from one reservation of a
// Booking.com data export. Everything else is kept only in the raw payload.
type bookingExportRecord struct {
	CheckIn  string     `json:"check_in"`
	CheckOut string     `json:"check_out"`
	StayID   *uuid.UUID `json:"stay_id"`
}

func (s *TripService) bookingFromExport(ctx context.Context, raw json.RawMessage) (dbm.Booking, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return dbm.Booking{}, fmt.Errorf("%w: reservation must be a JSON object", utils.ErrInvalidInput)
	}
	var rec bookingExportRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return dbm.Booking{}, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}

	checkIn, err := parseDate(&rec.CheckIn)
	if err != nil {
		return dbm.Booking{}, err
	}
	checkOut, err := parseDate(&rec.CheckOut)
	if err != nil {
		return dbm.Booking{}, err
	}
	if err := checkDateRange(checkIn, checkOut); err != nil {
		return dbm.Booking{}, err
	}
	if err := s.checkStay(ctx, rec.StayID); err != nil {
		return dbm.Booking{}, err
	}

	fingerprint, err := utils.Fingerprint(raw)
	if err != nil {
		return dbm.Booking{}, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}

	return dbm.Booking{
		StayID:      rec.StayID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Source:      dbm.BookingSourceBookingImport,
		RawJSON:     datatypes.JSON(raw),
		Fingerprint: &fingerprint,
	}, nil
}

// ImportBookings stores every reservation not imported into the trip before
// and returns only the new ones.
func (s *TripService) ImportBookings(ctx context.Context, userID, tripID uuid.UUID, req request_models.ImportBookingsRequest) ([]response_models.Booking, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	bookings := make([]dbm.Booking, 0, len(req.Reservations))
	for i, raw := range req.Reservations {
		b, err := s.bookingFromExport(ctx, raw)
		if err != nil {
			return nil, fmt.Errorf("reservation %d: %w", i, err)
		}
		bookings = append(bookings, b)
	}

	created, err := s.tripRepo.ImportBookings(ctx, trip.ID, bookings)
	if err != nil {
		return nil, s.storageError("import bookings", err, zap.Stringer("trip_id", tripID))
	}

	s.log.Info("bookings imported",
		zap.Stringer("trip_id", tripID),
		zap.Int("received", len(bookings)),
		zap.Int("created", len(created)))

	resp := make([]response_models.Booking, 0, len(created))
	for i := range created {
		resp = append(resp, toBookingResponse(&created[i]))
	}
	return resp, nil
}

func (s *TripService) ListBookings(ctx context.Context, userID, tripID uuid.UUID) ([]response_models.Booking, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.tripRepo.ListBookings(ctx, trip.ID)
	if err != nil {
		return nil, s.storageError("list bookings", err, zap.Stringer("trip_id", tripID))
	}

	resp := make([]response_models.Booking, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	return resp, nil
}

func (s *TripService) DeleteBooking(ctx context.Context, userID, tripID, bookingID uuid.UUID) error {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return err
	}

	booking, err := s.tripRepo.GetBooking(ctx, trip.ID, bookingID)
	if err != nil {
		return s.storageError("get booking", err, zap.Stringer("booking_id", bookingID))
	}
	if booking == nil {
		return utils.ErrBookingNotFound
	}

	if err := s.tripRepo.DeleteBooking(ctx, booking); err != nil {
		return s.storageError("delete booking", err, zap.Stringer("booking_id", bookingID))
	}
	return nil
}
