package repositories

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbm "guidelk/internal/models/db_models"
)

// TripRepository is the only writer of trips, trip stops and bookings. Every
// method that touches more than one row runs in a single transaction.
type TripRepository interface {
	ForUser(ctx context.Context, userID uuid.UUID) ([]dbm.Trip, error)
	Get(ctx context.Context, tripID uuid.UUID) (*dbm.Trip, error)
	Create(ctx context.Context, trip *dbm.Trip, stops []dbm.TripStop) error
	Update(ctx context.Context, trip *dbm.Trip, stops []dbm.TripStop, replaceStops bool) error
	Delete(ctx context.Context, trip *dbm.Trip) error

	AddStop(ctx context.Context, trip *dbm.Trip, stop *dbm.TripStop) error
	GetStop(ctx context.Context, tripID, stopID uuid.UUID) (*dbm.TripStop, error)
	GetStopOwnedBy(ctx context.Context, stopID, userID uuid.UUID) (*dbm.TripStop, error)
	UpdateStop(ctx context.Context, stop *dbm.TripStop) error
	MarkStopStatus(ctx context.Context, stop *dbm.TripStop, status dbm.TripStopStatus) error
	RemoveStop(ctx context.Context, stop *dbm.TripStop) error
	ReorderStops(ctx context.Context, trip *dbm.Trip, stopIDs []uuid.UUID) error

	AddBooking(ctx context.Context, booking *dbm.Booking) error
	ImportBookings(ctx context.Context, tripID uuid.UUID, bookings []dbm.Booking) ([]dbm.Booking, error)
	ListBookings(ctx context.Context, tripID uuid.UUID) ([]dbm.Booking, error)
	GetBooking(ctx context.Context, tripID, bookingID uuid.UUID) (*dbm.Booking, error)
	DeleteBooking(ctx context.Context, booking *dbm.Booking) error
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func stopOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort ASC").Order("updated_at ASC").Order("id ASC")
}

func withStops(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Stops", stopOrder).
		Preload("Stops.POI").
		Preload("Stops.Stay")
}

func (r *tripRepository) ForUser(ctx context.Context, userID uuid.UUID) ([]dbm.Trip, error) {
	var trips []dbm.Trip
	err := r.db.WithContext(ctx).
		Scopes(withStops).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

// Get returns (nil, nil) when the trip does not exist.
func (r *tripRepository) Get(ctx context.Context, tripID uuid.UUID) (*dbm.Trip, error) {
	return r.get(r.db.WithContext(ctx), tripID)
}

func (r *tripRepository) get(tx *gorm.DB, tripID uuid.UUID) (*dbm.Trip, error) {
	var trip dbm.Trip
	err := tx.Scopes(withStops).First(&trip, "id = ?", tripID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

// buildStops attaches stops to tripID. A stop without an explicit non-zero
// sort takes its position in the input.
func buildStops(tripID uuid.UUID, stops []dbm.TripStop) []dbm.TripStop {
	built := make([]dbm.TripStop, len(stops))
	for i, s := range stops {
		s.ID = uuid.Nil
		s.TripID = tripID
		if s.Sort == 0 {
			s.Sort = i
		}
		if s.Status == "" {
			s.Status = dbm.TripStopStatusPlanned
		}
		s.POI, s.Stay = nil, nil
		built[i] = s
	}
	return built
}

func (r *tripRepository) insertStops(tx *gorm.DB, stops []dbm.TripStop) error {
	for i := range stops {
		if err := tx.Omit(clause.Associations).Create(&stops[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *tripRepository) Create(ctx context.Context, trip *dbm.Trip, stops []dbm.TripStop) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(trip).Error; err != nil {
			return err
		}

		built := buildStops(trip.ID, stops)
		if err := r.insertStops(tx, built); err != nil {
			return err
		}
		trip.Stops = built
		return nil
	})
}

// Update saves the trip columns. With replaceStops the existing stop list is
// discarded and rebuilt from stops exactly as Create would.
func (r *tripRepository) Update(ctx context.Context, trip *dbm.Trip, stops []dbm.TripStop, replaceStops bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(trip).
			Select("name", "start_date", "end_date", "status", "updated_at").
			Updates(trip)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if !replaceStops {
			return nil
		}
		if err := tx.Where("trip_id = ?", trip.ID).Delete(&dbm.TripStop{}).Error; err != nil {
			return err
		}
		built := buildStops(trip.ID, stops)
		if err := r.insertStops(tx, built); err != nil {
			return err
		}
		trip.Stops = built
		return nil
	})
}

// Delete removes the stops and bookings explicitly before the trip row; the
// ON DELETE CASCADE constraints are a second line, not the mechanism.
func (r *tripRepository) Delete(ctx context.Context, trip *dbm.Trip) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_id = ?", trip.ID).Delete(&dbm.TripStop{}).Error; err != nil {
			return err
		}
		if err := tx.Where("trip_id = ?", trip.ID).Delete(&dbm.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&dbm.Trip{}, "id = ?", trip.ID).Error
	})
}

// AddStop appends: without an explicit sort the stop lands after the
// current last position.
func (r *tripRepository) AddStop(ctx context.Context, trip *dbm.Trip, stop *dbm.TripStop) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&dbm.TripStop{}).Where("trip_id = ?", trip.ID).Count(&count).Error; err != nil {
			return err
		}

		stop.TripID = trip.ID
		if stop.Sort == 0 {
			stop.Sort = int(count)
		}
		if stop.Status == "" {
			stop.Status = dbm.TripStopStatusPlanned
		}
		return tx.Omit(clause.Associations).Create(stop).Error
	})
}

func (r *tripRepository) GetStop(ctx context.Context, tripID, stopID uuid.UUID) (*dbm.TripStop, error) {
	var stop dbm.TripStop
	err := r.db.WithContext(ctx).
		Preload("POI").
		Preload("Stay").
		Where("trip_id = ?", tripID).
		First(&stop, "id = ?", stopID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stop, nil
}

// GetStopOwnedBy finds a stop across every trip of userID.
func (r *tripRepository) GetStopOwnedBy(ctx context.Context, stopID, userID uuid.UUID) (*dbm.TripStop, error) {
	var stop dbm.TripStop
	err := r.db.WithContext(ctx).
		Preload("POI").
		Preload("Stay").
		Joins("JOIN trips ON trips.id = trip_stops.trip_id").
		Where("trip_stops.id = ? AND trips.user_id = ?", stopID, userID).
		First(&stop).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stop, nil
}

func (r *tripRepository) UpdateStop(ctx context.Context, stop *dbm.TripStop) error {
	result := r.db.WithContext(ctx).
		Model(stop).
		Select("kind", "poi_id", "stay_id", "day_index", "sort", "status", "updated_at").
		Updates(stop)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkStopStatus writes status whatever the current one is.
func (r *tripRepository) MarkStopStatus(ctx context.Context, stop *dbm.TripStop, status dbm.TripStopStatus) error {
	err := r.db.WithContext(ctx).Model(stop).Update("status", status).Error
	if err != nil {
		return err
	}
	stop.Status = status
	return nil
}

func (r *tripRepository) RemoveStop(ctx context.Context, stop *dbm.TripStop) error {
	return r.db.WithContext(ctx).Delete(&dbm.TripStop{}, "id = ?", stop.ID).Error
}

// ReorderStops moves every listed stop of trip to the position of its index
// in stopIDs. Stops not listed keep their sort and ids of other trips are
// ignored. Ties are resolved by the previous order and the result is
// renumbered 0..n-1, so trip.Stops and any later read agree.
func (r *tripRepository) ReorderStops(ctx context.Context, trip *dbm.Trip, stopIDs []uuid.UUID) error {
	rank := make(map[uuid.UUID]int, len(stopIDs))
	for i, id := range stopIDs {
		rank[id] = i
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stops []dbm.TripStop
		err := tx.Scopes(stopOrder).
			Preload("POI").
			Preload("Stay").
			Where("trip_id = ?", trip.ID).
			Find(&stops).Error
		if err != nil {
			return err
		}

		stored := make(map[uuid.UUID]int, len(stops))
		for i := range stops {
			stored[stops[i].ID] = stops[i].Sort
			if pos, ok := rank[stops[i].ID]; ok {
				stops[i].Sort = pos
			}
		}

		sort.SliceStable(stops, func(a, b int) bool {
			return stops[a].Sort < stops[b].Sort
		})

		for i := range stops {
			stops[i].Sort = i
			if stored[stops[i].ID] == i {
				continue
			}
			if err := tx.Model(&stops[i]).Update("sort", i).Error; err != nil {
				return err
			}
		}
		trip.Stops = stops
		return nil
	})
}

func (r *tripRepository) AddBooking(ctx context.Context, booking *dbm.Booking) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error
}

// ImportBookings inserts bookings whose fingerprint is not yet stored for the
// trip and returns the ones actually created.
func (r *tripRepository) ImportBookings(ctx context.Context, tripID uuid.UUID, bookings []dbm.Booking) ([]dbm.Booking, error) {
	created := make([]dbm.Booking, 0, len(bookings))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seen := make(map[string]bool, len(bookings))
		for _, b := range bookings {
			if b.Fingerprint != nil {
				if seen[*b.Fingerprint] {
					continue
				}
				seen[*b.Fingerprint] = true

				var n int64
				err := tx.Model(&dbm.Booking{}).
					Where("trip_id = ? AND fingerprint = ?", tripID, *b.Fingerprint).
					Count(&n).Error
				if err != nil {
					return err
				}
				if n > 0 {
					continue
				}
			}

			b.TripID = tripID
			if err := tx.Omit(clause.Associations).Create(&b).Error; err != nil {
				return err
			}
			created = append(created, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListBookings orders by check-in date with undated bookings last.
func (r *tripRepository) ListBookings(ctx context.Context, tripID uuid.UUID) ([]dbm.Booking, error) {
	var bookings []dbm.Booking
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("CASE WHEN check_in IS NULL THEN 1 ELSE 0 END").
		Order("check_in ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *tripRepository) GetBooking(ctx context.Context, tripID, bookingID uuid.UUID) (*dbm.Booking, error) {
	var booking dbm.Booking
	err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		First(&booking, "id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *tripRepository) DeleteBooking(ctx context.Context, booking *dbm.Booking) error {
	return r.db.WithContext(ctx).Delete(&dbm.Booking{}, "id = ?", booking.ID).Error
}
