package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Booking struct {
	BaseModel
	TripID   uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_booking_trip_fingerprint,priority:1"`
	StayID   *uuid.UUID `gorm:"type:uuid;index"`
	CheckIn  *datatypes.Date
	CheckOut *datatypes.Date
	Source   BookingSource `gorm:"size:32;not null;default:'manual'"`
	RawJSON  datatypes.JSON
	// blake2b of the raw import record; nil for manual bookings.
	Fingerprint *string `gorm:"size:64;uniqueIndex:idx_booking_trip_fingerprint,priority:2"`

	Stay *PartnerProperty `gorm:"foreignKey:StayID"`
}
