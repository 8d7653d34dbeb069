package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Trip struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:255;not null"`
	StartDate *datatypes.Date
	EndDate   *datatypes.Date
	Status    TripStatus `gorm:"size:16;not null;default:'draft';check:trip_status_valid,status in ('draft','active','archived')"`

	// Ordered by Sort; loaded by the repository, never written through gorm associations.
	Stops    []TripStop `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
	Bookings []Booking  `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
}

type TripStop struct {
	BaseModel
	TripID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Kind     TripStopKind   `gorm:"size:8;not null;check:trip_stop_kind_valid,kind in ('poi','stay')"`
	PoiID    *uuid.UUID     `gorm:"type:uuid;index"`
	StayID   *uuid.UUID     `gorm:"type:uuid;index"`
	DayIndex int            `gorm:"not null;default:0"`
	Sort     int            `gorm:"not null;default:0"`
	Status   TripStopStatus `gorm:"size:16;not null;default:'planned';check:trip_stop_status_valid,status in ('planned','visited','skipped')"`

	POI  *PointOfInterest `gorm:"foreignKey:PoiID"`
	Stay *PartnerProperty `gorm:"foreignKey:StayID"`
}
