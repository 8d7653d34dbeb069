package db_models

type TripStatus string

const (
	TripStatusDraft    TripStatus = "draft"
	TripStatusActive   TripStatus = "active"
	TripStatusArchived TripStatus = "archived"
)

func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusDraft, TripStatusActive, TripStatusArchived:
		return true
	}
	return false
}

type TripStopKind string

const (
	TripStopKindPOI  TripStopKind = "poi"
	TripStopKindStay TripStopKind = "stay"
)

func (k TripStopKind) Valid() bool {
	return k == TripStopKindPOI || k == TripStopKindStay
}

// TripStopStatus has no terminal state; any status may follow any other.
type TripStopStatus string

const (
	TripStopStatusPlanned TripStopStatus = "planned"
	TripStopStatusVisited TripStopStatus = "visited"
	TripStopStatusSkipped TripStopStatus = "skipped"
)

func (s TripStopStatus) Valid() bool {
	switch s {
	case TripStopStatusPlanned, TripStopStatusVisited, TripStopStatusSkipped:
		return true
	}
	return false
}

type BookingSource string

const (
	BookingSourceManual        BookingSource = "manual"
	BookingSourceBookingImport BookingSource = "booking_import"
)

func (s BookingSource) Valid() bool {
	return s == BookingSourceManual || s == BookingSourceBookingImport
}
