package utils

import "errors"

var (
	ErrTripNotFound     = errors.New("trip not found")
	ErrStopNotFound     = errors.New("stop not found")
	ErrPOINotFound      = errors.New("poi not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrUserNotFound     = errors.New("user not found")

	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidBBox       = errors.New("invalid bbox")
	ErrInvalidCoordinate = errors.New("coordinate out of range")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidReference  = errors.New("referenced point does not exist")

	ErrPointInUse = errors.New("point is referenced by trip stops or bookings")

	ErrUnauthorized  = errors.New("unauthorized")
	ErrDatabaseError = errors.New("database error")
)
