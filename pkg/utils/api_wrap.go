package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, data, message)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func respond(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// errorStatus maps a service sentinel to its HTTP status and public message.
var errorStatus = []struct {
	err     error
	code    int
	message string
}{
	{ErrTripNotFound, http.StatusNotFound, "Trip not found"},
	{ErrStopNotFound, http.StatusNotFound, "Stop not found"},
	{ErrPOINotFound, http.StatusNotFound, "POI not found"},
	{ErrPropertyNotFound, http.StatusNotFound, "Property not found"},
	{ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{ErrUserNotFound, http.StatusNotFound, "User not found"},
	{ErrInvalidBBox, http.StatusBadRequest, "Invalid bbox"},
	{ErrInvalidCoordinate, http.StatusBadRequest, "Latitude must be within [-90,90] and longitude within [-180,180]"},
	{ErrInvalidStatus, http.StatusBadRequest, "Invalid status"},
	{ErrInvalidReference, http.StatusBadRequest, "Referenced point does not exist"},
	{ErrInvalidInput, http.StatusBadRequest, "Invalid input"},
	{ErrPointInUse, http.StatusConflict, "Point is still referenced by trips or bookings"},
	{ErrUnauthorized, http.StatusUnauthorized, "Invalid token"},
}

func HandleServiceError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			message := e.message
			if e.code == http.StatusBadRequest {
				message = err.Error()
			}
			RespondError(c, e.code, message)
			return
		}
	}

	if !errors.Is(err, ErrDatabaseError) {
		zap.L().Error("unhandled service error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
	}
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}
