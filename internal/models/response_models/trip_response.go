package response_models

import (
	"encoding/json"
	"time"
)

type TripStop struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	Kind      string    `json:"kind"`
	PoiID     *string   `json:"poi_id"`
	StayID    *string   `json:"stay_id"`
	DayIndex  int       `json:"day_index"`
	Sort      int       `json:"sort"`
	Status    string    `json:"status"`
	POI       *POI      `json:"poi,omitempty"`
	Stay      *Property `json:"stay,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Trip struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	StartDate *string    `json:"start_date"`
	EndDate   *string    `json:"end_date"`
	Status    string     `json:"status"`
	Stops     []TripStop `json:"stops"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Booking struct {
	ID        string          `json:"id"`
	TripID    string          `json:"trip_id"`
	StayID    *string         `json:"stay_id"`
	CheckIn   *string         `json:"check_in"`
	CheckOut  *string         `json:"check_out"`
	Source    string          `json:"source"`
	RawJSON   json.RawMessage `json:"raw_json,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
