package response_models

import "time"

type POI struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description *string   `json:"description"`
	Photos      []string  `json:"photos"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Geohash     string    `json:"geohash"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Property struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     *string   `json:"address"`
	Phone       *string   `json:"phone"`
	Website     *string   `json:"website"`
	Photos      []string  `json:"photos"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Geohash     string    `json:"geohash"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
