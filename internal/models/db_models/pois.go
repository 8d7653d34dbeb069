package db_models

import (
	"gorm.io/datatypes"

	"guidelk/internal/spatial"
)

// SpatialColumns is embedded by every table holding a point. Latitude and
// Longitude are the source of truth; Geom and Geohash are rewritten from them
// on every save.
type SpatialColumns struct {
	Latitude  float64       `gorm:"not null"`
	Longitude float64       `gorm:"not null"`
	Geom      spatial.Point `gorm:"not null"`
	Geohash   string        `gorm:"size:12;index"`
}

func (s *SpatialColumns) SetPosition(codec spatial.Codec, lon, lat float64) {
	s.Longitude = lon
	s.Latitude = lat
	s.Geom = codec.Encode(lon, lat)
	s.Geohash = spatial.Geohash(lat, lon)
}

// Spatial exposes the embedded columns to code shared by both point tables.
func (s *SpatialColumns) Spatial() *SpatialColumns {
	return s
}

type PointOfInterest struct {
	BaseModel
	SpatialColumns
	Name        string  `gorm:"size:255;not null;index"`
	Category    string  `gorm:"size:128;not null"`
	Description *string `gorm:"size:2048"`
	Photos      datatypes.JSONSlice[string]
	IsPublished bool `gorm:"not null;default:false"`
}

func (PointOfInterest) TableName() string {
	return "pois"
}
