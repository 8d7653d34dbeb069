// Package spatial stores WGS84 points either as PostGIS geometries or, on
// backends without spatial types, as "lon,lat" text.
package spatial

import (
	"context"
	"database/sql/driver"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mmcloughlin/geohash"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// SRID of every geometry written by this package.
const SRID = 4326

const geohashPrecision = 9

// Backend is the capability tier of the database a store writes to.
type Backend int

const (
	// TextBackend has no spatial types; points are stored as "lon,lat".
	TextBackend Backend = iota
	// SpatialBackend stores native geometry and evaluates containment in SQL.
	SpatialBackend
)

func (b Backend) String() string {
	if b == SpatialBackend {
		return "spatial"
	}
	return "text"
}

// BackendFor maps a gorm dialector name to its backend tier.
func BackendFor(dialect string) Backend {
	if dialect == "postgres" {
		return SpatialBackend
	}
	return TextBackend
}

// Point is the geometry column shared by points of interest and partner
// properties. It is always built through a Codec so a table never mixes the
// two encodings.
type Point struct {
	Backend  Backend
	Lon, Lat float64

	// false for geometries read back from a spatial backend: those stay opaque
	// in-process and the scalar latitude/longitude columns carry the value.
	decoded bool
}

// NewSpatialPoint builds the native geometry form.
func NewSpatialPoint(lon, lat float64) Point {
	return Point{Backend: SpatialBackend, Lon: lon, Lat: lat, decoded: true}
}

// NewTextPoint builds the text fallback form.
func NewTextPoint(lon, lat float64) Point {
	return Point{Backend: TextBackend, Lon: lon, Lat: lat, decoded: true}
}

// Coordinates returns the point, or ok=false when it is not known in-process.
func (p Point) Coordinates() (lon, lat float64, ok bool) {
	return p.Lon, p.Lat, p.decoded
}

// Text is the "lon,lat" encoding. FormatFloat with precision -1 guarantees
// Decode(Text()) yields the same float64 values.
func (p Point) Text() string {
	return strconv.FormatFloat(p.Lon, 'g', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'g', -1, 64)
}

// Decode parses the text fallback encoding.
func Decode(value string) (lon, lat float64, ok bool) {
	rawLon, rawLat, found := strings.Cut(value, ",")
	if !found {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(rawLon), 64)
	if err != nil {
		return 0, 0, false
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(rawLat), 64)
	if err != nil {
		return 0, 0, false
	}
	return lon, lat, true
}

// GormDataType implements schema.GormDataTypeInterface.
func (Point) GormDataType() string {
	return "geometry"
}

// GormDBDataType picks the column type per dialect.
func (Point) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if BackendFor(db.Dialector.Name()) == SpatialBackend {
		return fmt.Sprintf("geometry(Point,%d)", SRID)
	}
	return "varchar(255)"
}

// GormValue renders the write-time SQL for the point.
func (p Point) GormValue(_ context.Context, _ *gorm.DB) clause.Expr {
	if p.Backend == SpatialBackend {
		return clause.Expr{
			SQL:  fmt.Sprintf("ST_SetSRID(ST_MakePoint(?, ?), %d)", SRID),
			Vars: []interface{}{p.Lon, p.Lat},
		}
	}
	return clause.Expr{SQL: "?", Vars: []interface{}{p.Text()}}
}

// Scan implements sql.Scanner. Text values are decoded; anything else is
// treated as an opaque native geometry.
func (p *Point) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*p = Point{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("spatial: cannot scan %T into Point", value)
	}

	if lon, lat, ok := Decode(raw); ok {
		*p = NewTextPoint(lon, lat)
		return nil
	}
	*p = Point{Backend: SpatialBackend}
	return nil
}

// Value implements driver.Valuer for code paths that bypass GormValue.
func (p Point) Value() (driver.Value, error) {
	if p.Backend == SpatialBackend {
		return nil, fmt.Errorf("spatial: native points must be written through gorm")
	}
	return p.Text(), nil
}

// ValidCoordinate reports whether lat/lon are finite WGS84 values.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Geohash returns the cell of the coordinate, stored next to the geometry.
func Geohash(lat, lon float64) string {
	return geohash.EncodeWithPrecision(lat, lon, geohashPrecision)
}
