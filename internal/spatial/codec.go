package spatial

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

var ErrInvalidBBox = errors.New("invalid bounding box")

// BBox is an axis-aligned rectangle in longitude/latitude.
type BBox struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// ParseBBox parses "minLon,minLat,maxLon,maxLat".
func ParseBBox(raw string) (BBox, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return BBox{}, fmt.Errorf("%w: expected 4 values, got %d", ErrInvalidBBox, len(parts))
	}

	var vals [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return BBox{}, fmt.Errorf("%w: %q is not a number", ErrInvalidBBox, part)
		}
		vals[i] = v
	}

	box := BBox{MinLon: vals[0], MinLat: vals[1], MaxLon: vals[2], MaxLat: vals[3]}
	if err := box.Validate(); err != nil {
		return BBox{}, err
	}
	return box, nil
}

func (b BBox) Validate() error {
	if b.MinLon > b.MaxLon || b.MinLat > b.MaxLat {
		return fmt.Errorf("%w: min must not exceed max", ErrInvalidBBox)
	}
	return nil
}

// Contains is inclusive of the boundary.
func (b BBox) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon && lat >= b.MinLat && lat <= b.MaxLat
}

// Codec produces the write-time representation of coordinates and the
// read-time containment predicate for one backend. A store holds exactly one
// Codec for its whole lifetime.
type Codec struct {
	backend Backend
}

func NewCodec(backend Backend) Codec {
	return Codec{backend: backend}
}

func (c Codec) Backend() Backend {
	return c.backend
}

func (c Codec) Encode(lon, lat float64) Point {
	if c.backend == SpatialBackend {
		return NewSpatialPoint(lon, lat)
	}
	return NewTextPoint(lon, lat)
}

func (c Codec) ContainedIn(box BBox) Containment {
	return Containment{box: box, pushdown: c.backend == SpatialBackend}
}

// Containment filters points by a bounding box. On the spatial backend the
// test runs in SQL; on the text backend Scope is a no-op and every candidate
// row must go through Keep.
type Containment struct {
	box      BBox
	pushdown bool
}

// Scope is a gorm scope for the geom column of the queried table.
func (c Containment) Scope(db *gorm.DB) *gorm.DB {
	if !c.pushdown {
		return db
	}
	return db.Where(
		fmt.Sprintf("ST_Covers(ST_MakeEnvelope(?, ?, ?, ?, %d), geom)", SRID),
		c.box.MinLon, c.box.MinLat, c.box.MaxLon, c.box.MaxLat,
	)
}

// Keep reports whether a loaded row belongs in the result.
func (c Containment) Keep(p Point) bool {
	if c.pushdown {
		return true
	}
	lon, lat, ok := p.Coordinates()
	return ok && c.box.Contains(lon, lat)
}
