package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"guidelk/internal/models/db_models"
	"guidelk/internal/spatial"
)

// ErrStillReferenced is returned when deleting a point that trip stops or
// bookings still point at.
var ErrStillReferenced = errors.New("point is still referenced")

type spatialRow interface {
	Spatial() *db_models.SpatialColumns
}

type spatialModel[T any] interface {
	*T
	spatialRow
}

// listPoints returns rows ordered by name. On the text backend every row is
// decoded and tested in-process because the filter cannot be pushed down.
func listPoints[T any, PT spatialModel[T]](ctx context.Context, db *gorm.DB, codec spatial.Codec, box *spatial.BBox) ([]T, error) {
	query := db.WithContext(ctx).Order("name ASC").Order("id ASC")

	var within spatial.Containment
	if box != nil {
		within = codec.ContainedIn(*box)
		query = query.Scopes(within.Scope)
	}

	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if box == nil {
		return rows, nil
	}

	kept := rows[:0]
	for i := range rows {
		if within.Keep(PT(&rows[i]).Spatial().Geom) {
			kept = append(kept, rows[i])
		}
	}
	return kept, nil
}

func getPoint[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*T, error) {
	var row T
	err := db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// encodePoint rewrites the geometry from the scalar columns so both always
// describe the same coordinate.
func encodePoint(codec spatial.Codec, row spatialRow) {
	cols := row.Spatial()
	cols.SetPosition(codec, cols.Longitude, cols.Latitude)
}

// reference is a column of another table that may point at a point row.
type reference struct {
	model  interface{}
	column string
}

// deletePoint hard-deletes row unless one of refs still points at it. The
// check and the delete share a transaction.
func deletePoint(ctx context.Context, db *gorm.DB, row interface{}, id uuid.UUID, refs ...reference) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ref := range refs {
			var n int64
			if err := tx.Model(ref.model).Where(ref.column+" = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return ErrStillReferenced
			}
		}
		return tx.Delete(row, "id = ?", id).Error
	})
}
