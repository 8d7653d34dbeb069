package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"guidelk/internal/models/db_models"
	"guidelk/internal/spatial"
)

type POIRepository interface {
	List(ctx context.Context, bbox *spatial.BBox) ([]db_models.PointOfInterest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.PointOfInterest, error)
	CreatePoi(ctx context.Context, poi *db_models.PointOfInterest) (uuid.UUID, error)
	UpdatePoi(ctx context.Context, poi *db_models.PointOfInterest) error
	Delete(ctx context.Context, poi *db_models.PointOfInterest) error
}

type poiRepository struct {
	db    *gorm.DB
	codec spatial.Codec
}

func NewPOIRepository(db *gorm.DB, codec spatial.Codec) POIRepository {
	return &poiRepository{db: db, codec: codec}
}

func (r *poiRepository) List(ctx context.Context, bbox *spatial.BBox) ([]db_models.PointOfInterest, error) {
	return listPoints[db_models.PointOfInterest](ctx, r.db, r.codec, bbox)
}

// GetByID returns (nil, nil) when no row matches.
func (r *poiRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.PointOfInterest, error) {
	return getPoint[db_models.PointOfInterest](ctx, r.db, id)
}

func (r *poiRepository) CreatePoi(ctx context.Context, poi *db_models.PointOfInterest) (uuid.UUID, error) {
	encodePoint(r.codec, poi)
	if err := r.db.WithContext(ctx).Create(poi).Error; err != nil {
		return uuid.Nil, err
	}
	return poi.ID, nil
}

func (r *poiRepository) UpdatePoi(ctx context.Context, poi *db_models.PointOfInterest) error {
	encodePoint(r.codec, poi)
	result := r.db.WithContext(ctx).Model(poi).Select("*").Omit("id", "created_at").Updates(poi)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *poiRepository) Delete(ctx context.Context, poi *db_models.PointOfInterest) error {
	return deletePoint(ctx, r.db, &db_models.PointOfInterest{}, poi.ID,
		reference{model: &db_models.TripStop{}, column: "poi_id"})
}
