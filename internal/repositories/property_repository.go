package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"guidelk/internal/models/db_models"
	"guidelk/internal/spatial"
)

type PropertyRepository interface {
	List(ctx context.Context, bbox *spatial.BBox) ([]db_models.PartnerProperty, error)
	GetByID(ctx context.Context, id uuid.UUID) (*db_models.PartnerProperty, error)
	CreateProperty(ctx context.Context, prop *db_models.PartnerProperty) (uuid.UUID, error)
	UpdateProperty(ctx context.Context, prop *db_models.PartnerProperty) error
	Delete(ctx context.Context, prop *db_models.PartnerProperty) error
}

type propertyRepository struct {
	db    *gorm.DB
	codec spatial.Codec
}

func NewPropertyRepository(db *gorm.DB, codec spatial.Codec) PropertyRepository {
	return &propertyRepository{db: db, codec: codec}
}

func (r *propertyRepository) List(ctx context.Context, bbox *spatial.BBox) ([]db_models.PartnerProperty, error) {
	return listPoints[db_models.PartnerProperty](ctx, r.db, r.codec, bbox)
}

func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.PartnerProperty, error) {
	return getPoint[db_models.PartnerProperty](ctx, r.db, id)
}

func (r *propertyRepository) CreateProperty(ctx context.Context, prop *db_models.PartnerProperty) (uuid.UUID, error) {
	encodePoint(r.codec, prop)
	if err := r.db.WithContext(ctx).Create(prop).Error; err != nil {
		return uuid.Nil, err
	}
	return prop.ID, nil
}

func (r *propertyRepository) UpdateProperty(ctx context.Context, prop *db_models.PartnerProperty) error {
	encodePoint(r.codec, prop)
	result := r.db.WithContext(ctx).Model(prop).Select("*").Omit("id", "created_at").Updates(prop)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete refuses while a stay stop or a booking still references the property.
func (r *propertyRepository) Delete(ctx context.Context, prop *db_models.PartnerProperty) error {
	return deletePoint(ctx, r.db, &db_models.PartnerProperty{}, prop.ID,
		reference{model: &db_models.TripStop{}, column: "stay_id"},
		reference{model: &db_models.Booking{}, column: "stay_id"})
}
