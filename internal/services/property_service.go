package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"guidelk/internal/models/db_models"
	"guidelk/internal/models/request_models"
	"guidelk/internal/models/response_models"
	"guidelk/internal/repositories"
	"guidelk/internal/spatial"
	"guidelk/pkg/utils"
)

type PropertyServiceInterface interface {
	ListProperties(ctx context.Context, bbox *spatial.BBox) ([]response_models.Property, error)
	GetProperty(ctx context.Context, id uuid.UUID) (response_models.Property, error)
	CreateProperty(ctx context.Context, req request_models.CreatePropertyRequest) (response_models.Property, error)
	UpdateProperty(ctx context.Context, id uuid.UUID, req request_models.UpdatePropertyRequest) (response_models.Property, error)
	DeleteProperty(ctx context.Context, id uuid.UUID) error
}

type PropertyService struct {
	propertyRepository repositories.PropertyRepository
	log                *zap.Logger
}

func NewPropertyService(propertyRepo repositories.PropertyRepository, log *zap.Logger) PropertyServiceInterface {
	return &PropertyService{
		propertyRepository: propertyRepo,
		log:                log.Named("property"),
	}
}

func (s *PropertyService) ListProperties(ctx context.Context, bbox *spatial.BBox) ([]response_models.Property, error) {
	if bbox != nil {
		if err := bbox.Validate(); err != nil {
			return nil, utils.ErrInvalidBBox
		}
	}

	props, err := s.propertyRepository.List(ctx, bbox)
	if err != nil {
		s.log.Error("list properties", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	resp := make([]response_models.Property, 0, len(props))
	for i := range props {
		resp = append(resp, toPropertyResponse(&props[i]))
	}
	return resp, nil
}

func (s *PropertyService) find(ctx context.Context, id uuid.UUID) (*db_models.PartnerProperty, error) {
	prop, err := s.propertyRepository.GetByID(ctx, id)
	if err != nil {
		s.log.Error("get property", zap.Stringer("property_id", id), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if prop == nil {
		return nil, utils.ErrPropertyNotFound
	}
	return prop, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (response_models.Property, error) {
	prop, err := s.find(ctx, id)
	if err != nil {
		return response_models.Property{}, err
	}
	return toPropertyResponse(prop), nil
}

func (s *PropertyService) CreateProperty(ctx context.Context, req request_models.CreatePropertyRequest) (response_models.Property, error) {
	if req.Latitude == nil || req.Longitude == nil || !spatial.ValidCoordinate(*req.Latitude, *req.Longitude) {
		return response_models.Property{}, utils.ErrInvalidCoordinate
	}

	prop := &db_models.PartnerProperty{
		SpatialColumns: db_models.SpatialColumns{Latitude: *req.Latitude, Longitude: *req.Longitude},
		Name:           req.Name,
		Address:        req.Address,
		Phone:          req.Phone,
		Website:        req.Website,
		Photos:         req.Photos,
		IsPublished:    req.IsPublished,
	}

	if _, err := s.propertyRepository.CreateProperty(ctx, prop); err != nil {
		s.log.Error("create property", zap.String("name", req.Name), zap.Error(err))
		return response_models.Property{}, utils.ErrDatabaseError
	}
	return toPropertyResponse(prop), nil
}

func (s *PropertyService) UpdateProperty(ctx context.Context, id uuid.UUID, req request_models.UpdatePropertyRequest) (response_models.Property, error) {
	prop, err := s.find(ctx, id)
	if err != nil {
		return response_models.Property{}, err
	}

	if req.Name != nil {
		prop.Name = *req.Name
	}
	if req.Address != nil {
		prop.Address = req.Address
	}
	if req.Phone != nil {
		prop.Phone = req.Phone
	}
	if req.Website != nil {
		prop.Website = req.Website
	}
	if req.Photos != nil {
		prop.Photos = req.Photos
	}
	if req.IsPublished != nil {
		prop.IsPublished = *req.IsPublished
	}
	if req.Latitude != nil && req.Longitude != nil {
		if !spatial.ValidCoordinate(*req.Latitude, *req.Longitude) {
			return response_models.Property{}, utils.ErrInvalidCoordinate
		}
		prop.Latitude, prop.Longitude = *req.Latitude, *req.Longitude
	}

	if err := s.propertyRepository.UpdateProperty(ctx, prop); err != nil {
		s.log.Error("update property", zap.Stringer("property_id", id), zap.Error(err))
		return response_models.Property{}, utils.ErrDatabaseError
	}
	return toPropertyResponse(prop), nil
}

func (s *PropertyService) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	prop, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.propertyRepository.Delete(ctx, prop); err != nil {
		if errors.Is(err, repositories.ErrStillReferenced) {
			return fmt.Errorf("%w: property %s", utils.ErrPointInUse, id)
		}
		s.log.Error("delete property", zap.Stringer("property_id", id), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}
