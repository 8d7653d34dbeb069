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

type POIServiceInterface interface {
	ListPois(ctx context.Context, bbox *spatial.BBox) ([]response_models.POI, error)
	GetPOIById(ctx context.Context, id uuid.UUID) (response_models.POI, error)
	CreatePoi(ctx context.Context, req request_models.CreatePoiRequest) (response_models.POI, error)
	UpdatePoi(ctx context.Context, id uuid.UUID, req request_models.UpdatePoiRequest) (response_models.POI, error)
	DeletePoi(ctx context.Context, id uuid.UUID) error
}

type PoiService struct {
	poiRepository repositories.POIRepository
	log           *zap.Logger
}

func NewPOIService(poiRepo repositories.POIRepository, log *zap.Logger) POIServiceInterface {
	return &PoiService{
		poiRepository: poiRepo,
		log:           log.Named("poi"),
	}
}

func (p *PoiService) ListPois(ctx context.Context, bbox *spatial.BBox) ([]response_models.POI, error) {
	if bbox != nil {
		if err := bbox.Validate(); err != nil {
			return nil, utils.ErrInvalidBBox
		}
	}

	pois, err := p.poiRepository.List(ctx, bbox)
	if err != nil {
		p.log.Error("list pois", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	resp := make([]response_models.POI, 0, len(pois))
	for i := range pois {
		resp = append(resp, toPOIResponse(&pois[i]))
	}
	return resp, nil
}

func (p *PoiService) find(ctx context.Context, id uuid.UUID) (*db_models.PointOfInterest, error) {
	poi, err := p.poiRepository.GetByID(ctx, id)
	if err != nil {
		p.log.Error("get poi", zap.Stringer("poi_id", id), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if poi == nil {
		return nil, utils.ErrPOINotFound
	}
	return poi, nil
}

func (p *PoiService) GetPOIById(ctx context.Context, id uuid.UUID) (response_models.POI, error) {
	poi, err := p.find(ctx, id)
	if err != nil {
		return response_models.POI{}, err
	}
	return toPOIResponse(poi), nil
}

func (p *PoiService) CreatePoi(ctx context.Context, req request_models.CreatePoiRequest) (response_models.POI, error) {
	if req.Latitude == nil || req.Longitude == nil || !spatial.ValidCoordinate(*req.Latitude, *req.Longitude) {
		return response_models.POI{}, utils.ErrInvalidCoordinate
	}

	poi := &db_models.PointOfInterest{
		SpatialColumns: db_models.SpatialColumns{Latitude: *req.Latitude, Longitude: *req.Longitude},
		Name:           req.Name,
		Category:       req.Category,
		Description:    req.Description,
		Photos:         req.Photos,
		IsPublished:    req.IsPublished,
	}

	if _, err := p.poiRepository.CreatePoi(ctx, poi); err != nil {
		p.log.Error("create poi", zap.String("name", req.Name), zap.Error(err))
		return response_models.POI{}, utils.ErrDatabaseError
	}
	return toPOIResponse(poi), nil
}

// UpdatePoi applies only the fields present in req. Latitude or longitude
// sent alone leaves the position untouched.
func (p *PoiService) UpdatePoi(ctx context.Context, id uuid.UUID, req request_models.UpdatePoiRequest) (response_models.POI, error) {
	poi, err := p.find(ctx, id)
	if err != nil {
		return response_models.POI{}, err
	}

	if req.Name != nil {
		poi.Name = *req.Name
	}
	if req.Category != nil {
		poi.Category = *req.Category
	}
	if req.Description != nil {
		poi.Description = req.Description
	}
	if req.Photos != nil {
		poi.Photos = req.Photos
	}
	if req.IsPublished != nil {
		poi.IsPublished = *req.IsPublished
	}
	if req.Latitude != nil && req.Longitude != nil {
		if !spatial.ValidCoordinate(*req.Latitude, *req.Longitude) {
			return response_models.POI{}, utils.ErrInvalidCoordinate
		}
		poi.Latitude, poi.Longitude = *req.Latitude, *req.Longitude
	}

	if err := p.poiRepository.UpdatePoi(ctx, poi); err != nil {
		p.log.Error("update poi", zap.Stringer("poi_id", id), zap.Error(err))
		return response_models.POI{}, utils.ErrDatabaseError
	}
	return toPOIResponse(poi), nil
}

func (p *PoiService) DeletePoi(ctx context.Context, id uuid.UUID) error {
	poi, err := p.find(ctx, id)
	if err != nil {
		return err
	}

	if err := p.poiRepository.Delete(ctx, poi); err != nil {
		if errors.Is(err, repositories.ErrStillReferenced) {
			return fmt.Errorf("%w: poi %s", utils.ErrPointInUse, id)
		}
		p.log.Error("delete poi", zap.Stringer("poi_id", id), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}
