package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guidelk/internal/models/request_models"
	"guidelk/internal/services"
	"guidelk/pkg/utils"
)

type POIsController struct {
	poiService services.POIServiceInterface
}

func NewPOIsController(poiService services.POIServiceInterface) *POIsController {
	return &POIsController{
		poiService: poiService,
	}
}

// ListPois godoc
// @Summary List points of interest
// @Description List POIs ordered by name, optionally inside a bounding box
// @Tags POIs
// @Produce json
// @Param bbox query string false "minLon,minLat,maxLon,maxLat"
// @Success 200 {array} response_models.POI
// @Failure 400 {object} utils.APIResponse
// @Router /pois [get]
func (p *POIsController) ListPois(c *gin.Context) {
	bbox, ok := bboxQuery(c)
	if !ok {
		return
	}

	pois, err := p.poiService.ListPois(c.Request.Context(), bbox)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pois, "POIs fetched successfully")
}

// GetPoiById godoc
// @Summary Get a POI by ID
// @Tags POIs
// @Produce json
// @Param id path string true "POI ID"
// @Success 200 {object} response_models.POI
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /pois/{id} [get]
func (p *POIsController) GetPoiById(c *gin.Context) {
	poiID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	poi, err := p.poiService.GetPOIById(c.Request.Context(), poiID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, poi, "POI fetched successfully")
}

// CreatePoi godoc
// @Summary Create a POI
// @Tags POIs
// @Accept json
// @Produce json
// @Param request body request_models.CreatePoiRequest true "POI payload"
// @Success 201 {object} response_models.POI
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /pois [post]
func (p *POIsController) CreatePoi(c *gin.Context) {
	var req request_models.CreatePoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	poi, err := p.poiService.CreatePoi(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, poi, "POI created successfully")
}

// UpdatePoi godoc
// @Summary Patch a POI
// @Description Only fields present in the body change. Latitude and longitude move the point only when sent together.
// @Tags POIs
// @Accept json
// @Produce json
// @Param id path string true "POI ID"
// @Param request body request_models.UpdatePoiRequest true "Fields to change"
// @Success 200 {object} response_models.POI
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /pois/{id} [patch]
func (p *POIsController) UpdatePoi(c *gin.Context) {
	poiID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdatePoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	poi, err := p.poiService.UpdatePoi(c.Request.Context(), poiID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, poi, "POI updated successfully")
}

// DeletePoi godoc
// @Summary Delete a POI
// @Tags POIs
// @Param id path string true "POI ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /pois/{id} [delete]
func (p *POIsController) DeletePoi(c *gin.Context) {
	poiID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := p.poiService.DeletePoi(c.Request.Context(), poiID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}
