package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guidelk/internal/models/request_models"
	"guidelk/internal/services"
	"guidelk/pkg/utils"
)

type PropertiesController struct {
	propertyService services.PropertyServiceInterface
}

func NewPropertiesController(propertyService services.PropertyServiceInterface) *PropertiesController {
	return &PropertiesController{
		propertyService: propertyService,
	}
}

// ListProperties godoc
// @Summary List partner properties
// @Tags Properties
// @Produce json
// @Param bbox query string false "minLon,minLat,maxLon,maxLat"
// @Success 200 {array} response_models.Property
// @Failure 400 {object} utils.APIResponse
// @Router /properties [get]
func (p *PropertiesController) ListProperties(c *gin.Context) {
	bbox, ok := bboxQuery(c)
	if !ok {
		return
	}

	props, err := p.propertyService.ListProperties(c.Request.Context(), bbox)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, props, "Properties fetched successfully")
}

// GetProperty godoc
// @Summary Get a partner property by ID
// @Tags Properties
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response_models.Property
// @Failure 404 {object} utils.APIResponse
// @Router /properties/{id} [get]
func (p *PropertiesController) GetProperty(c *gin.Context) {
	propID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	prop, err := p.propertyService.GetProperty(c.Request.Context(), propID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, prop, "Property fetched successfully")
}

// CreateProperty godoc
// @Summary Create a partner property
// @Tags Properties
// @Accept json
// @Produce json
// @Param request body request_models.CreatePropertyRequest true "Property payload"
// @Success 201 {object} response_models.Property
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /properties [post]
func (p *PropertiesController) CreateProperty(c *gin.Context) {
	var req request_models.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	prop, err := p.propertyService.CreateProperty(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, prop, "Property created successfully")
}

// UpdateProperty godoc
// @Summary Patch a partner property
// @Tags Properties
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param request body request_models.UpdatePropertyRequest true "Fields to change"
// @Success 200 {object} response_models.Property
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /properties/{id} [patch]
func (p *PropertiesController) UpdateProperty(c *gin.Context) {
	propID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	prop, err := p.propertyService.UpdateProperty(c.Request.Context(), propID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, prop, "Property updated successfully")
}

// DeleteProperty godoc
// @Summary Delete a partner property
// @Tags Properties
// @Param id path string true "Property ID"
// @Success 204
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /properties/{id} [delete]
func (p *PropertiesController) DeleteProperty(c *gin.Context) {
	propID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := p.propertyService.DeleteProperty(c.Request.Context(), propID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}
