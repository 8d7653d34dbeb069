package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"guidelk/internal/spatial"
	"guidelk/pkg/utils"
)

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// currentUser reads the id stored by the auth middleware.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := c.Get("user_id")
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	userID, ok := id.(uuid.UUID)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// bboxQuery returns nil when the bbox parameter is absent.
func bboxQuery(c *gin.Context) (*spatial.BBox, bool) {
	raw, present := c.GetQuery("bbox")
	if !present {
		return nil, true
	}
	box, err := spatial.ParseBBox(raw)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &box, true
}
