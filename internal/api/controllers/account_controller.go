package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guidelk/internal/models/request_models"
	"guidelk/internal/services"
	"guidelk/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// VerifyToken godoc
// @Summary Verify an identity token
// @Description Returns the identity carried by the token without creating a user
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.VerifyTokenRequest true "Token payload"
// @Success 200 {object} response_models.VerifyTokenResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/verify [post]
func (a *AccountController) VerifyToken(c *gin.Context) {
	var req request_models.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	identity, err := a.accountService.VerifyToken(c.Request.Context(), req.Token)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, identity, "Token verified")
}

// Me godoc
// @Summary Get the current user
// @Tags Accounts
// @Produce json
// @Success 200 {object} response_models.AccountResponse
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /me [get]
func (a *AccountController) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	account, err := a.accountService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Account fetched successfully")
}

// DeleteMe godoc
// @Summary Delete the current user and all of their trips
// @Tags Accounts
// @Success 204
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /me [delete]
func (a *AccountController) DeleteMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := a.accountService.DeleteAccount(c.Request.Context(), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondNoContent(c)
}
