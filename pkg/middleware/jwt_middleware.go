package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"guidelk/internal/services"
	"guidelk/pkg/utils"
)

// AuthMiddleware verifies the bearer token, loads or creates the matching
// user and stores its id under "user_id".
func AuthMiddleware(accounts services.AccountServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		user, err := accounts.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, utils.ErrUnauthorized) {
				utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			} else {
				utils.HandleServiceError(c, err)
			}
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("firebase_uid", user.FirebaseUID)
		c.Next()
	}
}
