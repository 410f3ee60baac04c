package middleware

import (
	"net/http"

	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RequireAdmin gates a route group to admin users. It must run after
// AuthMiddleware so the user ID is already in the context.
func RequireAdmin(userService portssvc.UserSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Error("User ID not found in context for admin check")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := userService.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("Failed to load user for admin check", "error", err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		if !user.IsAdmin {
			logger.Warn("Non-admin user attempted admin route")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Next()
	}
}
