package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"designvault/api/internal/apperr"
	"designvault/api/internal/service"
)

const CurrentUserKey = "current_user"

// Auth resolves the Authorization bearer token to a user and stores it in
// the request context. Routes behind it can assume CurrentUserKey is set.
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(apperr.StatusCode(apperr.Auth("")), gin.H{"error": "No token provided"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		user, err := auth.CurrentUser(c.Request.Context(), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}
