package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"designvault/api/internal/apperr"
	"designvault/api/internal/middleware"
	"designvault/api/internal/models"
)

// writeError maps a taxonomy error to its status and {error} body. Internal
// detail is only exposed in development.
func (h HandlerSet) writeError(c *gin.Context, err error) {
	status := apperr.StatusCode(err)
	message := err.Error()

	if apperr.KindOf(err) == apperr.KindInternal {
		h.log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		if h.cfg.Environment != "development" {
			message = "Internal server error"
		}
	}

	c.JSON(status, gin.H{"error": message})
}

func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get(middleware.CurrentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	return user, ok
}

func abortNoUser(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
}
