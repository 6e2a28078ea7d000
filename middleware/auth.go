package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/scenesmith/scenesmith/common/config"
)

// TokenAuth gates the studio API behind the optional ACCESS_TOKEN. When no
// token is configured the studio runs open, which is the local-development
// default.
func TokenAuth() func(c *gin.Context) {
	return func(c *gin.Context) {
		if config.AccessToken == "" {
			c.Next()
			return
		}
		key := c.Request.Header.Get("Authorization")
		key = strings.TrimPrefix(key, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(key), []byte(config.AccessToken)) != 1 {
			abortWithMessage(c, http.StatusUnauthorized, "access token is missing or invalid")
			return
		}
		c.Next()
	}
}

// BackendKeyCheck rejects generation requests early when no backend access
// key is configured, so the failure reads as a configuration problem rather
// than a backend auth rejection.
func BackendKeyCheck() func(c *gin.Context) {
	return func(c *gin.Context) {
		if config.GeminiAPIKey == "" {
			abortWithMessage(c, http.StatusServiceUnavailable, "GEMINI_API_KEY is not configured")
			return
		}
		c.Next()
	}
}
