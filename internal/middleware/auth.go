package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	adminKey     string
	adminKeyOnce sync.Once
)

// getAdminKey returns the configured admin key, loading it once from environment.
// Returns empty string if ADMIN_KEY is not set (auth disabled).
func getAdminKey() string {
	adminKeyOnce.Do(func() {
		adminKey = os.Getenv("ADMIN_KEY")
	})
	return adminKey
}

// resetAdminKeyForTest clears the cached key so tests can vary ADMIN_KEY.
func resetAdminKeyForTest() {
	adminKeyOnce = sync.Once{}
	adminKey = ""
}

// AdminKeyAuth returns middleware that requires a valid admin key for access.
// If ADMIN_KEY environment variable is not set, all requests are allowed
// (local dev). The key is provided in the Authorization header as
// "Bearer <key>".
func AdminKeyAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := getAdminKey()

		if key == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
				"code":  "AUTH_REQUIRED",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <admin_key>",
				"code":  "AUTH_INVALID_FORMAT",
			})
			return
		}

		// Constant-time comparison to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid admin key",
				"code":  "AUTH_INVALID_KEY",
			})
			return
		}

		c.Next()
	}
}

// GetAuthStatus returns whether authentication is enabled (ADMIN_KEY is set).
// This is a public endpoint that doesn't require authentication.
func GetAuthStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"auth_enabled": getAdminKey() != "",
	})
}
