package adminauth

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"dgw/pkg/response"
)

// Middleware guards the admin route group with a static API key. The key is
// compared against the bcrypt hash in ADMIN_API_KEY_HASH; clients send it in
// the X-Admin-Key header (or ?admin_key= for WebSocket upgrades, which can't
// set headers from a browser).
//
// When ADMIN_API_KEY_HASH is unset the check is skipped, which is only
// acceptable for local development.
func Middleware() gin.HandlerFunc {
	hash := os.Getenv("ADMIN_API_KEY_HASH")
	if hash == "" {
		log.Println("ADMIN_API_KEY_HASH not set, admin routes are unprotected")
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := c.GetHeader("X-Admin-Key")
		if key == "" {
			key = c.Query("admin_key")
		}
		if key == "" {
			response.SendAPIResponse(c, http.StatusUnauthorized, false, "admin key required", nil)
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
			response.SendAPIResponse(c, http.StatusUnauthorized, false, "invalid admin key", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
