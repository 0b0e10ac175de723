// internal/middleware/auth.go
package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/autorunai/moto-backend/internal/utils"
)

// AdminRequired gates the management routes behind a static API key. There
// are no user accounts in this system; the only privileged caller is the
// internal admin panel.
func AdminRequired(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Admin-Key")
		if apiKey == "" || provided == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
