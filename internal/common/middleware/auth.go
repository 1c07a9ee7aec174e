package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"sheet-gateway-backend/internal/common/errors"
)

const HeaderAdminToken = "X-Admin-Token"

// RequireAdmin guards operator routes with a shared token. An empty token
// disables the routes altogether.
func RequireAdmin(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			Abort(c, errors.NewForbiddenError("admin routes are disabled"))
			return
		}

		got := c.GetHeader(HeaderAdminToken)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			Abort(c, errors.NewForbiddenError("admin token required"))
			return
		}

		c.Next()
	}
}
