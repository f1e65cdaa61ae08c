package rbac

import (
	"net/http"

	"github.com/NicBab/x-tech-app-server/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize gates a route on the caller's role, which AuthMiddleware has
// already placed in the gin context.
func Authorize(enforcer *Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get("role")
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(role.(string), resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "authorization check failed", nil)
			c.Abort()
			return
		}
		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "insufficient permissions", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
