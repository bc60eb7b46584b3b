package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roborush/portal/internal/common"
)

// RoleMiddleware rejects requests whose authenticated user does not carry
// one of the required roles. Must run after the auth middleware.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := common.GetRoleFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		for _, required := range requiredRoles {
			if strings.EqualFold(role, required) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "Forbidden",
			"message":  "You don't have permission to access this resource",
			"required": requiredRoles,
		})
	}
}

// AdminMiddleware is a convenience middleware for admin-only access.
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("admin")
}
