package middleware

import (
	"net/http"

	"citizen_registry/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware allowing only the listed roles.
// Each endpoint declares its own subset; anything else gets 403.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Role not found in token, ensure JWT middleware runs first"})
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Invalid role type in token"})
			return
		}

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "You do not have permission to access this resource"})
	}
}

// AdminMiddleware allows only full administrators
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}
