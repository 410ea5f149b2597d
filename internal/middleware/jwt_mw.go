package middleware

import (
	"net/http"
	"strings"

	"citizen_registry/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey = "authUser"
	AuthRoleKey = "authRole"
)

// JWTAuthMiddleware creates a middleware for bearer-token authentication
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid authorization header format"})
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)

		c.Next()
	}
}
