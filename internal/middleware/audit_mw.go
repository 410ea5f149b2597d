package middleware

import (
	"fmt"
	"log"

	"citizen_registry/internal/model"
	"citizen_registry/internal/repository"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware persists one audit entry per authorized admin request.
// Denied requests (4xx/5xx) are not recorded, and a failed insert never
// affects the response.
func AuditMiddleware(repo repository.AuditLogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}
		adminVal, exists := c.Get(AuthUserKey)
		if !exists {
			return
		}
		adminID, ok := adminVal.(int)
		if !ok {
			return
		}

		entry := &model.AuditLog{
			AdminID:   adminID,
			Action:    fmt.Sprintf("%s %s", c.Request.Method, c.FullPath()),
			IPAddress: c.ClientIP(),
		}
		if err := repo.Insert(c.Request.Context(), entry); err != nil {
			log.Printf("Failed to write audit log for %s: %v", entry.Action, err)
		}
	}
}
