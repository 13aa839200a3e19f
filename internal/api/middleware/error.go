package middleware

import (
	"fmt"
	"net/http"

	"smart-meter-exploration/internal/api/models"
	"smart-meter-exploration/internal/monitoring"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware turns panics into INTERNAL_ERROR responses
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		monitoring.Logf("[api] panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		message := "An unexpected error occurred"
		switch v := recovered.(type) {
		case string:
			message = v
		case error:
			message = v.Error()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
				Details: map[string]interface{}{"path": c.Request.URL.Path, "panic": fmt.Sprintf("%T", recovered)},
			},
		})
	})
}
