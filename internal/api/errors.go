package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorDetail describes an API error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every error reply.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorHandler middleware turns panics into a JSON 500 reply.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		msg := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			msg = s
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{Code: "INTERNAL_ERROR", Message: msg}})
		c.Abort()
	})
}
