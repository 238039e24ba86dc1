package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// NewRouter builds the read-only API over the persisted price store.
// allowedOrigins empty means any origin may read.
func NewRouter(historyPath string, allowedOrigins []string) http.Handler {
	h := NewHandler(historyPath)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/trends", h.ListTrends)
		v1.GET("/models/:id/trend", h.GetTrend)
		v1.GET("/models/:id/history", h.GetHistory)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: ErrorDetail{Code: "NOT_FOUND", Message: "Not found"}})
	})

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}).Handler(router)
}
