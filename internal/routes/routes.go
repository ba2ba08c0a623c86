package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Registrar is implemented by every route table.
type Registrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// RegisterRoutes mounts the route tables under /api and adds the health and
// metrics endpoints at the root.
func RegisterRoutes(router *gin.Engine, metricsHandler http.Handler, tables ...Registrar) {
	api := router.Group("/api")
	for _, t := range tables {
		t.RegisterRoutes(api)
	}

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
