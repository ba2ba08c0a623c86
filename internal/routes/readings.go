package routes

import (
	"github.com/gin-gonic/gin"

	"h2grid/internal/handlers"
)

type ReadingRoutes struct {
	handler *handlers.ReadingHandler
}

func NewReadingRoutes(handler *handlers.ReadingHandler) *ReadingRoutes {
	return &ReadingRoutes{handler: handler}
}

func (r *ReadingRoutes) RegisterRoutes(router *gin.RouterGroup) {
	wind := router.Group("/wind")
	{
		wind.GET("", r.handler.ListWind)
		wind.POST("", r.handler.CreateWind)
		wind.GET("/get-all", r.handler.ListWind)
		wind.POST("/create", r.handler.CreateWind)
	}

	solar := router.Group("/solar")
	{
		solar.GET("", r.handler.ListSolar)
		solar.POST("", r.handler.CreateSolar)
		solar.GET("/get-all", r.handler.ListSolar)
		solar.POST("/create", r.handler.CreateSolar)
	}
}
