package routes

import (
	"github.com/gin-gonic/gin"

	"h2grid/internal/handlers"
)

type MarketplaceRoutes struct {
	handler *handlers.MarketplaceHandler
}

func NewMarketplaceRoutes(handler *handlers.MarketplaceHandler) *MarketplaceRoutes {
	return &MarketplaceRoutes{handler: handler}
}

func (r *MarketplaceRoutes) RegisterRoutes(router *gin.RouterGroup) {
	marketplace := router.Group("/marketplace")
	{
		marketplace.GET("", r.handler.List)
		marketplace.POST("", r.handler.Create)
		marketplace.GET("/analytics", r.handler.Analytics)
		marketplace.GET("/:id", r.handler.Get)
		marketplace.PUT("/:id", r.handler.Update)
	}
}
