package routes

import (
	"github.com/gin-gonic/gin"

	"h2grid/internal/assets"
	"h2grid/internal/handlers"
)

// assetPaths keeps the path segments clients already use for each kind.
type assetPaths struct {
	kind   *assets.Kind
	upload string
	item   string
	delete string
}

var assetRoutes = []assetPaths{
	{kind: assets.Plant, upload: "plants", item: "plants", delete: "delete-plants"},
	{kind: assets.Storage, upload: "storage", item: "storage", delete: "delete-storage"},
	{kind: assets.Pipeline, upload: "pipelines", item: "pipelines", delete: "delete-pipeline"},
	{kind: assets.DistributionHub, upload: "distribution-hub", item: "distribution-hubs", delete: "delete-distribution"},
}

type AssetRoutes struct {
	handler *handlers.AssetHandler
}

func NewAssetRoutes(handler *handlers.AssetHandler) *AssetRoutes {
	return &AssetRoutes{handler: handler}
}

func (r *AssetRoutes) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/assets")
	{
		for _, p := range assetRoutes {
			group.POST("/upload-data/"+p.upload, r.handler.Create(p.kind))
			group.GET("/"+p.item+"/:id", r.handler.Get(p.kind))
			group.PATCH("/"+p.item+"/:id", r.handler.Update(p.kind))
			group.DELETE("/"+p.delete+"/:id", r.handler.Delete(p.kind))
		}
		group.GET("/get-all-projects-developer/:project_developer_id", r.handler.ListByOwner)
	}
}
