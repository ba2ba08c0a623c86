package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"h2grid/internal/assets"
	"h2grid/internal/responses"
	"h2grid/internal/services"
	"h2grid/internal/validation"
)

type AssetHandler struct {
	assetService *services.AssetService
}

func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// Create handles POST /api/assets/upload-data/<kind>
func (h *AssetHandler) Create(kind *assets.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input map[string]any
		if err := c.ShouldBindJSON(&input); err != nil {
			responses.Error(c, validation.Describe(err), "Invalid request body")
			return
		}

		asset, err := h.assetService.Create(c.Request.Context(), kind, input)
		if err != nil {
			responses.Error(c, err, "Failed to create "+label(kind))
			return
		}

		responses.Success(c, http.StatusCreated, asset, kind.Label+" created successfully")
	}
}

// Get handles GET /api/assets/<kinds>/:id
func (h *AssetHandler) Get(kind *assets.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		asset, err := h.assetService.Get(c.Request.Context(), kind, c.Param("id"))
		if err != nil {
			responses.Error(c, err, "Failed to fetch "+label(kind))
			return
		}

		responses.Success(c, http.StatusOK, asset, kind.Label+" retrieved successfully")
	}
}

// Update handles PATCH /api/assets/<kinds>/:id
func (h *AssetHandler) Update(kind *assets.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input map[string]any
		if err := c.ShouldBindJSON(&input); err != nil {
			responses.Error(c, validation.Describe(err), "Invalid request body")
			return
		}

		asset, err := h.assetService.Update(c.Request.Context(), kind, c.Param("id"), input)
		if err != nil {
			responses.Error(c, err, "Failed to update "+label(kind))
			return
		}

		responses.Success(c, http.StatusOK, asset, kind.Label+" updated successfully")
	}
}

// Delete handles DELETE /api/assets/delete-<kind>/:id
func (h *AssetHandler) Delete(kind *assets.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		asset, err := h.assetService.Delete(c.Request.Context(), kind, c.Param("id"))
		if err != nil {
			responses.Error(c, err, "Failed to delete "+label(kind))
			return
		}

		responses.Success(c, http.StatusOK, asset, kind.Label+" deleted successfully")
	}
}

// ListByOwner handles GET /api/assets/get-all-projects-developer/:project_developer_id
func (h *AssetHandler) ListByOwner(c *gin.Context) {
	projects, err := h.assetService.ListByOwner(c.Request.Context(), c.Param("project_developer_id"))
	if err != nil {
		responses.Error(c, err, "Failed to fetch projects")
		return
	}

	responses.Success(c, http.StatusOK, projects, "Projects retrieved successfully")
}
