package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"h2grid/internal/responses"
	"h2grid/internal/services"
	"h2grid/internal/validation"
)

type MarketplaceHandler struct {
	marketplaceService *services.MarketplaceService
}

func NewMarketplaceHandler(marketplaceService *services.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaceService: marketplaceService}
}

// Create handles POST /api/marketplace
func (h *MarketplaceHandler) Create(c *gin.Context) {
	var req services.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, validation.Describe(err), "Invalid request body")
		return
	}

	listing, err := h.marketplaceService.Create(c.Request.Context(), req)
	if err != nil {
		responses.Error(c, err, "Failed to create marketplace item")
		return
	}

	responses.Success(c, http.StatusCreated, listing, "Marketplace item created successfully")
}

// List handles GET /api/marketplace
func (h *MarketplaceHandler) List(c *gin.Context) {
	listings, err := h.marketplaceService.List(c.Request.Context())
	if err != nil {
		responses.Error(c, err, "Failed to fetch marketplace items")
		return
	}

	responses.Success(c, http.StatusOK, listings, "Marketplace items retrieved successfully")
}

// Get handles GET /api/marketplace/:id
func (h *MarketplaceHandler) Get(c *gin.Context) {
	listing, err := h.marketplaceService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.Error(c, err, "Failed to fetch marketplace item")
		return
	}

	responses.Success(c, http.StatusOK, listing, "Marketplace item retrieved successfully")
}

// Update handles PUT /api/marketplace/:id. Only supplied fields change.
func (h *MarketplaceHandler) Update(c *gin.Context) {
	var req services.UpdateListingRequest
	if err := bindStrict(c, &req); err != nil {
		responses.Error(c, err, "Invalid request body")
		return
	}

	listing, err := h.marketplaceService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		responses.Error(c, err, "Failed to update marketplace item")
		return
	}

	responses.Success(c, http.StatusOK, listing, "Marketplace item updated successfully")
}

// Analytics handles GET /api/marketplace/analytics
func (h *MarketplaceHandler) Analytics(c *gin.Context) {
	out, err := h.marketplaceService.Analytics(c.Request.Context())
	if err != nil {
		responses.Error(c, err, "Failed to compute marketplace analytics")
		return
	}

	responses.Success(c, http.StatusOK, out, "Marketplace analytics retrieved successfully")
}
