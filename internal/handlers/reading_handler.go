package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"h2grid/internal/responses"
	"h2grid/internal/services"
	"h2grid/internal/validation"
)

type ReadingHandler struct {
	readingService *services.ReadingService
}

func NewReadingHandler(readingService *services.ReadingService) *ReadingHandler {
	return &ReadingHandler{readingService: readingService}
}

func (h *ReadingHandler) ListWind(c *gin.Context) {
	readings, err := h.readingService.ListWind(c.Request.Context())
	if err != nil {
		responses.Error(c, err, "Failed to fetch wind data")
		return
	}
	responses.Success(c, http.StatusOK, readings, "Wind data retrieved successfully")
}

func (h *ReadingHandler) CreateWind(c *gin.Context) {
	var req services.WindReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, validation.Describe(err), "Invalid request body")
		return
	}

	reading, err := h.readingService.CreateWind(c.Request.Context(), req)
	if err != nil {
		responses.Error(c, err, "Failed to save wind data")
		return
	}
	responses.Success(c, http.StatusCreated, reading, "Wind data saved successfully")
}

func (h *ReadingHandler) ListSolar(c *gin.Context) {
	readings, err := h.readingService.ListSolar(c.Request.Context())
	if err != nil {
		responses.Error(c, err, "Failed to fetch solar data")
		return
	}
	responses.Success(c, http.StatusOK, readings, "Solar data retrieved successfully")
}

func (h *ReadingHandler) CreateSolar(c *gin.Context) {
	var req services.SolarReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, validation.Describe(err), "Invalid request body")
		return
	}

	reading, err := h.readingService.CreateSolar(c.Request.Context(), req)
	if err != nil {
		responses.Error(c, err, "Failed to save solar data")
		return
	}
	responses.Success(c, http.StatusCreated, reading, "Solar data saved successfully")
}
