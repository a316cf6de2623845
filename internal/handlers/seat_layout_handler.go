package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hamid-2027/seatMeCombine/internal/models"
	"github.com/Hamid-2027/seatMeCombine/internal/services"
)

type SeatLayoutHandler struct {
	layoutService *services.SeatLayoutService
}

func NewSeatLayoutHandler(layoutService *services.SeatLayoutService) *SeatLayoutHandler {
	return &SeatLayoutHandler{layoutService: layoutService}
}

// GetAllLayouts retrieves all seat layout templates
// GET /api/v1/seat-layouts
func (h *SeatLayoutHandler) GetAllLayouts(c *gin.Context) {
	layouts, err := h.layoutService.ListTemplates()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, layouts)
}

// GetLayoutByID retrieves a specific template
// GET /api/v1/seat-layouts/:id
func (h *SeatLayoutHandler) GetLayoutByID(c *gin.Context) {
	layout, err := h.layoutService.GetTemplateByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, layout)
}

// CreateLayout normalizes, validates and stores a template. Accepts both the
// canonical grid shape and the legacy row-keyed map shape.
// POST /api/v1/seat-layouts
func (h *SeatLayoutHandler) CreateLayout(c *gin.Context) {
	var in models.SeatLayoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err)
		return
	}

	layout, err := h.layoutService.CreateTemplate(&in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, layout)
}

// ValidateLayout validates a template without storing it
// POST /api/v1/seat-layouts/validate
func (h *SeatLayoutHandler) ValidateLayout(c *gin.Context) {
	var in models.SeatLayoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err)
		return
	}

	if _, err := h.layoutService.NormalizeLayoutInput(&in); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// UpdateLayout replaces a stored template. Schedules already cloned from it
// keep their copies.
// PUT /api/v1/seat-layouts/:id
func (h *SeatLayoutHandler) UpdateLayout(c *gin.Context) {
	var in models.SeatLayoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, err)
		return
	}

	layout, err := h.layoutService.UpdateTemplate(c.Param("id"), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, layout)
}

// DeleteLayout removes a template
// DELETE /api/v1/seat-layouts/:id
func (h *SeatLayoutHandler) DeleteLayout(c *gin.Context) {
	if err := h.layoutService.DeleteTemplate(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Seat layout deleted successfully"})
}
