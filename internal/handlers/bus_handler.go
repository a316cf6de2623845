package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hamid-2027/seatMeCombine/internal/models"
	"github.com/Hamid-2027/seatMeCombine/internal/services"
)

type BusHandler struct {
	busService *services.BusService
}

func NewBusHandler(busService *services.BusService) *BusHandler {
	return &BusHandler{busService: busService}
}

// GetAllBuses retrieves all buses, optionally filtered by company
// GET /api/v1/buses?companyId=...
func (h *BusHandler) GetAllBuses(c *gin.Context) {
	if companyID := c.Query("companyId"); companyID != "" {
		buses, err := h.busService.ListBusesByCompany(companyID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, buses)
		return
	}

	buses, err := h.busService.ListBuses()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buses)
}

// GetBusByID retrieves a specific bus
// GET /api/v1/buses/:id
func (h *BusHandler) GetBusByID(c *gin.Context) {
	bus, err := h.busService.GetBus(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bus)
}

// CreateBus registers a new bus with its seat layout template
// POST /api/v1/buses
func (h *BusHandler) CreateBus(c *gin.Context) {
	var req models.CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondBadRequest(c, err)
		return
	}

	bus, err := h.busService.CreateBus(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bus)
}

// UpdateBus updates an existing bus. Replacing the seat layout template only
// affects schedules created afterwards.
// PUT /api/v1/buses/:id
func (h *BusHandler) UpdateBus(c *gin.Context) {
	var req models.UpdateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	bus, err := h.busService.UpdateBus(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bus)
}

// DeleteBus removes a bus
// DELETE /api/v1/buses/:id
func (h *BusHandler) DeleteBus(c *gin.Context) {
	if err := h.busService.DeleteBus(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bus deleted successfully"})
}
