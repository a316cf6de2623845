package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/models"
)

type RouteHandler struct {
	routes *database.RouteRepository
}

func NewRouteHandler(routes *database.RouteRepository) *RouteHandler {
	return &RouteHandler{routes: routes}
}

// GetAllRoutes retrieves all routes
// GET /api/v1/bus-routes
func (h *RouteHandler) GetAllRoutes(c *gin.Context) {
	routes, err := h.routes.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GetPopularRoutes retrieves routes flagged as popular
// GET /api/v1/bus-routes/popular
func (h *RouteHandler) GetPopularRoutes(c *gin.Context) {
	routes, err := h.routes.ListPopular()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GetRouteByID retrieves a specific route
// GET /api/v1/bus-routes/:id
func (h *RouteHandler) GetRouteByID(c *gin.Context) {
	route, err := h.routes.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// CreateRoute adds a new route
// POST /api/v1/bus-routes
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	now := time.Now()
	route := &models.Route{
		ID:                uuid.New().String(),
		From:              req.From,
		To:                req.To,
		Distance:          req.Distance,
		EstimatedDuration: req.EstimatedDuration,
		AvailableBusTypes: req.AvailableBusTypes,
		IsPopular:         req.IsPopular,
		CompanyIDs:        req.CompanyIDs,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := h.routes.Save(route); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

// UpdateRoute updates an existing route
// PUT /api/v1/bus-routes/:id
func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	route, err := h.routes.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	route.From = req.From
	route.To = req.To
	route.Distance = req.Distance
	route.EstimatedDuration = req.EstimatedDuration
	route.AvailableBusTypes = req.AvailableBusTypes
	route.IsPopular = req.IsPopular
	route.CompanyIDs = req.CompanyIDs
	route.UpdatedAt = time.Now()

	if err := h.routes.Save(route); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// DeleteRoute removes a route
// DELETE /api/v1/bus-routes/:id
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	if err := h.routes.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}
