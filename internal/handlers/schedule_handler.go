package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hamid-2027/seatMeCombine/internal/models"
	"github.com/Hamid-2027/seatMeCombine/internal/services"
)

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	bookingService  *services.BookingService
}

func NewScheduleHandler(scheduleService *services.ScheduleService, bookingService *services.BookingService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		bookingService:  bookingService,
	}
}

// GetAllSchedules retrieves schedules, optionally filtered by route and date
// GET /api/v1/bus-schedules?routeId=...&date=YYYY-MM-DD
func (h *ScheduleHandler) GetAllSchedules(c *gin.Context) {
	routeID := c.Query("routeId")
	if routeID != "" {
		schedules, err := h.scheduleService.SearchSchedules(routeID, c.Query("date"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, schedules)
		return
	}

	schedules, err := h.scheduleService.ListSchedules()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

// GetScheduleByID retrieves a specific schedule
// GET /api/v1/bus-schedules/:id
func (h *ScheduleHandler) GetScheduleByID(c *gin.Context) {
	schedule, err := h.scheduleService.GetSchedule(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// GetSeatMap renders a schedule's seat grid for display
// GET /api/v1/bus-schedules/:id/seat-map
func (h *ScheduleHandler) GetSeatMap(c *gin.Context) {
	seatMap, err := h.scheduleService.GetSeatMap(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, seatMap)
}

// CreateSchedule schedules a departure, cloning the bus's seat layout
// POST /api/v1/bus-schedules
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// UpdateSeatStatuses applies an administrative seat-state change
// PATCH /api/v1/bus-schedules/:id/seats
func (h *ScheduleHandler) UpdateSeatStatuses(c *gin.Context) {
	var req models.SeatStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	schedule, err := h.bookingService.UpdateSeatStatuses(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// DeleteSchedule removes a schedule
// DELETE /api/v1/bus-schedules/:id
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	if err := h.scheduleService.DeleteSchedule(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}
