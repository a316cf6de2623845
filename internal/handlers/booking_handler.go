package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hamid-2027/seatMeCombine/internal/models"
	"github.com/Hamid-2027/seatMeCombine/internal/services"
)

type BookingHandler struct {
	bookingService *services.BookingService
	invoiceService *services.InvoiceService
}

func NewBookingHandler(bookingService *services.BookingService, invoiceService *services.InvoiceService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		invoiceService: invoiceService,
	}
}

// GetAllBookings retrieves bookings, optionally filtered by user or schedule
// GET /api/v1/bookings?userId=...&scheduleId=...
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	if userID := c.Query("userId"); userID != "" {
		bookings, err := h.bookingService.ListBookingsByUser(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}
	if scheduleID := c.Query("scheduleId"); scheduleID != "" {
		bookings, err := h.bookingService.ListBookingsBySchedule(scheduleID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	bookings, err := h.bookingService.ListBookings()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingByID retrieves a specific booking
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CreateBooking reserves seats, creating a PENDING booking. All requested
// seats flip together or the request fails with the full conflict set.
// POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	booking, err := h.bookingService.ReserveSeats(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ConfirmBooking transitions a booking to CONFIRMED
// POST /api/v1/bookings/:id/confirm
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	booking, err := h.bookingService.ConfirmBooking(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBooking cancels a booking and frees its seats. Idempotent.
// POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	booking, err := h.bookingService.ReleaseSeats(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CompleteBooking marks a confirmed booking as travelled
// POST /api/v1/bookings/:id/complete
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	booking, err := h.bookingService.CompleteBooking(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// DownloadInvoice streams the booking's invoice PDF
// GET /api/v1/bookings/:id/invoice
func (h *BookingHandler) DownloadInvoice(c *gin.Context) {
	pdf, filename, err := h.invoiceService.GenerateInvoice(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
