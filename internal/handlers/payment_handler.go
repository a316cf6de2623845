package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hamid-2027/seatMeCombine/internal/services"
	"github.com/Hamid-2027/seatMeCombine/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Checkout charges the configured gateway for a pending booking
// POST /api/v1/payments/checkout
func (h *PaymentHandler) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	client := services.ClientInfo{
		IPAddress: utils.GetRealIP(c),
		UserAgent: utils.GetUserAgent(c),
	}

	booking, err := h.paymentService.Checkout(c.Request.Context(), &req, client)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetAuditTrail retrieves the payment event log for a booking
// GET /api/v1/payments/audit/:bookingId
func (h *PaymentHandler) GetAuditTrail(c *gin.Context) {
	audits, err := h.paymentService.ListAuditTrail(c.Param("bookingId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, audits)
}
