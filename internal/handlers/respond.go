package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/models"
	"github.com/Hamid-2027/seatMeCombine/internal/services"
)

// respondError translates service errors into HTTP responses so every
// handler reports the same shape for the same failure
func respondError(c *gin.Context, err error) {
	var layoutErr *models.LayoutError
	if errors.As(err, &layoutErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": layoutErr.Error(),
			"code":  string(layoutErr.Kind),
		})
		return
	}

	var bookingErr *models.BookingError
	if errors.As(err, &bookingErr) {
		status := http.StatusConflict
		if bookingErr.Kind == models.BookingUnknownSeat || bookingErr.Kind == models.BookingDuplicateSeat {
			status = http.StatusBadRequest
		}
		body := gin.H{
			"error": bookingErr.Error(),
			"code":  string(bookingErr.Kind),
		}
		if len(bookingErr.Seats) > 0 {
			body["seats"] = bookingErr.Seats
		}
		c.JSON(status, body)
		return
	}

	var declined *services.PaymentDeclinedError
	if errors.As(err, &declined) {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": declined.Error(),
			"code":  "PAYMENT_DECLINED",
		})
		return
	}

	var gatewayErr *services.GatewayError
	if errors.As(err, &gatewayErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment gateway unavailable, please retry",
			"code":  "GATEWAY_ERROR",
		})
		return
	}

	if errors.Is(err, database.ErrDocumentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found", "code": "NOT_FOUND"})
		return
	}
	if errors.Is(err, database.ErrVersionConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": "Concurrent update, please retry", "code": "VERSION_CONFLICT"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_REQUEST"})
}
