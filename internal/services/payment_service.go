package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Hamid-2027/seatMeCombine/internal/database"
	"github.com/Hamid-2027/seatMeCombine/internal/models"
	"github.com/Hamid-2027/seatMeCombine/internal/utils"
	"github.com/Hamid-2027/seatMeCombine/pkg/payment"
)

// CheckoutRequest starts a payment for a PENDING booking. Card payments
// carry a payment method id, wallet payments a mobile number and CNIC.
type CheckoutRequest struct {
	BookingID       string `json:"bookingId" binding:"required"`
	PaymentMethodID string `json:"paymentMethodId"`
	MobileNumber    string `json:"mobileNumber"`
	CNIC            string `json:"cnic"`
}

// PaymentDeclinedError signals the gateway rejected the charge. The
// booking's seats have already been released when this is returned.
type PaymentDeclinedError struct {
	Message string
}

func (e *PaymentDeclinedError) Error() string {
	if e.Message == "" {
		return "payment declined"
	}
	return fmt.Sprintf("payment declined: %s", e.Message)
}

// GatewayError signals the gateway could not be reached or answered with a
// transport failure. The booking stays PENDING and the charge may be retried.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// ClientInfo carries request metadata into the payment audit trail
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// PaymentService drives the checkout flow: charge the gateway, then either
// confirm the booking or release its seats. The gateway call happens while
// no seat lock is held; the seats stay BOOKED under the PENDING booking for
// the duration of the charge.
type PaymentService struct {
	gateway        payment.Gateway
	reconciliation *BookingService
	bookings       *database.BookingRepository
	audits         *database.PaymentAuditRepository
	logger         *logrus.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	gateway payment.Gateway,
	reconciliation *BookingService,
	bookings *database.BookingRepository,
	audits *database.PaymentAuditRepository,
	logger *logrus.Logger,
) *PaymentService {
	return &PaymentService{
		gateway:        gateway,
		reconciliation: reconciliation,
		bookings:       bookings,
		audits:         audits,
		logger:         logger,
	}
}

// Checkout charges the configured gateway for a PENDING booking. On success
// the booking moves to CONFIRMED; on a declined charge its seats are
// released and the booking is CANCELLED. A gateway transport failure leaves
// the booking PENDING so the caller can retry.
func (s *PaymentService) Checkout(ctx context.Context, req *CheckoutRequest, client ClientInfo) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusPending {
		return nil, models.NewInvalidTransition(booking.Status, models.BookingStatusConfirmed)
	}

	s.recordAudit(booking, models.PaymentEventInitiated, "", "", client)

	result, err := s.gateway.Charge(ctx, &payment.ChargeRequest{
		BookingID:       booking.ID,
		Amount:          booking.TotalAmount,
		Currency:        booking.Currency,
		Description:     fmt.Sprintf("Bus booking %s", booking.ID),
		PaymentMethodID: req.PaymentMethodID,
		MobileNumber:    req.MobileNumber,
		CNIC:            req.CNIC,
	})
	if err != nil {
		s.recordAudit(booking, models.PaymentEventFailed, "", err.Error(), client)
		return nil, &GatewayError{Err: err}
	}

	if !result.Success {
		s.recordAudit(booking, models.PaymentEventFailed, result.Reference, result.Message, client)

		booking.PaymentStatus = models.PaymentStatusFailed
		booking.UpdatedAt = time.Now()
		if err := s.bookings.Save(booking); err != nil {
			s.logger.WithError(err).WithField("booking_id", booking.ID).Error("Could not record failed payment")
		}
		cancelled, err := s.reconciliation.ReleaseSeats(booking.ID)
		if err != nil {
			return nil, fmt.Errorf("payment declined and seat release failed: %w", err)
		}
		return cancelled, &PaymentDeclinedError{Message: result.Message}
	}

	booking.ConfirmPayment(s.gateway.Name(), result.Reference)
	if err := s.bookings.Save(booking); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	s.recordAudit(booking, models.PaymentEventSucceeded, result.Reference, result.Message, client)

	confirmed, err := s.reconciliation.ConfirmBooking(booking.ID)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"gateway":    s.gateway.Name(),
		"reference":  result.Reference,
	}).Info("Payment captured")
	return confirmed, nil
}

// ListAuditTrail returns the payment audit entries for a booking
func (s *PaymentService) ListAuditTrail(bookingID string) ([]models.PaymentAudit, error) {
	return s.audits.ListByBooking(bookingID)
}

// recordAudit appends one audit entry. Best effort: the trail never fails
// a payment.
func (s *PaymentService) recordAudit(booking *models.Booking, event models.PaymentEventType, ref, message string, client ClientInfo) {
	device := utils.ParseUserAgent(client.UserAgent)
	audit := &models.PaymentAudit{
		ID:         uuid.New().String(),
		BookingID:  booking.ID,
		EventType:  event,
		Gateway:    s.gateway.Name(),
		Amount:     booking.TotalAmount,
		Currency:   booking.Currency,
		GatewayRef: ref,
		Message:    message,
		IPAddress:  client.IPAddress,
		UserAgent:  client.UserAgent,
		DeviceInfo: map[string]interface{}{
			"deviceType": device.DeviceType,
			"os":         device.OS,
			"browser":    device.Browser,
			"platform":   device.Platform,
		},
		CreatedAt: time.Now(),
	}
	if err := s.audits.Append(audit); err != nil {
		s.logger.WithError(err).WithField("booking_id", booking.ID).Warn("Could not write payment audit entry")
	}
}
