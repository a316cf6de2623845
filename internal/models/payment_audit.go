package models

import "time"

// PaymentEventType represents the type of payment event
type PaymentEventType string

const (
	PaymentEventInitiated PaymentEventType = "payment_initiated"
	PaymentEventSucceeded PaymentEventType = "payment_succeeded"
	PaymentEventFailed    PaymentEventType = "payment_failed"
	PaymentEventRefunded  PaymentEventType = "payment_refunded"
)

// PaymentAudit is an immutable audit entry for a payment attempt against a
// booking. Device info comes from the request's parsed User-Agent.
type PaymentAudit struct {
	ID         string                 `json:"id"`
	BookingID  string                 `json:"bookingId"`
	EventType  PaymentEventType       `json:"eventType"`
	Gateway    string                 `json:"gateway"` // stripe, jazzcash
	Amount     float64                `json:"amount"`
	Currency   string                 `json:"currency"`
	GatewayRef string                 `json:"gatewayRef,omitempty"`
	Message    string                 `json:"message,omitempty"`
	IPAddress  string                 `json:"ipAddress,omitempty"`
	UserAgent  string                 `json:"userAgent,omitempty"`
	DeviceInfo map[string]interface{} `json:"deviceInfo,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
}
