// Package payment integrates the supported payment gateways behind one
// interface: Stripe for card payments and JazzCash for mobile wallets.
package payment

import "context"

// ChargeRequest describes one payment attempt against a booking
type ChargeRequest struct {
	BookingID   string
	Amount      float64
	Currency    string
	Description string

	// Card payments (Stripe)
	PaymentMethodID string

	// Mobile wallet payments (JazzCash MWALLET)
	MobileNumber string
	CNIC         string
}

// ChargeResult is the gateway's verdict on a charge. A declined payment is
// a result, not an error; errors are reserved for transport failures.
type ChargeResult struct {
	Success   bool
	Reference string
	Message   string
}

// Gateway is the payment collaborator consumed by the payment service
type Gateway interface {
	// Name identifies the gateway in audit records
	Name() string

	// Charge attempts to capture the amount synchronously
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
}
