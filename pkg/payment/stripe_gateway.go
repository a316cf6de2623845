package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"
)

// StripeGateway charges cards through Stripe PaymentIntents
type StripeGateway struct {
	logger *logrus.Logger
}

// NewStripeGateway creates a Stripe gateway using the given secret key
func NewStripeGateway(secretKey string, logger *logrus.Logger) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{logger: logger}
}

// Name identifies the gateway in audit records
func (g *StripeGateway) Name() string {
	return "stripe"
}

// Charge creates and confirms a PaymentIntent in one call. Card declines
// come back as an unsuccessful result; only transport and API failures are
// returned as errors.
func (g *StripeGateway) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency:           stripe.String(strings.ToLower(req.Currency)),
		Description:        stripe.String(req.Description),
		PaymentMethod:      stripe.String(req.PaymentMethodID),
		Confirm:            stripe.Bool(true),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.AddMetadata("booking_id", req.BookingID)
	params.SetIdempotencyKey(fmt.Sprintf("charge_%s", req.BookingID))

	intent, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			g.logger.WithFields(logrus.Fields{
				"booking_id": req.BookingID,
				"code":       stripeErr.Code,
			}).Warn("Stripe card declined")
			return &ChargeResult{Success: false, Message: stripeErr.Msg}, nil
		}
		return nil, fmt.Errorf("stripe charge failed: %w", err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return &ChargeResult{
			Success:   false,
			Reference: intent.ID,
			Message:   fmt.Sprintf("payment intent ended in status %s", intent.Status),
		}, nil
	}

	return &ChargeResult{Success: true, Reference: intent.ID}, nil
}
