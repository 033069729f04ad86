package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// Processor abstracts the external payment provider. The only capability the
// platform needs is creating a charge intent and handing its client secret
// back to the frontend.
type Processor interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, contestID string) (clientSecret string, err error)
}

type stripeProcessor struct {
	currency string
}

// NewStripeProcessor configures the stripe SDK with the secret key and
// returns a Processor backed by Stripe PaymentIntents.
func NewStripeProcessor(secretKey, currency string) Processor {
	stripe.Key = secretKey
	return &stripeProcessor{currency: currency}
}

func (p *stripeProcessor) CreateIntent(ctx context.Context, amountMinor int64, currency string, contestID string) (string, error) {
	if currency == "" {
		currency = p.currency
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("contest_id", contestID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe create intent: %w", err)
	}
	return pi.ClientSecret, nil
}
