// Package payment creates hosted checkout sessions for persisted orders.
package payment

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/rachelperfumes/storefront/internal/domain/order"
)

var _ order.PaymentInitiator = (*StripeInitiator)(nil)

// StripeConfig holds the settings for the Stripe Checkout integration.
type StripeConfig struct {
	SecretKey string
	// Currency is the ISO 4217 code the shop charges in.
	Currency string
	// PublicBaseURL is where Stripe redirects the customer after checkout,
	// e.g. https://shop.example.com. The order identifier and a paid flag
	// are appended as query parameters.
	PublicBaseURL string
}

// StripeInitiator creates Stripe Checkout sessions with a single line item
// per order.
type StripeInitiator struct {
	api *client.API
	cfg StripeConfig
}

// NewStripeInitiator creates a StripeInitiator using the given configuration.
func NewStripeInitiator(cfg StripeConfig) *StripeInitiator {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeInitiator{api: api, cfg: cfg}
}

// CreateSession requests a hosted checkout session for the order and returns
// its redirect URL. The per-unit amount is the order total divided by the
// quantity, in integer minor units.
func (s *StripeInitiator) CreateSession(ctx context.Context, o order.Order) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(s.cfg.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(fmt.Sprintf("%s x%d", o.Perfume, o.Quantity)),
				},
				UnitAmount: stripe.Int64(UnitAmountMinor(o.Total, o.Quantity)),
			},
			Quantity: stripe.Int64(int64(o.Quantity)),
		}},
		SuccessURL: stripe.String(redirectURL(s.cfg.PublicBaseURL, o.ID, true)),
		CancelURL:  stripe.String(redirectURL(s.cfg.PublicBaseURL, o.ID, false)),
	}
	params.Context = ctx

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return "", errors.Wrap(err, "create checkout session")
	}
	return sess.URL, nil
}

// UnitAmountMinor converts the per-unit share of total into integer minor
// currency units (cents), rounding half-up.
func UnitAmountMinor(total decimal.Decimal, quantity int) int64 {
	return total.
		Div(decimal.NewFromInt(int64(quantity))).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// redirectURL builds the deterministic post-checkout redirect target carrying
// the order identifier and the payment outcome.
func redirectURL(base string, orderID int64, paid bool) string {
	flag := 0
	if paid {
		flag = 1
	}
	return fmt.Sprintf("%s/?paid=%d&order=%d", base, flag, orderID)
}

// Disabled is the PaymentInitiator used when no Stripe key is configured.
// It reports no URL and no error, which the order flow treats as "payment
// unavailable".
type Disabled struct{}

// CreateSession implements order.PaymentInitiator without doing anything.
func (Disabled) CreateSession(context.Context, order.Order) (string, error) { return "", nil }
