// Package payment wraps the Stripe API behind a small surface so the
// checkout flow can be exercised against a fake provider in tests.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// PaymentStatusUnpaid is the provider's status for a session that has not
// been paid for.
const PaymentStatusUnpaid = "unpaid"

// Line is one checkout line item, priced in integer minor units.
type Line struct {
	Name            string
	Image           string
	UnitAmountCents int64
	Quantity        int64
}

// Session is the provider-side view of a checkout session.
type Session struct {
	ID               string
	PaymentStatus    string
	AmountTotalCents int64
	Metadata         map[string]string
}

// StripeClient talks to the live Stripe API.
type StripeClient struct {
	api       *client.API
	clientURL string
}

// NewStripeClient creates a Stripe-backed checkout provider. clientURL is
// the frontend origin used to build the success and cancel redirects.
func NewStripeClient(secretKey, clientURL string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeClient{
		api:       api,
		clientURL: clientURL,
	}
}

// CreateSession creates a hosted checkout session. percentOff > 0 attaches
// a freshly minted one-off coupon covering that discount.
func (s *StripeClient) CreateSession(ctx context.Context, lines []Line, percentOff int64, metadata map[string]string) (*Session, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, line := range lines {
		item := &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyINR)),
				UnitAmount: stripe.Int64(line.UnitAmountCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
			},
			Quantity: stripe.Int64(line.Quantity),
		}
		if line.Image != "" {
			item.PriceData.ProductData.Images = stripe.StringSlice([]string{line.Image})
		}
		lineItems = append(lineItems, item)
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(s.clientURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(s.clientURL + "/purchase-cancel"),
	}
	params.Context = ctx

	if percentOff > 0 {
		couponID, err := s.createCoupon(ctx, percentOff)
		if err != nil {
			return nil, err
		}
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{
			{Coupon: stripe.String(couponID)},
		}
	}

	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return convertSession(session), nil
}

// GetSession retrieves a checkout session by id.
func (s *StripeClient) GetSession(ctx context.Context, id string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	session, err := s.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	return convertSession(session), nil
}

// createCoupon mints a single-use percent-off coupon on the provider side.
func (s *StripeClient) createCoupon(ctx context.Context, percentOff int64) (string, error) {
	params := &stripe.CouponParams{
		PercentOff: stripe.Float64(float64(percentOff)),
		Duration:   stripe.String(string(stripe.CouponDurationOnce)),
	}
	params.Context = ctx

	coupon, err := s.api.Coupons.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create provider coupon: %w", err)
	}

	return coupon.ID, nil
}

func convertSession(session *stripe.CheckoutSession) *Session {
	return &Session{
		ID:               session.ID,
		PaymentStatus:    string(session.PaymentStatus),
		AmountTotalCents: session.AmountTotal,
		Metadata:         session.Metadata,
	}
}
