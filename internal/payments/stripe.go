package payments

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// StripeClient implements Client against the Stripe payment-intents API.
type StripeClient struct {
	api *client.API
}

func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

func (c *StripeClient) CreateIntent(ctx context.Context, amount int64, currency string, methodTypes []string, items []LineItem) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice(methodTypes),
	}
	params.Context = ctx
	// Line items are informational on a payment intent; attach them as
	// metadata so the order contents show up in the Stripe dashboard.
	for i, item := range items {
		params.AddMetadata(
			fmt.Sprintf("item_%d", i+1),
			fmt.Sprintf("%dx %s @ %d", item.Quantity, item.Name, item.UnitAmount),
		)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}
