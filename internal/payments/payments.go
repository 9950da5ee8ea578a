// Package payments wraps payment-intent creation behind a small interface
// so handlers and tests never depend on the Stripe SDK directly.
package payments

import "context"

// StatusSucceeded is the processor status that allows the cart to be
// cleared. Any other status leaves the cart untouched.
const StatusSucceeded = "succeeded"

// LineItem describes one cart row as sent to the processor. UnitAmount is
// the item price truncated to an integer and is informational only; the
// authoritative charge amount is the intent total, which is converted to
// minor units.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int
}

// Intent is the subset of the processor's payment-intent record the
// checkout flow needs.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Client creates payment intents with an external processor.
type Client interface {
	CreateIntent(ctx context.Context, amount int64, currency string, methodTypes []string, items []LineItem) (*Intent, error)
}
