package handlers

import (
	"log/slog"
	"net/http"

	"github.com/demomarket/marketplace/internal/models"
	"github.com/demomarket/marketplace/internal/payments"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutProvider is the slice of the store checkout needs.
type CheckoutProvider interface {
	GetCartLines(userID uint) ([]models.CartLine, error)
	CompleteCheckout(userID uint, order *models.Order) error
}

type CheckoutHandler struct {
	Store    CheckoutProvider
	Payments payments.Client
	Currency string
}

type checkoutRequest struct {
	PaymentMethods []string `json:"payment_methods"`
}

type checkoutResponse struct {
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	OrderRef     string `json:"order_ref,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// orderAmount converts the cart total to integer minor currency units:
// int(sum(price * quantity) * 100), truncated.
func orderAmount(lines []models.CartLine) int64 {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total.Mul(hundred).IntPart()
}

// buildLineItems maps cart rows to processor line items. Unit amounts are
// truncated item prices without minor-unit conversion; see
// payments.LineItem for why that mismatch is preserved.
func buildLineItems(lines []models.CartLine) []payments.LineItem {
	items := make([]payments.LineItem, len(lines))
	for i, l := range lines {
		items[i] = payments.LineItem{
			Name:       l.Name,
			UnitAmount: l.Price.IntPart(),
			Quantity:   l.Quantity,
		}
	}
	return items
}

// Checkout charges the caller's cart through the payment processor. The
// cart is cleared, and an order recorded, only when the processor reports
// immediate success; on any other status the cart is left untouched.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())

	var req checkoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	lines, err := h.Store.GetCartLines(user.ID)
	if err != nil {
		slog.Error("Failed to load cart for checkout", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(lines) == 0 {
		writeError(w, http.StatusBadRequest, models.ErrEmptyCart.Error())
		return
	}

	amount := orderAmount(lines)
	intent, err := h.Payments.CreateIntent(r.Context(), amount, h.Currency, req.PaymentMethods, buildLineItems(lines))
	if err != nil {
		slog.Error("Payment intent creation failed", "error", err, "user_id", user.ID, "amount", amount)
		writeError(w, http.StatusBadGateway, "payment processor error")
		return
	}

	if intent.Status != payments.StatusSucceeded {
		slog.Warn("Payment not completed", "status", intent.Status, "user_id", user.ID)
		writeJSON(w, http.StatusOK, checkoutResponse{
			ClientSecret: intent.ClientSecret,
			Status:       "payment failed",
		})
		return
	}

	order := &models.Order{
		OrderRef:        uuid.New().String(),
		UserID:          user.ID,
		Amount:          amount,
		Currency:        h.Currency,
		Status:          "paid",
		PaymentIntentID: intent.ID,
	}
	if err := h.Store.CompleteCheckout(user.ID, order); err != nil {
		// The charge went through but local bookkeeping failed; surface the
		// intent so the payment can be reconciled manually.
		slog.Error("Failed to finalize checkout after successful payment",
			"error", err, "user_id", user.ID, "payment_intent", intent.ID)
		writeError(w, http.StatusInternalServerError, "payment succeeded but order could not be recorded")
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		ClientSecret: intent.ClientSecret,
		Status:       "successful payment",
		OrderRef:     order.OrderRef,
	})
}
