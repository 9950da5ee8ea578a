package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/demomarket/marketplace/internal/models"
)

// OrderProvider is the slice of the store the order history needs.
type OrderProvider interface {
	GetOrdersByUser(userID uint) ([]models.Order, error)
}

type OrderHandler struct {
	Store OrderProvider
}

type orderEntry struct {
	OrderRef  string    `json:"order_ref"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ListOrders returns the caller's past orders, newest first.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())

	orders, err := h.Store.GetOrdersByUser(user.ID)
	if err != nil {
		slog.Error("Failed to fetch orders", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response := make([]orderEntry, len(orders))
	for i, o := range orders {
		response[i] = orderEntry{
			OrderRef:  o.OrderRef,
			Amount:    o.Amount,
			Currency:  o.Currency,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, response)
}
