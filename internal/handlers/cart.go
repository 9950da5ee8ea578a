package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/demomarket/marketplace/internal/models"
)

// CartProvider is the slice of the store the cart endpoints need.
type CartProvider interface {
	GetProductByID(id uint) (*models.Product, error)
	AddCartItem(item *models.CartItem) error
	DeleteCartItem(userID, cartID uint) error
	GetCartLines(userID uint) ([]models.CartLine, error)
}

type CartHandler struct {
	Store CartProvider
}

type addToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// AddToCart inserts a new line item. Adding the same product again creates
// another row; lines are not merged.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())

	var req addToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ProductID == 0 {
		writeError(w, http.StatusBadRequest, "product_id is required")
		return
	}
	if req.Quantity < 1 {
		writeError(w, http.StatusBadRequest, "quantity must be a positive integer")
		return
	}

	if _, err := h.Store.GetProductByID(req.ProductID); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		slog.Error("Failed to look up product", "error", err, "product_id", req.ProductID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	item := &models.CartItem{
		UserID:    user.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := h.Store.AddCartItem(item); err != nil {
		slog.Error("Failed to add cart item", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeMessage(w, http.StatusOK, "Product added to the cart successfully")
}

// RemoveFromCart deletes one of the caller's cart rows. Rows owned by other
// users are reported as not found.
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())

	cartID, err := strconv.ParseUint(r.PathValue("cart_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart id")
		return
	}

	if err := h.Store.DeleteCartItem(user.ID, uint(cartID)); err != nil {
		if errors.Is(err, models.ErrCartItemNotFound) {
			writeError(w, http.StatusNotFound, "cart item not found")
			return
		}
		slog.Error("Failed to remove cart item", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeMessage(w, http.StatusOK, "Product removed from the cart successfully")
}

type cartLine struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// GetCart lists the caller's cart rows joined to product name and price.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())

	lines, err := h.Store.GetCartLines(user.ID)
	if err != nil {
		slog.Error("Failed to fetch cart", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	response := make([]cartLine, len(lines))
	for i, l := range lines {
		response[i] = cartLine{
			ID:       l.ID,
			Name:     l.Name,
			Price:    l.Price.InexactFloat64(),
			Quantity: l.Quantity,
		}
	}
	writeJSON(w, http.StatusOK, response)
}
