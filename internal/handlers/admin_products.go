package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/demomarket/marketplace/internal/models"
	"github.com/shopspring/decimal"
)

// ProductAdminProvider is the slice of the store product administration
// needs.
type ProductAdminProvider interface {
	GetCategoryByID(id uint) (*models.Category, error)
	CreateProduct(product *models.Product) error
	DeleteProduct(id uint) error
}

// AdminProductHandler handles the admin-only catalog mutations. Routes are
// wrapped in RequireAuth and RequireAdmin.
type AdminProductHandler struct {
	Store ProductAdminProvider
}

type addProductRequest struct {
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	CategoryID  uint    `json:"category_id"`
}

func (h *AdminProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req addProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ProductName == "" {
		writeError(w, http.StatusBadRequest, "product_name is required")
		return
	}
	if req.Price < 0 {
		writeError(w, http.StatusBadRequest, "price must be non-negative")
		return
	}
	if req.CategoryID == 0 {
		writeError(w, http.StatusBadRequest, "category_id is required")
		return
	}

	// Pre-check the category so a bad reference is a 400, not a
	// foreign-key violation bubbling up as a 500.
	if _, err := h.Store.GetCategoryByID(req.CategoryID); err != nil {
		if errors.Is(err, models.ErrCategoryNotFound) {
			writeError(w, http.StatusBadRequest, "category does not exist")
			return
		}
		slog.Error("Failed to look up category", "error", err, "category_id", req.CategoryID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	product := &models.Product{
		Name:       req.ProductName,
		CategoryID: req.CategoryID,
		Price:      decimal.NewFromFloat(req.Price),
	}
	if err := h.Store.CreateProduct(product); err != nil {
		slog.Error("Failed to create product", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeMessage(w, http.StatusCreated, "Product added successfully")
}

func (h *AdminProductHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseUint(r.PathValue("product_id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.Store.DeleteProduct(uint(productID)); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		slog.Error("Failed to delete product", "error", err, "product_id", productID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeMessage(w, http.StatusOK, "Product removed successfully")
}
