package handlers

import (
	"log/slog"
	"net/http"

	"github.com/demomarket/marketplace/internal/models"
)

// CatalogProvider is the slice of the store the catalog needs.
type CatalogProvider interface {
	GetCatalog() ([]models.CatalogEntry, error)
}

type CatalogHandler struct {
	Store CatalogProvider
}

type catalogEntry struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// List serves the public catalog: every product with its category name.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.GetCatalog()
	if err != nil {
		slog.Error("Failed to fetch catalog", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch catalog")
		return
	}

	response := make([]catalogEntry, len(entries))
	for i, e := range entries {
		response[i] = catalogEntry{
			ID:       e.ID,
			Name:     e.Name,
			Category: e.Category,
			Price:    e.Price.InexactFloat64(),
		}
	}
	writeJSON(w, http.StatusOK, response)
}
