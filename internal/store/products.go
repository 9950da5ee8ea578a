package store

import (
	"errors"
	"fmt"

	"github.com/demomarket/marketplace/internal/models"
	"gorm.io/gorm"
)

func (s *Store) CreateProduct(product *models.Product) error {
	return s.DB.Create(product).Error
}

func (s *Store) GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product and, in the same transaction, any cart
// rows that reference it. Without the cascade, removing a product would
// strand unpurchasable lines in user carts.
func (s *Store) DeleteProduct(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("delete cart rows for product %d: %w", id, err)
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrProductNotFound
		}
		return nil
	})
}

// GetCatalog lists every product joined to its category name. The inner
// join skips products with a dangling category reference rather than
// failing the whole listing.
func (s *Store) GetCatalog() ([]models.CatalogEntry, error) {
	var entries []models.CatalogEntry
	err := s.DB.Table("products").
		Select("products.id, products.name, categories.name AS category, products.price").
		Joins("INNER JOIN categories ON categories.id = products.category_id").
		Order("products.id").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
