package store

import (
	"fmt"

	"github.com/demomarket/marketplace/internal/models"
	"gorm.io/gorm"
)

// CompleteCheckout records the order and clears the user's cart in one
// transaction. Called only after the payment processor reports success, so
// either both happen or the cart survives intact for a retry.
func (s *Store) CompleteCheckout(userID uint, order *models.Order) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("record order: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
}

func (s *Store) GetOrdersByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
