package store

import (
	"github.com/demomarket/marketplace/internal/models"
)

// AddCartItem inserts a new line item. There is deliberately no merge with
// an existing row for the same product; repeated adds accumulate rows.
func (s *Store) AddCartItem(item *models.CartItem) error {
	return s.DB.Create(item).Error
}

// DeleteCartItem removes one cart row owned by userID. A row that exists
// but belongs to someone else is reported as not found, so the response
// does not leak other users' cart ids.
func (s *Store) DeleteCartItem(userID, cartID uint) error {
	res := s.DB.Where("id = ? AND user_id = ?", cartID, userID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrCartItemNotFound
	}
	return nil
}

// GetCartLines returns the user's cart rows joined to product name and
// price, oldest first.
func (s *Store) GetCartLines(userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := s.DB.Table("cart_items").
		Select("cart_items.id, products.name, products.price, cart_items.quantity").
		Joins("INNER JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *Store) ClearCart(userID uint) error {
	return s.DB.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
