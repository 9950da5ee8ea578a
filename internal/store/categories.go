package store

import (
	"errors"

	"github.com/demomarket/marketplace/internal/models"
	"gorm.io/gorm"
)

func (s *Store) CreateCategory(category *models.Category) error {
	return s.DB.Create(category).Error
}

func (s *Store) GetCategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}
