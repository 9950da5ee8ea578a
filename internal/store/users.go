package store

import (
	"errors"
	"fmt"

	"github.com/demomarket/marketplace/internal/models"
	"gorm.io/gorm"
)

// CreateUser inserts a new user. The unique constraints on username and
// email are the only duplicate check; violations come back as
// models.ErrDuplicateUser.
func (s *Store) CreateUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return models.ErrDuplicateUser
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
