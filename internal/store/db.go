package store

import (
	"errors"
	"strings"

	"github.com/demomarket/marketplace/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store wraps the gorm handle. All persistence goes through methods on
// Store so handlers never touch gorm directly.
type Store struct {
	DB *gorm.DB
}

// NewStore opens a Postgres-backed store. TranslateError is enabled so
// unique-constraint violations surface as gorm.ErrDuplicatedKey.
func NewStore(databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// NewMemoryStore opens an in-memory SQLite store with the schema applied.
// Used by tests and local development without a Postgres instance.
func NewMemoryStore() (*Store, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	s := &Store{DB: db}
	if err := s.AutoMigrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// AutoMigrate creates the schema from the models. Production deployments
// run the SQL files in migrations/ instead (see RunMigrations).
func (s *Store) AutoMigrate() error {
	return s.DB.AutoMigrate(allModels()...)
}

func allModels() []any {
	return []any{
		&models.Category{},
		&models.Product{},
		&models.User{},
		&models.CartItem{},
		&models.Order{},
	}
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// gorm's TranslateError covers Postgres; the string check covers the SQLite
// driver used in tests, which does not translate.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
