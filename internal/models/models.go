package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is immutable reference data. Categories are seeded via the CLI
// or migrations; there is no HTTP surface for mutating them.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}

// Product is a catalog entry. Price is stored as a fixed-point decimal so
// checkout math never goes through binary floating point.
type Product struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"not null" json:"name"`
	CategoryID uint            `gorm:"not null" json:"category_id"`
	Category   Category        `gorm:"foreignKey:CategoryID" json:"-"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (Product) TableName() string {
	return "products"
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password;not null" json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Address      string `json:"address"`
	PhoneNumber  string `json:"phone_number"`
	PaymentInfo  string `json:"payment_info"`
	IsAdmin      bool   `json:"is_admin"`
}

func (User) TableName() string {
	return "users"
}

// CartItem is a single line item in a user's cart. Adding the same product
// twice produces two rows; lines are never merged.
type CartItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"not null;index" json:"user_id"`
	ProductID uint `gorm:"not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// Order records a completed checkout. Amount is in minor currency units
// (e.g. paise), matching what was sent to the payment processor.
type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrderRef        string    `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	Amount          int64     `gorm:"not null" json:"amount"`
	Currency        string    `gorm:"not null" json:"currency"`
	Status          string    `gorm:"not null" json:"status"`
	PaymentIntentID string    `json:"payment_intent_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

// CatalogEntry is the read model for the public catalog: a product joined
// to its category name.
type CatalogEntry struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// CartLine is the read model for a user's cart: a cart row joined to the
// product it references.
type CartLine struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}
