package models

import "errors"

// Domain errors returned by the store layer. Handlers map these onto HTTP
// status codes; everything else is treated as an internal error.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateUser    = errors.New("username or email already taken")
	ErrEmptyCart        = errors.New("cart is empty")
)
