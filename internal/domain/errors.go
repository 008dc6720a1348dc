package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrConflict          = errors.New("conflict with concurrent modification")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPriceBelowFloor   = errors.New("price below the item's limit price")
)
