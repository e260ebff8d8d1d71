package domain

import "errors"

// User and auth errors
var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("forbidden")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrMissingFields      = errors.New("required fields must not be empty")
	ErrInvalidRole        = errors.New("invalid role")
)

// Catalog errors
var (
	ErrFlowerNotFound = errors.New("flower not found")
	ErrLookupNotFound = errors.New("lookup entry not found")
	ErrInvalidPrice   = errors.New("price must be greater than zero")
)

// Order errors
var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrBuyerNotFound   = errors.New("buyer not found")
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)
