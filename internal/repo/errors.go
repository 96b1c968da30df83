package repo

import "errors"

var (
	// ErrProductNotFound is returned when a product id or name resolves to nothing.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateProduct is returned when creating a product whose id already exists.
	ErrDuplicateProduct = errors.New("product already exists")

	// ErrInsufficientStock is returned when an adjustment would drive a
	// (product, location) quantity below zero. The ledger is left unchanged.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrUserNotFound is returned when a username resolves to nothing.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername is returned when registering an existing username.
	ErrDuplicateUsername = errors.New("username already exists")
)
