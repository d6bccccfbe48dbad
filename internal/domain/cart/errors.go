package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrNegativePrice   = errors.New("unit price must not be negative")
	ErrMissingProduct  = errors.New("product name is required")
	ErrIndexOutOfRange = errors.New("line item index out of range")
	ErrItemNotFound    = errors.New("line item not found")
)
