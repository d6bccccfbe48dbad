package order

import "errors"

var ErrEmptyCart = errors.New("cart has no items")
