package order

import (
	"github.com/shopspring/decimal"

	"communite/internal/domain/cart"
	"communite/internal/domain/customer"
)

// Order is the write-once payload submitted to the backend. It snapshots
// the cart at assembly time; later cart mutations do not leak into a built
// order. The client keeps no order record after submission, the backend is
// authoritative.
type Order struct {
	Customer             customer.Customer `json:"customer"`
	Cart                 []cart.LineItem   `json:"cart"`
	Subtotal             decimal.Decimal   `json:"subtotal"`
	DeliveryCharge       decimal.Decimal   `json:"delivery_charge"`
	TotalAmount          decimal.Decimal   `json:"total_amount"`
	DeliveryInstructions string            `json:"delivery_instructions"`
}

// Confirmation is what the backend returns for an accepted order. Only
// OrderID is guaranteed; cycle, delivery date and total are optional
// metadata some backends include.
type Confirmation struct {
	OrderID      string
	OrderCycle   string
	DeliveryDate string
	TotalAmount  decimal.Decimal
	Message      string
}

// New assembles an order from a validated customer and a non-empty cart.
func New(cust customer.Customer, c *cart.Cart, deliveryCharge decimal.Decimal) (*Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if err := cust.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		Customer:             cust,
		Cart:                 c.Items(),
		Subtotal:             c.Subtotal(),
		DeliveryCharge:       deliveryCharge,
		TotalAmount:          c.Total(deliveryCharge),
		DeliveryInstructions: cust.DeliveryInstructions,
	}, nil
}
