package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one product+variant entry in the cart. Identity is the
// (ProductName, Variant) pair; ID is a stable handle assigned when the item
// first enters the cart, so callers can address items without relying on
// positions that shift after a removal.
type LineItem struct {
	ID          string          `json:"id"`
	ProductName string          `json:"product_name"`
	Variant     string          `json:"variant"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// Cart is an ordered collection of line items. At most one item exists per
// (ProductName, Variant) pair; adding the same pair again merges quantities.
// All quantities are >= 1 and TotalPrice always equals UnitPrice * Quantity.
type Cart struct {
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// Add appends a new line item, or increments the quantity of the existing
// item with the same (productName, variant) pair. Quantity must be at least
// one and unitPrice must not be negative.
func (c *Cart) Add(productName, variant string, unitPrice decimal.Decimal, quantity int) error {
	if productName == "" {
		return ErrMissingProduct
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return ErrNegativePrice
	}

	for i := range c.items {
		if c.items[i].ProductName == productName && c.items[i].Variant == variant {
			c.items[i].Quantity += quantity
			c.items[i].TotalPrice = c.items[i].UnitPrice.Mul(decimal.NewFromInt(int64(c.items[i].Quantity)))
			return nil
		}
	}

	c.items = append(c.items, LineItem{
		ID:          uuid.NewString(),
		ProductName: productName,
		Variant:     variant,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	})
	return nil
}

// SetQuantity replaces the quantity of the item at index. A quantity of zero
// or less removes the item, matching the "removing the last unit removes the
// item" rule.
func (c *Cart) SetQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	if quantity <= 0 {
		return c.Remove(index)
	}
	c.items[index].Quantity = quantity
	c.items[index].TotalPrice = c.items[index].UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return nil
}

// Remove deletes the item at index. Items after it shift down, so callers
// holding positional references must refresh them afterwards; prefer the
// ByID variants when addressing items across mutations.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.items) {
		return ErrIndexOutOfRange
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

// IndexOf returns the current index of the item with the given stable ID,
// or -1 when no such item exists.
func (c *Cart) IndexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) SetQuantityByID(id string, quantity int) error {
	i := c.IndexOf(id)
	if i < 0 {
		return ErrItemNotFound
	}
	return c.SetQuantity(i, quantity)
}

func (c *Cart) RemoveByID(id string) error {
	i := c.IndexOf(id)
	if i < 0 {
		return ErrItemNotFound
	}
	return c.Remove(i)
}

// Subtotal is the sum of every line item's TotalPrice.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for i := range c.items {
		sum = sum.Add(c.items[i].TotalPrice)
	}
	return sum
}

// Total is the subtotal plus the delivery charge. An empty cart owes
// nothing: no delivery charge applies when the subtotal is zero.
func (c *Cart) Total(deliveryCharge decimal.Decimal) decimal.Decimal {
	sub := c.Subtotal()
	if !sub.IsPositive() {
		return decimal.Zero
	}
	return sub.Add(deliveryCharge)
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Clear empties the cart. Called after a successful order submission.
func (c *Cart) Clear() {
	c.items = nil
}
