package catalog

import "github.com/shopspring/decimal"

// Placeholder images shown while a backend entry has none.
const (
	DefaultCategoryImage    = "https://images.unsplash.com/photo-1601004890684-d8cbf643f5f2"
	DefaultSubcategoryImage = "https://images.unsplash.com/photo-1587732662419-1fc4ed414a04"
)

type Category struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type Subcategory struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type Product struct {
	ProductName string          `json:"product_name"`
	Variant     string          `json:"variant"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
}
