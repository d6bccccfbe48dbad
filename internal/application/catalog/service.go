package catalog

import (
	"context"
	"fmt"

	domain "communite/internal/domain/catalog"
)

// Fetcher abstracts the backend catalog endpoints so the service can be
// tested without a network.
type Fetcher interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Subcategories(ctx context.Context, category string) ([]domain.Subcategory, error)
	Products(ctx context.Context, category, subcategory string) ([]domain.Product, error)
}

type Service struct {
	fetcher Fetcher
}

func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// ListCategories returns the top-level categories, substituting the
// placeholder image for entries the backend returns without one.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.fetcher.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	for i := range cats {
		if cats[i].Image == "" {
			cats[i].Image = domain.DefaultCategoryImage
		}
	}
	return cats, nil
}

func (s *Service) ListSubcategories(ctx context.Context, category string) ([]domain.Subcategory, error) {
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	subs, err := s.fetcher.Subcategories(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("fetch subcategories: %w", err)
	}
	for i := range subs {
		if subs[i].Image == "" {
			subs[i].Image = domain.DefaultSubcategoryImage
		}
	}
	return subs, nil
}

func (s *Service) ListProducts(ctx context.Context, category, subcategory string) ([]domain.Product, error) {
	if category == "" || subcategory == "" {
		return nil, fmt.Errorf("category and subcategory are required")
	}
	products, err := s.fetcher.Products(ctx, category, subcategory)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}
