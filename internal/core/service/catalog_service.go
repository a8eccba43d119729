package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/ports"
)

// CatalogService serves the public product and menu pages.
type CatalogService struct {
	products ports.ProductAPI
	menu     ports.MenuAPI
}

func NewCatalogService(products ports.ProductAPI, menu ports.MenuAPI) *CatalogService {
	return &CatalogService{products: products, menu: menu}
}

func (s *CatalogService) Products(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) Product(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

// ImageURL resolves a product's stored image reference to a fetchable URL.
func (s *CatalogService) ImageURL(imageRef string) string {
	if imageRef == "" {
		return ""
	}
	return s.products.ProductImageURL(imageRef)
}

func (s *CatalogService) Menu(ctx context.Context) ([]domain.MenuCategory, error) {
	menu, err := s.menu.FullMenu(ctx)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}
	return menu, nil
}

// SearchMenu returns items matching query; an empty query returns every
// item on the menu.
func (s *CatalogService) SearchMenu(ctx context.Context, query string) ([]domain.MenuItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		menu, err := s.Menu(ctx)
		if err != nil {
			return nil, err
		}
		var items []domain.MenuItem
		for _, c := range menu {
			items = append(items, c.Items...)
		}
		return items, nil
	}

	items, err := s.menu.SearchMenu(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search menu %q: %w", query, err)
	}
	return items, nil
}
