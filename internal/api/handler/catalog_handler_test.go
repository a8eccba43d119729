package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/codabean/storefront/internal/core/domain"
)

func TestCatalogHandler_SearchMenu_EmptyQueryReturnsAll(t *testing.T) {
	f := newFixture(t)
	f.menu.menu = []domain.MenuCategory{
		{ID: 1, Name: "Hot", Items: []domain.MenuItem{{ID: 1, Name: "Latte"}, {ID: 2, Name: "Cortado"}}},
		{ID: 2, Name: "Cold", Items: []domain.MenuItem{{ID: 3, Name: "Cold Brew"}}},
	}
	h := NewCatalogHandler(f.catalog)

	c, rec := f.request(nil, http.MethodGet, "/api/menu/search?query=%20%20", "")
	if err := h.SearchMenu(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected all 3 menu items, got %d", len(items))
	}
	if len(f.menu.queries) != 0 {
		t.Fatal("an empty query must not hit the search endpoint")
	}
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	f := newFixture(t)
	f.withProducts(product(7, "Cortado", 3.75))
	h := NewCatalogHandler(f.catalog)

	c, rec := f.request(nil, http.MethodGet, "/api/products/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.GetProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var p domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if p.ImageURL != "http://backend.test/api/images/product-image/cortado.jpg" {
		t.Fatalf("expected resolved image url, got %q", p.ImageURL)
	}
}

func TestCatalogHandler_GetProduct_BadID(t *testing.T) {
	f := newFixture(t)
	h := NewCatalogHandler(f.catalog)

	c, _ := f.request(nil, http.MethodGet, "/api/products/x", "")
	c.SetParamNames("id")
	c.SetParamValues("x")

	err := h.GetProduct(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}
