package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/service"
)

// CatalogHandler serves the public product catalogue and café menu.
type CatalogHandler struct {
	catalog *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts godoc
//
//	@Summary	List products
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{array}		domain.Product
//	@Failure	502	{object}	errorResponse
//	@Router		/api/products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.catalog.Products(c.Request().Context())
	if err != nil {
		return err
	}
	for i := range products {
		products[i] = h.withImage(products[i])
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct godoc
//
//	@Summary	Product details
//	@Tags		catalog
//	@Produce	json
//	@Param		id	path		int	true	"Product ID"
//	@Success	200	{object}	domain.Product
//	@Failure	404	{object}	errorResponse
//	@Router		/api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.catalog.Product(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.withImage(*p))
}

// withImage replaces the stored image reference with a fetchable URL.
func (h *CatalogHandler) withImage(p domain.Product) domain.Product {
	p.ImageURL = h.catalog.ImageURL(p.ImageURL)
	return p
}

// Menu godoc
//
//	@Summary	Full café menu
//	@Tags		catalog
//	@Produce	json
//	@Success	200	{array}		domain.MenuCategory
//	@Failure	502	{object}	errorResponse
//	@Router		/api/menu [get]
func (h *CatalogHandler) Menu(c echo.Context) error {
	menu, err := h.catalog.Menu(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, menu)
}

// SearchMenu godoc
//
//	@Summary		Search the menu
//	@Description	An empty query returns every menu item.
//	@Tags			catalog
//	@Produce		json
//	@Param			query	query		string	false	"Search text"
//	@Success		200		{array}		domain.MenuItem
//	@Failure		502		{object}	errorResponse
//	@Router			/api/menu/search [get]
func (h *CatalogHandler) SearchMenu(c echo.Context) error {
	items, err := h.catalog.SearchMenu(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}
