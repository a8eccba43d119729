package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codabean/storefront/internal/api/metrics"
	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/service"
)

// CartHandler exposes the visitor's cart.
type CartHandler struct {
	catalog *service.CatalogService
}

func NewCartHandler(catalog *service.CatalogService) *CartHandler {
	return &CartHandler{catalog: catalog}
}

// Get godoc
//
//	@Summary	Show the cart
//	@Tags		cart
//	@Produce	json
//	@Success	200	{object}	cartResponse
//	@Router		/api/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toCartResponse(v.Cart.Snapshot()))
}

// AddItem godoc
//
//	@Summary		Add a product to the cart
//	@Description	Adds one unit. The name and price are read from the catalog, never from the request.
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			body	body		addItemRequest	true	"Product to add"
//	@Success		200		{object}	cartResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		422		{object}	validationErrorResponse
//	@Router			/api/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	p, err := h.catalog.Product(ctx, req.ProductID)
	if err != nil {
		return err
	}

	cart, err := v.Cart.Add(ctx, p.CartProduct())
	recordCart("add", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toCartResponse(cart))
}

// UpdateItem godoc
//
//	@Summary		Change a line's quantity
//	@Description	A quantity below 1 removes the line.
//	@Tags			cart
//	@Accept			json
//	@Produce		json
//	@Param			productId	path		string					true	"Product ID"
//	@Param			body		body		updateQuantityRequest	true	"New quantity"
//	@Success		200			{object}	cartResponse
//	@Router			/api/cart/items/{productId} [patch]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cart, err := v.Cart.UpdateQuantity(c.Request().Context(), c.Param("productId"), *req.Quantity)
	recordCart("update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toCartResponse(cart))
}

// RemoveItem godoc
//
//	@Summary	Remove a line from the cart
//	@Tags		cart
//	@Produce	json
//	@Param		productId	path		string	true	"Product ID"
//	@Success	200			{object}	cartResponse
//	@Router		/api/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	cart, err := v.Cart.Remove(c.Request().Context(), c.Param("productId"))
	recordCart("remove", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toCartResponse(cart))
}

// Clear godoc
//
//	@Summary	Empty the cart
//	@Tags		cart
//	@Success	204
//	@Router		/api/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	err = v.Cart.Clear(c.Request().Context())
	recordCart("clear", err)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func recordCart(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.CartMutationsTotal.WithLabelValues(op, result).Inc()
}

func (h *CartHandler) toCartResponse(cart domain.Cart) cartResponse {
	return cartResponse{
		Items:     toLineItems(cart.Items, h.catalog.ImageURL),
		Total:     cart.Total().String(),
		ItemCount: cart.ItemCount(),
	}
}
