package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codabean/storefront/internal/api/metrics"
	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/service"
)

// CheckoutHandler drives the order flow for the visitor's cart.
type CheckoutHandler struct {
	checkout *service.CheckoutService
	catalog  *service.CatalogService
}

func NewCheckoutHandler(checkout *service.CheckoutService, catalog *service.CatalogService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, catalog: catalog}
}

// Options godoc
//
//	@Summary		Checkout options
//	@Description	Lists shipping and payment options and prices the cart with the chosen shipping method.
//	@Tags			checkout
//	@Produce		json
//	@Param			shippingMethod	query		string	false	"standard, express or priority"	default(standard)
//	@Success		200				{object}	checkoutOptionsResponse
//	@Router			/api/checkout/options [get]
func (h *CheckoutHandler) Options(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	method := c.QueryParam("shippingMethod")
	if method == "" {
		method = domain.ShippingStandard
	}

	shipping := make([]shippingOptionResponse, 0, len(domain.ShippingOptions))
	for _, o := range domain.ShippingOptions {
		shipping = append(shipping, shippingOptionResponse{
			ID:        o.ID,
			Name:      o.Name,
			Price:     o.Price.String(),
			Estimated: o.Estimated,
		})
	}

	state, lastOrderID := v.Flow.State()
	return c.JSON(http.StatusOK, checkoutOptionsResponse{
		ShippingOptions: shipping,
		PaymentMethods:  domain.PaymentMethods,
		Quote:           toQuoteResponse(h.checkout.Quote(v.Cart.Snapshot(), method)),
		State:           state,
		LastOrderID:     lastOrderID,
	})
}

// Validate godoc
//
//	@Summary	Validate the checkout form
//	@Tags		checkout
//	@Accept		json
//	@Produce	json
//	@Param		body	body		domain.CheckoutDraft	true	"Checkout form"
//	@Success	200		{object}	quoteResponse
//	@Failure	422		{object}	validationErrorResponse
//	@Router		/api/checkout/validate [post]
func (h *CheckoutHandler) Validate(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	var req domain.CheckoutDraft
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.checkout.Validate(req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toQuoteResponse(h.checkout.Quote(v.Cart.Snapshot(), req.ShippingMethod)))
}

// Submit godoc
//
//	@Summary		Place an order
//	@Description	Validates the form, saves the order and clears the cart. A failed save leaves the cart untouched.
//	@Tags			checkout
//	@Accept			json
//	@Produce		json
//	@Param			body	body		domain.CheckoutDraft	true	"Checkout form"
//	@Success		201		{object}	orderResponse
//	@Failure		409		{object}	errorResponse
//	@Failure		422		{object}	validationErrorResponse
//	@Failure		502		{object}	errorResponse
//	@Router			/api/checkout [post]
func (h *CheckoutHandler) Submit(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	var req domain.CheckoutDraft
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.checkout.Submit(c.Request().Context(), v, req)
	metrics.OrdersTotal.WithLabelValues(orderResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderResponse(order, h.catalog.ImageURL))
}

func orderResult(err error) string {
	var ve *domain.ValidationError
	switch {
	case err == nil:
		return "confirmed"
	case errors.As(err, &ve):
		return "invalid"
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, domain.ErrSubmissionInProgress):
		return "in_progress"
	default:
		return "failed"
	}
}

// GetOrder godoc
//
//	@Summary	Fetch one of the visitor's orders
//	@Tags		checkout
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	orderResponse
//	@Failure	404	{object}	errorResponse
//	@Router		/api/orders/{id} [get]
func (h *CheckoutHandler) GetOrder(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	order, err := h.checkout.Order(c.Request().Context(), v, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order, h.catalog.ImageURL))
}
