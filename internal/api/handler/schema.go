package handler

import (
	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/service"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// validationErrorResponse is returned with 422 when a form fails validation.
type validationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Session ---

type sessionResponse struct {
	Authenticated bool        `json:"authenticated"`
	Admin         bool        `json:"admin"`
	Username      string      `json:"username,omitempty"`
	Role          domain.Role `json:"role,omitempty"`
}

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		Authenticated: s.IsAuthenticated(),
		Admin:         s.IsAdmin(),
		Username:      s.Username,
		Role:          s.Role,
	}
}

// --- Cart ---

type addItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

// Quantity is a pointer so a missing field is told apart from an explicit 0.
type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required" swaggertype:"integer"`
}

type lineItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

func toLineItems(items []domain.LineItem, imageURL func(string) string) []lineItemResponse {
	out := make([]lineItemResponse, 0, len(items))
	for _, li := range items {
		out = append(out, lineItemResponse{
			ProductID: li.ProductID,
			Name:      li.Name,
			UnitPrice: li.UnitPrice.String(),
			ImageURL:  imageURL(li.ImageRef),
			Quantity:  li.Quantity,
			Subtotal:  li.Subtotal().String(),
		})
	}
	return out
}

type cartResponse struct {
	Items     []lineItemResponse `json:"items"`
	Total     string             `json:"total"`
	ItemCount int                `json:"itemCount"`
}

// --- Checkout ---

type quoteResponse struct {
	Subtotal     string `json:"subtotal"`
	ShippingCost string `json:"shippingCost"`
	Total        string `json:"total"`
	ItemCount    int    `json:"itemCount"`
}

func toQuoteResponse(q service.Quote) quoteResponse {
	return quoteResponse{
		Subtotal:     q.Subtotal.String(),
		ShippingCost: q.ShippingCost.String(),
		Total:        q.Total.String(),
		ItemCount:    q.ItemCount,
	}
}

type shippingOptionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Estimated string `json:"estimated"`
}

type checkoutOptionsResponse struct {
	ShippingOptions []shippingOptionResponse `json:"shippingOptions"`
	PaymentMethods  []domain.PaymentMethod   `json:"paymentMethods"`
	Quote           quoteResponse            `json:"quote"`
	State           domain.OrderState        `json:"state"`
	LastOrderID     string                   `json:"lastOrderId,omitempty"`
}

type orderResponse struct {
	OrderID        string               `json:"orderId"`
	State          domain.OrderState    `json:"state"`
	Items          []lineItemResponse   `json:"items"`
	Subtotal       string               `json:"subtotal"`
	ShippingCost   string               `json:"shippingCost"`
	Total          string               `json:"total"`
	ShippingMethod string               `json:"shippingMethod"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod"`
	Contact        domain.Contact       `json:"contact"`
	CreatedAt      string               `json:"createdAt"`
}

func toOrderResponse(o *domain.Order, imageURL func(string) string) orderResponse {
	return orderResponse{
		OrderID:        o.ID,
		State:          o.State,
		Items:          toLineItems(o.Items, imageURL),
		Subtotal:       o.Subtotal.String(),
		ShippingCost:   o.ShippingCost.String(),
		Total:          o.Total.String(),
		ShippingMethod: o.ShippingMethod,
		PaymentMethod:  o.PaymentMethod,
		Contact:        o.Contact,
		CreatedAt:      o.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// --- Admin ---

type sortRequest struct {
	Column string `json:"column" validate:"required"`
}

type filterRequest struct {
	Query string `json:"query"`
}
