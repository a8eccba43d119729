package domain

import "time"

// ShippingOption is a delivery choice offered at checkout.
type ShippingOption struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     Cents  `json:"price"`
	Estimated string `json:"estimated"`
}

// PaymentMethod identifies how the customer pays.
type PaymentMethod string

const (
	PaymentCredit PaymentMethod = "credit"
	PaymentPayPal PaymentMethod = "paypal"
	PaymentCOD    PaymentMethod = "cod"
)

const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
	ShippingPriority = "priority"
)

// ShippingOptions lists the delivery choices in display order.
var ShippingOptions = []ShippingOption{
	{ID: ShippingStandard, Name: "Standard Shipping", Price: 599, Estimated: "3-5 business days"},
	{ID: ShippingExpress, Name: "Express Shipping", Price: 1299, Estimated: "2-3 business days"},
	{ID: ShippingPriority, Name: "Priority Shipping", Price: 1999, Estimated: "1-2 business days"},
}

// PaymentMethods lists the accepted payment methods in display order.
var PaymentMethods = []PaymentMethod{PaymentCredit, PaymentPayPal, PaymentCOD}

// FindShippingOption looks up a shipping option by id.
func FindShippingOption(id string) (ShippingOption, bool) {
	for _, o := range ShippingOptions {
		if o.ID == id {
			return o, true
		}
	}
	return ShippingOption{}, false
}

// CheckoutDraft holds what the customer typed into the checkout form.
// Card fields are only required when PaymentMethod is PaymentCredit.
type CheckoutDraft struct {
	FirstName      string        `json:"firstName"      validate:"required"`
	LastName       string        `json:"lastName"       validate:"required"`
	Email          string        `json:"email"          validate:"required,email"`
	Phone          string        `json:"phone"          validate:"omitempty,phone"`
	Address        string        `json:"address"        validate:"required"`
	City           string        `json:"city"           validate:"required"`
	State          string        `json:"state"          validate:"required"`
	Zip            string        `json:"zip"            validate:"required"`
	Country        string        `json:"country"        validate:"required"`
	ShippingMethod string        `json:"shippingMethod" validate:"required,oneof=standard express priority"`
	PaymentMethod  PaymentMethod `json:"paymentMethod"  validate:"required,oneof=credit paypal cod"`
	CardNumber     string        `json:"cardNumber"     validate:"required_if=PaymentMethod credit"`
	CardName       string        `json:"cardName"       validate:"required_if=PaymentMethod credit"`
	CardExpiry     string        `json:"cardExpiry"     validate:"required_if=PaymentMethod credit"`
	CardCVV        string        `json:"cardCvv"        validate:"required_if=PaymentMethod credit"`
	SaveInfo       bool          `json:"saveInfo"`
	Notes          string        `json:"notes"`
}

// OrderState is the lifecycle state of a checkout.
type OrderState string

const (
	OrderDraft      OrderState = "draft"
	OrderValidated  OrderState = "validated"
	OrderSubmitting OrderState = "submitting"
	OrderConfirmed  OrderState = "confirmed"
)

// validOrderTransitions defines the checkout state machine. A failed
// validation or submission returns to draft; confirmed is terminal.
var validOrderTransitions = map[OrderState][]OrderState{
	OrderDraft:      {OrderValidated, OrderDraft},
	OrderValidated:  {OrderSubmitting, OrderDraft},
	OrderSubmitting: {OrderConfirmed, OrderDraft},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OrderState) CanTransitionTo(next OrderState) bool {
	for _, allowed := range validOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Contact is the customer contact and delivery address of an order.
type Contact struct {
	FirstName string `json:"firstName" bson:"first_name"`
	LastName  string `json:"lastName"  bson:"last_name"`
	Email     string `json:"email"     bson:"email"`
	Phone     string `json:"phone"     bson:"phone,omitempty"`
	Address   string `json:"address"   bson:"address"`
	City      string `json:"city"      bson:"city"`
	State     string `json:"state"     bson:"state"`
	Zip       string `json:"zip"       bson:"zip"`
	Country   string `json:"country"   bson:"country"`
}

// Order is a confirmed (or in-flight) checkout.
type Order struct {
	ID             string        `json:"orderId"            bson:"_id"`
	VisitorID      string        `json:"-"                  bson:"visitor_id"`
	Username       string        `json:"username,omitempty" bson:"username,omitempty"`
	Items          []LineItem    `json:"items"              bson:"items"`
	Subtotal       Cents         `json:"subtotal"           bson:"subtotal"`
	ShippingCost   Cents         `json:"shippingCost"       bson:"shipping_cost"`
	Total          Cents         `json:"total"              bson:"total"`
	ShippingMethod string        `json:"shippingMethod"     bson:"shipping_method"`
	PaymentMethod  PaymentMethod `json:"paymentMethod"      bson:"payment_method"`
	Contact        Contact       `json:"contact"            bson:"contact"`
	Notes          string        `json:"notes,omitempty"    bson:"notes,omitempty"`
	State          OrderState    `json:"state"              bson:"state"`
	CreatedAt      time.Time     `json:"createdAt"          bson:"created_at"`
}

// OrderConfirmedEvent is published once an order reaches the confirmed state.
type OrderConfirmedEvent struct {
	OrderID   string    `json:"orderId"`
	Username  string    `json:"username,omitempty"`
	Total     Cents     `json:"total"`
	ItemCount int       `json:"itemCount"`
	CreatedAt time.Time `json:"createdAt"`
}
