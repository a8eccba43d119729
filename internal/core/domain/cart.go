package domain

import (
	"fmt"
	"math"
)

// Cents is an amount of money in hundredths of the currency unit.
type Cents int64

// CentsFromFloat rounds a decimal price to the nearest cent.
func CentsFromFloat(v float64) Cents {
	return Cents(math.Round(v * 100))
}

// Float returns the amount as a decimal value.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// String renders the amount with two decimals, e.g. "9.00".
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// LineItem is one product entry in the cart.
type LineItem struct {
	ProductID string `json:"productId"          bson:"product_id"`
	Name      string `json:"name"               bson:"name"`
	UnitPrice Cents  `json:"unitPrice"          bson:"unit_price"`
	ImageRef  string `json:"imageRef,omitempty" bson:"image_ref,omitempty"`
	Quantity  int    `json:"quantity"           bson:"quantity"`
}

// Subtotal is UnitPrice × Quantity.
func (li LineItem) Subtotal() Cents {
	return li.UnitPrice * Cents(li.Quantity)
}

// CartProduct is the part of a product the cart needs to create a line item.
type CartProduct struct {
	ID       string
	Name     string
	Price    Cents
	ImageRef string
}

// Cart is an ordered sequence of line items with unique product ids.
// Every line item has Quantity >= 1.
type Cart struct {
	Items []LineItem `json:"items"`
}

// Add merges p into an existing line item or appends a new one with quantity 1.
func (c *Cart) Add(p CartProduct) {
	if i := c.indexOf(p.ID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	c.Items = append(c.Items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageRef:  p.ImageRef,
		Quantity:  1,
	})
}

// SetQuantity sets the quantity of productID. A quantity below 1 removes the item.
func (c *Cart) SetQuantity(productID string, qty int) {
	if qty < 1 {
		c.Remove(productID)
		return
	}
	if i := c.indexOf(productID); i >= 0 {
		c.Items[i].Quantity = qty
	}
}

// Remove drops the line item for productID; absent ids are ignored.
func (c *Cart) Remove(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total is the sum of unit price × quantity over all line items.
func (c Cart) Total() Cents {
	var total Cents
	for _, li := range c.Items {
		total += li.Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, li := range c.Items {
		n += li.Quantity
	}
	return n
}

// IsEmpty reports whether the cart holds no line items.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy safe to hand to callers.
func (c Cart) Clone() Cart {
	if c.Items == nil {
		return Cart{}
	}
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

func (c Cart) indexOf(productID string) int {
	for i, li := range c.Items {
		if li.ProductID == productID {
			return i
		}
	}
	return -1
}
