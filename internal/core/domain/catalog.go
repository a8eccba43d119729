package domain

import (
	"cmp"
	"strings"
)

// EntityKind tags which variant a CatalogEntry holds.
type EntityKind string

const (
	KindProduct EntityKind = "product"
	KindEvent   EntityKind = "event"
)

// ParseEntityKind maps a route or payload value to an EntityKind.
func ParseEntityKind(s string) (EntityKind, error) {
	switch EntityKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindProduct, "products":
		return KindProduct, nil
	case KindEvent, "events":
		return KindEvent, nil
	}
	return "", ErrUnknownEntityKind
}

// CatalogEntity is implemented by every type the admin editor manages.
type CatalogEntity interface {
	EntityID() int64
	// SearchText returns the fields the free-text filter looks at.
	SearchText() []string
	// CompareBy orders two entities of the same type by column.
	// Unknown columns compare equal.
	CompareBy(column string, other CatalogEntity) int
}

// Product is a sellable catalog item.
type Product struct {
	ID          int64   `json:"id"`
	Category    string  `json:"category"    validate:"required"`
	ProductName string  `json:"productName" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gte=0"`
	ImageURL    string  `json:"imageUrl"`
}

func (p Product) EntityID() int64 { return p.ID }

func (p Product) SearchText() []string {
	return []string{p.ProductName, p.Description, p.Category}
}

func (p Product) CompareBy(column string, other CatalogEntity) int {
	o, ok := other.(Product)
	if !ok {
		return 0
	}
	switch column {
	case "id":
		return cmp.Compare(p.ID, o.ID)
	case "productName", "name":
		return strings.Compare(p.ProductName, o.ProductName)
	case "category":
		return strings.Compare(p.Category, o.Category)
	case "price":
		return cmp.Compare(p.Price, o.Price)
	case "description":
		return strings.Compare(p.Description, o.Description)
	}
	return 0
}

// CartProduct converts the product into the shape the cart stores.
func (p Product) CartProduct() CartProduct {
	return CartProduct{
		ID:       formatID(p.ID),
		Name:     p.ProductName,
		Price:    CentsFromFloat(p.Price),
		ImageRef: p.ImageURL,
	}
}

// Event is a venue event managed from the admin dashboard. The "attendes"
// spelling is the backend wire name.
type Event struct {
	ID           int64  `json:"id,omitempty"`
	EventName    string `json:"eventName"    validate:"required"`
	EventDate    string `json:"eventDate"    validate:"required,datetime=2006-01-02"`
	EventTime    string `json:"eventTime"    validate:"required"`
	Description  string `json:"description"`
	Attendees    int    `json:"attendes"     validate:"gte=0"`
	CustomerName string `json:"customerName" validate:"required"`
	ContactInfo  string `json:"contactInfo"  validate:"required"`
}

func (e Event) EntityID() int64 { return e.ID }

func (e Event) SearchText() []string {
	return []string{e.EventName, e.Description, e.CustomerName}
}

func (e Event) CompareBy(column string, other CatalogEntity) int {
	o, ok := other.(Event)
	if !ok {
		return 0
	}
	switch column {
	case "id":
		return cmp.Compare(e.ID, o.ID)
	case "eventName", "name":
		return strings.Compare(e.EventName, o.EventName)
	case "eventDate", "date":
		if c := strings.Compare(e.EventDate, o.EventDate); c != 0 {
			return c
		}
		return strings.Compare(e.EventTime, o.EventTime)
	case "attendes":
		return cmp.Compare(e.Attendees, o.Attendees)
	case "customerName":
		return strings.Compare(e.CustomerName, o.CustomerName)
	}
	return 0
}

// CatalogEntry is a tagged variant over the entity types the admin editor
// accepts. Exactly one of Product or Event is set, matching Kind.
type CatalogEntry struct {
	Kind    EntityKind `json:"kind"`
	Product *Product   `json:"product,omitempty"`
	Event   *Event     `json:"event,omitempty"`
}

// Entity returns the populated variant.
func (c CatalogEntry) Entity() (CatalogEntity, error) {
	switch c.Kind {
	case KindProduct:
		if c.Product != nil {
			return *c.Product, nil
		}
	case KindEvent:
		if c.Event != nil {
			return *c.Event, nil
		}
	}
	return nil, ErrUnknownEntityKind
}

// SortDirection is the order of a sorted column.
type SortDirection string

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

// SortState is the admin list's current sort column and direction.
// The zero value means unsorted (backend order).
type SortState struct {
	Column    string        `json:"column,omitempty"`
	Direction SortDirection `json:"direction,omitempty"`
}

// Toggle returns the state after a click on column: the same ascending
// column flips to descending, anything else becomes ascending.
func (s SortState) Toggle(column string) SortState {
	if s.Column == column && s.Direction == Ascending {
		return SortState{Column: column, Direction: Descending}
	}
	return SortState{Column: column, Direction: Ascending}
}

// MatchesFilter reports whether any search field of e contains query,
// case-insensitively. An empty query matches everything.
func MatchesFilter(e CatalogEntity, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range e.SearchText() {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
