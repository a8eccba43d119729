package service

import (
	"context"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/ports"
)

// ProductCatalog adapts ports.ProductAPI to the editor's backend contract.
type ProductCatalog struct {
	api ports.ProductAPI
}

func NewProductCatalog(api ports.ProductAPI) *ProductCatalog {
	return &ProductCatalog{api: api}
}

func (c *ProductCatalog) List(ctx context.Context) ([]domain.Product, error) {
	return c.api.ListProducts(ctx)
}

func (c *ProductCatalog) Save(ctx context.Context, p domain.Product, image *ports.ImageUpload) error {
	_, err := c.api.SaveProduct(ctx, p, image)
	return err
}

func (c *ProductCatalog) Delete(ctx context.Context, id int64) error {
	_, err := c.api.DeleteProduct(ctx, id)
	return err
}

// EventCatalog adapts ports.EventAPI to the editor's backend contract.
// Events carry no image; a supplied upload is ignored.
type EventCatalog struct {
	api ports.EventAPI
}

func NewEventCatalog(api ports.EventAPI) *EventCatalog {
	return &EventCatalog{api: api}
}

func (c *EventCatalog) List(ctx context.Context) ([]domain.Event, error) {
	return c.api.ListEvents(ctx)
}

func (c *EventCatalog) Save(ctx context.Context, e domain.Event, _ *ports.ImageUpload) error {
	if e.ID == 0 {
		_, err := c.api.CreateEvent(ctx, e)
		return err
	}
	_, err := c.api.UpdateEvent(ctx, e.ID, e)
	return err
}

func (c *EventCatalog) Delete(ctx context.Context, id int64) error {
	return c.api.DeleteEvent(ctx, id)
}
