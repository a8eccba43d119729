package backend

import (
	"context"
	"net/http"

	"github.com/codabean/storefront/internal/core/domain"
)

func (c *Client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	var out []domain.Event
	if err := c.do(ctx, request{op: "list_events", method: http.MethodGet, path: "/events"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEvent(ctx context.Context, e domain.Event) (*domain.Event, error) {
	e.ID = 0
	var out domain.Event
	if err := c.do(ctx, request{op: "create_event", method: http.MethodPost, path: "/events", body: e}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id int64, e domain.Event) (*domain.Event, error) {
	var out domain.Event
	if err := c.do(ctx, request{op: "update_event", method: http.MethodPut, path: idPath("/events/", id), body: e}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, request{op: "delete_event", method: http.MethodDelete, path: idPath("/events/", id)}, nil)
}
