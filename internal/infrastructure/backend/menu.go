package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/codabean/storefront/internal/core/domain"
)

func (c *Client) FullMenu(ctx context.Context) ([]domain.MenuCategory, error) {
	var out []domain.MenuCategory
	if err := c.do(ctx, request{op: "full_menu", method: http.MethodGet, path: "/menu"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SearchMenu(ctx context.Context, query string) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	path := "/menu/search?" + url.Values{"query": {query}}.Encode()
	if err := c.do(ctx, request{op: "search_menu", method: http.MethodGet, path: path}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
