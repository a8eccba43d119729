package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/codabean/storefront/internal/core/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var credential string
	err := c.do(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/auth/login",
		body:   loginRequest{Username: username, Password: password},
	}, &credential)
	return credential, err
}

func (c *Client) Register(ctx context.Context, r domain.Registration) (string, error) {
	var msg string
	err := c.do(ctx, request{op: "register", method: http.MethodPost, path: "/auth/register", body: r}, &msg)
	return msg, err
}

func (c *Client) RegisterAdmin(ctx context.Context, r domain.AdminRegistration) (string, error) {
	var msg string
	err := c.do(ctx, request{op: "register_admin", method: http.MethodPost, path: "/auth/register-admin", body: r}, &msg)
	return msg, err
}

func (c *Client) DeleteUser(ctx context.Context, username string) (string, error) {
	var msg string
	err := c.do(ctx, request{
		op:     "delete_user",
		method: http.MethodDelete,
		path:   "/auth/delete/" + url.PathEscape(username),
	}, &msg)
	return msg, err
}
