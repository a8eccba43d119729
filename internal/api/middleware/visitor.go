package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/codabean/storefront/internal/api/metrics"
	"github.com/codabean/storefront/internal/core/ports"
	"github.com/codabean/storefront/internal/core/service"
)

const (
	// VisitorCookie identifies the browser across restarts and tabs.
	VisitorCookie = "cb_visitor"
	// TabCookie has no expiry, so it ends with the browsing session.
	TabCookie = "cb_tab"

	// VisitorKey is the echo context key holding the *service.Visitor.
	VisitorKey = "visitor"
)

// CookieOptions controls how the identity cookies are issued.
type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

// Visitor resolves the visitor and tab cookies (issuing new ones when absent
// or malformed), loads the Visitor from the registry and stores it under
// VisitorKey. The visitor's credential is put on the request context for
// backend calls.
func Visitor(registry *service.VisitorRegistry, opts CookieOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			visitorID, ok := readID(c, VisitorCookie)
			if !ok {
				visitorID = uuid.NewString()
				c.SetCookie(newCookie(VisitorCookie, visitorID, opts.Secure, opts.MaxAge))
			}
			tabID, ok := readID(c, TabCookie)
			if !ok {
				tabID = uuid.NewString()
				c.SetCookie(newCookie(TabCookie, tabID, opts.Secure, 0))
			}

			attach(c, registry, service.VisitorID{Visitor: visitorID, Tab: tabID})
			return next(c)
		}
	}
}

// Returning is Visitor for read-only routes: a request carrying both identity
// cookies gets its visitor and credential, anything else is served
// anonymously without cookies or a registry entry.
func Returning(registry *service.VisitorRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			visitorID, ok := readID(c, VisitorCookie)
			if !ok {
				return next(c)
			}
			tabID, ok := readID(c, TabCookie)
			if !ok {
				return next(c)
			}

			attach(c, registry, service.VisitorID{Visitor: visitorID, Tab: tabID})
			return next(c)
		}
	}
}

func attach(c echo.Context, registry *service.VisitorRegistry, id service.VisitorID) {
	req := c.Request()
	v := registry.Get(req.Context(), id)
	c.Set(VisitorKey, v)
	metrics.LiveVisitors.Set(float64(registry.Len()))

	if cred := v.Session.Snapshot().Credential; cred != "" {
		c.SetRequest(req.WithContext(ports.WithCredential(req.Context(), cred)))
	}
}

// readID returns the id stored in cookie name when it is a valid uuid.
func readID(c echo.Context, name string) (string, bool) {
	ck, err := c.Cookie(name)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(ck.Value); err != nil {
		return "", false
	}
	return ck.Value, true
}

func newCookie(name, value string, secure bool, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
