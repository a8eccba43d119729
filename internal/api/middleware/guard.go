package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codabean/storefront/internal/core/service"
)

// Guard gates a route on the visitor's session. Unauthenticated
// visitors are sent to the login page and non-admins to the unauthorized
// page when adminOnly is set. It must run after Visitor.
func Guard(adminOnly bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, ok := c.Get(VisitorKey).(*service.Visitor)
			if !ok {
				return c.Redirect(http.StatusSeeOther, service.LoginPath)
			}
			decision := service.Authorize(v.Session.Snapshot(), adminOnly)
			if !decision.Allowed {
				return c.Redirect(http.StatusSeeOther, decision.Redirect)
			}
			return next(c)
		}
	}
}
