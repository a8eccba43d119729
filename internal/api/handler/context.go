package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/codabean/storefront/internal/api/middleware"
	"github.com/codabean/storefront/internal/core/service"
)

// ctxVisitor extracts the visitor injected by the Visitor middleware. Its
// absence means the route was registered outside the visitor group.
func ctxVisitor(c echo.Context) (*service.Visitor, error) {
	v, ok := c.Get(middleware.VisitorKey).(*service.Visitor)
	if !ok || v == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "visitor context missing")
	}
	return v, nil
}

// paramID parses a positive integer path parameter.
func paramID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
