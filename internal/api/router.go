package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/codabean/storefront/docs"
	"github.com/codabean/storefront/internal/api/handler"
	"github.com/codabean/storefront/internal/api/middleware"
	"github.com/codabean/storefront/internal/core/service"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Log      zerolog.Logger
	Registry *service.VisitorRegistry
	Cookies  middleware.CookieOptions

	Auth     *service.AuthService
	Catalog  *service.CatalogService
	Checkout *service.CheckoutService
	Bookings *service.BookingService

	// Readiness probes; nil entries are skipped.
	Mongo   *mongo.Database
	Redis   *redis.Client
	Backend handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator(nil)
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis, d.Backend)

	e.GET("/health", healthHandler.Liveness)           // liveness
	e.GET("/health/ready", readinessHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	cartHandler := handler.NewCartHandler(d.Catalog)
	checkoutHandler := handler.NewCheckoutHandler(d.Checkout, d.Catalog)
	bookingHandler := handler.NewBookingHandler(d.Bookings)
	adminHandler := handler.NewAdminHandler()

	// Catalog reads only pick up a returning visitor; every other route
	// resolves or issues the identity. Middleware is attached per route so
	// unmatched /api paths reach neither.
	api := e.Group("/api")
	visitor := middleware.Visitor(d.Registry, d.Cookies)
	returning := middleware.Returning(d.Registry)
	member := middleware.Guard(false)
	admin := middleware.Guard(true)

	// --- Catalog (read-only) ---
	api.GET("/products", catalogHandler.ListProducts, returning)
	api.GET("/products/:id", catalogHandler.GetProduct, returning)
	api.GET("/menu", catalogHandler.Menu, returning)
	api.GET("/menu/search", catalogHandler.SearchMenu, returning)
	api.GET("/venues", bookingHandler.ListVenues, returning)

	// --- Public routes ---
	api.GET("/session", authHandler.Session, visitor)
	api.GET("/guard", authHandler.Guard, visitor)
	api.POST("/auth/login", authHandler.Login, visitor)
	api.POST("/auth/logout", authHandler.Logout, visitor)
	api.POST("/auth/register", authHandler.Register, visitor)

	api.GET("/cart", cartHandler.Get, visitor)
	api.DELETE("/cart", cartHandler.Clear, visitor)
	api.POST("/cart/items", cartHandler.AddItem, visitor)
	api.PATCH("/cart/items/:productId", cartHandler.UpdateItem, visitor)
	api.DELETE("/cart/items/:productId", cartHandler.RemoveItem, visitor)

	// --- Authenticated routes ---
	api.GET("/checkout/options", checkoutHandler.Options, visitor, member)
	api.POST("/checkout/validate", checkoutHandler.Validate, visitor, member)
	api.POST("/checkout", checkoutHandler.Submit, visitor, member)
	api.GET("/orders/:id", checkoutHandler.GetOrder, visitor, member)

	api.POST("/bookings", bookingHandler.Book, visitor, member)
	api.GET("/bookings", bookingHandler.MyBookings, visitor, member)
	api.POST("/bookings/:id/cancel", bookingHandler.Cancel, visitor, member)

	// --- Admin routes ---
	api.POST("/admin/users", authHandler.RegisterAdmin, visitor, admin)
	api.DELETE("/admin/users/:username", authHandler.DeleteUser, visitor, admin)
	api.POST("/admin/catalog", adminHandler.Save, visitor, admin)
	api.POST("/admin/products", adminHandler.SaveProduct, visitor, admin)
	api.GET("/admin/:kind", adminHandler.List, visitor, admin)
	api.POST("/admin/:kind/sort", adminHandler.Sort, visitor, admin)
	api.POST("/admin/:kind/filter", adminHandler.Filter, visitor, admin)
	api.DELETE("/admin/:kind/:id", adminHandler.Delete, visitor, admin)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
