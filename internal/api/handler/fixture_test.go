package handler

import (
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/api/middleware"
	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/ports"
	"github.com/codabean/storefront/internal/core/service"
	"github.com/codabean/storefront/internal/infrastructure/db/memory"
)

// --- backend stubs ---

type stubAuthAPI struct {
	credential string
	loginErr   error
	registered []domain.Registration
}

func (s *stubAuthAPI) Login(_ context.Context, _, _ string) (string, error) {
	return s.credential, s.loginErr
}

func (s *stubAuthAPI) Register(_ context.Context, r domain.Registration) (string, error) {
	s.registered = append(s.registered, r)
	return "User registered successfully", nil
}

func (s *stubAuthAPI) RegisterAdmin(_ context.Context, _ domain.AdminRegistration) (string, error) {
	return "Admin registered successfully", nil
}

func (s *stubAuthAPI) DeleteUser(_ context.Context, username string) (string, error) {
	return "Deleted " + username, nil
}

type stubProductAPI struct {
	mu        sync.Mutex
	products  []domain.Product
	saved     []domain.Product
	images    []string
	deleteErr error
}

func (s *stubProductAPI) ListProducts(context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.products...), nil
}

func (s *stubProductAPI) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProductAPI) SaveProduct(_ context.Context, p domain.Product, image *ports.ImageUpload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, p)
	if image != nil {
		body, _ := io.ReadAll(image.Body)
		s.images = append(s.images, image.Filename+":"+string(body))
	}
	if p.ID == 0 {
		p.ID = int64(len(s.products) + 1)
	}
	s.products = append(s.products, p)
	return "saved", nil
}

func (s *stubProductAPI) DeleteProduct(_ context.Context, id int64) (string, error) {
	if s.deleteErr != nil {
		return "", s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			break
		}
	}
	return "deleted", nil
}

func (s *stubProductAPI) ProductImageURL(ref string) string {
	return "http://backend.test/api/images/product-image/" + ref
}

type stubEventAPI struct {
	events []domain.Event
}

func (s *stubEventAPI) ListEvents(context.Context) ([]domain.Event, error) {
	return s.events, nil
}

func (s *stubEventAPI) CreateEvent(_ context.Context, e domain.Event) (*domain.Event, error) {
	e.ID = int64(len(s.events) + 1)
	s.events = append(s.events, e)
	return &e, nil
}

func (s *stubEventAPI) UpdateEvent(_ context.Context, id int64, e domain.Event) (*domain.Event, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i] = e
		}
	}
	return &e, nil
}

func (s *stubEventAPI) DeleteEvent(context.Context, int64) error { return nil }

type stubMenuAPI struct {
	menu    []domain.MenuCategory
	queries []string
}

func (s *stubMenuAPI) FullMenu(context.Context) ([]domain.MenuCategory, error) {
	return s.menu, nil
}

func (s *stubMenuAPI) SearchMenu(_ context.Context, query string) ([]domain.MenuItem, error) {
	s.queries = append(s.queries, query)
	return nil, nil
}

type stubVenueAPI struct {
	free   bool
	booked []domain.BookingRequest
}

func (s *stubVenueAPI) ListVenues(context.Context) ([]domain.Venue, error) { return nil, nil }

func (s *stubVenueAPI) CheckAvailability(context.Context, domain.AvailabilityCheck) (bool, error) {
	return s.free, nil
}

func (s *stubVenueAPI) Book(_ context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	s.booked = append(s.booked, req)
	return &domain.Booking{ID: int64(len(s.booked)), StartTime: req.StartTime, EndTime: req.EndTime, Status: "CONFIRMED"}, nil
}

func (s *stubVenueAPI) MyBookings(context.Context) ([]domain.Booking, error) { return nil, nil }

func (s *stubVenueAPI) CancelBooking(context.Context, int64) error { return nil }

type stubOrderRepo struct {
	mu      sync.Mutex
	created []*domain.Order
	err     error
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	clone := *o
	r.created = append(r.created, &clone)
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id, visitorID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.created {
		if o.ID == id && o.VisitorID == visitorID {
			clone := *o
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubOrderRepo) UpdateState(_ context.Context, id string, state domain.OrderState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.created {
		if o.ID == id {
			o.State = state
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubNotifier struct {
	events []domain.OrderConfirmedEvent
}

func (n *stubNotifier) Notify(e domain.OrderConfirmedEvent) { n.events = append(n.events, e) }

// --- fixture ---

type fixture struct {
	e        *echo.Echo
	registry *service.VisitorRegistry

	authAPI  *stubAuthAPI
	products *stubProductAPI
	events   *stubEventAPI
	menu     *stubMenuAPI
	venues   *stubVenueAPI
	orders   *stubOrderRepo
	notifier *stubNotifier

	auth     *service.AuthService
	catalog  *service.CatalogService
	checkout *service.CheckoutService
	bookings *service.BookingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator(nil)

	f := &fixture{
		e:        e,
		authAPI:  &stubAuthAPI{},
		products: &stubProductAPI{},
		events:   &stubEventAPI{},
		menu:     &stubMenuAPI{},
		venues:   &stubVenueAPI{},
		orders:   &stubOrderRepo{},
		notifier: &stubNotifier{},
	}

	log := zerolog.Nop()
	validate := service.NewValidator()
	f.registry = service.NewVisitorRegistry(service.RegistryDeps{
		Durable:  memory.NewTier(0),
		Scoped:   memory.NewTier(0),
		Products: service.NewProductCatalog(f.products),
		Events:   service.NewEventCatalog(f.events),
	}, log)
	f.auth = service.NewAuthService(f.authAPI, service.MarkerResolver{}, validate, log)
	f.catalog = service.NewCatalogService(f.products, f.menu)
	f.checkout = service.NewCheckoutService(f.orders, f.notifier, validate, log)
	f.bookings = service.NewBookingService(f.venues, validate, log)
	return f
}

// visitor returns the visitor for id, restored from the fixture's tiers.
func (f *fixture) visitor(t *testing.T, id string) *service.Visitor {
	t.Helper()
	return f.registry.Get(context.Background(), service.VisitorID{Visitor: id, Tab: id + "-tab"})
}

// signIn logs v in with a credential that carries the role marker for admins.
func (f *fixture) signIn(t *testing.T, v *service.Visitor, username string, role domain.Role) {
	t.Helper()
	cred := "token-for-" + username
	if role == domain.RoleAdmin {
		cred += "-" + domain.RoleMarker
	}
	if err := v.Session.Login(context.Background(), cred, username, role, false); err != nil {
		t.Fatalf("sign in: %v", err)
	}
}

// request builds an echo context for v. A body starting with "{" is sent as JSON.
func (f *fixture) request(v *service.Visitor, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if strings.HasPrefix(body, "{") {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	if v != nil {
		c.Set(middleware.VisitorKey, v)
	}
	return c, rec
}

func (f *fixture) withProducts(products ...domain.Product) {
	f.products.products = append(f.products.products, products...)
}

func product(id int64, name string, price float64) domain.Product {
	return domain.Product{
		ID:          id,
		Category:    "Coffee",
		ProductName: name,
		Description: fmt.Sprintf("%s from the roastery", name),
		Price:       price,
		ImageURL:    strings.ToLower(name) + ".jpg",
	}
}
