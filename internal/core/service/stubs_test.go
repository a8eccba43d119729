package service

import (
	"context"
	"errors"
	"sync"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/ports"
)

var errStub = errors.New("stub failure")

type stubTier struct {
	mu      sync.Mutex
	values  map[string]string
	setErr  error
	getErr  error
	deleted []string
}

func newStubTier() *stubTier {
	return &stubTier{values: make(map[string]string)}
}

func (t *stubTier) Get(_ context.Context, key string) (string, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.getErr != nil {
		return "", false, t.getErr
	}
	v, ok := t.values[key]
	return v, ok, nil
}

func (t *stubTier) Set(_ context.Context, key, value string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.setErr != nil {
		return t.setErr
	}
	t.values[key] = value
	return nil
}

func (t *stubTier) Delete(_ context.Context, key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.values, key)
	t.deleted = append(t.deleted, key)
	return nil
}

func (t *stubTier) has(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.values[key]
	return ok
}

type stubAuthAPI struct {
	loginFn         func(ctx context.Context, username, password string) (string, error)
	registerFn      func(ctx context.Context, r domain.Registration) (string, error)
	registerAdminFn func(ctx context.Context, r domain.AdminRegistration) (string, error)
	deleteUserFn    func(ctx context.Context, username string) (string, error)
}

func (s *stubAuthAPI) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthAPI) Register(ctx context.Context, r domain.Registration) (string, error) {
	return s.registerFn(ctx, r)
}

func (s *stubAuthAPI) RegisterAdmin(ctx context.Context, r domain.AdminRegistration) (string, error) {
	return s.registerAdminFn(ctx, r)
}

func (s *stubAuthAPI) DeleteUser(ctx context.Context, username string) (string, error) {
	return s.deleteUserFn(ctx, username)
}

type stubCatalogBackend[T domain.CatalogEntity] struct {
	items     []T
	listErr   error
	saveErr   error
	deleteErr error
	saved     []T
	deleted   []int64
	lists     int
}

func (b *stubCatalogBackend[T]) List(_ context.Context) ([]T, error) {
	b.lists++
	if b.listErr != nil {
		return nil, b.listErr
	}
	out := make([]T, len(b.items))
	copy(out, b.items)
	return out, nil
}

func (b *stubCatalogBackend[T]) Save(_ context.Context, entity T, _ *ports.ImageUpload) error {
	if b.saveErr != nil {
		return b.saveErr
	}
	b.saved = append(b.saved, entity)
	b.items = append(b.items, entity)
	return nil
}

func (b *stubCatalogBackend[T]) Delete(_ context.Context, id int64) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	b.deleted = append(b.deleted, id)
	kept := b.items[:0]
	for _, it := range b.items {
		if it.EntityID() != id {
			kept = append(kept, it)
		}
	}
	b.items = kept
	return nil
}

type stubOrderRepo struct {
	mu       sync.Mutex
	orders   map[string]*domain.Order
	creates  int
	err      error
	stateErr error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.err != nil {
		return r.err
	}
	clone := *order
	r.orders[order.ID] = &clone
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id, visitorID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || (visitorID != "" && o.VisitorID != visitorID) {
		return nil, domain.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) UpdateState(_ context.Context, id string, state domain.OrderState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stateErr != nil {
		return r.stateErr
	}
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.State = state
	return nil
}

type stubNotifier struct {
	events []domain.OrderConfirmedEvent
}

func (n *stubNotifier) Notify(event domain.OrderConfirmedEvent) {
	n.events = append(n.events, event)
}

type stubVenueAPI struct {
	venues    []domain.Venue
	available bool
	checkErr  error
	checks    []domain.AvailabilityCheck
	booked    []domain.BookingRequest
	cancelled []int64
	creds     []string
}

func (s *stubVenueAPI) ListVenues(_ context.Context) ([]domain.Venue, error) {
	return s.venues, nil
}

func (s *stubVenueAPI) CheckAvailability(ctx context.Context, check domain.AvailabilityCheck) (bool, error) {
	cred, _ := ports.CredentialFrom(ctx)
	s.creds = append(s.creds, cred)
	s.checks = append(s.checks, check)
	return s.available, s.checkErr
}

func (s *stubVenueAPI) Book(_ context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	s.booked = append(s.booked, req)
	return &domain.Booking{ID: 77, StartTime: req.StartTime, EndTime: req.EndTime, Status: "CONFIRMED"}, nil
}

func (s *stubVenueAPI) MyBookings(_ context.Context) ([]domain.Booking, error) {
	return []domain.Booking{{ID: 77}}, nil
}

func (s *stubVenueAPI) CancelBooking(_ context.Context, id int64) error {
	s.cancelled = append(s.cancelled, id)
	return nil
}

type stubProductAPI struct {
	products []domain.Product
	err      error
}

func (s *stubProductAPI) ListProducts(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubProductAPI) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProductAPI) SaveProduct(_ context.Context, p domain.Product, _ *ports.ImageUpload) (string, error) {
	return "saved", s.err
}

func (s *stubProductAPI) DeleteProduct(_ context.Context, _ int64) (string, error) {
	return "deleted", s.err
}

func (s *stubProductAPI) ProductImageURL(imageURL string) string {
	return "http://backend/images/product-image/" + imageURL
}

type stubMenuAPI struct {
	menu     []domain.MenuCategory
	searched []string
}

func (s *stubMenuAPI) FullMenu(_ context.Context) ([]domain.MenuCategory, error) {
	return s.menu, nil
}

func (s *stubMenuAPI) SearchMenu(_ context.Context, query string) ([]domain.MenuItem, error) {
	s.searched = append(s.searched, query)
	return []domain.MenuItem{{ID: 1, Name: "Latte"}}, nil
}
