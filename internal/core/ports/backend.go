package ports

import (
	"context"
	"io"

	"github.com/codabean/storefront/internal/core/domain"
)

type credentialKey struct{}

// WithCredential returns a context carrying the bearer credential that
// backend calls made with it will present.
func WithCredential(ctx context.Context, credential string) context.Context {
	if credential == "" {
		return ctx
	}
	return context.WithValue(ctx, credentialKey{}, credential)
}

// CredentialFrom extracts the credential set by WithCredential.
func CredentialFrom(ctx context.Context) (string, bool) {
	c, ok := ctx.Value(credentialKey{}).(string)
	return c, ok && c != ""
}

// AuthAPI is the backend's authentication surface.
type AuthAPI interface {
	// Login returns the opaque credential string issued by the backend.
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, r domain.Registration) (string, error)
	RegisterAdmin(ctx context.Context, r domain.AdminRegistration) (string, error)
	DeleteUser(ctx context.Context, username string) (string, error)
}

// ImageUpload is an optional binary attachment for a product save.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ProductAPI is the backend's product catalog surface.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	// SaveProduct creates the product when its ID is 0 and edits it otherwise.
	SaveProduct(ctx context.Context, p domain.Product, image *ImageUpload) (string, error)
	DeleteProduct(ctx context.Context, id int64) (string, error)
	ProductImageURL(imageURL string) string
}

// EventAPI is the backend's event surface.
type EventAPI interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	CreateEvent(ctx context.Context, e domain.Event) (*domain.Event, error)
	UpdateEvent(ctx context.Context, id int64, e domain.Event) (*domain.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}

// MenuAPI is the backend's menu surface.
type MenuAPI interface {
	FullMenu(ctx context.Context) ([]domain.MenuCategory, error)
	SearchMenu(ctx context.Context, query string) ([]domain.MenuItem, error)
}

// VenueAPI is the backend's venue booking surface.
type VenueAPI interface {
	ListVenues(ctx context.Context) ([]domain.Venue, error)
	CheckAvailability(ctx context.Context, check domain.AvailabilityCheck) (bool, error)
	Book(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error)
	MyBookings(ctx context.Context) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, id int64) error
}

// CatalogBackend is what the admin editor needs from the backend for one
// entity type.
type CatalogBackend[T domain.CatalogEntity] interface {
	List(ctx context.Context) ([]T, error)
	Save(ctx context.Context, entity T, image *ImageUpload) error
	Delete(ctx context.Context, id int64) error
}
