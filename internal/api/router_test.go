package api

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/api/middleware"
	"github.com/codabean/storefront/internal/core/service"
	"github.com/codabean/storefront/internal/infrastructure/db/memory"
)

// testRegistry backs the shared router.
var testRegistry = service.NewVisitorRegistry(service.RegistryDeps{
	Durable: memory.NewTier(0),
	Scoped:  memory.NewTier(0),
}, zerolog.Nop())

// newTestRouter builds the router once: the echoprometheus collectors can
// only be registered with the default registry a single time.
var newTestRouter = sync.OnceValue(func() http.Handler {
	return NewRouter(Deps{
		Log:      zerolog.Nop(),
		Registry: testRegistry,
		Cookies:  middleware.CookieOptions{MaxAge: 24 * time.Hour},
	})
})

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_SessionIssuesCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	names := map[string]bool{}
	for _, ck := range rec.Result().Cookies() {
		names[ck.Name] = true
	}
	if !names[middleware.VisitorCookie] || !names[middleware.TabCookie] {
		t.Fatalf("expected visitor and tab cookies, got %v", names)
	}
}

func TestRouter_GuardedRoutes(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/checkout/options", service.LoginPath},
		{http.MethodPost, "/api/bookings", service.LoginPath},
		{http.MethodGet, "/api/admin/products", service.LoginPath},
	}

	h := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("expected 303, got %d", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != tt.want {
				t.Fatalf("expected redirect to %s, got %s", tt.want, loc)
			}
		})
	}
}

func TestRouter_UnmatchedPathLeavesRegistry(t *testing.T) {
	h := newTestRouter()
	before := testRegistry.Len()

	for _, path := range []string{"/api/nope", "/api/admin/x/y/z", "/api/.env"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, rec.Code)
		}
		if len(rec.Result().Cookies()) != 0 {
			t.Fatalf("%s: no cookies must be issued", path)
		}
	}
	if got := testRegistry.Len(); got != before {
		t.Fatalf("registry grew from %d to %d", before, got)
	}
}
