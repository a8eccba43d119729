package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/ports"
)

func newTestAuthService(api *stubAuthAPI) *AuthService {
	return NewAuthService(api, MarkerResolver{}, NewValidator(), zerolog.Nop())
}

func TestAuthService_LoginAdmin(t *testing.T) {
	api := &stubAuthAPI{
		loginFn: func(_ context.Context, username, password string) (string, error) {
			if username != "root" || password != "pw" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return " eyJ.ROLE_ADMIN.sig\n", nil
		},
	}
	durable, scoped := newStubTier(), newStubTier()
	store := newTestSessionStore(durable, scoped)

	s, err := newTestAuthService(api).Login(context.Background(), store, domain.Credentials{Username: "root", Password: "pw", Remember: true})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !s.IsAdmin() || s.Username != "root" {
		t.Fatalf("unexpected session %+v", s)
	}
	if durable.values[durableCredKey] != "eyJ.ROLE_ADMIN.sig" {
		t.Fatalf("expected trimmed credential persisted, got %q", durable.values[durableCredKey])
	}
}

func TestAuthService_LoginRejected(t *testing.T) {
	api := &stubAuthAPI{
		loginFn: func(context.Context, string, string) (string, error) {
			return "", domain.ErrUnauthorized
		},
	}
	store := newTestSessionStore(newStubTier(), newStubTier())

	_, err := newTestAuthService(api).Login(context.Background(), store, domain.Credentials{Username: "a", Password: "b"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if store.Snapshot().IsAuthenticated() {
		t.Fatalf("session must stay anonymous")
	}
}

func TestAuthService_LoginRequiresFields(t *testing.T) {
	api := &stubAuthAPI{
		loginFn: func(context.Context, string, string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	_, err := newTestAuthService(api).Login(context.Background(), newTestSessionStore(newStubTier(), newStubTier()), domain.Credentials{})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 2 {
		t.Fatalf("expected two field errors, got %v", err)
	}
}

func TestAuthService_RegisterPasswordMismatch(t *testing.T) {
	api := &stubAuthAPI{
		registerFn: func(context.Context, domain.Registration) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	form := domain.RegistrationForm{
		Username:        "alice",
		Password:        "secret1",
		ConfirmPassword: "secret2",
		Email:           "alice@example.com",
		FullName:        "Alice",
	}

	_, err := newTestAuthService(api).Register(context.Background(), form)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Fields["confirmPassword"] != "Passwords do not match" {
		t.Fatalf("expected password mismatch, got %v", err)
	}
}

func TestAuthService_RegisterSendsBackendShape(t *testing.T) {
	var got domain.Registration
	api := &stubAuthAPI{
		registerFn: func(_ context.Context, r domain.Registration) (string, error) {
			got = r
			return "Customer registered", nil
		},
	}
	form := domain.RegistrationForm{
		Username:        "alice",
		Password:        "secret",
		ConfirmPassword: "secret",
		Email:           "alice@example.com",
		FullName:        "Alice",
		Phone:           "555-123-4567",
	}

	msg, err := newTestAuthService(api).Register(context.Background(), form)
	if err != nil || msg != "Customer registered" {
		t.Fatalf("register: %q %v", msg, err)
	}
	if got.Username != "alice" || got.Password != "secret" || got.Phone != "555-123-4567" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestAuthService_AdminOperationsRequireAdmin(t *testing.T) {
	var cred string
	api := &stubAuthAPI{
		deleteUserFn: func(ctx context.Context, username string) (string, error) {
			cred, _ = ports.CredentialFrom(ctx)
			return "deleted " + username, nil
		},
	}
	svc := newTestAuthService(api)

	if _, err := svc.DeleteUser(context.Background(), customer, "bob"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.DeleteUser(context.Background(), admin, "bob"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if cred != admin.Credential {
		t.Fatalf("expected admin credential forwarded, got %q", cred)
	}
}

func TestAuthService_Logout(t *testing.T) {
	durable, scoped := newStubTier(), newStubTier()
	durable.values[durableCredKey] = "tok"
	store := newTestSessionStore(durable, scoped)

	if err := newTestAuthService(&stubAuthAPI{}).Logout(context.Background(), store); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if store.Snapshot().IsAuthenticated() || durable.has(durableCredKey) {
		t.Fatalf("expected logged out")
	}
}
