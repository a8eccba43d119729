package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/codabean/storefront/internal/core/domain"
)

func TestMarkerResolver(t *testing.T) {
	cases := map[string]domain.Role{
		"":                      domain.RoleNone,
		"plain-token":           domain.RoleRegular,
		"abc.ROLE_ADMIN.xyz":    domain.RoleAdmin,
		"ROLE_USER,ROLE_ADMIN":  domain.RoleAdmin,
		"role_admin-lowercased": domain.RoleRegular,
	}
	for credential, want := range cases {
		if got := (MarkerResolver{}).Resolve(credential); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", credential, got, want)
		}
	}
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestJWTResolver(t *testing.T) {
	r := NewJWTResolver("secret")
	exp := time.Now().Add(time.Hour).Unix()

	admin := signed(t, "secret", jwt.MapClaims{"role": "ROLE_ADMIN", "exp": exp})
	if got := r.Resolve(admin); got != domain.RoleAdmin {
		t.Fatalf("expected admin, got %q", got)
	}

	user := signed(t, "secret", jwt.MapClaims{"role": "ROLE_USER", "exp": exp})
	if got := r.Resolve(user); got != domain.RoleRegular {
		t.Fatalf("expected regular, got %q", got)
	}

	forged := signed(t, "other-secret", jwt.MapClaims{"role": "ROLE_ADMIN", "exp": exp})
	if got := r.Resolve(forged); got != domain.RoleRegular {
		t.Fatalf("forged token must not be admin, got %q", got)
	}

	if got := r.Resolve("opaque-ROLE_ADMIN"); got != domain.RoleRegular {
		t.Fatalf("marker substring must not grant admin, got %q", got)
	}
}

func TestNewRoleResolver(t *testing.T) {
	if _, ok := NewRoleResolver("").(MarkerResolver); !ok {
		t.Fatalf("expected marker resolver without secret")
	}
	if _, ok := NewRoleResolver("s").(*JWTResolver); !ok {
		t.Fatalf("expected jwt resolver with secret")
	}
}
