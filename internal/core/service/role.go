package service

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/codabean/storefront/internal/core/domain"
)

// RoleResolver derives a role from an opaque credential.
type RoleResolver interface {
	Resolve(credential string) domain.Role
}

// NewRoleResolver returns a JWTResolver when jwtSecret is set and the
// marker-substring resolver otherwise.
func NewRoleResolver(jwtSecret string) RoleResolver {
	if jwtSecret == "" {
		return MarkerResolver{}
	}
	return NewJWTResolver(jwtSecret)
}

// MarkerResolver treats any credential containing domain.RoleMarker as admin.
// The credential is not decoded or verified.
type MarkerResolver struct{}

func (MarkerResolver) Resolve(credential string) domain.Role {
	switch {
	case credential == "":
		return domain.RoleNone
	case strings.Contains(credential, domain.RoleMarker):
		return domain.RoleAdmin
	default:
		return domain.RoleRegular
	}
}

// JWTResolver verifies the credential as an HS256 token and reads its
// "role" claim. Anything it cannot verify is a regular user.
type JWTResolver struct {
	secret []byte
}

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: []byte(secret)}
}

func (r *JWTResolver) Resolve(credential string) domain.Role {
	if credential == "" {
		return domain.RoleNone
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return r.secret, nil
	})
	if err != nil || !tkn.Valid {
		return domain.RoleRegular
	}

	role, _ := claims["role"].(string)
	switch strings.ToUpper(role) {
	case string(domain.RoleAdmin), "ADMIN":
		return domain.RoleAdmin
	default:
		return domain.RoleRegular
	}
}
