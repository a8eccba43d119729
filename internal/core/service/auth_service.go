package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/ports"
)

// AuthService signs visitors in and out and proxies account management to
// the backend.
type AuthService struct {
	api      ports.AuthAPI
	resolver RoleResolver
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthService(api ports.AuthAPI, resolver RoleResolver, validate *validator.Validate, log zerolog.Logger) *AuthService {
	return &AuthService{api: api, resolver: resolver, validate: validate, log: log}
}

// Login exchanges credentials for a backend credential and stores it in the
// visitor's session.
func (s *AuthService) Login(ctx context.Context, session *SessionStore, in domain.Credentials) (domain.Session, error) {
	if err := ValidateStruct(s.validate, in); err != nil {
		return domain.Session{}, err
	}

	credential, err := s.api.Login(ctx, in.Username, in.Password)
	if err != nil {
		s.log.Info().Err(err).Str("username", in.Username).Msg("login rejected")
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return domain.Session{}, fmt.Errorf("login: empty credential: %w", domain.ErrUnauthorized)
	}

	role := s.resolver.Resolve(credential)
	if err := session.Login(ctx, credential, in.Username, role, in.Remember); err != nil {
		return domain.Session{}, err
	}
	s.log.Info().Str("username", in.Username).Str("role", string(role)).Bool("remember", in.Remember).Msg("user logged in")
	return session.Snapshot(), nil
}

// Logout clears the visitor's session.
func (s *AuthService) Logout(ctx context.Context, session *SessionStore) error {
	username := session.Snapshot().Username
	if err := session.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("logout left stale credential")
		return err
	}
	s.log.Info().Str("username", username).Msg("user logged out")
	return nil
}

// Register validates the sign-up form and creates a customer account.
func (s *AuthService) Register(ctx context.Context, form domain.RegistrationForm) (string, error) {
	if err := ValidateStruct(s.validate, form); err != nil {
		return "", err
	}
	msg, err := s.api.Register(ctx, form.Registration())
	if err != nil {
		return "", fmt.Errorf("register %s: %w", form.Username, err)
	}
	return msg, nil
}

// RegisterAdmin creates an administrator account. Only admins may call it.
func (s *AuthService) RegisterAdmin(ctx context.Context, caller domain.Session, r domain.AdminRegistration) (string, error) {
	if !caller.IsAdmin() {
		return "", domain.ErrUnauthorized
	}
	if err := ValidateStruct(s.validate, r); err != nil {
		return "", err
	}
	msg, err := s.api.RegisterAdmin(ports.WithCredential(ctx, caller.Credential), r)
	if err != nil {
		return "", fmt.Errorf("register admin %s: %w", r.Username, err)
	}
	return msg, nil
}

// DeleteUser removes an account. Only admins may call it.
func (s *AuthService) DeleteUser(ctx context.Context, caller domain.Session, username string) (string, error) {
	if !caller.IsAdmin() {
		return "", domain.ErrUnauthorized
	}
	if strings.TrimSpace(username) == "" {
		return "", domain.NewValidationError(map[string]string{"username": "This field is required"})
	}
	msg, err := s.api.DeleteUser(ports.WithCredential(ctx, caller.Credential), username)
	if err != nil {
		return "", fmt.Errorf("delete user %s: %w", username, err)
	}
	s.log.Info().Str("username", username).Msg("user deleted")
	return msg, nil
}
