package service

import (
	"path"
	"strings"

	"github.com/codabean/storefront/internal/core/domain"
)

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// GuardDecision is the outcome of gating a route.
type GuardDecision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// Authorize decides whether a route may render for session. It has no side
// effects and is evaluated on every request.
func Authorize(session domain.Session, adminOnly bool) GuardDecision {
	if !session.IsAuthenticated() {
		return GuardDecision{Redirect: LoginPath}
	}
	if adminOnly && !session.IsAdmin() {
		return GuardDecision{Redirect: UnauthorizedPath}
	}
	return GuardDecision{Allowed: true}
}

// Access is the protection level of a page.
type Access int

const (
	AccessPublic Access = iota
	AccessAuthenticated
	AccessAdmin
)

// pageAccess mirrors the storefront's page routes.
var pageAccess = map[string]Access{
	"/":             AccessPublic,
	"/menu":         AccessPublic,
	"/products":     AccessPublic,
	"/login":        AccessPublic,
	"/register":     AccessPublic,
	"/unauthorized": AccessPublic,
	"/highlights":   AccessAuthenticated,
	"/booking":      AccessAuthenticated,
	"/contact":      AccessAuthenticated,
	"/checkout":     AccessAuthenticated,
	"/blog":         AccessAuthenticated,
	"/admin":        AccessAdmin,
}

// PageAccess returns the protection level for a page path. Sub-paths of a
// known page inherit its level; unknown pages are public.
func PageAccess(p string) Access {
	p = path.Clean("/" + strings.TrimSpace(p))
	for {
		if a, ok := pageAccess[p]; ok {
			return a
		}
		if p == "/" {
			return AccessPublic
		}
		p = path.Dir(p)
	}
}

// AuthorizePage applies Authorize according to the page's access level.
func AuthorizePage(session domain.Session, page string) GuardDecision {
	switch PageAccess(page) {
	case AccessAdmin:
		return Authorize(session, true)
	case AccessAuthenticated:
		return Authorize(session, false)
	default:
		return GuardDecision{Allowed: true}
	}
}
