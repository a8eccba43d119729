package domain

// Role is the privilege level attached to a session. Values match the
// authority names issued by the café backend.
type Role string

const (
	RoleNone    Role = ""
	RoleRegular Role = "ROLE_USER"
	RoleAdmin   Role = "ROLE_ADMIN"
)

// RoleMarker is the substring whose presence in a credential marks an admin.
const RoleMarker = "ROLE_ADMIN"

// Session is an immutable view of who is logged in. Username may be empty
// while Role is set: restoration from storage never recovers the username.
type Session struct {
	Credential string `json:"-"`
	Username   string `json:"username,omitempty"`
	Role       Role   `json:"role,omitempty"`
}

// IsAuthenticated reports whether a credential is present.
func (s Session) IsAuthenticated() bool {
	return s.Credential != ""
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
