package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents a university portal role as issued by the remote API.
// The string form matches the API's role claim exactly (capitalized).
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleStudent   Role = "Student"
	RoleDoctor    Role = "Doctor"
	RoleAssistant Role = "Assistant"
)

// Valid reports whether r is one of the roles the API issues.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleDoctor, RoleAssistant:
		return true
	}
	return false
}

// Claims are the identity attributes embedded in an access token payload.
// They are recomputed from the stored token on demand and never cached,
// so they always reflect the current session tokens.
type Claims struct {
	Email     string
	Role      Role
	Faculty   string
	ExpiresAt time.Time
}

// Session is the server-side record persisted per authenticated browser.
// ID is an opaque session identifier referenced by an HttpOnly cookie; the
// access/refresh token pair lives here rather than in browser storage.
type Session struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Faculty      string    `json:"faculty"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the session belongs to a faculty admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// CanGrade reports whether the session may enter student degrees.
func (s Session) CanGrade() bool { return s.Role == RoleDoctor || s.Role == RoleAssistant }
