package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
	"github.com/uniportal/uni-ui-api/internal/session"
	"github.com/uniportal/uni-ui-api/internal/token"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// AuthAPI is the slice of the university API the auth service needs.
type AuthAPI interface {
	Login(ctx context.Context, in uniapi.LoginRequest) (uniapi.LoginResponse, error)
	SendResetEmail(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in uniapi.ResetPasswordRequest) error
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Sessions session.Store
	API      AuthAPI
	Logger   *slog.Logger
}

// AuthService handles login, logout and password recovery. A successful login
// exchanges credentials for a token pair, decodes the identity baked into the
// access token and persists both under a fresh session ID.
type AuthService struct {
	sessions session.Store
	api      AuthAPI
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{sessions: opts.Sessions, api: opts.API, logger: logger}
}

// LoginInput carries the login form fields.
type LoginInput struct {
	Faculty  string
	Email    string
	Password string
	Role     domainauth.Role
}

// Login authenticates against the university API and opens a session.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (domainauth.Session, error) {
	var sess domainauth.Session

	if in.Email == "" || in.Password == "" {
		return sess, apperrors.Validation("email and password are required")
	}
	if !in.Role.Valid() {
		return sess, apperrors.ValidationField("role", "unknown role")
	}

	resp, err := s.api.Login(ctx, uniapi.LoginRequest{
		FacultyName: in.Faculty,
		Email:       in.Email,
		Password:    in.Password,
		Role:        string(in.Role),
	})
	if err != nil {
		return sess, err
	}

	// The token claims are the authoritative identity; the form fields only
	// routed the login. Claims are unverified here, the API re-checks the
	// signature on every call.
	claims, err := token.Decode(resp.AccessToken)
	if err != nil {
		return sess, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode access token")
	}

	sess = domainauth.Session{
		ID:           uuid.NewString(),
		Email:        claims.Email,
		Role:         claims.Role,
		Faculty:      claims.Faculty,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		CreatedAt:    time.Now().UTC(),
	}
	if sess.Email == "" {
		sess.Email = in.Email
	}
	if !sess.Role.Valid() {
		sess.Role = in.Role
	}
	if sess.Faculty == "" {
		sess.Faculty = in.Faculty
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "save session")
	}

	s.logger.InfoContext(ctx, "user logged in",
		"email", sess.Email, "role", sess.Role, "faculty", sess.Faculty)
	return sess, nil
}

// GetSession loads the session behind a cookie value.
func (s *AuthService) GetSession(ctx context.Context, id string) (domainauth.Session, error) {
	return s.sessions.Get(ctx, id)
}

// Logout drops the session. Unknown IDs are not an error.
func (s *AuthService) Logout(ctx context.Context, id string) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "delete session")
	}
	s.logger.InfoContext(ctx, "user logged out", "session_id", id)
	return nil
}

// SendResetEmail asks the API to mail a reset token.
func (s *AuthService) SendResetEmail(ctx context.Context, email string) error {
	if email == "" {
		return apperrors.ValidationField("email", "email is required")
	}
	return s.api.SendResetEmail(ctx, email)
}

// ResetPassword completes a password reset with the emailed token.
func (s *AuthService) ResetPassword(ctx context.Context, in uniapi.ResetPasswordRequest) error {
	if in.NewPassword == "" {
		return apperrors.ValidationField("newPassword", "new password is required")
	}
	if in.NewPassword != in.ConfirmPassword {
		return apperrors.ValidationField("confirmPassword", "passwords do not match")
	}
	return s.api.ResetPassword(ctx, in)
}
