package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
	"github.com/uniportal/uni-ui-api/internal/session"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// APIClientFactoryOptions groups dependencies for APIClientFactory.
type APIClientFactoryOptions struct {
	BaseURL  string
	Timeout  time.Duration
	Sessions session.Store
	Logger   *slog.Logger
}

// APIClientFactory builds university API clients. Plain clients carry no
// credentials; session clients read and rotate the token pair stored under
// one session ID.
type APIClientFactory struct {
	baseURL  string
	timeout  time.Duration
	sessions session.Store
	logger   *slog.Logger
	plain    *uniapi.Client
}

// NewAPIClientFactory constructs the factory and its shared plain client.
func NewAPIClientFactory(opts APIClientFactoryOptions) (*APIClientFactory, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	plain, err := uniapi.New(uniapi.Config{
		BaseURL: opts.BaseURL,
		Timeout: opts.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	return &APIClientFactory{
		baseURL:  opts.BaseURL,
		timeout:  opts.Timeout,
		sessions: opts.Sessions,
		logger:   logger,
		plain:    plain,
	}, nil
}

// Plain returns the unauthenticated client for login and password reset.
func (f *APIClientFactory) Plain() *uniapi.Client {
	return f.plain
}

// ForSession returns a client whose requests authenticate with the session's
// token pair and rotate it in place on refresh.
func (f *APIClientFactory) ForSession(sessionID string) (*uniapi.Client, error) {
	return uniapi.New(uniapi.Config{
		BaseURL: f.baseURL,
		Timeout: f.timeout,
		Logger:  f.logger,
		Source: &sessionTokenSource{
			store: f.sessions,
			id:    sessionID,
		},
	})
}

// FromContext returns a client bound to the session carried by the request
// context. Callers without a session get an unauthorized error, which the
// HTTP layer turns into a redirect to login.
func (f *APIClientFactory) FromContext(ctx context.Context) (*uniapi.Client, error) {
	api, _, err := f.ForCaller(ctx)
	return api, err
}

// ForCaller is FromContext plus the session itself, for operations scoped by
// the caller's claims (faculty for directory listings, email for gradebooks).
func (f *APIClientFactory) ForCaller(ctx context.Context) (*uniapi.Client, domainauth.Session, error) {
	sess, ok := domainauth.FromContext(ctx)
	if !ok {
		return nil, domainauth.Session{}, apperrors.Unauthorized("no active session")
	}
	api, err := f.ForSession(sess.ID)
	if err != nil {
		return nil, domainauth.Session{}, err
	}
	return api, sess, nil
}

// sessionTokenSource backs uniapi.TokenSource with the session store. Saving
// the whole record keeps pair rotation atomic: readers see either the old
// pair or the new one, never a mix.
type sessionTokenSource struct {
	store session.Store
	id    string
}

func (s *sessionTokenSource) Tokens(ctx context.Context) (string, string, error) {
	sess, err := s.store.Get(ctx, s.id)
	if errors.Is(err, session.ErrNotFound) {
		// No session means no tokens; the transport turns this into an
		// unauthorized result rather than an internal error.
		return "", "", nil
	}
	if err != nil {
		return "", "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "load session")
	}
	return sess.AccessToken, sess.RefreshToken, nil
}

func (s *sessionTokenSource) StoreTokens(ctx context.Context, access, refresh string) error {
	sess, err := s.store.Get(ctx, s.id)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "load session")
	}
	sess.AccessToken = access
	sess.RefreshToken = refresh
	return s.store.Save(ctx, sess)
}

// ClearTokens drops the whole session so the next page load lands on login.
func (s *sessionTokenSource) ClearTokens(ctx context.Context) error {
	return s.store.Delete(ctx, s.id)
}
