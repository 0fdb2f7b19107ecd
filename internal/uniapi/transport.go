package uniapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
)

// TokenSource supplies the token pair for outgoing requests and persists
// rotations. Implementations are safe for concurrent use.
type TokenSource interface {
	Tokens(ctx context.Context) (access, refresh string, err error)
	StoreTokens(ctx context.Context, access, refresh string) error
	ClearTokens(ctx context.Context) error
}

// Refresher exchanges a token pair for a fresh one.
type Refresher interface {
	Refresh(ctx context.Context, access, refresh string) (TokenPair, error)
}

// AuthTransport attaches the bearer token to each request and, on a 401,
// refreshes the pair and replays the request exactly once. Concurrent 401s
// share a single refresh call. The replay happens inside the same RoundTrip,
// so a second 401 surfaces to the caller rather than looping.
type AuthTransport struct {
	Base      http.RoundTripper
	Source    TokenSource
	Refresher Refresher
	Logger    *slog.Logger

	group singleflight.Group
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *AuthTransport) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	access, _, err := t.Source.Tokens(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "load tokens")
	}

	resp, err := t.send(req, access)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// The retry reuses the request, so the rejected body must be fully
	// drained and closed first.
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()

	fresh, err := t.refresh(ctx)
	if err != nil {
		return nil, err
	}

	t.logger().InfoContext(ctx, "retrying request after token refresh",
		"method", req.Method, "path", req.URL.Path)
	return t.send(req, fresh)
}

// send clones the request with the given bearer token. Cloning rewinds the
// body through GetBody, which net/http sets for all byte-backed bodies.
func (t *AuthTransport) send(req *http.Request, access string) (*http.Response, error) {
	out := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "rewind request body")
		}
		out.Body = body
	}
	if access != "" {
		out.Header.Set("Authorization", "Bearer "+access)
	}
	return t.base().RoundTrip(out)
}

// refresh rotates the token pair, coalescing concurrent callers onto one
// upstream refresh. On failure the stored pair is cleared so the session
// falls back to login.
func (t *AuthTransport) refresh(ctx context.Context) (string, error) {
	v, err, _ := t.group.Do("refresh", func() (any, error) {
		access, refresh, err := t.Source.Tokens(ctx)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "load tokens")
		}
		if refresh == "" {
			if cerr := t.Source.ClearTokens(ctx); cerr != nil {
				t.logger().ErrorContext(ctx, "clearing tokens", "error", cerr)
			}
			return nil, apperrors.Unauthorized("session expired, log in again")
		}

		pair, err := t.Refresher.Refresh(ctx, access, refresh)
		if err != nil {
			if cerr := t.Source.ClearTokens(ctx); cerr != nil {
				t.logger().ErrorContext(ctx, "clearing tokens", "error", cerr)
			}
			return nil, apperrors.Unauthorized("session expired, log in again")
		}
		if err := t.Source.StoreTokens(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "store tokens")
		}
		return pair.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
