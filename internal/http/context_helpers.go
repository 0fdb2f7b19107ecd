package httpx

import (
	"context"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
)

// Session context plumbing lives in the domain package so services can read
// it without importing HTTP code; these wrappers keep handler call sites tidy.

// SetSessionInContext returns a child context carrying the session.
func SetSessionInContext(ctx context.Context, sess domainauth.Session) context.Context {
	return domainauth.NewContext(ctx, sess)
}

// GetSessionFromContext returns the session and whether one is present.
func GetSessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	return domainauth.FromContext(ctx)
}
