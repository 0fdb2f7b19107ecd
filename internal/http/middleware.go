package httpx

import (
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
)

// SessionCookieName is the cookie referencing the server-side session record.
const SessionCookieName = "session_id"

// SessionReader resolves a session cookie value to a session record.
type SessionReader interface {
	GetSession(ctx context.Context, id string) (domainauth.Session, error)
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns a middleware that requires a live session. The check is
// presence-only: token expiry is never inspected here, the API is the
// authority and the client transport recovers from stale tokens on its own.
// Unauthenticated browsers are redirected to the login page.
func RequireAuth(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := sessionFromRequest(r, sessions)
			if !ok {
				redirectToLogin(w, r)
				return
			}
			ctx := SetSessionInContext(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole returns a middleware that requires one of the given roles on
// top of a live session. Roles are flat, there is no hierarchy.
func RequireRole(sessions SessionReader, roles ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := sessionFromRequest(r, sessions)
			if !ok {
				redirectToLogin(w, r)
				return
			}
			if !hasAnyRole(sess.Role, roles) {
				http.Error(w, "Access denied", http.StatusForbidden)
				return
			}
			ctx := SetSessionInContext(r.Context(), sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth adds the session to the context when present and continues
// either way. The login page uses it to redirect signed-in users home.
func OptionalAuth(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, ok := sessionFromRequest(r, sessions); ok {
				r = r.WithContext(SetSessionInContext(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionFromRequest(r *http.Request, sessions SessionReader) (domainauth.Session, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return domainauth.Session{}, false
	}
	sess, err := sessions.GetSession(r.Context(), cookie.Value)
	if err != nil {
		return domainauth.Session{}, false
	}
	return sess, true
}

func hasAnyRole(have domainauth.Role, want []domainauth.Role) bool {
	for _, role := range want {
		if have == role {
			return true
		}
	}
	return false
}

// redirectToLogin sends unauthenticated requests to the login page,
// preserving where they were headed.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := safeRedirectPath(r.URL.RequestURI())
	if IsHTMX(r) {
		if current := safeRedirectPath(r.Header.Get("Hx-Current-Url")); current != "" {
			target = current
		}
		SetHXRedirect(w, loginURL(target))
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, loginURL(target), http.StatusSeeOther)
}

func loginURL(redirect string) string {
	if redirect == "" || redirect == "/login" {
		return "/login"
	}
	return "/login?redirect_uri=" + url.QueryEscape(redirect)
}

// safeRedirectPath keeps redirects within the app: relative paths only.
func safeRedirectPath(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.IsAbs() || u.Host != "" {
		u = &url.URL{Path: u.Path, RawQuery: u.RawQuery}
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return ""
	}
	return u.RequestURI()
}

// CompressionConfig controls the gzip middleware.
type CompressionConfig struct {
	// Level is the gzip compression level (1-9). Out-of-range values fall
	// back to the gzip default.
	Level int
}

// Compression returns a middleware that gzips HTML responses for clients
// that accept it. Non-HTML content (static assets are pre-compressed by the
// file server's callers) passes through untouched.
func Compression(cfg CompressionConfig) func(http.Handler) http.Handler {
	level := cfg.Level
	if level < gzip.BestSpeed || level > gzip.BestCompression {
		level = gzip.DefaultCompression
	}
	pool := &sync.Pool{
		New: func() any {
			gz, _ := gzip.NewWriterLevel(io.Discard, level)
			return gz
		},
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Add("Vary", "Accept-Encoding")
			gw := &gzipResponseWriter{ResponseWriter: w, pool: pool}
			next.ServeHTTP(gw, r)
			gw.close()
		})
	}
}

func acceptsGzip(acceptEncoding string) bool {
	for _, part := range strings.Split(acceptEncoding, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		enc, q, _ := strings.Cut(part, ";")
		if strings.TrimSpace(enc) != "gzip" {
			continue
		}
		q = strings.TrimSpace(q)
		return !(q == "q=0" || strings.HasPrefix(q, "q=0.0"))
	}
	return false
}

type gzipResponseWriter struct {
	http.ResponseWriter
	pool   *sync.Pool
	gz     *gzip.Writer
	status bool
	plain  bool
}

func (w *gzipResponseWriter) WriteHeader(code int) {
	if w.status {
		return
	}
	w.status = true

	ct := w.Header().Get("Content-Type")
	switch {
	case code == http.StatusNoContent || code == http.StatusNotModified || code < 200:
		w.plain = true
	case w.Header().Get("Content-Encoding") != "":
		w.plain = true
	case !strings.HasPrefix(ct, "text/") && !strings.HasPrefix(ct, "application/json"):
		w.plain = true
	default:
		gz := w.pool.Get().(*gzip.Writer)
		gz.Reset(w.ResponseWriter)
		w.gz = gz
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.status {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}
	if w.gz != nil {
		return w.gz.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *gzipResponseWriter) close() {
	if w.gz == nil {
		return
	}
	w.gz.Close() //nolint:errcheck // client disconnects surface here
	w.pool.Put(w.gz)
}
