package httpx

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
	"github.com/uniportal/uni-ui-api/internal/session"
)

type fakeSessionReader struct {
	sessions map[string]domainauth.Session
}

func (f *fakeSessionReader) GetSession(_ context.Context, id string) (domainauth.Session, error) {
	if sess, ok := f.sessions[id]; ok {
		return sess, nil
	}
	return domainauth.Session{}, session.ErrNotFound
}

func readerWith(sessions ...domainauth.Session) *fakeSessionReader {
	out := &fakeSessionReader{sessions: map[string]domainauth.Session{}}
	for _, s := range sessions {
		out.sessions[s.ID] = s
	}
	return out
}

func okHandler(captured *domainauth.Session) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			if sess, ok := GetSessionFromContext(r.Context()); ok {
				*captured = sess
			}
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthRedirectsAnonymousBrowser(t *testing.T) {
	t.Parallel()

	h := RequireAuth(readerWith())(okHandler(nil))
	req := httptest.NewRequest(http.MethodGet, "/students?page=2", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fstudents%3Fpage%3D2", rec.Header().Get("Location"))
}

func TestRequireAuthRedirectsHTMXViaHeader(t *testing.T) {
	t.Parallel()

	h := RequireAuth(readerWith())(okHandler(nil))
	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	req.Header.Set("Hx-Request", "true")
	req.Header.Set("Hx-Current-Url", "http://localhost:8080/courses?semester=3")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fcourses%3Fsemester%3D3", rec.Header().Get("Hx-Redirect"))
}

func TestRequireAuthPassesSessionToContext(t *testing.T) {
	t.Parallel()

	sess := domainauth.Session{ID: "sid-1", Email: "dean@uni.edu", Role: domainauth.RoleAdmin}
	var got domainauth.Session
	h := RequireAuth(readerWith(sess))(okHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/admins", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-1"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dean@uni.edu", got.Email)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	student := domainauth.Session{ID: "sid-s", Role: domainauth.RoleStudent}
	doctor := domainauth.Session{ID: "sid-d", Role: domainauth.RoleDoctor}
	reader := readerWith(student, doctor)

	h := RequireRole(reader, domainauth.RoleDoctor, domainauth.RoleAssistant)(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/gradebook", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-s"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code, "student must not reach the gradebook")

	req = httptest.NewRequest(http.MethodGet, "/gradebook", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-d"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/gradebook", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code, "anonymous goes to login, not 403")
}

func TestOptionalAuthContinuesWithoutSession(t *testing.T) {
	t.Parallel()

	sess := domainauth.Session{ID: "sid-1", Email: "aya@uni.edu", Role: domainauth.RoleStudent}
	var got domainauth.Session
	h := OptionalAuth(readerWith(sess))(okHandler(&got))

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, got.ID)

	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-1"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "aya@uni.edu", got.Email)
}

func TestSafeRedirectPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"relative path", "/courses?semester=2", "/courses?semester=2"},
		{"absolute url keeps path only", "https://evil.example/phish?x=1", "/phish?x=1"},
		{"protocol relative rejected", "//evil.example/phish", ""},
		{"missing leading slash rejected", "courses", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, safeRedirectPath(tt.in))
		})
	}
}

func TestCompressionGzipsHTML(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("<p>hello</p>", 200)
	h := Compression(CompressionConfig{Level: gzip.BestSpeed})(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(body))
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	gz, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, body, string(plain))
	assert.Less(t, rec.Body.Len(), len(body))
}

func TestCompressionSkipsClientsWithoutGzip(t *testing.T) {
	t.Parallel()

	h := Compression(CompressionConfig{})(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<p>plain</p>"))
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "<p>plain</p>", rec.Body.String())
}

func TestCompressionLeavesNonHTMLAlone(t *testing.T) {
	t.Parallel()

	h := Compression(CompressionConfig{})(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
		}))

	req := httptest.NewRequest(http.MethodGet, "/static/logo.png", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Content-Encoding"))
}

func TestAcceptsGzip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   bool
	}{
		{"gzip", true},
		{"gzip, deflate, br", true},
		{"deflate, gzip;q=1.0", true},
		{"gzip;q=0", false},
		{"gzip;q=0.0", false},
		{"deflate", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, acceptsGzip(tt.header), "header %q", tt.header)
	}
}
