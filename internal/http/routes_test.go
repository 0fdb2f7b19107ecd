package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
	"github.com/uniportal/uni-ui-api/internal/service"
	"github.com/uniportal/uni-ui-api/internal/session"
)

// newTestRouter wires the full router against a memory session store and an
// API client factory pointing at a dead endpoint. Routing, auth, and CSRF
// behavior are all real; only upstream calls would fail.
func newTestRouter(t *testing.T, store session.Store) http.Handler {
	t.Helper()

	clients, err := service.NewAPIClientFactory(service.APIClientFactoryOptions{
		BaseURL:  "http://127.0.0.1:1/api",
		Timeout:  time.Second,
		Sessions: store,
		Logger:   slog.Default(),
	})
	require.NoError(t, err)

	return NewRouter(RouterServices{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Sessions: store,
			API:      clients.Plain(),
		}),
		Admins:      service.NewAdminsService(clients),
		Students:    service.NewStudentsService(clients),
		Doctors:     service.NewDoctorsService(clients),
		Assistants:  service.NewAssistantsService(clients),
		Courses:     service.NewCoursesService(clients),
		Departments: service.NewDepartmentsService(clients),
		Portal: service.NewStudentPortalService(service.StudentPortalServiceOptions{
			Clients: clients,
		}),
		Grades: service.NewGradebookService(service.GradebookServiceOptions{
			Clients: clients,
		}),
		SessionTTL: time.Hour,
	})
}

func TestRouterHealthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, session.NewMemoryStore(time.Hour))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouterGuardsDirectoryPages(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, session.NewMemoryStore(time.Hour))

	for _, path := range []string{"/admins", "/students", "/courses", "/departments", "/registration", "/gradebook"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code, "path %s must require a session", path)
		assert.Contains(t, rec.Header().Get("Location"), "/login", "path %s", path)
	}
}

func TestRouterRoleSeparation(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(time.Hour)
	require.NoError(t, store.Save(context.Background(), domainauth.Session{
		ID:    "sid-student",
		Email: "aya@uni.edu",
		Role:  domainauth.RoleStudent,
	}))
	router := newTestRouter(t, store)

	// A student may not open the admin directory.
	req := httptest.NewRequest(http.MethodGet, "/admins", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-student"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Nor the gradebook.
	req = httptest.NewRequest(http.MethodGet, "/gradebook", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-student"})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouterPostsRequireCSRF(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore(time.Hour)
	require.NoError(t, store.Save(context.Background(), domainauth.Session{
		ID:   "sid-admin",
		Role: domainauth.RoleAdmin,
	}))
	router := newTestRouter(t, store)

	req := httptest.NewRequest(http.MethodPost, "/admins", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-admin"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouterUnknownPathGets404Page(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, session.NewMemoryStore(time.Hour))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/page", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestRouterLoginPageIsPublic(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, session.NewMemoryStore(time.Hour))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="password"`)

	var hasCSRF bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == CSRFCookieName {
			hasCSRF = true
		}
	}
	assert.True(t, hasCSRF, "safe requests seed the CSRF cookie")
}
