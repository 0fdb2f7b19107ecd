package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

type fakeAdminsDirectory struct {
	admins   map[string]uniapi.Employee
	created  []uniapi.Employee
	updated  map[string]uniapi.Employee
	createFn func(ctx context.Context, req uniapi.Employee) (any, error)
}

func newFakeAdmins(admins ...uniapi.Employee) *fakeAdminsDirectory {
	f := &fakeAdminsDirectory{
		admins:  map[string]uniapi.Employee{},
		updated: map[string]uniapi.Employee{},
	}
	for _, a := range admins {
		f.admins[a.Email] = a
	}
	return f
}

func (f *fakeAdminsDirectory) Create(ctx context.Context, req uniapi.Employee) (any, error) {
	if f.createFn != nil {
		return f.createFn(ctx, req)
	}
	f.created = append(f.created, req)
	return req, nil
}

func (f *fakeAdminsDirectory) Update(_ context.Context, id string, req uniapi.Employee) (any, error) {
	f.updated[id] = req
	return req, nil
}

func (f *fakeAdminsDirectory) Get(_ context.Context, email string) (uniapi.Employee, error) {
	if a, ok := f.admins[email]; ok {
		return a, nil
	}
	return uniapi.Employee{}, apperrors.NotFound("admin not found")
}

func (f *fakeAdminsDirectory) List(context.Context) ([]uniapi.Employee, error) {
	out := make([]uniapi.Employee, 0, len(f.admins))
	for _, a := range f.admins {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAdminsDirectory) Delete(_ context.Context, email string) error {
	if _, ok := f.admins[email]; !ok {
		return apperrors.NotFound("admin not found")
	}
	delete(f.admins, email)
	return nil
}

func adminUIHandlers(t *testing.T, dir AdminsDirectory) *UIHandlers {
	t.Helper()
	return &UIHandlers{T: testRenderer(t), AdminSvc: dir}
}

func withSession(r *http.Request, sess domainauth.Session) *http.Request {
	return r.WithContext(SetSessionInContext(r.Context(), sess))
}

func TestAdminNewRendersCreateForm(t *testing.T) {
	t.Parallel()

	h := adminUIHandlers(t, newFakeAdmins())
	rec := httptest.NewRecorder()
	h.AdminNew(rec, httptest.NewRequest(http.MethodGet, "/admins/new", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "New Admin")
	assert.Contains(t, body, `action="/admins"`)
}

func TestAdminEditPrefillsForm(t *testing.T) {
	t.Parallel()

	h := adminUIHandlers(t, newFakeAdmins(uniapi.Employee{
		Name:  "Ada Lovelace",
		Email: "ada@uni.edu",
		Role:  "Admin",
	}))

	req := httptest.NewRequest(http.MethodGet, "/admins/ada@uni.edu/edit", nil)
	req.SetPathValue("id", "ada@uni.edu")
	rec := httptest.NewRecorder()
	h.AdminEdit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `value="Ada Lovelace"`)
	assert.Contains(t, body, "Edit Admin")
}

func TestAdminEditUnknownEmailIs404(t *testing.T) {
	t.Parallel()

	h := adminUIHandlers(t, newFakeAdmins())
	req := httptest.NewRequest(http.MethodGet, "/admins/gone@uni.edu/edit", nil)
	req.SetPathValue("id", "gone@uni.edu")
	rec := httptest.NewRecorder()
	h.AdminEdit(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminCreateUsesSessionFaculty(t *testing.T) {
	t.Parallel()

	dir := newFakeAdmins()
	h := adminUIHandlers(t, dir)

	form := url.Values{
		"name":     {"Grace Hopper"},
		"email":    {"grace@uni.edu"},
		"position": {"Dean's office"},
	}
	req := withSession(postForm("/admins", form), domainauth.Session{
		Email:   "dean@uni.edu",
		Role:    domainauth.RoleAdmin,
		Faculty: "Engineering",
	})
	rec := httptest.NewRecorder()
	h.AdminCreate(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/admins", rec.Header().Get("Hx-Redirect"))
	require.Len(t, dir.created, 1)
	assert.Equal(t, "Engineering", dir.created[0].Faculty, "faculty comes from the session, not the form")
	assert.Equal(t, "Admin", dir.created[0].Role)
}

func TestAdminCreateInvalidEmailRerendersForm(t *testing.T) {
	t.Parallel()

	dir := newFakeAdmins()
	h := adminUIHandlers(t, dir)

	req := postForm("/admins", url.Values{"name": {"Grace"}, "email": {"not-an-email"}})
	rec := httptest.NewRecorder()
	h.AdminCreate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Enter a valid email address.")
	assert.Contains(t, body, `value="Grace"`, "form values stick")
	assert.Empty(t, dir.created)
}

func TestAdminCreateConflictShowsBanner(t *testing.T) {
	t.Parallel()

	dir := newFakeAdmins()
	dir.createFn = func(context.Context, uniapi.Employee) (any, error) {
		return nil, apperrors.Conflict("An admin with this email already exists.")
	}
	h := adminUIHandlers(t, dir)

	req := postForm("/admins", url.Values{"name": {"Grace"}, "email": {"grace@uni.edu"}})
	rec := httptest.NewRecorder()
	h.AdminCreate(rec, req)

	assert.Contains(t, rec.Body.String(), "An admin with this email already exists.")
}

func TestAdminUpdate(t *testing.T) {
	t.Parallel()

	dir := newFakeAdmins(uniapi.Employee{Name: "Ada", Email: "ada@uni.edu"})
	h := adminUIHandlers(t, dir)

	req := postForm("/admins/ada@uni.edu", url.Values{"name": {"Ada L."}, "email": {"ada@uni.edu"}})
	req.SetPathValue("id", "ada@uni.edu")
	rec := httptest.NewRecorder()
	h.AdminUpdate(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Ada L.", dir.updated["ada@uni.edu"].Name)
}

func TestAdminDelete(t *testing.T) {
	t.Parallel()

	dir := newFakeAdmins(uniapi.Employee{Name: "Ada", Email: "ada@uni.edu"})
	h := adminUIHandlers(t, dir)

	req := httptest.NewRequest(http.MethodPost, "/admins/ada@uni.edu/delete", nil)
	req.SetPathValue("id", "ada@uni.edu")
	rec := httptest.NewRecorder()
	h.AdminDelete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, dir.admins, "ada@uni.edu")
}

func TestParseCourseFilter(t *testing.T) {
	t.Parallel()

	f, err := parseCourseFilter(url.Values{
		"name":       {"  Databases "},
		"semester":   {"3"},
		"assistants": {"1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Databases", f.Name)
	assert.Equal(t, 3, f.Semester)
	assert.True(t, f.AssistantsOnly)

	_, err = parseCourseFilter(url.Values{"semester": {"zero"}})
	assert.Error(t, err)

	_, err = parseCourseFilter(url.Values{"semester": {"-2"}})
	assert.Error(t, err)

	f, err = parseCourseFilter(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, courseFilterAll(), f)
}
