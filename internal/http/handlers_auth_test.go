package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
	"github.com/uniportal/uni-ui-api/internal/service"
	"github.com/uniportal/uni-ui-api/internal/session"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

type fakeAuthService struct {
	loginFn     func(ctx context.Context, in service.LoginInput) (domainauth.Session, error)
	getFn       func(ctx context.Context, id string) (domainauth.Session, error)
	logoutFn    func(ctx context.Context, id string) error
	sendResetFn func(ctx context.Context, email string) error
	resetFn     func(ctx context.Context, in uniapi.ResetPasswordRequest) error
}

func (f *fakeAuthService) Login(ctx context.Context, in service.LoginInput) (domainauth.Session, error) {
	if f.loginFn == nil {
		return domainauth.Session{}, apperrors.Unauthorized("")
	}
	return f.loginFn(ctx, in)
}

func (f *fakeAuthService) GetSession(ctx context.Context, id string) (domainauth.Session, error) {
	if f.getFn == nil {
		return domainauth.Session{}, session.ErrNotFound
	}
	return f.getFn(ctx, id)
}

func (f *fakeAuthService) Logout(ctx context.Context, id string) error {
	if f.logoutFn == nil {
		return nil
	}
	return f.logoutFn(ctx, id)
}

func (f *fakeAuthService) SendResetEmail(ctx context.Context, email string) error {
	if f.sendResetFn == nil {
		return nil
	}
	return f.sendResetFn(ctx, email)
}

func (f *fakeAuthService) ResetPassword(ctx context.Context, in uniapi.ResetPasswordRequest) error {
	if f.resetFn == nil {
		return nil
	}
	return f.resetFn(ctx, in)
}

func newAuthHandlers(t *testing.T, svc AuthServiceInterface) *AuthHandlers {
	t.Helper()
	return &AuthHandlers{
		Svc:        svc,
		T:          testRenderer(t),
		SessionTTL: time.Hour,
	}
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginPageRendersForm(t *testing.T) {
	t.Parallel()

	h := newAuthHandlers(t, &fakeAuthService{})
	rec := httptest.NewRecorder()
	h.LoginPage(rec, httptest.NewRequest(http.MethodGet, "/login?redirect_uri=/courses", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, role := range []string{"Admin", "Student", "Doctor", "Assistant"} {
		assert.Contains(t, body, ">"+role+"<")
	}
	assert.Contains(t, body, `name="redirect_uri" value="/courses"`)
}

func TestLoginPageListsFaculties(t *testing.T) {
	t.Parallel()

	h := newAuthHandlers(t, &fakeAuthService{})
	rec := httptest.NewRecorder()
	h.LoginPage(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<select id="faculty" name="faculty"`)
	assert.NotContains(t, body, `<input type="text" id="faculty"`, "faculty is a fixed choice, not free text")
	for _, f := range []string{"Faculty of Science", "Faculty of Information Technology", "Faculty of Design"} {
		assert.Contains(t, body, ">"+f+"<")
	}
	assert.Equal(t, 18, strings.Count(body, `<option value="Faculty`))
}

func TestLoginPageSkipsFormWhenSignedIn(t *testing.T) {
	t.Parallel()

	svc := &fakeAuthService{getFn: func(_ context.Context, id string) (domainauth.Session, error) {
		return domainauth.Session{ID: id}, nil
	}}
	h := newAuthHandlers(t, svc)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-1"})
	rec := httptest.NewRecorder()
	h.LoginPage(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLoginSetsCookieAndRedirects(t *testing.T) {
	t.Parallel()

	svc := &fakeAuthService{loginFn: func(_ context.Context, in service.LoginInput) (domainauth.Session, error) {
		assert.Equal(t, domainauth.RoleStudent, in.Role)
		return domainauth.Session{ID: "sid-9", Email: in.Email, Role: in.Role}, nil
	}}
	h := newAuthHandlers(t, svc)

	rec := httptest.NewRecorder()
	h.Login(rec, postForm("/login", url.Values{
		"faculty":      {"Engineering"},
		"email":        {"aya@uni.edu"},
		"password":     {"secret"},
		"role":         {"Student"},
		"redirect_uri": {"/grades"},
	}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/grades", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, "sid-9", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, int(time.Hour.Seconds()), cookies[0].MaxAge)
}

func TestLoginHTMXRedirect(t *testing.T) {
	t.Parallel()

	svc := &fakeAuthService{loginFn: func(context.Context, service.LoginInput) (domainauth.Session, error) {
		return domainauth.Session{ID: "sid-9"}, nil
	}}
	h := newAuthHandlers(t, svc)

	req := postForm("/login", url.Values{"email": {"aya@uni.edu"}, "password": {"x"}, "role": {"Student"}})
	req.Header.Set("Hx-Request", "true")
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Hx-Redirect"))
}

func TestLoginRejectedKeepsFormValues(t *testing.T) {
	t.Parallel()

	svc := &fakeAuthService{loginFn: func(context.Context, service.LoginInput) (domainauth.Session, error) {
		return domainauth.Session{}, apperrors.Unauthorized("")
	}}
	h := newAuthHandlers(t, svc)

	rec := httptest.NewRecorder()
	h.Login(rec, postForm("/login", url.Values{
		"faculty":  {"Faculty of Law"},
		"email":    {"aya@uni.edu"},
		"password": {"wrong"},
		"role":     {"Student"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Invalid credentials.")
	assert.Contains(t, body, `value="aya@uni.edu"`, "email stays filled in")
	assert.Contains(t, body, `value="Faculty of Law" selected`, "faculty stays selected")
	assert.NotContains(t, body, "wrong", "passwords are never echoed")
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginFieldErrorRendersUnderField(t *testing.T) {
	t.Parallel()

	svc := &fakeAuthService{loginFn: func(context.Context, service.LoginInput) (domainauth.Session, error) {
		return domainauth.Session{}, apperrors.ValidationField("role", "unknown role")
	}}
	h := newAuthHandlers(t, svc)

	rec := httptest.NewRecorder()
	h.Login(rec, postForm("/login", url.Values{"email": {"a@b.c"}, "password": {"x"}, "role": {"Registrar"}}))

	assert.Contains(t, rec.Body.String(), "unknown role")
}

func TestLogoutClearsCookie(t *testing.T) {
	t.Parallel()

	var loggedOut string
	svc := &fakeAuthService{logoutFn: func(_ context.Context, id string) error {
		loggedOut = id
		return nil
	}}
	h := newAuthHandlers(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sid-1"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, "sid-1", loggedOut)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestForgotPasswordShowsConfirmation(t *testing.T) {
	t.Parallel()

	var sentTo string
	svc := &fakeAuthService{sendResetFn: func(_ context.Context, email string) error {
		sentTo = email
		return nil
	}}
	h := newAuthHandlers(t, svc)

	rec := httptest.NewRecorder()
	h.ForgotPassword(rec, postForm("/forgot-password", url.Values{"email": {"aya@uni.edu"}}))

	assert.Equal(t, "aya@uni.edu", sentTo)
	assert.Contains(t, rec.Body.String(), "reset link")
}

func TestResetPasswordPageEmbedsToken(t *testing.T) {
	t.Parallel()

	h := newAuthHandlers(t, &fakeAuthService{})
	rec := httptest.NewRecorder()
	h.ResetPasswordPage(rec, httptest.NewRequest(http.MethodGet,
		"/reset-password?email=aya%40uni.edu&token=tok-123", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `value="tok-123"`)
	assert.Contains(t, body, `value="aya@uni.edu"`)
}

func TestResetPasswordSubmitsAndRedirects(t *testing.T) {
	t.Parallel()

	var got uniapi.ResetPasswordRequest
	svc := &fakeAuthService{resetFn: func(_ context.Context, in uniapi.ResetPasswordRequest) error {
		got = in
		return nil
	}}
	h := newAuthHandlers(t, svc)

	rec := httptest.NewRecorder()
	h.ResetPassword(rec, postForm("/reset-password", url.Values{
		"email":            {"aya@uni.edu"},
		"token":            {"tok-123"},
		"new_password":     {"NewSecret9"},
		"confirm_password": {"NewSecret9"},
	}))

	assert.Equal(t, "tok-123", got.EmailToken)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestResetPasswordFailureRerenders(t *testing.T) {
	t.Parallel()

	svc := &fakeAuthService{resetFn: func(context.Context, uniapi.ResetPasswordRequest) error {
		return apperrors.ValidationField("confirm_password", "Passwords do not match.")
	}}
	h := newAuthHandlers(t, svc)

	rec := httptest.NewRecorder()
	h.ResetPassword(rec, postForm("/reset-password", url.Values{
		"email":            {"aya@uni.edu"},
		"token":            {"tok-123"},
		"new_password":     {"one"},
		"confirm_password": {"two"},
	}))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Passwords do not match.")
	assert.Contains(t, body, `value="tok-123"`, "token survives the round trip")
}

func TestLoginErrorData(t *testing.T) {
	t.Parallel()

	fields, msg := loginErrorData(apperrors.Unauthorized(""))
	assert.Nil(t, fields)
	assert.Equal(t, "Invalid credentials.", msg)

	fields, msg = loginErrorData(apperrors.ValidationField("email", "Email is required."))
	assert.Equal(t, map[string]string{"email": "Email is required."}, fields)
	assert.Empty(t, msg)

	_, msg = loginErrorData(apperrors.Unavailable("down"))
	assert.Contains(t, msg, "temporarily unavailable")

	_, msg = loginErrorData(assert.AnError)
	assert.Equal(t, "Something went wrong. Please try again.", msg)
}
