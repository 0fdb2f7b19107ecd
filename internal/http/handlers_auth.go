package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
	"github.com/uniportal/uni-ui-api/internal/service"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, in service.LoginInput) (domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
	SendResetEmail(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, in uniapi.ResetPasswordRequest) error
}

var _ AuthServiceInterface = (*service.AuthService)(nil)

// loginRoles drives the role selector on the login form.
var loginRoles = []domainauth.Role{
	domainauth.RoleAdmin,
	domainauth.RoleStudent,
	domainauth.RoleDoctor,
	domainauth.RoleAssistant,
}

// loginFaculties drives the faculty selector on the login form. The set is
// fixed by the university API.
var loginFaculties = []string{
	"Faculty of Science",
	"Faculty of Computer Science",
	"Faculty of Arts",
	"Faculty of Engineering",
	"Faculty of Medicine",
	"Faculty of Law",
	"Faculty of Business",
	"Faculty of Education",
	"Faculty of Agriculture",
	"Faculty of Pharmacy",
	"Faculty of Architecture",
	"Faculty of Information Technology",
	"Faculty of Nursing",
	"Faculty of Social Sciences",
	"Faculty of Psychology",
	"Faculty of Linguistics",
	"Faculty of Music",
	"Faculty of Design",
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	T            *TemplateRenderer
	CookieDomain string
	SessionTTL   time.Duration
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage renders the login form.
// GET /login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already signed in: skip the form
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if _, sessErr := h.Svc.GetSession(r.Context(), c.Value); sessErr == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	h.renderLogin(w, r, loginFormState{
		RedirectURI: safeRedirectPath(r.URL.Query().Get("redirect_uri")),
	})
}

// Login processes a credential login.
// POST /login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	state := loginFormState{
		Faculty:     strings.TrimSpace(r.PostFormValue("faculty")),
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Role:        r.PostFormValue("role"),
		RedirectURI: safeRedirectPath(r.PostFormValue("redirect_uri")),
	}

	sess, err := h.Svc.Login(r.Context(), service.LoginInput{
		Faculty:  state.Faculty,
		Email:    state.Email,
		Password: r.PostFormValue("password"),
		Role:     domainauth.Role(state.Role),
	})
	if err != nil {
		h.logger().WarnContext(r.Context(), "login rejected", "email", state.Email, "error", err)
		state.FieldErrors, state.Error = loginErrorData(err)
		h.renderLogin(w, r, state)
		return
	}

	h.setSessionCookie(w, r, sess.ID)
	redirectAfterAuth(w, r, state.RedirectURI)
}

// Logout drops the server-side session and clears the cookie.
// POST /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), c.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}
	h.clearCookie(w, r, SessionCookieName)
	redirectAfterAuth(w, r, "/login")
}

// ForgotPasswordPage renders the reset-request form.
// GET /forgot-password.
func (h *AuthHandlers) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, forgotPasswordMeta(), map[string]any{})
}

// ForgotPassword asks the university API to mail a reset token.
// POST /forgot-password.
func (h *AuthHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))

	data := map[string]any{"Email": email}
	if err := h.Svc.SendResetEmail(r.Context(), email); err != nil {
		fieldErrors, general := loginErrorData(err)
		if general == "" {
			general = errMsgFixBelow
		}
		data["Errors"] = fieldErrors
		data["Error"] = true
		data["ErrorMessage"] = general
	} else {
		data["EmailSent"] = true
	}
	h.renderAuthPage(w, r, forgotPasswordMeta(), data)
}

// ResetPasswordPage renders the choose-a-new-password form. The email and
// token arrive as query parameters from the link in the reset mail.
// GET /reset-password?email=<email>&token=<token>.
func (h *AuthHandlers) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.renderAuthPage(w, r, resetPasswordMeta(), map[string]any{
		"Email":      q.Get("email"),
		"EmailToken": q.Get("token"),
	})
}

// ResetPassword submits the new password to the university API.
// POST /reset-password.
func (h *AuthHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	req := uniapi.ResetPasswordRequest{
		Email:           strings.TrimSpace(r.PostFormValue("email")),
		EmailToken:      r.PostFormValue("token"),
		NewPassword:     r.PostFormValue("new_password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if err := h.Svc.ResetPassword(r.Context(), req); err != nil {
		fieldErrors, general := loginErrorData(err)
		if general == "" {
			general = errMsgFixBelow
		}
		h.renderAuthPage(w, r, resetPasswordMeta(), map[string]any{
			"Email":        req.Email,
			"EmailToken":   req.EmailToken,
			"Errors":       fieldErrors,
			"Error":        true,
			"ErrorMessage": general,
		})
		return
	}

	redirectAfterAuth(w, r, "/login")
}

// loginFormState carries sticky form values and errors across a failed login.
type loginFormState struct {
	Faculty     string
	Email       string
	Role        string
	RedirectURI string
	Error       string
	FieldErrors map[string]string
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, r *http.Request, state loginFormState) {
	data := basePageData(r, PageMeta{
		Title:       "Uni Portal - Sign In",
		PageTitle:   "Sign In",
		CurrentPage: PageLogin,
	})
	data["Roles"] = loginRoles
	data["Faculties"] = loginFaculties
	data["Faculty"] = state.Faculty
	data["Email"] = state.Email
	data["Role"] = state.Role
	data["RedirectURI"] = state.RedirectURI
	if state.Error != "" {
		data["Error"] = true
		data["ErrorMessage"] = state.Error
	}
	if len(state.FieldErrors) > 0 {
		data["Errors"] = state.FieldErrors
	}
	h.renderPage(w, r, data)
}

func (h *AuthHandlers) renderAuthPage(w http.ResponseWriter, r *http.Request, meta PageMeta, extra map[string]any) {
	data := basePageData(r, meta)
	for k, v := range extra {
		data[k] = v
	}
	h.renderPage(w, r, data)
}

func (h *AuthHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	var err error
	if WantsPartial(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = h.T.RenderPartial(w, r, data)
	} else {
		err = h.T.RenderFull(w, r, data)
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func forgotPasswordMeta() PageMeta {
	return PageMeta{
		Title:       "Uni Portal - Forgot Password",
		PageTitle:   "Forgot Password",
		CurrentPage: PageForgotPassword,
	}
}

func resetPasswordMeta() PageMeta {
	return PageMeta{
		Title:       "Uni Portal - Reset Password",
		PageTitle:   "Reset Password",
		CurrentPage: PageResetPassword,
	}
}

// loginErrorData maps a service error onto field errors and a banner message.
func loginErrorData(err error) (map[string]string, string) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return nil, "Something went wrong. Please try again."
	}

	switch appErr.Code {
	case apperrors.ErrCodeValidation:
		if appErr.Field != "" {
			return map[string]string{appErr.Field: appErr.Message}, ""
		}
		return nil, appErr.Message
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeForbidden:
		msg := appErr.Message
		if msg == "" {
			msg = "Invalid credentials."
		}
		return nil, msg
	case apperrors.ErrCodeUnavailable:
		return nil, "The university service is temporarily unavailable. Please try again."
	default:
		return nil, "Something went wrong. Please try again."
	}
}

// redirectAfterAuth sends the browser to target, using the HTMX redirect
// header for HTMX-initiated requests.
func redirectAfterAuth(w http.ResponseWriter, r *http.Request, target string) {
	target = safeRedirectPath(target)
	if target == "" {
		target = "/"
	}
	if IsHTMX(r) {
		HTMX(w).Redirect(target)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	maxAge := int(h.SessionTTL.Seconds())
	if maxAge <= 0 {
		maxAge = int((12 * time.Hour).Seconds())
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isForwardedHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// clearCookie mirrors the attributes used when setting cookies so browsers
// reliably drop them.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isForwardedHTTPS(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}
