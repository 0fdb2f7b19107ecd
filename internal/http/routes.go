package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	uniportal "github.com/uniportal/uni-ui-api"
	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
	"github.com/uniportal/uni-ui-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth        *service.AuthService
	Admins      *service.AdminsService
	Students    *service.StudentsService
	Doctors     *service.DoctorsService
	Assistants  *service.AssistantsService
	Courses     *service.CoursesService
	Departments *service.DepartmentsService
	Portal      *service.StudentPortalService
	Grades      *service.GradebookService

	CookieDomain string
	SessionTTL   time.Duration
	IsDev        bool         // Development mode flag for template hot reloading
	Logger       *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	tr := setupRenderer(services)
	uiHandlers := &UIHandlers{
		T:             tr,
		AdminSvc:      services.Admins,
		StudentSvc:    services.Students,
		DoctorSvc:     services.Doctors,
		AssistantSvc:  services.Assistants,
		CourseSvc:     services.Courses,
		DepartmentSvc: services.Departments,
		PortalSvc:     services.Portal,
		GradeSvc:      services.Grades,
		Logger:        services.Logger,
	}
	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		T:            tr,
		CookieDomain: services.CookieDomain,
		SessionTTL:   services.SessionTTL,
		Logger:       services.Logger,
	}

	cfg := uiRouteConfig{
		Auth:         services.Auth,
		CookieDomain: services.CookieDomain,
	}

	registerAuthRoutes(mux, authHandlers, cfg)
	registerUIRoutes(mux, uiHandlers, cfg)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	// Static assets at /static: disk in dev mode, embedded FS otherwise
	mux.Handle("GET /static/", staticHandler(services.IsDev))

	// Outer middleware (recover, logging, compression) is applied by the
	// bootstrap layer so it can be driven by configuration.
	return notFoundWrapper(mux, uiHandlers)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// setupRenderer builds the template renderer, from disk in dev mode or from
// the embedded FS in production.
func setupRenderer(services RouterServices) *TemplateRenderer {
	var templateFS fs.FS
	if services.IsDev {
		templateFS = os.DirFS(TemplatePathFromRoot)
	} else {
		sub, err := fs.Sub(uniportal.TemplateFS, "frontend/templates")
		if err != nil {
			templateFS = os.DirFS(TemplatePathFromRoot)
		} else {
			templateFS = sub
		}
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		Logger:     services.Logger,
	})
	if err != nil {
		if services.Logger != nil {
			services.Logger.Error("failed to create template renderer", slog.Any("error", err))
		}
		return nil
	}
	return tr
}

// staticHandler serves /static/* assets.
func staticHandler(isDev bool) http.Handler {
	if isDev {
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	staticSub, err := fs.Sub(uniportal.StaticFS, "frontend/static")
	if err != nil {
		return http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static")))
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(staticSub)))
}

// notFoundWrapper routes unmatched paths to the styled 404 page while leaving
// static file responses untouched.
func notFoundWrapper(mux *http.ServeMux, h *UIHandlers) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, pattern := mux.Handler(r)
		if pattern == "" && !strings.HasPrefix(r.URL.Path, "/static/") && h != nil {
			h.NotFound(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

// uiRouteConfig holds configuration for UI route registration.
type uiRouteConfig struct {
	Auth         *service.AuthService
	CookieDomain string
}

// csrf returns the CSRF double-submit middleware for this deployment.
func (cfg uiRouteConfig) csrf() func(http.Handler) http.Handler {
	return CSRFProtection(cfg.CookieDomain)
}

// authWrap requires a live session and applies CSRF protection.
func (cfg uiRouteConfig) authWrap() func(http.Handler) http.Handler {
	csrf := cfg.csrf()
	auth := RequireAuth(cfg.Auth)
	return func(h http.Handler) http.Handler {
		return auth(csrf(h))
	}
}

// roleWrap requires one of the given roles and applies CSRF protection.
func (cfg uiRouteConfig) roleWrap(roles ...domainauth.Role) func(http.Handler) http.Handler {
	csrf := cfg.csrf()
	roleCheck := RequireRole(cfg.Auth, roles...)
	return func(h http.Handler) http.Handler {
		return roleCheck(csrf(h))
	}
}

// registerAuthRoutes wires the login, logout, and password reset pages.
// Login pages are public but session-aware so signed-in users skip the form.
func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, cfg uiRouteConfig) {
	csrf := cfg.csrf()
	public := func(hh http.HandlerFunc) http.Handler {
		return OptionalAuth(cfg.Auth)(csrf(hh))
	}
	mux.Handle("GET /login", public(h.LoginPage))
	mux.Handle("POST /login", public(h.Login))
	mux.Handle("POST /logout", public(h.Logout))
	mux.Handle("GET /forgot-password", public(h.ForgotPasswordPage))
	mux.Handle("POST /forgot-password", public(h.ForgotPassword))
	mux.Handle("GET /reset-password", public(h.ResetPasswordPage))
	mux.Handle("POST /reset-password", public(h.ResetPassword))
}

// registerUIRoutes delegates to per-domain UI route registration functions.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	registerDashboardRoutes(mux, h, cfg)
	registerDirectoryRoutes(mux, h, cfg)
	registerStudentRoutes(mux, h, cfg)
	registerGradebookRoutes(mux, h, cfg)
}

func registerDashboardRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.authWrap()
	mux.Handle("GET /{$}", wrap(http.HandlerFunc(h.Index)))
	mux.Handle("GET /dashboard", wrap(http.HandlerFunc(h.Index)))
}

// registerDirectoryRoutes wires the faculty-admin CRUD screens.
func registerDirectoryRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrapAdmin := cfg.roleWrap(domainauth.RoleAdmin)

	registerCRUD(mux, crudRoutes{
		Base:   "/admins",
		List:   h.Admins,
		New:    h.AdminNew,
		Edit:   h.AdminEdit,
		Create: h.AdminCreate,
		Update: h.AdminUpdate,
		Delete: h.AdminDelete,
		Wrap:   wrapAdmin,
	})
	registerCRUD(mux, crudRoutes{
		Base:   "/students",
		List:   h.Students,
		New:    h.StudentNew,
		Edit:   h.StudentEdit,
		Create: h.StudentCreate,
		Update: h.StudentUpdate,
		Delete: h.StudentDelete,
		Wrap:   wrapAdmin,
	})
	registerCRUD(mux, crudRoutes{
		Base:   "/doctors",
		List:   h.Doctors,
		New:    h.DoctorNew,
		Edit:   h.DoctorEdit,
		Create: h.DoctorCreate,
		Update: h.DoctorUpdate,
		Delete: h.DoctorDelete,
		Wrap:   wrapAdmin,
	})
	registerCRUD(mux, crudRoutes{
		Base:   "/assistants",
		List:   h.Assistants,
		New:    h.AssistantNew,
		Edit:   h.AssistantEdit,
		Create: h.AssistantCreate,
		Update: h.AssistantUpdate,
		Delete: h.AssistantDelete,
		Wrap:   wrapAdmin,
	})
	registerCRUD(mux, crudRoutes{
		Base:   "/courses",
		List:   h.Courses,
		New:    h.CourseNew,
		Edit:   h.CourseEdit,
		Create: h.CourseCreate,
		Update: h.CourseUpdate,
		Delete: h.CourseDelete,
		Wrap:   wrapAdmin,
	})
	registerCRUD(mux, crudRoutes{
		Base:   "/departments",
		List:   h.Departments,
		New:    h.DepartmentNew,
		Edit:   h.DepartmentEdit,
		Create: h.DepartmentCreate,
		Update: h.DepartmentUpdate,
		Delete: h.DepartmentDelete,
		Wrap:   wrapAdmin,
	})
}

// registerStudentRoutes wires the student-only pages.
func registerStudentRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.roleWrap(domainauth.RoleStudent)
	mux.Handle("GET /registration", wrap(http.HandlerFunc(h.Registration)))
	mux.Handle("POST /registration", wrap(http.HandlerFunc(h.RegistrationSubmit)))
	mux.Handle("GET /grades", wrap(http.HandlerFunc(h.Grades)))
}

// registerGradebookRoutes wires the teaching-staff pages.
func registerGradebookRoutes(mux *http.ServeMux, h *UIHandlers, cfg uiRouteConfig) {
	wrap := cfg.roleWrap(domainauth.RoleDoctor, domainauth.RoleAssistant)
	mux.Handle("GET /gradebook", wrap(http.HandlerFunc(h.Gradebook)))
	mux.Handle("GET /gradebook/{id}", wrap(http.HandlerFunc(h.GradebookCourse)))
	mux.Handle("GET /gradebook/{id}/students/{email}/edit", wrap(http.HandlerFunc(h.DegreeEdit)))
	mux.Handle("POST /gradebook/{id}/students/{email}", wrap(http.HandlerFunc(h.DegreeUpdate)))
}

// crudRoutes registers the standard list/new/edit/create/update/delete routes
// for a directory resource.
type crudRoutes struct {
	Base   string
	List   http.HandlerFunc
	New    http.HandlerFunc
	Edit   http.HandlerFunc
	Create http.HandlerFunc
	Update http.HandlerFunc
	Delete http.HandlerFunc
	Wrap   func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.List == nil || cfg.New == nil || cfg.Edit == nil ||
		cfg.Create == nil || cfg.Update == nil || cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Wrap != nil {
			return cfg.Wrap(h)
		}
		return h
	}
	mux.Handle("GET "+cfg.Base, wrap(cfg.List))
	mux.Handle("GET "+cfg.Base+"/new", wrap(cfg.New))
	mux.Handle("GET "+cfg.Base+"/{id}/edit", wrap(cfg.Edit))
	mux.Handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.Handle("POST "+cfg.Base+"/{id}", wrap(cfg.Update))
	mux.Handle("POST "+cfg.Base+"/{id}/delete", wrap(cfg.Delete))
}
