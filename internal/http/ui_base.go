package httpx

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
	"github.com/uniportal/uni-ui-api/internal/service"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

const errMsgFixBelow = "Please fix the errors below."

// AdminsDirectory is a minimal interface for the admins UI.
type AdminsDirectory interface {
	Create(ctx context.Context, req uniapi.Employee) (any, error)
	Update(ctx context.Context, id string, req uniapi.Employee) (any, error)
	Get(ctx context.Context, email string) (uniapi.Employee, error)
	List(ctx context.Context) ([]uniapi.Employee, error)
	Delete(ctx context.Context, email string) error
}

// StudentsDirectory is a minimal interface for the students UI.
type StudentsDirectory interface {
	Create(ctx context.Context, req uniapi.Student) (any, error)
	Update(ctx context.Context, id string, req uniapi.Student) (any, error)
	Get(ctx context.Context, email string) (uniapi.Student, error)
	List(ctx context.Context) ([]uniapi.Student, error)
	Delete(ctx context.Context, email string) error
}

// DoctorsDirectory is a minimal interface for the doctors UI.
type DoctorsDirectory interface {
	Create(ctx context.Context, req uniapi.Doctor) (any, error)
	Update(ctx context.Context, id string, req uniapi.Doctor) (any, error)
	Get(ctx context.Context, email string) (uniapi.Doctor, error)
	List(ctx context.Context) ([]uniapi.Doctor, error)
	Delete(ctx context.Context, email string) error
}

// AssistantsDirectory is a minimal interface for the assistants UI.
type AssistantsDirectory interface {
	Create(ctx context.Context, req uniapi.Assistant) (any, error)
	Update(ctx context.Context, id string, req uniapi.Assistant) (any, error)
	Get(ctx context.Context, email string) (uniapi.Assistant, error)
	List(ctx context.Context) ([]uniapi.Assistant, error)
	Delete(ctx context.Context, email string) error
}

// CoursesDirectory is a minimal interface for the courses UI.
type CoursesDirectory interface {
	Create(ctx context.Context, req uniapi.Course) (any, error)
	Update(ctx context.Context, id string, req uniapi.Course) (any, error)
	Get(ctx context.Context, courseID string) (uniapi.Course, error)
	List(ctx context.Context, filter service.CourseFilter) ([]uniapi.Course, error)
	Delete(ctx context.Context, courseID string) error
}

// DepartmentsDirectory is a minimal interface for the departments UI.
type DepartmentsDirectory interface {
	Create(ctx context.Context, req uniapi.Department) (any, error)
	Update(ctx context.Context, id string, req uniapi.Department) (any, error)
	Get(ctx context.Context, ref uniapi.Department) (uniapi.Department, error)
	List(ctx context.Context) ([]uniapi.Department, error)
	Delete(ctx context.Context, ref uniapi.Department) error
}

// StudentPortal is a minimal interface for the student area.
type StudentPortal interface {
	Profile(ctx context.Context) (uniapi.Student, error)
	AvailableCourses(ctx context.Context) ([]uniapi.Course, error)
	Register(ctx context.Context, courseIDs []string) error
	Degrees(ctx context.Context, semester int) ([]uniapi.StudentDegree, error)
	GPA(ctx context.Context, semester int) (float64, error)
	CGPA(ctx context.Context) (float64, error)
}

// Gradebook is a minimal interface for the teaching-staff area.
type Gradebook interface {
	Courses(ctx context.Context) ([]uniapi.Course, error)
	CourseStudents(ctx context.Context, courseID string) ([]uniapi.Student, error)
	StudentDegrees(ctx context.Context, courseID string) ([]uniapi.StudentDegree, error)
	UpdateDegrees(ctx context.Context, courseID string, in uniapi.DegreeUpdate) error
}

// Compile-time assertions that the concrete services satisfy their UI interfaces.
var (
	_ AdminsDirectory      = (*service.AdminsService)(nil)
	_ StudentsDirectory    = (*service.StudentsService)(nil)
	_ DoctorsDirectory     = (*service.DoctorsService)(nil)
	_ AssistantsDirectory  = (*service.AssistantsService)(nil)
	_ CoursesDirectory     = (*service.CoursesService)(nil)
	_ DepartmentsDirectory = (*service.DepartmentsService)(nil)
	_ StudentPortal        = (*service.StudentPortalService)(nil)
	_ Gradebook            = (*service.GradebookService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T             *TemplateRenderer
	AdminSvc      AdminsDirectory
	StudentSvc    StudentsDirectory
	DoctorSvc     DoctorsDirectory
	AssistantSvc  AssistantsDirectory
	CourseSvc     CoursesDirectory
	DepartmentSvc DepartmentsDirectory
	PortalSvc     StudentPortal
	GradeSvc      Gradebook
	Logger        *slog.Logger
}

func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// getPageParams parses pagination params from URL query with sane defaults.
func getPageParams(q url.Values) (int, int) {
	page := 1
	pageSize := 10
	if p := q.Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}
	if s := q.Get("page_size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			pageSize = n
		}
	}
	return page, pageSize
}

// pageOpts represents pagination options for list views.
type pageOpts struct {
	Page     int
	PageSize int
}

// pageSlice cuts one page out of a fully fetched list. The API has no
// limit/offset parameters, so pagination happens here.
func pageSlice[T any](items []T, p pageOpts) ([]T, PaginationData) {
	page := p.Page
	if page <= 0 {
		page = 1
	}
	size := p.PageSize
	if size <= 0 {
		size = 10
	}

	total := len(items)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	window := items[start:end]
	pg := PaginationData{
		Page:       page,
		PageSize:   size,
		HasPrev:    page > 1,
		HasNext:    end < total,
		TotalCount: total,
	}
	if len(window) > 0 {
		pg.StartIndex = start + 1
		pg.EndIndex = end
	}
	return window, pg
}

// deleteHandlerOpts encapsulates common delete-handling behavior.
type deleteHandlerOpts struct {
	Delete       func(ctx context.Context, id string) error
	RedirectPath string
	SuccessToast string
}

// handleDelete coordinates delete flows shared across UI handlers. Deletes
// are posted by htmx, so success answers with an HX-Redirect.
func (h *UIHandlers) handleDelete(w http.ResponseWriter, r *http.Request, opts deleteHandlerOpts) {
	id := r.PathValue("id")
	if id == "" {
		h.NotFound(w, r)
		return
	}

	if err := opts.Delete(r.Context(), id); err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.logger().ErrorContext(r.Context(), "delete failed",
			"path", r.URL.Path, "error", err)
		http.Error(w, "Unable to delete. Please try again.", http.StatusInternalServerError)
		return
	}

	if opts.SuccessToast != "" {
		triggerToast(w, opts.SuccessToast, "success")
	}
	HTMX(w).Redirect(opts.RedirectPath)
}

// triggerToast sends a standardized HX-Trigger payload for toast notifications.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if w == nil || strings.TrimSpace(message) == "" {
		return
	}
	HTMX(w).Trigger("showToast", map[string]any{
		"message": message,
		"type":    strings.TrimSpace(toastType),
	})
}

// FormFrameOpts captures the parameters required to normalize common form data.
type FormFrameOpts struct {
	R           *http.Request
	Data        map[string]any
	DefaultMode FormMode
	MetaForMode func(FormMode) PageMeta
}

// prepareFormFrame normalizes common form rendering fields (Errors, Mode,
// base layout) and returns the hydrated data map plus the resolved mode.
func prepareFormFrame(opts FormFrameOpts) (map[string]any, FormMode) {
	data := opts.Data
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Errors"]; !ok || data["Errors"] == nil {
		data["Errors"] = map[string]string{}
	}

	mode := resolveFormMode(data["Mode"], opts.DefaultMode)
	data["Mode"] = string(mode)

	if opts.MetaForMode != nil && opts.R != nil {
		maps.Copy(data, basePageData(opts.R, opts.MetaForMode(mode)))
	}

	return data, mode
}

// resolveFormMode coerces assorted Mode representations to a FormMode value.
func resolveFormMode(raw any, fallback FormMode) FormMode {
	switch v := raw.(type) {
	case FormMode:
		if v != "" {
			return v
		}
	case string:
		if candidate := FormMode(strings.TrimSpace(v)); candidate != "" {
			return candidate
		}
	}
	return fallback
}

// renderDashboardPage renders a page with proper htmx partial support.
func (h *UIHandlers) renderDashboardPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})
	if err := h.T.RenderPartial(w, r, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// NotFound renders the styled 404 page.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	data := basePageData(r, PageMeta{
		Title:       "Uni Portal - Not Found",
		PageTitle:   "Page Not Found",
		CurrentPage: PageDashboard,
	})
	data["NotFound"] = true
	w.WriteHeader(http.StatusNotFound)
	if err := h.T.renderTemplate(w, "notfound-content", data); err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}

// errorMessageFor maps service errors to user-facing copy, preferring the
// upstream message for expected cases.
func errorMessageFor(err error, fallback string) string {
	var appErr *apperrors.AppError
	switch {
	case apperrors.IsValidation(err), apperrors.IsConflict(err), apperrors.IsNotFound(err):
		if errors.As(err, &appErr) && appErr.Message != "" {
			return appErr.Message
		}
	case apperrors.IsUnavailable(err):
		return "The university service is temporarily unavailable. Please try again."
	}
	return fallback
}
