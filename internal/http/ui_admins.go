package httpx

import (
	"net/http"
	"strings"

	"github.com/uniportal/uni-ui-api/internal/http/validation"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// Admins serves the admins list page, HTMX-aware.
func (h *UIHandlers) Admins(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[uniapi.Employee, struct{}]{
		Handler:  h,
		W:        w,
		R:        r,
		Fetcher:  h.AdminSvc.List,
		BasePath: "/admins",
		PageMeta: PageMeta{
			Title:       "Uni Portal - Admins",
			PageTitle:   "Admins",
			CurrentPage: PageAdmins,
		},
		ItemsKey:     "Admins",
		ErrorMessage: "Unable to load admins.",
	})
}

func (h *UIHandlers) renderAdminForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	data, _ = prepareFormFrame(FormFrameOpts{
		R:           r,
		Data:        data,
		DefaultMode: FormModeCreate,
		MetaForMode: func(mode FormMode) PageMeta {
			if mode == FormModeEdit {
				return PageMeta{
					Title:       "Uni Portal - Edit Admin",
					PageTitle:   "Edit Admin",
					CurrentPage: PageAdminForm,
				}
			}
			return PageMeta{Title: "Uni Portal - New Admin", PageTitle: "New Admin", CurrentPage: PageAdminForm}
		},
	})
	h.renderDashboardPage(w, r, data)
}

// AdminNew renders the create form.
func (h *UIHandlers) AdminNew(w http.ResponseWriter, r *http.Request) {
	h.renderAdminForm(w, r, map[string]any{"Mode": "create"})
}

// AdminEdit renders the edit form for an existing admin.
func (h *UIHandlers) AdminEdit(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("id")
	if email == "" {
		h.NotFound(w, r)
		return
	}
	rec, err := h.AdminSvc.Get(r.Context(), email)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	h.renderAdminForm(w, r, map[string]any{"Mode": "edit", "Admin": rec})
}

// parseAdminForm parses and validates the admin form into an employee DTO.
// The faculty is always the signed-in admin's own faculty.
func parseAdminForm(r *http.Request) (uniapi.Employee, map[string]string) {
	if err := r.ParseForm(); err != nil {
		return uniapi.Employee{}, map[string]string{"_form": "Invalid form submission."}
	}

	name := strings.TrimSpace(r.Form.Get("name"))
	email := strings.TrimSpace(r.Form.Get("email"))
	backupEmail := strings.TrimSpace(r.Form.Get("backup_email"))
	position := strings.TrimSpace(r.Form.Get("position"))

	errs := validation.New().
		Validate("name", name, validation.Required("Name", 255)).
		Validate("email", email, validation.Email("Email")).
		Validate("backup_email", backupEmail, validation.OptionalEmail("Backup email")).
		Validate("position", position, validation.Optional("Position", 255)).
		Errors()

	emp := uniapi.Employee{
		Name:        name,
		Email:       email,
		BackupEmail: backupEmail,
		Role:        "Admin",
		Position:    position,
	}
	if sess, ok := GetSessionFromContext(r.Context()); ok {
		emp.Faculty = sess.Faculty
	}
	return emp, errs
}

// renderAdminFormWithData adapts generic form handler data to the admin form renderer.
func (h *UIHandlers) renderAdminFormWithData(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if formData, ok := data["FormData"].(uniapi.Employee); ok {
		data["Admin"] = formData
	}
	h.renderAdminForm(w, r, data)
}

// AdminCreate handles POST from the create form.
func (h *UIHandlers) AdminCreate(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[uniapi.Employee]{
		W:          w,
		R:          r,
		Mode:       FormModeCreate,
		Parser:     parseAdminForm,
		Service:    h.AdminSvc,
		Renderer:   h.renderAdminFormWithData,
		SuccessURL: "/admins",
		PageMeta: PageMeta{
			Title:       "Uni Portal - New Admin",
			PageTitle:   "New Admin",
			CurrentPage: PageAdminForm,
		},
	})
}

// AdminUpdate handles POST from the edit form.
func (h *UIHandlers) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[uniapi.Employee]{
		W:          w,
		R:          r,
		Mode:       FormModeEdit,
		Parser:     parseAdminForm,
		Service:    h.AdminSvc,
		Renderer:   h.renderAdminFormWithData,
		SuccessURL: "/admins",
		PageMeta: PageMeta{
			Title:       "Uni Portal - Edit Admin",
			PageTitle:   "Edit Admin",
			CurrentPage: PageAdminForm,
		},
	})
}

// AdminDelete removes an admin by email.
func (h *UIHandlers) AdminDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Delete:       h.AdminSvc.Delete,
		RedirectPath: "/admins",
		SuccessToast: "Admin deleted",
	})
}
