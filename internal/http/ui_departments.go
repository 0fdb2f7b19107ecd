package httpx

import (
	"net/http"
	"strings"

	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
	"github.com/uniportal/uni-ui-api/internal/http/validation"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// Departments serves the departments list page, HTMX-aware.
func (h *UIHandlers) Departments(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[uniapi.Department, struct{}]{
		Handler:  h,
		W:        w,
		R:        r,
		Fetcher:  h.DepartmentSvc.List,
		BasePath: "/departments",
		PageMeta: PageMeta{
			Title:       "Uni Portal - Departments",
			PageTitle:   "Departments",
			CurrentPage: PageDepartments,
		},
		ItemsKey:     "Departments",
		ErrorMessage: "Unable to load departments.",
	})
}

func (h *UIHandlers) renderDepartmentForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	data, _ = prepareFormFrame(FormFrameOpts{
		R:           r,
		Data:        data,
		DefaultMode: FormModeCreate,
		MetaForMode: func(mode FormMode) PageMeta {
			if mode == FormModeEdit {
				return PageMeta{
					Title:       "Uni Portal - Edit Department",
					PageTitle:   "Edit Department",
					CurrentPage: PageDepartmentForm,
				}
			}
			return PageMeta{Title: "Uni Portal - New Department", PageTitle: "New Department", CurrentPage: PageDepartmentForm}
		},
	})
	h.renderDashboardPage(w, r, data)
}

// DepartmentNew renders the create form.
func (h *UIHandlers) DepartmentNew(w http.ResponseWriter, r *http.Request) {
	h.renderDepartmentForm(w, r, map[string]any{"Mode": "create"})
}

// departmentRefFromRequest builds the lookup DTO the API expects. The
// department name rides along as a query parameter since lookups take the
// whole record.
func departmentRefFromRequest(r *http.Request) uniapi.Department {
	ref := uniapi.Department{
		DepartmentID: r.PathValue("id"),
		Name:         strings.TrimSpace(r.URL.Query().Get("name")),
	}
	if ref.Name == "" {
		ref.Name = strings.TrimSpace(r.FormValue("name"))
	}
	if sess, ok := GetSessionFromContext(r.Context()); ok {
		ref.Faculty = sess.Faculty
	}
	return ref
}

// DepartmentEdit renders the edit form for an existing department.
func (h *UIHandlers) DepartmentEdit(w http.ResponseWriter, r *http.Request) {
	ref := departmentRefFromRequest(r)
	if ref.DepartmentID == "" {
		h.NotFound(w, r)
		return
	}
	rec, err := h.DepartmentSvc.Get(r.Context(), ref)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	h.renderDepartmentForm(w, r, map[string]any{"Mode": "edit", "Department": rec})
}

// parseDepartmentForm parses and validates the department form into a DTO.
func parseDepartmentForm(r *http.Request) (uniapi.Department, map[string]string) {
	if err := r.ParseForm(); err != nil {
		return uniapi.Department{}, map[string]string{"_form": "Invalid form submission."}
	}

	departmentID := strings.TrimSpace(r.Form.Get("department_id"))
	name := strings.TrimSpace(r.Form.Get("name"))

	errs := validation.New().
		Validate("department_id", departmentID, validation.Required("Department ID", 64)).
		Validate("name", name, validation.Required("Name", 255)).
		Errors()

	dep := uniapi.Department{
		DepartmentID: departmentID,
		Name:         name,
	}
	if sess, ok := GetSessionFromContext(r.Context()); ok {
		dep.Faculty = sess.Faculty
	}
	return dep, errs
}

// renderDepartmentFormWithData adapts generic form handler data to the department form renderer.
func (h *UIHandlers) renderDepartmentFormWithData(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if formData, ok := data["FormData"].(uniapi.Department); ok {
		data["Department"] = formData
	}
	h.renderDepartmentForm(w, r, data)
}

// DepartmentCreate handles POST from the create form.
func (h *UIHandlers) DepartmentCreate(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[uniapi.Department]{
		W:          w,
		R:          r,
		Mode:       FormModeCreate,
		Parser:     parseDepartmentForm,
		Service:    h.DepartmentSvc,
		Renderer:   h.renderDepartmentFormWithData,
		SuccessURL: "/departments",
		PageMeta: PageMeta{
			Title:       "Uni Portal - New Department",
			PageTitle:   "New Department",
			CurrentPage: PageDepartmentForm,
		},
	})
}

// DepartmentUpdate handles POST from the edit form.
func (h *UIHandlers) DepartmentUpdate(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[uniapi.Department]{
		W:          w,
		R:          r,
		Mode:       FormModeEdit,
		Parser:     parseDepartmentForm,
		Service:    h.DepartmentSvc,
		Renderer:   h.renderDepartmentFormWithData,
		SuccessURL: "/departments",
		PageMeta: PageMeta{
			Title:       "Uni Portal - Edit Department",
			PageTitle:   "Edit Department",
			CurrentPage: PageDepartmentForm,
		},
	})
}

// DepartmentDelete removes a department. The API deletes by full record, not
// by ID alone, so this does not go through the shared delete helper.
func (h *UIHandlers) DepartmentDelete(w http.ResponseWriter, r *http.Request) {
	ref := departmentRefFromRequest(r)
	if ref.DepartmentID == "" {
		h.NotFound(w, r)
		return
	}

	if err := h.DepartmentSvc.Delete(r.Context(), ref); err != nil {
		if apperrors.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		h.logger().ErrorContext(r.Context(), "delete failed",
			"path", r.URL.Path, "error", err)
		http.Error(w, "Unable to delete. Please try again.", http.StatusInternalServerError)
		return
	}

	triggerToast(w, "Department deleted", "success")
	HTMX(w).Redirect("/departments")
}
