package httpx

import (
	"net/http"
	"strings"

	"github.com/uniportal/uni-ui-api/internal/http/validation"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// Doctors serves the doctors list page, HTMX-aware.
func (h *UIHandlers) Doctors(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[uniapi.Doctor, struct{}]{
		Handler:  h,
		W:        w,
		R:        r,
		Fetcher:  h.DoctorSvc.List,
		BasePath: "/doctors",
		PageMeta: PageMeta{
			Title:       "Uni Portal - Doctors",
			PageTitle:   "Doctors",
			CurrentPage: PageDoctors,
		},
		ItemsKey:     "Doctors",
		ErrorMessage: "Unable to load doctors.",
	})
}

func (h *UIHandlers) renderDoctorForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	data, _ = prepareFormFrame(FormFrameOpts{
		R:           r,
		Data:        data,
		DefaultMode: FormModeCreate,
		MetaForMode: func(mode FormMode) PageMeta {
			if mode == FormModeEdit {
				return PageMeta{
					Title:       "Uni Portal - Edit Doctor",
					PageTitle:   "Edit Doctor",
					CurrentPage: PageDoctorForm,
				}
			}
			return PageMeta{Title: "Uni Portal - New Doctor", PageTitle: "New Doctor", CurrentPage: PageDoctorForm}
		},
	})
	h.addCourseOptions(r, data)
	h.renderDashboardPage(w, r, data)
}

// addCourseOptions loads the faculty's courses for the assignment selector.
// Failure to load is not fatal; the form renders without the selector.
func (h *UIHandlers) addCourseOptions(r *http.Request, data map[string]any) {
	if _, ok := data["CourseOptions"]; ok {
		return
	}
	courses, err := h.CourseSvc.List(r.Context(), courseFilterAll())
	if err != nil {
		h.logger().WarnContext(r.Context(), "course options unavailable", "error", err)
		return
	}
	data["CourseOptions"] = courses
}

// DoctorNew renders the create form.
func (h *UIHandlers) DoctorNew(w http.ResponseWriter, r *http.Request) {
	h.renderDoctorForm(w, r, map[string]any{"Mode": "create"})
}

// DoctorEdit renders the edit form for an existing doctor.
func (h *UIHandlers) DoctorEdit(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("id")
	if email == "" {
		h.NotFound(w, r)
		return
	}
	rec, err := h.DoctorSvc.Get(r.Context(), email)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	h.renderDoctorForm(w, r, map[string]any{
		"Mode":            "edit",
		"Doctor":          rec,
		"SelectedCourses": selectedCourseIDs(rec.Courses),
	})
}

// parseCourseRefs converts the multi-select course_ids values into refs.
func parseCourseRefs(values []string) uniapi.ValueList[uniapi.CourseRef] {
	var refs uniapi.ValueList[uniapi.CourseRef]
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		refs = append(refs, uniapi.CourseRef{CourseID: v})
	}
	return refs
}

// selectedCourseIDs flattens assigned course refs into a lookup set for templates.
func selectedCourseIDs(refs uniapi.ValueList[uniapi.CourseRef]) map[string]bool {
	out := make(map[string]bool, len(refs))
	for _, ref := range refs {
		out[ref.CourseID] = true
	}
	return out
}

// staffFormFields holds the common teaching-staff form values.
type staffFormFields struct {
	Name        string
	Email       string
	BackupEmail string
	Courses     uniapi.ValueList[uniapi.CourseRef]
	Faculty     string
}

// parseStaffForm parses and validates the fields shared by doctor and
// assistant forms.
func parseStaffForm(r *http.Request) (staffFormFields, map[string]string) {
	if err := r.ParseForm(); err != nil {
		return staffFormFields{}, map[string]string{"_form": "Invalid form submission."}
	}

	f := staffFormFields{
		Name:        strings.TrimSpace(r.Form.Get("name")),
		Email:       strings.TrimSpace(r.Form.Get("email")),
		BackupEmail: strings.TrimSpace(r.Form.Get("backup_email")),
		Courses:     parseCourseRefs(r.Form["course_ids"]),
	}
	if sess, ok := GetSessionFromContext(r.Context()); ok {
		f.Faculty = sess.Faculty
	}

	errs := validation.New().
		Validate("name", f.Name, validation.Required("Name", 255)).
		Validate("email", f.Email, validation.Email("Email")).
		Validate("backup_email", f.BackupEmail, validation.OptionalEmail("Backup email")).
		Errors()
	return f, errs
}

// parseDoctorForm parses and validates the doctor form into a doctor DTO.
func parseDoctorForm(r *http.Request) (uniapi.Doctor, map[string]string) {
	f, errs := parseStaffForm(r)
	return uniapi.Doctor{
		Name:        f.Name,
		Email:       f.Email,
		BackupEmail: f.BackupEmail,
		Role:        "Doctor",
		Faculty:     f.Faculty,
		Courses:     f.Courses,
	}, errs
}

// renderDoctorFormWithData adapts generic form handler data to the doctor form renderer.
func (h *UIHandlers) renderDoctorFormWithData(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if formData, ok := data["FormData"].(uniapi.Doctor); ok {
		data["Doctor"] = formData
		data["SelectedCourses"] = selectedCourseIDs(formData.Courses)
	}
	h.renderDoctorForm(w, r, data)
}

// DoctorCreate handles POST from the create form.
func (h *UIHandlers) DoctorCreate(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[uniapi.Doctor]{
		W:          w,
		R:          r,
		Mode:       FormModeCreate,
		Parser:     parseDoctorForm,
		Service:    h.DoctorSvc,
		Renderer:   h.renderDoctorFormWithData,
		SuccessURL: "/doctors",
		PageMeta: PageMeta{
			Title:       "Uni Portal - New Doctor",
			PageTitle:   "New Doctor",
			CurrentPage: PageDoctorForm,
		},
	})
}

// DoctorUpdate handles POST from the edit form.
func (h *UIHandlers) DoctorUpdate(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[uniapi.Doctor]{
		W:          w,
		R:          r,
		Mode:       FormModeEdit,
		Parser:     parseDoctorForm,
		Service:    h.DoctorSvc,
		Renderer:   h.renderDoctorFormWithData,
		SuccessURL: "/doctors",
		PageMeta: PageMeta{
			Title:       "Uni Portal - Edit Doctor",
			PageTitle:   "Edit Doctor",
			CurrentPage: PageDoctorForm,
		},
	})
}

// DoctorDelete removes a doctor by email.
func (h *UIHandlers) DoctorDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Delete:       h.DoctorSvc.Delete,
		RedirectPath: "/doctors",
		SuccessToast: "Doctor deleted",
	})
}
