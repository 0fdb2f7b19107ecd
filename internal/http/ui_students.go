package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/uniportal/uni-ui-api/internal/http/validation"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// Students serves the students list page, HTMX-aware.
func (h *UIHandlers) Students(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[uniapi.Student, struct{}]{
		Handler:  h,
		W:        w,
		R:        r,
		Fetcher:  h.StudentSvc.List,
		BasePath: "/students",
		PageMeta: PageMeta{
			Title:       "Uni Portal - Students",
			PageTitle:   "Students",
			CurrentPage: PageStudents,
		},
		ItemsKey:     "Students",
		ErrorMessage: "Unable to load students.",
	})
}

func (h *UIHandlers) renderStudentForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	data, _ = prepareFormFrame(FormFrameOpts{
		R:           r,
		Data:        data,
		DefaultMode: FormModeCreate,
		MetaForMode: func(mode FormMode) PageMeta {
			if mode == FormModeEdit {
				return PageMeta{
					Title:       "Uni Portal - Edit Student",
					PageTitle:   "Edit Student",
					CurrentPage: PageStudentForm,
				}
			}
			return PageMeta{Title: "Uni Portal - New Student", PageTitle: "New Student", CurrentPage: PageStudentForm}
		},
	})
	h.renderDashboardPage(w, r, data)
}

// StudentNew renders the create form.
func (h *UIHandlers) StudentNew(w http.ResponseWriter, r *http.Request) {
	h.renderStudentForm(w, r, map[string]any{"Mode": "create"})
}

// StudentEdit renders the edit form for an existing student.
func (h *UIHandlers) StudentEdit(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("id")
	if email == "" {
		h.NotFound(w, r)
		return
	}
	rec, err := h.StudentSvc.Get(r.Context(), email)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	h.renderStudentForm(w, r, map[string]any{"Mode": "edit", "Student": rec})
}

// parseStudentForm parses and validates the student form into a student DTO.
func parseStudentForm(r *http.Request) (uniapi.Student, map[string]string) {
	if err := r.ParseForm(); err != nil {
		return uniapi.Student{}, map[string]string{"_form": "Invalid form submission."}
	}

	studentID := strings.TrimSpace(r.Form.Get("student_id"))
	name := strings.TrimSpace(r.Form.Get("name"))
	email := strings.TrimSpace(r.Form.Get("email"))
	backupEmail := strings.TrimSpace(r.Form.Get("backup_email"))
	department := strings.TrimSpace(r.Form.Get("department"))
	semesterStr := strings.TrimSpace(r.Form.Get("current_semester"))

	errs := validation.New().
		Validate("student_id", studentID, validation.Required("Student ID", 64)).
		Validate("name", name, validation.Required("Name", 255)).
		Validate("email", email, validation.Email("Email")).
		Validate("backup_email", backupEmail, validation.OptionalEmail("Backup email")).
		Validate("department", department, validation.Optional("Department", 255)).
		Validate("current_semester", semesterStr, validation.IntRange("Current semester", 1, 14)).
		Errors()

	semester, _ := strconv.Atoi(semesterStr)
	st := uniapi.Student{
		StudentID:       studentID,
		Name:            name,
		Email:           email,
		BackupEmail:     backupEmail,
		Role:            "Student",
		Department:      department,
		CurrentSemester: semester,
	}
	if sess, ok := GetSessionFromContext(r.Context()); ok {
		st.Faculty = sess.Faculty
	}
	return st, errs
}

// renderStudentFormWithData adapts generic form handler data to the student form renderer.
func (h *UIHandlers) renderStudentFormWithData(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if formData, ok := data["FormData"].(uniapi.Student); ok {
		data["Student"] = formData
	}
	h.renderStudentForm(w, r, data)
}

// StudentCreate handles POST from the create form.
func (h *UIHandlers) StudentCreate(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[uniapi.Student]{
		W:          w,
		R:          r,
		Mode:       FormModeCreate,
		Parser:     parseStudentForm,
		Service:    h.StudentSvc,
		Renderer:   h.renderStudentFormWithData,
		SuccessURL: "/students",
		PageMeta: PageMeta{
			Title:       "Uni Portal - New Student",
			PageTitle:   "New Student",
			CurrentPage: PageStudentForm,
		},
	})
}

// StudentUpdate handles POST from the edit form.
func (h *UIHandlers) StudentUpdate(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[uniapi.Student]{
		W:          w,
		R:          r,
		Mode:       FormModeEdit,
		Parser:     parseStudentForm,
		Service:    h.StudentSvc,
		Renderer:   h.renderStudentFormWithData,
		SuccessURL: "/students",
		PageMeta: PageMeta{
			Title:       "Uni Portal - Edit Student",
			PageTitle:   "Edit Student",
			CurrentPage: PageStudentForm,
		},
	})
}

// StudentDelete removes a student by email.
func (h *UIHandlers) StudentDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Delete:       h.StudentSvc.Delete,
		RedirectPath: "/students",
		SuccessToast: "Student deleted",
	})
}
