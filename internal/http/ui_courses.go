package httpx

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/uniportal/uni-ui-api/internal/http/validation"
	"github.com/uniportal/uni-ui-api/internal/service"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// courseFilterAll matches every course in the faculty.
func courseFilterAll() service.CourseFilter {
	return service.CourseFilter{}
}

// parseCourseFilter reads the course list filters from query parameters.
func parseCourseFilter(q url.Values) (service.CourseFilter, error) {
	f := service.CourseFilter{
		Name:           strings.TrimSpace(q.Get("name")),
		AssistantsOnly: q.Get("assistants") == "1" || q.Get("assistants") == "on",
	}
	if s := strings.TrimSpace(q.Get("semester")); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return f, errors.New("semester must be a positive number")
		}
		f.Semester = n
	}
	return f, nil
}

// Courses serves the courses list page with name/semester filters, HTMX-aware.
func (h *UIHandlers) Courses(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[uniapi.Course, service.CourseFilter]{
		Handler:         h,
		W:               w,
		R:               r,
		FilteredFetcher: h.CourseSvc.List,
		FilterParser:    parseCourseFilter,
		EnrichData: func(builder *TemplateDataBuilder, _ []uniapi.Course, f service.CourseFilter) {
			builder.With("FilterName", f.Name)
			if f.Semester > 0 {
				builder.With("FilterSemester", f.Semester)
			}
			builder.With("FilterAssistants", f.AssistantsOnly)
		},
		BasePath: "/courses",
		PageMeta: PageMeta{
			Title:       "Uni Portal - Courses",
			PageTitle:   "Courses",
			CurrentPage: PageCourses,
		},
		ItemsKey:     "Courses",
		ErrorMessage: "Unable to load courses.",
	})
}

func (h *UIHandlers) renderCourseForm(w http.ResponseWriter, r *http.Request, data map[string]any) {
	data, _ = prepareFormFrame(FormFrameOpts{
		R:           r,
		Data:        data,
		DefaultMode: FormModeCreate,
		MetaForMode: func(mode FormMode) PageMeta {
			if mode == FormModeEdit {
				return PageMeta{
					Title:       "Uni Portal - Edit Course",
					PageTitle:   "Edit Course",
					CurrentPage: PageCourseForm,
				}
			}
			return PageMeta{Title: "Uni Portal - New Course", PageTitle: "New Course", CurrentPage: PageCourseForm}
		},
	})
	h.addDepartmentOptions(r, data)
	h.renderDashboardPage(w, r, data)
}

// addDepartmentOptions loads the faculty's departments for the course form.
// Failure to load is not fatal; the form renders without the selector.
func (h *UIHandlers) addDepartmentOptions(r *http.Request, data map[string]any) {
	if _, ok := data["DepartmentOptions"]; ok {
		return
	}
	departments, err := h.DepartmentSvc.List(r.Context())
	if err != nil {
		h.logger().WarnContext(r.Context(), "department options unavailable", "error", err)
		return
	}
	data["DepartmentOptions"] = departments
}

// CourseNew renders the create form.
func (h *UIHandlers) CourseNew(w http.ResponseWriter, r *http.Request) {
	h.renderCourseForm(w, r, map[string]any{"Mode": "create"})
}

// CourseEdit renders the edit form for an existing course.
func (h *UIHandlers) CourseEdit(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("id")
	if courseID == "" {
		h.NotFound(w, r)
		return
	}
	rec, err := h.CourseSvc.Get(r.Context(), courseID)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	h.renderCourseForm(w, r, map[string]any{
		"Mode":                "edit",
		"Course":              rec,
		"SelectedDepartments": selectedDepartmentIDs(rec.Departments),
	})
}

// selectedDepartmentIDs flattens department refs into a lookup set for templates.
func selectedDepartmentIDs(refs uniapi.ValueList[uniapi.DepartmentRef]) map[string]bool {
	out := make(map[string]bool, len(refs))
	for _, ref := range refs {
		out[ref.DepartmentID] = true
	}
	return out
}

// parseDepartmentRefs converts the multi-select department_ids values into refs.
func parseDepartmentRefs(values []string) uniapi.ValueList[uniapi.DepartmentRef] {
	var refs uniapi.ValueList[uniapi.DepartmentRef]
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		refs = append(refs, uniapi.DepartmentRef{DepartmentID: v})
	}
	return refs
}

// parseCourseForm parses and validates the course form into a course DTO.
// Mark distribution consistency (components summing to the total) is checked
// by the service so the rule lives in one place.
func parseCourseForm(r *http.Request) (uniapi.Course, map[string]string) {
	if err := r.ParseForm(); err != nil {
		return uniapi.Course{}, map[string]string{"_form": "Invalid form submission."}
	}

	courseID := strings.TrimSpace(r.Form.Get("course_id"))
	name := strings.TrimSpace(r.Form.Get("name"))
	creditHoursStr := strings.TrimSpace(r.Form.Get("credit_hours"))
	semesterStr := strings.TrimSpace(r.Form.Get("semester"))
	midTermStr := strings.TrimSpace(r.Form.Get("mid_term"))
	finalExamStr := strings.TrimSpace(r.Form.Get("final_exam"))
	quizzesStr := strings.TrimSpace(r.Form.Get("quizzes"))
	practicalStr := strings.TrimSpace(r.Form.Get("practical"))
	totalMarksStr := strings.TrimSpace(r.Form.Get("total_marks"))
	hasPractical := r.Form.Get("contains_practical") == "on" || r.Form.Get("contains_practical") == "1"
	haveAssistants := r.Form.Get("have_assistants") == "on" || r.Form.Get("have_assistants") == "1"

	v := validation.New().
		Validate("course_id", courseID, validation.Required("Course ID", 64)).
		Validate("name", name, validation.Required("Name", 255)).
		Validate("credit_hours", creditHoursStr, validation.IntRange("Credit hours", 1, 12)).
		Validate("semester", semesterStr, validation.IntRange("Semester", 1, 14)).
		Validate("mid_term", midTermStr, validation.FloatRange("Mid term marks", 0, 1000)).
		Validate("final_exam", finalExamStr, validation.FloatRange("Final exam marks", 0, 1000)).
		Validate("quizzes", quizzesStr, validation.FloatRange("Quizzes marks", 0, 1000)).
		Validate("total_marks", totalMarksStr, validation.FloatRange("Total marks", 0, 1000))
	if hasPractical {
		v.Validate("practical", practicalStr, validation.FloatRange("Practical marks", 0, 1000))
	}
	errs := v.Errors()

	creditHours, _ := strconv.Atoi(creditHoursStr)
	semester, _ := strconv.Atoi(semesterStr)
	midTerm, _ := strconv.ParseFloat(midTermStr, 64)
	finalExam, _ := strconv.ParseFloat(finalExamStr, 64)
	quizzes, _ := strconv.ParseFloat(quizzesStr, 64)
	totalMarks, _ := strconv.ParseFloat(totalMarksStr, 64)

	course := uniapi.Course{
		CourseID:                   courseID,
		Name:                       name,
		CreditHours:                creditHours,
		Semester:                   semester,
		ContainsPracticalOrProject: hasPractical,
		HaveAssistants:             haveAssistants,
		MidTerm:                    midTerm,
		FinalExam:                  finalExam,
		Quizzes:                    quizzes,
		TotalMarks:                 totalMarks,
		Departments:                parseDepartmentRefs(r.Form["department_ids"]),
	}
	if hasPractical && practicalStr != "" {
		practical, _ := strconv.ParseFloat(practicalStr, 64)
		course.Practical = &practical
	}
	if sess, ok := GetSessionFromContext(r.Context()); ok {
		course.Faculty = sess.Faculty
	}
	return course, errs
}

// renderCourseFormWithData adapts generic form handler data to the course form renderer.
func (h *UIHandlers) renderCourseFormWithData(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if formData, ok := data["FormData"].(uniapi.Course); ok {
		data["Course"] = formData
		data["SelectedDepartments"] = selectedDepartmentIDs(formData.Departments)
	}
	h.renderCourseForm(w, r, data)
}

// CourseCreate handles POST from the create form.
func (h *UIHandlers) CourseCreate(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[uniapi.Course]{
		W:          w,
		R:          r,
		Mode:       FormModeCreate,
		Parser:     parseCourseForm,
		Service:    h.CourseSvc,
		Renderer:   h.renderCourseFormWithData,
		SuccessURL: "/courses",
		PageMeta: PageMeta{
			Title:       "Uni Portal - New Course",
			PageTitle:   "New Course",
			CurrentPage: PageCourseForm,
		},
	})
}

// CourseUpdate handles POST from the edit form.
func (h *UIHandlers) CourseUpdate(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[uniapi.Course]{
		W:          w,
		R:          r,
		Mode:       FormModeEdit,
		Parser:     parseCourseForm,
		Service:    h.CourseSvc,
		Renderer:   h.renderCourseFormWithData,
		SuccessURL: "/courses",
		PageMeta: PageMeta{
			Title:       "Uni Portal - Edit Course",
			PageTitle:   "Edit Course",
			CurrentPage: PageCourseForm,
		},
	})
}

// CourseDelete removes a course by ID.
func (h *UIHandlers) CourseDelete(w http.ResponseWriter, r *http.Request) {
	h.handleDelete(w, r, deleteHandlerOpts{
		Delete:       h.CourseSvc.Delete,
		RedirectPath: "/courses",
		SuccessToast: "Course deleted",
	})
}
