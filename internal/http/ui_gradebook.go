package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/uniportal/uni-ui-api/internal/http/validation"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// Gradebook serves the teaching-staff course list.
func (h *UIHandlers) Gradebook(w http.ResponseWriter, r *http.Request) {
	HandleList(ListHandlerOpts[uniapi.Course, struct{}]{
		Handler:  h,
		W:        w,
		R:        r,
		Fetcher:  h.GradeSvc.Courses,
		BasePath: "/gradebook",
		PageMeta: PageMeta{
			Title:       "Uni Portal - Gradebook",
			PageTitle:   "My Courses",
			CurrentPage: PageGradebook,
		},
		ItemsKey:     "Courses",
		ErrorMessage: "Unable to load your courses.",
	})
}

// GradebookCourse serves the roster and degree listing for one course.
func (h *UIHandlers) GradebookCourse(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("id")
	if courseID == "" {
		h.NotFound(w, r)
		return
	}

	data := basePageData(r, PageMeta{
		Title:       "Uni Portal - Course Degrees",
		PageTitle:   "Course Degrees",
		CurrentPage: PageGradebookCourse,
	})
	data["CourseID"] = courseID

	degrees, err := h.GradeSvc.StudentDegrees(r.Context(), courseID)
	if err != nil {
		data["Error"] = true
		data["ErrorMessage"] = errorMessageFor(err, "Unable to load student degrees.")
		h.renderDashboardPage(w, r, data)
		return
	}
	data["Degrees"] = degrees
	h.renderDashboardPage(w, r, data)
}

// DegreeEdit renders the degree entry form for one student in a course.
// GET /gradebook/{id}/students/{email}/edit.
func (h *UIHandlers) DegreeEdit(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("id")
	email := r.PathValue("email")
	if courseID == "" || email == "" {
		h.NotFound(w, r)
		return
	}

	degrees, err := h.GradeSvc.StudentDegrees(r.Context(), courseID)
	if err != nil {
		h.NotFound(w, r)
		return
	}
	row, ok := findDegreeRow(degrees, email)
	if !ok {
		h.NotFound(w, r)
		return
	}

	data := basePageData(r, degreeFormMeta())
	data["CourseID"] = courseID
	data["Degree"] = row
	data["Form"] = degreeFormValues{
		Email:     row.Email,
		MidTerm:   formatMark(row.StudentMidTerm),
		FinalExam: formatMark(row.StudentFinalExam),
		Quizzes:   formatMark(row.StudentQuizzes),
		Practical: formatMark(row.StudentPractical),
	}
	h.renderDashboardPage(w, r, data)
}

// DegreeUpdate handles the degree entry form POST.
// POST /gradebook/{id}/students/{email}.
func (h *UIHandlers) DegreeUpdate(w http.ResponseWriter, r *http.Request) {
	courseID := r.PathValue("id")
	if courseID == "" {
		h.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	form := degreeFormValues{
		Email:     strings.TrimSpace(r.Form.Get("email")),
		MidTerm:   strings.TrimSpace(r.Form.Get("mid_term")),
		FinalExam: strings.TrimSpace(r.Form.Get("final_exam")),
		Quizzes:   strings.TrimSpace(r.Form.Get("quizzes")),
		Practical: strings.TrimSpace(r.Form.Get("practical")),
	}
	update, errs := form.parse()
	if len(errs) > 0 {
		h.renderDegreeFormError(w, r, degreeFormError{
			CourseID:    courseID,
			Form:        form,
			FieldErrors: errs,
			Message:     errMsgFixBelow,
		})
		return
	}

	if err := h.GradeSvc.UpdateDegrees(r.Context(), courseID, update); err != nil {
		h.logger().WarnContext(r.Context(), "degree update rejected",
			"course_id", courseID, "error", err)
		h.renderDegreeFormError(w, r, degreeFormError{
			CourseID: courseID,
			Form:     form,
			Message:  errorMessageFor(err, "Unable to save degrees. Please try again."),
		})
		return
	}

	triggerToast(w, "Degrees saved", "success")
	HTMX(w).Redirect("/gradebook/" + courseID)
}

// degreeFormValues carries the sticky degree form fields as entered.
type degreeFormValues struct {
	Email     string
	MidTerm   string
	FinalExam string
	Quizzes   string
	Practical string
}

// parse validates and converts the form into the API's update payload.
func (f degreeFormValues) parse() (uniapi.DegreeUpdate, map[string]string) {
	errs := validation.New().
		Validate("email", f.Email, validation.Email("Student email")).
		Validate("mid_term", f.MidTerm, validation.FloatRange("Mid term", 0, 1000)).
		Validate("final_exam", f.FinalExam, validation.FloatRange("Final exam", 0, 1000)).
		Validate("quizzes", f.Quizzes, validation.FloatRange("Quizzes", 0, 1000)).
		Validate("practical", f.Practical, validation.OptionalFloatRange("Practical", 0, 1000)).
		Errors()
	if len(errs) > 0 {
		return uniapi.DegreeUpdate{}, errs
	}

	midTerm, _ := strconv.ParseFloat(f.MidTerm, 64)
	finalExam, _ := strconv.ParseFloat(f.FinalExam, 64)
	quizzes, _ := strconv.ParseFloat(f.Quizzes, 64)
	practical := 0.0
	if f.Practical != "" {
		practical, _ = strconv.ParseFloat(f.Practical, 64)
	}
	return uniapi.DegreeUpdate{
		Email:     f.Email,
		MidTerm:   midTerm,
		FinalExam: finalExam,
		Quizzes:   quizzes,
		Practical: practical,
	}, nil
}

// degreeFormError bundles everything needed to re-render a failed submission.
type degreeFormError struct {
	CourseID    string
	Form        degreeFormValues
	FieldErrors map[string]string
	Message     string
}

func (h *UIHandlers) renderDegreeFormError(w http.ResponseWriter, r *http.Request, e degreeFormError) {
	data := basePageData(r, degreeFormMeta())
	data["CourseID"] = e.CourseID
	data["Form"] = e.Form
	if len(e.FieldErrors) > 0 {
		data["Errors"] = e.FieldErrors
	}
	if e.Message != "" {
		data["Error"] = true
		data["ErrorMessage"] = e.Message
	}
	h.renderDashboardPage(w, r, data)
}

func degreeFormMeta() PageMeta {
	return PageMeta{
		Title:       "Uni Portal - Enter Degrees",
		PageTitle:   "Enter Degrees",
		CurrentPage: PageDegreeForm,
	}
}

// findDegreeRow locates one student's row in a course degree listing.
func findDegreeRow(degrees []uniapi.StudentDegree, email string) (uniapi.StudentDegree, bool) {
	for _, d := range degrees {
		if strings.EqualFold(d.Email, email) {
			return d, true
		}
	}
	return uniapi.StudentDegree{}, false
}

// formatMark renders a mark without trailing zeros for form inputs.
func formatMark(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
