package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// Registration serves the student's course registration page.
func (h *UIHandlers) Registration(w http.ResponseWriter, r *http.Request) {
	data := basePageData(r, registrationMeta())

	profile, err := h.PortalSvc.Profile(r.Context())
	if err != nil {
		data["Error"] = true
		data["ErrorMessage"] = errorMessageFor(err, "Unable to load your profile.")
		h.renderDashboardPage(w, r, data)
		return
	}
	data["Profile"] = profile

	if profile.HasRegisteredCourses {
		data["AlreadyRegistered"] = true
		h.renderDashboardPage(w, r, data)
		return
	}

	courses, err := h.PortalSvc.AvailableCourses(r.Context())
	if err != nil {
		data["Error"] = true
		data["ErrorMessage"] = errorMessageFor(err, "Unable to load available courses.")
		h.renderDashboardPage(w, r, data)
		return
	}
	data["Courses"] = courses
	h.renderDashboardPage(w, r, data)
}

// RegistrationSubmit handles the registration form POST.
func (h *UIHandlers) RegistrationSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	var courseIDs []string
	for _, v := range r.Form["course_ids"] {
		if v = strings.TrimSpace(v); v != "" {
			courseIDs = append(courseIDs, v)
		}
	}

	if err := h.PortalSvc.Register(r.Context(), courseIDs); err != nil {
		h.logger().WarnContext(r.Context(), "course registration rejected", "error", err)
		data := basePageData(r, registrationMeta())
		data["Error"] = true
		data["ErrorMessage"] = errorMessageFor(err, "Unable to register courses. Please try again.")
		if courses, listErr := h.PortalSvc.AvailableCourses(r.Context()); listErr == nil {
			data["Courses"] = courses
		}
		h.renderDashboardPage(w, r, data)
		return
	}

	triggerToast(w, "Courses registered", "success")
	HTMX(w).Redirect("/registration")
}

func registrationMeta() PageMeta {
	return PageMeta{
		Title:       "Uni Portal - Registration",
		PageTitle:   "Course Registration",
		CurrentPage: PageRegistration,
	}
}

// Grades serves the student's per-semester degree listing with GPA and CGPA.
// GET /grades?semester=<n>; defaults to the student's current semester.
func (h *UIHandlers) Grades(w http.ResponseWriter, r *http.Request) {
	data := basePageData(r, PageMeta{
		Title:       "Uni Portal - Grades",
		PageTitle:   "Grades",
		CurrentPage: PageGrades,
	})

	profile, err := h.PortalSvc.Profile(r.Context())
	if err != nil {
		data["Error"] = true
		data["ErrorMessage"] = errorMessageFor(err, "Unable to load your profile.")
		h.renderDashboardPage(w, r, data)
		return
	}
	data["Profile"] = profile

	semester := profile.CurrentSemester
	if s := strings.TrimSpace(r.URL.Query().Get("semester")); s != "" {
		if n, parseErr := strconv.Atoi(s); parseErr == nil && n >= 1 {
			semester = n
		}
	}
	if semester < 1 {
		semester = 1
	}
	data["Semester"] = semester
	data["SemesterCount"] = profile.CurrentSemester

	degrees, err := h.PortalSvc.Degrees(r.Context(), semester)
	if err != nil {
		data["Error"] = true
		data["ErrorMessage"] = errorMessageFor(err, "Unable to load your grades.")
		h.renderDashboardPage(w, r, data)
		return
	}
	data["Degrees"] = degrees
	data["TotalCreditHours"] = totalCreditHours(degrees)

	// GPA figures are secondary; the degree table still renders without them.
	if gpa, gpaErr := h.PortalSvc.GPA(r.Context(), semester); gpaErr == nil {
		data["GPA"] = gpa
	} else {
		h.logger().WarnContext(r.Context(), "gpa unavailable", "semester", semester, "error", gpaErr)
	}
	if cgpa, cgpaErr := h.PortalSvc.CGPA(r.Context()); cgpaErr == nil {
		data["CGPA"] = cgpa
	} else {
		h.logger().WarnContext(r.Context(), "cgpa unavailable", "error", cgpaErr)
	}

	h.renderDashboardPage(w, r, data)
}

// totalCreditHours sums credit hours across one semester's courses.
func totalCreditHours(degrees []uniapi.StudentDegree) int {
	total := 0
	for _, d := range degrees {
		total += d.CreditHours
	}
	return total
}
