package httpx

// CurrentPage constants identify pages for navigation state and template
// dispatch. Keep these in sync with contentTemplates below.
const (
	PageLogin          = "login"
	PageForgotPassword = "forgot-password"
	PageResetPassword  = "reset-password"

	PageDashboard = "dashboard"

	// Faculty admin directory pages.
	PageAdmins         = "admins"
	PageAdminForm      = "admin-form"
	PageStudents       = "students"
	PageStudentForm    = "student-form"
	PageDoctors        = "doctors"
	PageDoctorForm     = "doctor-form"
	PageAssistants     = "assistants"
	PageAssistantForm  = "assistant-form"
	PageCourses        = "courses"
	PageCourseForm     = "course-form"
	PageDepartments    = "departments"
	PageDepartmentForm = "department-form"

	// Student area pages.
	PageRegistration = "registration"
	PageGrades       = "grades"

	// Teaching staff pages.
	PageGradebook       = "gradebook"
	PageGradebookCourse = "gradebook-course"
	PageDegreeForm      = "degree-form"
)

// FormMode represents the mode of a form (create or edit).
type FormMode string

const (
	FormModeEdit   FormMode = "edit"
	FormModeCreate FormMode = "create"
)

// Template directory paths used when loading templates from disk.
const (
	TemplatePathFromRoot = "frontend/templates"
	TemplatePathFromTest = "../../frontend/templates"
)

//nolint:gochecknoglobals // static read-only lookup; avoids per-call allocations
var contentTemplates = map[string]string{
	PageLogin:           "login-content",
	PageForgotPassword:  "forgot-password-content",
	PageResetPassword:   "reset-password-content",
	PageDashboard:       "dashboard-content",
	PageAdmins:          "admins-content",
	PageAdminForm:       "admin-form-content",
	PageStudents:        "students-content",
	PageStudentForm:     "student-form-content",
	PageDoctors:         "doctors-content",
	PageDoctorForm:      "doctor-form-content",
	PageAssistants:      "assistants-content",
	PageAssistantForm:   "assistant-form-content",
	PageCourses:         "courses-content",
	PageCourseForm:      "course-form-content",
	PageDepartments:     "departments-content",
	PageDepartmentForm:  "department-form-content",
	PageRegistration:    "registration-content",
	PageGrades:          "grades-content",
	PageGradebook:       "gradebook-content",
	PageGradebookCourse: "gradebook-course-content",
	PageDegreeForm:      "degree-form-content",
}

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to dashboard-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := contentTemplates[currentPage]; ok {
		return name
	}
	return "dashboard-content"
}
