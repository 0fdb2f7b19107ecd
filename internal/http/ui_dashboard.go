package httpx

import (
	"net/http"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
)

// Index serves the home page. Content depends on who is signed in: admins get
// directory shortcuts, students their profile summary, teaching staff their
// course count.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	data := basePageData(r, PageMeta{
		Title:       "Uni Portal - Dashboard",
		PageTitle:   "Dashboard",
		CurrentPage: PageDashboard,
	})

	sess, ok := GetSessionFromContext(r.Context())
	if !ok {
		h.renderDashboardPage(w, r, data)
		return
	}

	switch {
	case sess.Role == domainauth.RoleStudent:
		if profile, err := h.PortalSvc.Profile(r.Context()); err == nil {
			data["Profile"] = profile
		} else {
			h.logger().WarnContext(r.Context(), "dashboard profile unavailable", "error", err)
		}
	case sess.CanGrade():
		if courses, err := h.GradeSvc.Courses(r.Context()); err == nil {
			data["CourseCount"] = len(courses)
			data["Courses"] = courses
		} else {
			h.logger().WarnContext(r.Context(), "dashboard courses unavailable", "error", err)
		}
	}

	h.renderDashboardPage(w, r, data)
}
