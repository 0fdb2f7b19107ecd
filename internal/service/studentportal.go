package service

import (
	"context"
	"fmt"
	"log/slog"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// StudentPortalServiceOptions groups dependencies for StudentPortalService.
type StudentPortalServiceOptions struct {
	Clients *APIClientFactory
	Logger  *slog.Logger
}

// StudentPortalService serves the student's own area: profile, course
// registration and grades. Every operation is scoped to the session's email.
type StudentPortalService struct {
	clients *APIClientFactory
	logger  *slog.Logger
}

// NewStudentPortalService constructs a new StudentPortalService.
func NewStudentPortalService(opts StudentPortalServiceOptions) *StudentPortalService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StudentPortalService{clients: opts.Clients, logger: logger}
}

func (s *StudentPortalService) self(ctx context.Context) (domainauth.Session, *uniapi.Client, error) {
	sess, ok := domainauth.FromContext(ctx)
	if !ok {
		return domainauth.Session{}, nil, apperrors.Unauthorized("no active session")
	}
	if sess.Role != domainauth.RoleStudent {
		return domainauth.Session{}, nil, apperrors.Forbidden("students only")
	}
	api, err := s.clients.ForSession(sess.ID)
	if err != nil {
		return domainauth.Session{}, nil, err
	}
	return sess, api, nil
}

// Profile returns the student's own record.
func (s *StudentPortalService) Profile(ctx context.Context) (uniapi.Student, error) {
	sess, api, err := s.self(ctx)
	if err != nil {
		return uniapi.Student{}, err
	}
	return api.StudentProfile(ctx, sess.Email)
}

// AvailableCourses lists what the student can register for this semester.
func (s *StudentPortalService) AvailableCourses(ctx context.Context) ([]uniapi.Course, error) {
	sess, api, err := s.self(ctx)
	if err != nil {
		return nil, err
	}
	return api.AvailableCourses(ctx, sess.Email)
}

// Register enrolls the student in the selected courses and marks the
// semester's registration done. Registration is once per semester, and the
// selection must fit within the student's credit-hour budget.
func (s *StudentPortalService) Register(ctx context.Context, courseIDs []string) error {
	sess, api, err := s.self(ctx)
	if err != nil {
		return err
	}
	if len(courseIDs) == 0 {
		return apperrors.Validation("select at least one course")
	}

	profile, err := api.StudentProfile(ctx, sess.Email)
	if err != nil {
		return err
	}
	if profile.HasRegisteredCourses {
		return apperrors.Conflict("courses already registered for this semester")
	}

	available, err := api.AvailableCourses(ctx, sess.Email)
	if err != nil {
		return err
	}
	hours, err := selectedCreditHours(available, courseIDs)
	if err != nil {
		return err
	}
	if hours > profile.TotalCreditHours {
		return apperrors.Validation(fmt.Sprintf(
			"selected courses need %d credit hours but only %d remain", hours, profile.TotalCreditHours))
	}

	if err := api.RegisterCourses(ctx, sess.Email, courseIDs); err != nil {
		return err
	}
	if err := api.MarkCoursesRegistered(ctx, sess.Email); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "mark registration complete")
	}

	s.logger.InfoContext(ctx, "student registered courses",
		"email", sess.Email, "semester", profile.CurrentSemester, "count", len(courseIDs))
	return nil
}

// selectedCreditHours sums the credit hours of the chosen courses; a chosen
// ID that is not in the available list is rejected.
func selectedCreditHours(available []uniapi.Course, courseIDs []string) (int, error) {
	byID := make(map[string]uniapi.Course, len(available))
	for _, c := range available {
		byID[c.CourseID] = c
	}
	hours := 0
	for _, id := range courseIDs {
		course, ok := byID[id]
		if !ok {
			return 0, apperrors.Validation(fmt.Sprintf("course %s is not available for registration", id))
		}
		hours += course.CreditHours
	}
	return hours, nil
}

// Degrees lists the student's per-course marks for one semester.
func (s *StudentPortalService) Degrees(ctx context.Context, semester int) ([]uniapi.StudentDegree, error) {
	sess, api, err := s.self(ctx)
	if err != nil {
		return nil, err
	}
	if semester < 1 {
		return nil, apperrors.ValidationField("semester", "semester must be positive")
	}
	return api.SemesterDegrees(ctx, sess.Email, semester)
}

// GPA returns the GPA for one semester.
func (s *StudentPortalService) GPA(ctx context.Context, semester int) (float64, error) {
	sess, api, err := s.self(ctx)
	if err != nil {
		return 0, err
	}
	if semester < 1 {
		return 0, apperrors.ValidationField("semester", "semester must be positive")
	}
	return api.SemesterGPA(ctx, sess.Email, semester)
}

// CGPA returns the cumulative GPA.
func (s *StudentPortalService) CGPA(ctx context.Context) (float64, error) {
	sess, api, err := s.self(ctx)
	if err != nil {
		return 0, err
	}
	return api.CGPA(ctx, sess.Email)
}
