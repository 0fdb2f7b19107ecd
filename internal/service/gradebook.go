package service

import (
	"context"
	"log/slog"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// GradebookServiceOptions groups dependencies for GradebookService.
type GradebookServiceOptions struct {
	Clients *APIClientFactory
	Logger  *slog.Logger
}

// GradebookService serves the teaching-staff area: assigned courses, their
// rosters and degree entry. Doctors and assistants hit distinct API routes;
// the server additionally restricts which mark components assistants may set.
type GradebookService struct {
	clients *APIClientFactory
	logger  *slog.Logger
}

// NewGradebookService constructs a new GradebookService.
func NewGradebookService(opts GradebookServiceOptions) *GradebookService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &GradebookService{clients: opts.Clients, logger: logger}
}

func (s *GradebookService) staff(ctx context.Context) (domainauth.Session, *uniapi.Client, error) {
	sess, ok := domainauth.FromContext(ctx)
	if !ok {
		return domainauth.Session{}, nil, apperrors.Unauthorized("no active session")
	}
	if !sess.CanGrade() {
		return domainauth.Session{}, nil, apperrors.Forbidden("teaching staff only")
	}
	api, err := s.clients.ForSession(sess.ID)
	if err != nil {
		return domainauth.Session{}, nil, err
	}
	return sess, api, nil
}

// Courses lists the courses assigned to the staff member.
func (s *GradebookService) Courses(ctx context.Context) ([]uniapi.Course, error) {
	sess, api, err := s.staff(ctx)
	if err != nil {
		return nil, err
	}
	if sess.Role == domainauth.RoleDoctor {
		return api.DoctorCourses(ctx, sess.Email)
	}
	return api.AssistantCourses(ctx, sess.Email)
}

// CourseStudents lists the roster of one assigned course.
func (s *GradebookService) CourseStudents(ctx context.Context, courseID string) ([]uniapi.Student, error) {
	sess, api, err := s.staff(ctx)
	if err != nil {
		return nil, err
	}
	if courseID == "" {
		return nil, apperrors.ValidationField("courseId", "course is required")
	}
	if sess.Role == domainauth.RoleDoctor {
		return api.DoctorCourseStudents(ctx, courseID)
	}
	return api.AssistantCourseStudents(ctx, courseID)
}

// StudentDegrees lists current marks for every student in the course.
func (s *GradebookService) StudentDegrees(ctx context.Context, courseID string) ([]uniapi.StudentDegree, error) {
	sess, api, err := s.staff(ctx)
	if err != nil {
		return nil, err
	}
	if courseID == "" {
		return nil, apperrors.ValidationField("courseId", "course is required")
	}
	if sess.Role == domainauth.RoleDoctor {
		return api.DoctorStudentDegrees(ctx, sess.Email, courseID)
	}
	return api.AssistantStudentDegrees(ctx, sess.Email, courseID)
}

// UpdateDegrees writes one student's marks for the course. The doctor route
// accepts every component; the assistant route only quiz and practical marks.
func (s *GradebookService) UpdateDegrees(ctx context.Context, courseID string, in uniapi.DegreeUpdate) error {
	sess, api, err := s.staff(ctx)
	if err != nil {
		return err
	}
	if courseID == "" {
		return apperrors.ValidationField("courseId", "course is required")
	}
	if in.Email == "" {
		return apperrors.ValidationField("Email", "student email is required")
	}

	if sess.Role == domainauth.RoleDoctor {
		err = api.DoctorUpdateDegrees(ctx, sess.Email, courseID, in)
	} else {
		err = api.AssistantUpdateDegrees(ctx, sess.Email, courseID, in)
	}
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "degrees updated",
		"course_id", courseID, "student", in.Email, "by", sess.Email, "role", sess.Role)
	return nil
}
