package service

import (
	"context"

	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

// Directory services proxy the university API's faculty records. Each service
// is constructed once; the API client is resolved per request so calls carry
// the caller's own token pair.

// AdminsService manages admin records.
type AdminsService struct {
	clients *APIClientFactory
}

// NewAdminsService constructs a new AdminsService.
func NewAdminsService(clients *APIClientFactory) *AdminsService {
	return &AdminsService{clients: clients}
}

func (s *AdminsService) Create(ctx context.Context, req uniapi.Employee) (any, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return nil, api.CreateAdmin(ctx, req)
}

// Update replaces the record addressed by the email inside req; the id
// parameter exists to satisfy the form handler contract.
func (s *AdminsService) Update(ctx context.Context, _ string, req uniapi.Employee) (any, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return nil, api.UpdateAdmin(ctx, req)
}

func (s *AdminsService) Get(ctx context.Context, email string) (uniapi.Employee, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return uniapi.Employee{}, err
	}
	return api.GetAdmin(ctx, email)
}

// List returns the admins of the caller's faculty; the API scopes every
// directory listing by the faculty claim.
func (s *AdminsService) List(ctx context.Context) ([]uniapi.Employee, error) {
	api, sess, err := s.clients.ForCaller(ctx)
	if err != nil {
		return nil, err
	}
	return api.ListAdmins(ctx, sess.Faculty)
}

func (s *AdminsService) Delete(ctx context.Context, email string) error {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return err
	}
	return api.DeleteAdmin(ctx, email)
}

// StudentsService manages student records.
type StudentsService struct {
	clients *APIClientFactory
}

// NewStudentsService constructs a new StudentsService.
func NewStudentsService(clients *APIClientFactory) *StudentsService {
	return &StudentsService{clients: clients}
}

func (s *StudentsService) Create(ctx context.Context, req uniapi.Student) (any, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return nil, api.CreateStudent(ctx, req)
}

func (s *StudentsService) Update(ctx context.Context, _ string, req uniapi.Student) (any, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return nil, api.UpdateStudent(ctx, req)
}

func (s *StudentsService) Get(ctx context.Context, email string) (uniapi.Student, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return uniapi.Student{}, err
	}
	return api.GetStudent(ctx, email)
}

func (s *StudentsService) List(ctx context.Context) ([]uniapi.Student, error) {
	api, sess, err := s.clients.ForCaller(ctx)
	if err != nil {
		return nil, err
	}
	return api.ListStudents(ctx, sess.Faculty)
}

func (s *StudentsService) Delete(ctx context.Context, email string) error {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return err
	}
	return api.DeleteStudent(ctx, email)
}

// DoctorsService manages doctor records.
type DoctorsService struct {
	clients *APIClientFactory
}

// NewDoctorsService constructs a new DoctorsService.
func NewDoctorsService(clients *APIClientFactory) *DoctorsService {
	return &DoctorsService{clients: clients}
}

func (s *DoctorsService) Create(ctx context.Context, req uniapi.Doctor) (any, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return nil, api.CreateDoctor(ctx, req)
}

func (s *DoctorsService) Update(ctx context.Context, _ string, req uniapi.Doctor) (any, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return nil, api.UpdateDoctor(ctx, req)
}

func (s *DoctorsService) Get(ctx context.Context, email string) (uniapi.Doctor, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return uniapi.Doctor{}, err
	}
	return api.GetDoctor(ctx, email)
}

func (s *DoctorsService) List(ctx context.Context) ([]uniapi.Doctor, error) {
	api, sess, err := s.clients.ForCaller(ctx)
	if err != nil {
		return nil, err
	}
	return api.ListDoctors(ctx, sess.Faculty)
}

func (s *DoctorsService) Delete(ctx context.Context, email string) error {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return err
	}
	return api.DeleteDoctor(ctx, email)
}

// AssistantsService manages assistant records.
type AssistantsService struct {
	clients *APIClientFactory
}

// NewAssistantsService constructs a new AssistantsService.
func NewAssistantsService(clients *APIClientFactory) *AssistantsService {
	return &AssistantsService{clients: clients}
}

func (s *AssistantsService) Create(ctx context.Context, req uniapi.Assistant) (any, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return nil, api.CreateAssistant(ctx, req)
}

func (s *AssistantsService) Update(ctx context.Context, _ string, req uniapi.Assistant) (any, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return nil, api.UpdateAssistant(ctx, req)
}

func (s *AssistantsService) Get(ctx context.Context, email string) (uniapi.Assistant, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return uniapi.Assistant{}, err
	}
	return api.GetAssistant(ctx, email)
}

func (s *AssistantsService) List(ctx context.Context) ([]uniapi.Assistant, error) {
	api, sess, err := s.clients.ForCaller(ctx)
	if err != nil {
		return nil, err
	}
	return api.ListAssistants(ctx, sess.Faculty)
}

func (s *AssistantsService) Delete(ctx context.Context, email string) error {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return err
	}
	return api.DeleteAssistant(ctx, email)
}

// CourseFilter narrows course listings. Zero values mean no filtering.
type CourseFilter struct {
	Name           string
	Semester       int
	AssistantsOnly bool
}

// CoursesService manages course records and their filtered listings.
type CoursesService struct {
	clients *APIClientFactory
}

// NewCoursesService constructs a new CoursesService.
func NewCoursesService(clients *APIClientFactory) *CoursesService {
	return &CoursesService{clients: clients}
}

func (s *CoursesService) Create(ctx context.Context, req uniapi.Course) (any, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateCourse(req); err != nil {
		return nil, err
	}
	return nil, api.CreateCourse(ctx, req)
}

func (s *CoursesService) Update(ctx context.Context, _ string, req uniapi.Course) (any, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateCourse(req); err != nil {
		return nil, err
	}
	return nil, api.UpdateCourse(ctx, req)
}

func (s *CoursesService) Get(ctx context.Context, courseID string) (uniapi.Course, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return uniapi.Course{}, err
	}
	return api.GetCourse(ctx, courseID)
}

// List applies the filter server-side, picking the matching endpoint. Every
// variant is scoped to the caller's faculty.
func (s *CoursesService) List(ctx context.Context, filter CourseFilter) ([]uniapi.Course, error) {
	api, sess, err := s.clients.ForCaller(ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case filter.AssistantsOnly:
		return api.ListAssistantCourses(ctx, sess.Faculty)
	case filter.Name != "" && filter.Semester > 0:
		return api.ListCoursesBySemesterAndName(ctx, sess.Faculty, filter.Semester, filter.Name)
	case filter.Name != "":
		return api.ListCoursesByName(ctx, sess.Faculty, filter.Name)
	case filter.Semester > 0:
		return api.ListCoursesBySemester(ctx, sess.Faculty, filter.Semester)
	default:
		return api.ListCourses(ctx, sess.Faculty)
	}
}

func (s *CoursesService) Delete(ctx context.Context, courseID string) error {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return err
	}
	return api.DeleteCourse(ctx, courseID)
}

// validateCourse enforces the mark-distribution invariant the server assumes:
// components must add up to the course total.
func validateCourse(c uniapi.Course) error {
	sum := c.MidTerm + c.FinalExam + c.Quizzes
	if c.ContainsPracticalOrProject {
		if c.Practical == nil {
			return apperrors.ValidationField("practical", "practical marks are required")
		}
		sum += *c.Practical
	} else if c.Practical != nil && *c.Practical != 0 {
		return apperrors.ValidationField("practical", "course has no practical component")
	}
	if c.TotalMarks > 0 && sum != c.TotalMarks {
		return apperrors.ValidationField("totalMarks", "mark components must add up to the total")
	}
	return nil
}

// DepartmentsService manages department records. The API addresses
// departments by the full DTO for reads and deletes.
type DepartmentsService struct {
	clients *APIClientFactory
}

// NewDepartmentsService constructs a new DepartmentsService.
func NewDepartmentsService(clients *APIClientFactory) *DepartmentsService {
	return &DepartmentsService{clients: clients}
}

func (s *DepartmentsService) Create(ctx context.Context, req uniapi.Department) (any, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return nil, api.CreateDepartment(ctx, req)
}

func (s *DepartmentsService) Update(ctx context.Context, _ string, req uniapi.Department) (any, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return nil, api.UpdateDepartment(ctx, req)
}

func (s *DepartmentsService) Get(ctx context.Context, ref uniapi.Department) (uniapi.Department, error) {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return uniapi.Department{}, err
	}
	return api.GetDepartment(ctx, ref)
}

func (s *DepartmentsService) List(ctx context.Context) ([]uniapi.Department, error) {
	api, sess, err := s.clients.ForCaller(ctx)
	if err != nil {
		return nil, err
	}
	return api.ListDepartments(ctx, sess.Faculty)
}

func (s *DepartmentsService) Delete(ctx context.Context, ref uniapi.Department) error {
	api, err := s.clients.FromContext(ctx)
	if err != nil {
		return err
	}
	return api.DeleteDepartment(ctx, ref)
}
