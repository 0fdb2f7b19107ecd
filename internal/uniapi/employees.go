package uniapi

import (
	"context"
	"net/url"
	"strconv"
)

// Admin management. The API names these endpoints "employee".

func (c *Client) CreateAdmin(ctx context.Context, in Employee) error {
	return c.post(ctx, pathCreateAdmin, in, nil)
}

func (c *Client) GetAdmin(ctx context.Context, email string) (Employee, error) {
	var out Employee
	err := c.get(ctx, pathGetAdmin+url.PathEscape(email), &out)
	return out, err
}

// ListAdmins lists the admins of one faculty; every directory listing is
// faculty-scoped on the server.
func (c *Client) ListAdmins(ctx context.Context, faculty string) ([]Employee, error) {
	var out ValueList[Employee]
	if err := c.get(ctx, pathAllAdmins+url.PathEscape(faculty), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateAdmin(ctx context.Context, in Employee) error {
	return c.put(ctx, pathUpdateAdmin, in, nil)
}

func (c *Client) DeleteAdmin(ctx context.Context, email string) error {
	return c.del(ctx, pathDeleteAdmin+url.PathEscape(email), nil)
}

// Students.

func (c *Client) CreateStudent(ctx context.Context, in Student) error {
	return c.post(ctx, pathCreateStudent, in, nil)
}

func (c *Client) GetStudent(ctx context.Context, email string) (Student, error) {
	var out Student
	err := c.get(ctx, pathGetStudent+url.PathEscape(email), &out)
	return out, err
}

func (c *Client) ListStudents(ctx context.Context, faculty string) ([]Student, error) {
	var out ValueList[Student]
	if err := c.get(ctx, pathAllStudents+url.PathEscape(faculty), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateStudent(ctx context.Context, in Student) error {
	return c.put(ctx, pathUpdateStudent, in, nil)
}

func (c *Client) DeleteStudent(ctx context.Context, email string) error {
	return c.del(ctx, pathDeleteStudent+url.PathEscape(email), nil)
}

// Doctors.

func (c *Client) CreateDoctor(ctx context.Context, in Doctor) error {
	return c.post(ctx, pathCreateDoctor, in, nil)
}

func (c *Client) GetDoctor(ctx context.Context, email string) (Doctor, error) {
	var out Doctor
	err := c.get(ctx, pathGetDoctor+url.PathEscape(email), &out)
	return out, err
}

func (c *Client) ListDoctors(ctx context.Context, faculty string) ([]Doctor, error) {
	var out ValueList[Doctor]
	if err := c.get(ctx, pathAllDoctors+url.PathEscape(faculty), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateDoctor(ctx context.Context, in Doctor) error {
	return c.put(ctx, pathUpdateDoctor, in, nil)
}

func (c *Client) DeleteDoctor(ctx context.Context, email string) error {
	return c.del(ctx, pathDeleteDoctor+url.PathEscape(email), nil)
}

// Assistants.

func (c *Client) CreateAssistant(ctx context.Context, in Assistant) error {
	return c.post(ctx, pathCreateAssistant, in, nil)
}

func (c *Client) GetAssistant(ctx context.Context, email string) (Assistant, error) {
	var out Assistant
	err := c.get(ctx, pathGetAssistant+url.PathEscape(email), &out)
	return out, err
}

func (c *Client) ListAssistants(ctx context.Context, faculty string) ([]Assistant, error) {
	var out ValueList[Assistant]
	if err := c.get(ctx, pathAllAssistants+url.PathEscape(faculty), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateAssistant(ctx context.Context, in Assistant) error {
	return c.put(ctx, pathUpdateAssistant, in, nil)
}

func (c *Client) DeleteAssistant(ctx context.Context, email string) error {
	return c.del(ctx, pathDeleteAssistant+url.PathEscape(email), nil)
}

// Courses.

func (c *Client) CreateCourse(ctx context.Context, in Course) error {
	return c.post(ctx, pathCreateCourse, in, nil)
}

func (c *Client) GetCourse(ctx context.Context, courseID string) (Course, error) {
	var out Course
	err := c.get(ctx, pathGetCourse+url.PathEscape(courseID), &out)
	return out, err
}

func (c *Client) ListCourses(ctx context.Context, faculty string) ([]Course, error) {
	var out ValueList[Course]
	if err := c.get(ctx, pathAllCourses+url.PathEscape(faculty), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCoursesBySemester filters server-side by semester number.
func (c *Client) ListCoursesBySemester(ctx context.Context, faculty string, semester int) ([]Course, error) {
	var out ValueList[Course]
	path := pathCoursesBySemester + url.PathEscape(faculty) + "/" + strconv.Itoa(semester)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCoursesByName filters server-side by a name prefix.
func (c *Client) ListCoursesByName(ctx context.Context, faculty, name string) ([]Course, error) {
	path := pathCoursesByName + url.PathEscape(faculty) + "/" + url.PathEscape(name)
	var out ValueList[Course]
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCoursesBySemesterAndName combines both filters. Segment order is
// faculty, then semester, then name.
func (c *Client) ListCoursesBySemesterAndName(ctx context.Context, faculty string, semester int, name string) ([]Course, error) {
	var out ValueList[Course]
	path := pathCoursesBySemesterAndName + url.PathEscape(faculty) + "/" +
		strconv.Itoa(semester) + "/" + url.PathEscape(name)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAssistantCourses lists courses flagged as having assistants.
func (c *Client) ListAssistantCourses(ctx context.Context, faculty string) ([]Course, error) {
	var out ValueList[Course]
	if err := c.get(ctx, pathAllAssistantCourses+url.PathEscape(faculty), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateCourse(ctx context.Context, in Course) error {
	return c.put(ctx, pathUpdateCourse, in, nil)
}

func (c *Client) DeleteCourse(ctx context.Context, courseID string) error {
	return c.del(ctx, pathDeleteCourse+url.PathEscape(courseID), nil)
}

// Departments. Get and delete take the full DTO in the body, not a path
// parameter. That is the server's contract.

func (c *Client) CreateDepartment(ctx context.Context, in Department) error {
	return c.post(ctx, pathCreateDepartment, in, nil)
}

func (c *Client) GetDepartment(ctx context.Context, in Department) (Department, error) {
	var out Department
	err := c.post(ctx, pathGetDepartment, in, &out)
	return out, err
}

func (c *Client) ListDepartments(ctx context.Context, faculty string) ([]Department, error) {
	var out ValueList[Department]
	if err := c.get(ctx, pathAllDepartments+url.PathEscape(faculty), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateDepartment(ctx context.Context, in Department) error {
	return c.put(ctx, pathUpdateDepartment, in, nil)
}

func (c *Client) DeleteDepartment(ctx context.Context, in Department) error {
	return c.del(ctx, pathDeleteDepartment, in)
}
