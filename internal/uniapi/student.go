package uniapi

import (
	"context"
	"net/url"
	"strconv"
)

// StudentProfile fetches the student's own record.
func (c *Client) StudentProfile(ctx context.Context, email string) (Student, error) {
	var out Student
	err := c.get(ctx, pathStudentByEmail+url.PathEscape(email), &out)
	return out, err
}

// AvailableCourses lists courses the student may register for; the server
// derives the semester and department from the student record.
func (c *Client) AvailableCourses(ctx context.Context, email string) ([]Course, error) {
	var out ValueList[Course]
	if err := c.get(ctx, pathAvailableCourses+url.PathEscape(email), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterCourses enrolls the student in the selected courses. The body is a
// bare JSON array of course IDs.
func (c *Client) RegisterCourses(ctx context.Context, email string, courseIDs []string) error {
	return c.post(ctx, pathRegisterCourses+url.PathEscape(email), courseIDs, nil)
}

// MarkCoursesRegistered flips the student's registration flag after a
// successful registration.
func (c *Client) MarkCoursesRegistered(ctx context.Context, email string) error {
	return c.put(ctx, pathMarkRegisteredCourses+url.PathEscape(email), nil, nil)
}

// SemesterDegrees lists the student's per-course marks for one semester.
func (c *Client) SemesterDegrees(ctx context.Context, email string, semester int) ([]StudentDegree, error) {
	var out ValueList[StudentDegree]
	path := pathStudentSemesterDegrees + url.PathEscape(email) + "/" + strconv.Itoa(semester)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SemesterGPA fetches the GPA for one semester.
func (c *Client) SemesterGPA(ctx context.Context, email string, semester int) (float64, error) {
	var out GPAResponse
	path := pathStudentGPA + url.PathEscape(email) + "/" + strconv.Itoa(semester)
	if err := c.get(ctx, path, &out); err != nil {
		return 0, err
	}
	return out.GPA, nil
}

// CGPA fetches the cumulative GPA across all completed semesters.
func (c *Client) CGPA(ctx context.Context, email string) (float64, error) {
	var out CGPAResponse
	if err := c.get(ctx, pathStudentCGPA+url.PathEscape(email), &out); err != nil {
		return 0, err
	}
	return out.CGPA, nil
}
