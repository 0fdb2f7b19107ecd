package uniapi

import (
	"context"
	"net/url"
)

// Teaching-staff endpoints. Doctors and assistants share the same shapes but
// distinct paths; the API authorizes each set per role.

func (c *Client) DoctorCourses(ctx context.Context, email string) ([]Course, error) {
	var out ValueList[Course]
	if err := c.get(ctx, pathDoctorCourses+url.PathEscape(email), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DoctorCourseStudents(ctx context.Context, courseID string) ([]Student, error) {
	var out ValueList[Student]
	if err := c.get(ctx, pathDoctorCourseStudents+url.PathEscape(courseID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DoctorStudentDegrees lists current marks for the doctor's course. The
// server addresses the gradebook by staff email, then course.
func (c *Client) DoctorStudentDegrees(ctx context.Context, email, courseID string) ([]StudentDegree, error) {
	path := pathDoctorStudentDegrees + url.PathEscape(email) + "/" + url.PathEscape(courseID)
	var out ValueList[StudentDegree]
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DoctorUpdateDegrees writes one student's marks for a course. Doctors may
// set every component.
func (c *Client) DoctorUpdateDegrees(ctx context.Context, email, courseID string, in DegreeUpdate) error {
	path := pathDoctorUpdateDegrees + url.PathEscape(email) + "/" + url.PathEscape(courseID)
	return c.put(ctx, path, in, nil)
}

func (c *Client) AssistantCourses(ctx context.Context, email string) ([]Course, error) {
	var out ValueList[Course]
	if err := c.get(ctx, pathAssistantCourses+url.PathEscape(email), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AssistantCourseStudents(ctx context.Context, courseID string) ([]Student, error) {
	var out ValueList[Student]
	if err := c.get(ctx, pathAssistantCourseStudents+url.PathEscape(courseID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AssistantStudentDegrees(ctx context.Context, email, courseID string) ([]StudentDegree, error) {
	path := pathAssistantStudentDegrees + url.PathEscape(email) + "/" + url.PathEscape(courseID)
	var out ValueList[StudentDegree]
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssistantUpdateDegrees writes the quiz and practical components; the server
// ignores the exam fields for assistants.
func (c *Client) AssistantUpdateDegrees(ctx context.Context, email, courseID string, in DegreeUpdate) error {
	path := pathAssistantUpdateDegrees + url.PathEscape(email) + "/" + url.PathEscape(courseID)
	return c.put(ctx, path, in, nil)
}
