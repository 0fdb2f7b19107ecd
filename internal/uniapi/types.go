package uniapi

import "encoding/json"

// TokenPair is the access/refresh pair issued on login and rotated on refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginRequest is the credential payload for Home/login.
type LoginRequest struct {
	FacultyName string `json:"facultyName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

// LoginResponse carries the token pair plus a server-provided message.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Message      string `json:"message"`
}

// ResetPasswordRequest is the payload for Home/reset-password.
type ResetPasswordRequest struct {
	Email           string `json:"email"`
	EmailToken      string `json:"emailToken"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Employee is an admin record. The API calls admins "employees".
type Employee struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	BackupEmail string `json:"backupEmail"`
	Role        string `json:"role"`
	Faculty     string `json:"faculty"`
	Position    string `json:"position"`
}

// Student mirrors the API's StudentDTO.
type Student struct {
	StudentID            string `json:"studentId"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	BackupEmail          string `json:"backupEmail"`
	Role                 string `json:"role"`
	Faculty              string `json:"faculty"`
	CurrentSemester      int    `json:"currentSemester"`
	HasRegisteredCourses bool   `json:"hasRegisteredCourses"`
	Department           string `json:"department"`
	TotalCreditHours     int    `json:"totalCreditHours"`
}

// CourseRef links a staff member to a course by ID.
type CourseRef struct {
	CourseID string `json:"courseId"`
}

// Doctor mirrors the API's DoctorDTO.
type Doctor struct {
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	BackupEmail string               `json:"backupEmail"`
	Role        string               `json:"role"`
	Faculty     string               `json:"faculty"`
	Courses     ValueList[CourseRef] `json:"courses"`
}

// Assistant mirrors the API's AssistantDTO.
type Assistant struct {
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	BackupEmail string               `json:"backupEmail"`
	Role        string               `json:"role"`
	Faculty     string               `json:"faculty"`
	Courses     ValueList[CourseRef] `json:"courses"`
}

// DepartmentRef links a course to a department by ID.
type DepartmentRef struct {
	DepartmentID string `json:"departmentId"`
}

// Course mirrors the API's CourseDTO. Practical is nil for courses without a
// practical/project component.
type Course struct {
	CourseID                   string                   `json:"courseId"`
	Name                       string                   `json:"name"`
	CreditHours                int                      `json:"creditHours"`
	Faculty                    string                   `json:"faculty"`
	Semester                   int                      `json:"semester"`
	ContainsPracticalOrProject bool                     `json:"containsPracticalOrProject"`
	HaveAssistants             bool                     `json:"haveAssistants"`
	MidTerm                    float64                  `json:"midTerm"`
	FinalExam                  float64                  `json:"finalExam"`
	Quizzes                    float64                  `json:"quizzes"`
	Practical                  *float64                 `json:"practical"`
	TotalMarks                 float64                  `json:"totalMarks"`
	Departments                ValueList[DepartmentRef] `json:"departments"`
}

// Department mirrors the API's DepartmentDTO. Get and delete both take the
// full DTO in the request body.
type Department struct {
	DepartmentID string `json:"departmentId"`
	Name         string `json:"name"`
	Faculty      string `json:"faculty"`
}

// StudentDegree is one course row in a degree listing: the course's mark
// distribution alongside the student's earned marks. Field casing is the
// server's.
type StudentDegree struct {
	Name                       string   `json:"name"`
	Email                      string   `json:"email"`
	CreditHours                int      `json:"creditHours"`
	ContainsPracticalOrProject bool     `json:"containsPracticalOrProject"`
	CourseMidTerm              float64  `json:"courseMidTerm"`
	CourseFinalExam            float64  `json:"courseFinalExam"`
	CourseQuizzes              float64  `json:"courseQuizzes"`
	CoursePractical            *float64 `json:"coursePractical"`
	CourseTotalMarks           float64  `json:"courseTotalMarks"`
	StudentMidTerm             float64  `json:"studentMidTerm"`
	StudentFinalExam           float64  `json:"studentFinalExam"`
	StudentQuizzes             float64  `json:"studentQuizzes"`
	StudentPractical           float64  `json:"studentPractical"`
	StudentTotalMarks          float64  `json:"studentTotalMarks"`
}

// SemesterDegrees is the response of Student/get/degrees/{email}/{semester}.
type SemesterDegrees struct {
	Courses ValueList[StudentDegree] `json:"courses"`
}

// DegreeUpdate is the payload for degree edits by a doctor or assistant.
// Key casing is the server's (PascalCase, unlike the rest of the API).
type DegreeUpdate struct {
	Email     string  `json:"Email"`
	MidTerm   float64 `json:"MidTerm"`
	FinalExam float64 `json:"FinalExam"`
	Quizzes   float64 `json:"Quizzes"`
	Practical float64 `json:"Practical"`
}

// GPAResponse is the response of Student/GetGPA/{email}/{semester}.
type GPAResponse struct {
	GPA float64 `json:"gpa"`
}

// CGPAResponse is the response of Student/GetCGPA/{email}.
type CGPAResponse struct {
	CGPA float64 `json:"cgpa"`
}

// ValueList unwraps .NET reference-preserving JSON, where arrays arrive as
// {"$values": [...]}. Plain arrays are accepted too so the client keeps
// working if the server drops the wrapper.
type ValueList[T any] []T

func (l *ValueList[T]) UnmarshalJSON(b []byte) error {
	var plain []T
	if err := json.Unmarshal(b, &plain); err == nil {
		*l = plain
		return nil
	}

	var wrapped struct {
		Values []T `json:"$values"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	*l = wrapped.Values
	return nil
}

// MarshalJSON always emits a plain array; the wrapper is a response-side quirk.
func (l ValueList[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(l))
}
