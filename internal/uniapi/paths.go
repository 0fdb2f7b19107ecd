package uniapi

// Path table for the university API. Paths and casing are dictated by the
// server and must not be normalized.
const (
	pathLogin          = "Home/login"
	pathRefresh        = "Home/refresh"
	pathResetPassword  = "Home/reset-password"
	pathSendResetEmail = "Home/send-reset-email/"

	pathStudentByEmail         = "Student/"
	pathAvailableCourses       = "Student/available-courses/"
	pathRegisterCourses        = "Student/register-courses/"
	pathMarkRegisteredCourses  = "Student/hasRegisteredCourses/"
	pathStudentSemesterDegrees = "Student/get/degrees/"
	pathStudentGPA             = "Student/GetGPA/"
	pathStudentCGPA            = "Student/GetCGPA/"

	pathDoctorCourses        = "Doctor/GetCoursesForDoctor/"
	pathDoctorCourseStudents = "Doctor/GetStudentsByCourse/"
	pathDoctorStudentDegrees = "Doctor/GetStudentsDegreesForCourse/"
	pathDoctorUpdateDegrees  = "Doctor/EditStudentDegreesForDoctor/"

	pathAssistantCourses        = "Assistant/GetCoursesForAssistant/"
	pathAssistantCourseStudents = "Assistant/GetStudentsByCourse/"
	pathAssistantStudentDegrees = "Assistant/GetStudentsDegreesForCourse/"
	pathAssistantUpdateDegrees  = "Assistant/EditStudentDegreesForAssistant/"

	pathCreateAdmin      = "Employee/add/employee"
	pathCreateStudent    = "Employee/add/student"
	pathCreateDoctor     = "Employee/add/doctor"
	pathCreateAssistant  = "Employee/add/assistant"
	pathCreateCourse     = "Employee/add/course"
	pathCreateDepartment = "Employee/add/department"

	pathGetAdmin      = "Employee/get/employee/"
	pathGetStudent    = "Employee/get/student/"
	pathGetDoctor     = "Employee/get/doctor/"
	pathGetAssistant  = "Employee/get/assistant/"
	pathGetCourse     = "Employee/get/course/"
	pathGetDepartment = "Employee/get/department"

	pathAllAdmins                = "Employee/get/allAdmins/"
	pathAllStudents              = "Employee/get/allStudents/"
	pathAllDoctors               = "Employee/get/allDoctors/"
	pathAllAssistants            = "Employee/get/allAssistants/"
	pathAllCourses               = "Employee/get/allCourses/"
	pathCoursesBySemester        = "Employee/get/coursesBySemester/"
	pathCoursesByName            = "Employee/get/coursesByName/"
	pathCoursesBySemesterAndName = "Employee/get/coursesByNameAndSemester/"
	pathAllAssistantCourses      = "Employee/get/allCoursesForAssistants/"
	pathAllDepartments           = "Employee/get/allDepartments/"

	pathUpdateAdmin      = "Employee/update/employee"
	pathUpdateStudent    = "Employee/update/student"
	pathUpdateDoctor     = "Employee/update/doctor"
	pathUpdateAssistant  = "Employee/update/assistant"
	pathUpdateCourse     = "Employee/update/course"
	pathUpdateDepartment = "Employee/update/department"

	pathDeleteAdmin      = "Employee/delete/employee/"
	pathDeleteStudent    = "Employee/delete/student/"
	pathDeleteDoctor     = "Employee/delete/doctor/"
	pathDeleteAssistant  = "Employee/delete/assistant/"
	pathDeleteCourse     = "Employee/delete/course/"
	pathDeleteDepartment = "Employee/delete/department"
)
