package service

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

func TestGradebookDispatchesByRole(t *testing.T) {
	t.Parallel()

	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	factory, store := newTestFactory(t, srv)
	svc := NewGradebookService(GradebookServiceOptions{Clients: factory})

	doctorCtx := sessionContext(t, store, domainauth.Session{
		ID: "sess-d", Email: "doc@uni.edu", Role: domainauth.RoleDoctor,
		AccessToken: "tok-d", RefreshToken: "ref-d",
	})
	assistantCtx := sessionContext(t, store, domainauth.Session{
		ID: "sess-a", Email: "ta@uni.edu", Role: domainauth.RoleAssistant,
		AccessToken: "tok-a", RefreshToken: "ref-a",
	})

	_, err := svc.Courses(doctorCtx)
	require.NoError(t, err)
	_, err = svc.Courses(assistantCtx)
	require.NoError(t, err)
	_, err = svc.CourseStudents(doctorCtx, "C1")
	require.NoError(t, err)
	_, err = svc.StudentDegrees(assistantCtx, "C1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/Doctor/GetCoursesForDoctor/doc@uni.edu",
		"/api/Assistant/GetCoursesForAssistant/ta@uni.edu",
		"/api/Doctor/GetStudentsByCourse/C1",
		"/api/Assistant/GetStudentsDegreesForCourse/ta@uni.edu/C1",
	}, paths)
}

func TestGradebookRejectsStudents(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the API")
	}))
	defer srv.Close()

	factory, store := newTestFactory(t, srv)
	ctx := sessionContext(t, store, studentSession())
	svc := NewGradebookService(GradebookServiceOptions{Clients: factory})

	_, err := svc.Courses(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
}

func TestGradebookUpdateDegrees(t *testing.T) {
	t.Parallel()

	var doctorBody, assistantBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/Doctor/EditStudentDegreesForDoctor/doc@uni.edu/C1", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&doctorBody))
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("PUT /api/Assistant/EditStudentDegreesForAssistant/ta@uni.edu/C1", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&assistantBody))
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	factory, store := newTestFactory(t, srv)
	svc := NewGradebookService(GradebookServiceOptions{Clients: factory})

	doctorCtx := sessionContext(t, store, domainauth.Session{
		ID: "sess-d", Email: "doc@uni.edu", Role: domainauth.RoleDoctor,
		AccessToken: "tok-d", RefreshToken: "ref-d",
	})
	update := uniapi.DegreeUpdate{Email: "aya@uni.edu", MidTerm: 25, FinalExam: 45, Quizzes: 18, Practical: 10}
	require.NoError(t, svc.UpdateDegrees(doctorCtx, "C1", update))
	assert.Equal(t, "aya@uni.edu", doctorBody["Email"])

	assistantCtx := sessionContext(t, store, domainauth.Session{
		ID: "sess-a", Email: "ta@uni.edu", Role: domainauth.RoleAssistant,
		AccessToken: "tok-a", RefreshToken: "ref-a",
	})
	require.NoError(t, svc.UpdateDegrees(assistantCtx, "C1", update))
	assert.NotNil(t, assistantBody)

	err := svc.UpdateDegrees(doctorCtx, "", update)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	err = svc.UpdateDegrees(doctorCtx, "C1", uniapi.DegreeUpdate{})
	require.Error(t, err)
	assert.Equal(t, "Email", apperrors.GetField(err))
}
