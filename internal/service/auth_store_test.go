package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
	"github.com/uniportal/uni-ui-api/internal/mocks"
	"github.com/uniportal/uni-ui-api/internal/uniapi"
)

func TestAuthServiceLoginStoreFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("redis: connection refused"))

	access := signedToken(t, jwt.MapClaims{
		"email": "aya@uni.edu",
		"role":  "Student",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	api := &fakeAuthAPI{
		loginFn: func(context.Context, uniapi.LoginRequest) (uniapi.LoginResponse, error) {
			return uniapi.LoginResponse{AccessToken: access, RefreshToken: "ref-1"}, nil
		},
	}
	svc := NewAuthService(AuthServiceOptions{Sessions: store, API: api})

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "aya@uni.edu",
		Password: "secret",
		Role:     domainauth.RoleStudent,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.GetCode(err))
}

func TestAuthServiceLogoutDeletesStoredSession(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Delete(gomock.Any(), "sid-1").Return(nil)

	svc := NewAuthService(AuthServiceOptions{Sessions: store, API: &fakeAuthAPI{}})
	require.NoError(t, svc.Logout(context.Background(), "sid-1"))
}

func TestAuthServiceLogoutStoreFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Delete(gomock.Any(), "sid-1").Return(errors.New("redis: connection refused"))

	svc := NewAuthService(AuthServiceOptions{Sessions: store, API: &fakeAuthAPI{}})
	err := svc.Logout(context.Background(), "sid-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.GetCode(err))
}

func TestAuthServiceGetSessionDelegatesToStore(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Get(gomock.Any(), "sid-1").
		Return(domainauth.Session{ID: "sid-1", Email: "aya@uni.edu"}, nil)

	svc := NewAuthService(AuthServiceOptions{Sessions: store, API: &fakeAuthAPI{}})
	sess, err := svc.GetSession(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "aya@uni.edu", sess.Email)
}
