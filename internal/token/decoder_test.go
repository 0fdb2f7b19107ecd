package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
)

// signToken builds a token with the university API's claim layout. The signing
// key is irrelevant because decoding never verifies signatures.
func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return raw
}

func TestDecode_Claims(t *testing.T) {
	t.Parallel()
	raw := signToken(t, jwt.MapClaims{
		"email":   "a@x.com",
		"role":    "Student",
		"Faculty": "Faculty of Science",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	claims, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, domainauth.RoleStudent, claims.Role)
	assert.Equal(t, "Faculty of Science", claims.Faculty)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestDecode_Empty(t *testing.T) {
	t.Parallel()
	_, err := Decode("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoToken))
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()
	_, err := Decode("not.a.token")
	require.Error(t, err)
}

func TestIsExpired(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		expired bool
	}{
		{
			name:    "absent token",
			token:   func(*testing.T) string { return "" },
			expired: true,
		},
		{
			name:    "malformed token",
			token:   func(*testing.T) string { return "garbage" },
			expired: true,
		},
		{
			name: "exp in the past",
			token: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
			},
			expired: true,
		},
		{
			name: "exp in the future",
			token: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
			},
			expired: false,
		},
		{
			name: "no exp claim fails closed",
			token: func(t *testing.T) string {
				return signToken(t, jwt.MapClaims{"email": "a@x.com"})
			},
			expired: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expired, IsExpired(tt.token(t)))
		})
	}
}
