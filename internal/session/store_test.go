package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/uniportal/uni-ui-api/internal/domain/auth"
)

func testSession(id string) domainauth.Session {
	return domainauth.Session{
		ID:           id,
		Email:        "a@x.com",
		Role:         domainauth.RoleAdmin,
		Faculty:      "Faculty of Science",
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		CreatedAt:    time.Now(),
	}
}

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	require.NoError(t, store.Save(ctx, testSession("s1")))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "access-1", got.AccessToken)
	assert.Equal(t, "refresh-1", got.RefreshToken)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.True(t, errors.Is(err, ErrNotFound))

	// Delete is idempotent.
	require.NoError(t, store.Delete(ctx, "s1"))
	require.NoError(t, store.Delete(ctx, ""))
}

func TestMemoryStore_SaveReplacesTokenPairAtomically(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(0)

	sess := testSession("s1")
	require.NoError(t, store.Save(ctx, sess))

	sess.AccessToken = "access-2"
	sess.RefreshToken = "refresh-2"
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "access-2", got.AccessToken)
	assert.Equal(t, "refresh-2", got.RefreshToken)
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewMemoryStore(time.Millisecond)

	require.NoError(t, store.Save(ctx, testSession("s1")))
	time.Sleep(5 * time.Millisecond)

	_, err := store.Get(ctx, "s1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_RejectsEmptyID(t *testing.T) {
	t.Parallel()
	store := NewMemoryStore(0)
	require.Error(t, store.Save(context.Background(), domainauth.Session{}))
	_, err := store.Get(context.Background(), "")
	assert.True(t, errors.Is(err, ErrNotFound))
}
