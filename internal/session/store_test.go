package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreForTest(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, "", time.Hour), mr
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := newStoreForTest(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &Record{
		ID:          "sid-1",
		UserID:      "user-1",
		Email:       "user@example.com",
		AccessToken: "token-abc",
	}))

	record, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "user-1", record.UserID)
	assert.Equal(t, "token-abc", record.AccessToken)
	assert.False(t, record.ExpiresAt.IsZero(), "default TTL is applied")
}

func TestStorePutRequiresID(t *testing.T) {
	store, _ := newStoreForTest(t)
	assert.Error(t, store.Put(context.Background(), &Record{UserID: "user-1"}))
}

func TestStoreGetMissing(t *testing.T) {
	store, _ := newStoreForTest(t)

	record, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestStoreDelete(t *testing.T) {
	store, _ := newStoreForTest(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &Record{ID: "sid-1", UserID: "user-1"}))
	require.NoError(t, store.Delete(ctx, "sid-1"))

	record, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestStoreExpiryInRedis(t *testing.T) {
	store, mr := newStoreForTest(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &Record{ID: "sid-1", UserID: "user-1"}))

	mr.FastForward(2 * time.Hour)

	record, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, record)
}
