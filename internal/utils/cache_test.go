package utils

import (
	"context"
	"testing"
	"time"

	"github.com/QuangLP2607/DATN-final-sub001/internal/utils/types"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mockRedis := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	t.Cleanup(func() { client.Close() })
	return mockRedis, client
}

func TestCache_RoundTrip(t *testing.T) {
	_, client := setupCache(t)
	ctx := context.Background()

	session := &types.LiveRoomSession{
		ClassID:   "class-1",
		RoomID:    "room-42",
		Token:     "signed-token",
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	require.NoError(t, SetCacheData(ctx, client, "liveroom:class-1", session, time.Minute))

	got, err := GetCacheData[types.LiveRoomSession](ctx, client, "liveroom:class-1")
	require.Nil(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "room-42", got.RoomID)
	assert.Equal(t, "signed-token", got.Token)
}

func TestCache_MissReturnsNil(t *testing.T) {
	_, client := setupCache(t)

	got, err := GetCacheData[types.LiveRoomSession](context.Background(), client, "liveroom:missing")
	require.Nil(t, err)
	assert.Nil(t, got, "a cache miss is not an error")
}

func TestCache_ExpiredEntryIsAbsent(t *testing.T) {
	mockRedis, client := setupCache(t)
	ctx := context.Background()

	session := &types.LiveRoomSession{ClassID: "class-1", RoomID: "room-42", Token: "tok"}
	require.NoError(t, SetCacheData(ctx, client, "liveroom:class-1", session, time.Second))

	mockRedis.FastForward(2 * time.Second)

	got, err := GetCacheData[types.LiveRoomSession](ctx, client, "liveroom:class-1")
	require.Nil(t, err)
	assert.Nil(t, got, "an expired entry reads as absent")
}

func TestCache_Delete(t *testing.T) {
	_, client := setupCache(t)
	ctx := context.Background()

	session := &types.LiveRoomSession{ClassID: "class-1"}
	require.NoError(t, SetCacheData(ctx, client, "liveroom:class-1", session, time.Minute))
	require.NoError(t, DeleteCacheData(ctx, client, "liveroom:class-1"))

	got, err := GetCacheData[types.LiveRoomSession](ctx, client, "liveroom:class-1")
	require.Nil(t, err)
	assert.Nil(t, got)
}
