package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/mcdev12/gridlock/internal/draft/engine"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client)
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestRedis(t)
	d := testDraft()

	require.NoError(t, s.CreateDraft(ctx, d))

	got, err := s.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, 1, got.Version)
	assert.Len(t, got.Picks, 2)
}

func TestRedisGetUnknownDraft(t *testing.T) {
	s := newTestRedis(t)

	_, err := s.GetDraft(context.Background(), uuid.New())
	assert.ErrorIs(t, err, engine.ErrDraftNotFound)
}

func TestRedisCreateDuplicate(t *testing.T) {
	ctx := context.Background()
	s := newTestRedis(t)
	d := testDraft()

	require.NoError(t, s.CreateDraft(ctx, d))
	assert.Error(t, s.CreateDraft(ctx, d))
}

func TestRedisConditionalUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestRedis(t)
	d := testDraft()
	require.NoError(t, s.CreateDraft(ctx, d))

	d.CurrentIndex = 1
	require.NoError(t, s.UpdateDraft(ctx, d, 1))
	assert.Equal(t, 2, d.Version)

	stale := testDraft()
	stale.ID = d.ID
	err := s.UpdateDraft(ctx, stale, 1)
	assert.ErrorIs(t, err, engine.ErrVersionConflict)
	assert.Equal(t, 1, stale.Version, "losing write keeps its local version")

	got, err := s.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentIndex)
	assert.Equal(t, 2, got.Version)
}

func TestRedisUpdateUnknownDraft(t *testing.T) {
	s := newTestRedis(t)
	d := testDraft()

	err := s.UpdateDraft(context.Background(), d, 1)
	assert.ErrorIs(t, err, engine.ErrDraftNotFound)
}

func TestRedisKeyPrefix(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s := NewRedis(client, WithPrefix("custom:"))
	d := testDraft()
	require.NoError(t, s.CreateDraft(ctx, d))

	assert.True(t, mr.Exists("custom:"+d.ID.String()))
}
