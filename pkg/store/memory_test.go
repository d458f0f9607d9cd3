package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xbklairith/postgirl-sub001/pkg/collection"
)

func TestMemoryStoreCollections(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	col := collection.NewCollection("ws-1", "API", "")
	require.NoError(t, s.CreateCollection(ctx, col))

	got, err := s.GetCollection(ctx, col.ID)
	require.NoError(t, err)
	assert.Equal(t, col, got)

	assert.ErrorIs(t, s.CreateCollection(ctx, col), ErrAlreadyExists)

	_, err = s.GetCollection(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.CreateCollection(ctx, &collection.Collection{}), ErrInvalidID)
	assert.ErrorIs(t, s.CreateCollection(ctx, nil), ErrInvalidID)
}

func TestMemoryStoreListCollectionsByWorkspace(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.CreateCollection(ctx, collection.NewCollection("ws-1", "A", "")))
	require.NoError(t, s.CreateCollection(ctx, collection.NewCollection("ws-1", "B", "")))
	require.NoError(t, s.CreateCollection(ctx, collection.NewCollection("ws-2", "C", "")))

	ws1, err := s.ListCollections(ctx, "ws-1")
	require.NoError(t, err)
	assert.Len(t, ws1, 2)

	all, err := s.ListCollections(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	empty, err := s.ListCollections(ctx, "ws-3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStoreRequestsKeepInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	col := collection.NewCollection("ws", "API", "")
	require.NoError(t, s.CreateCollection(ctx, col))

	for i := 0; i < 5; i++ {
		r := collection.NewRequest(col.ID, fmt.Sprintf("req-%d", i))
		require.NoError(t, s.CreateRequest(ctx, r))
	}

	requests, err := s.ListRequests(ctx, col.ID)
	require.NoError(t, err)
	require.Len(t, requests, 5)
	for i, r := range requests {
		assert.Equal(t, fmt.Sprintf("req-%d", i), r.Name)
	}
}

func TestMemoryStoreRequestNeedsCollection(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	r := collection.NewRequest("missing-collection", "orphan")
	assert.ErrorIs(t, s.CreateRequest(ctx, r), ErrNotFound)

	requests, err := s.ListRequests(ctx, "missing-collection")
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestMemoryStoreEnvironments(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	env := collection.NewEnvironment("ws-1", "Staging")
	env.Variables["base_url"] = "https://staging.example.com"
	require.NoError(t, s.CreateEnvironment(ctx, env))
	assert.ErrorIs(t, s.CreateEnvironment(ctx, env), ErrAlreadyExists)

	other := collection.NewEnvironment("ws-2", "Prod")
	require.NoError(t, s.CreateEnvironment(ctx, other))

	envs, err := s.ListEnvironments(ctx, "ws-1")
	require.NoError(t, err)
	require.Len(t, envs, 1)
	assert.Equal(t, "Staging", envs[0].Name)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	col := collection.NewCollection("ws", "API", "")
	require.NoError(t, s.CreateCollection(ctx, col))

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				r := collection.NewRequest(col.ID, fmt.Sprintf("w%d-%d", n, j))
				_ = s.CreateRequest(ctx, r)
				_, _ = s.ListRequests(ctx, col.ID)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	requests, err := s.ListRequests(ctx, col.ID)
	require.NoError(t, err)
	assert.Len(t, requests, 8*50)
}
