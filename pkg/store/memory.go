package store

import (
	"context"
	"sync"

	"github.com/xbklairith/postgirl-sub001/pkg/collection"
)

// MemoryStore is a thread-safe in-memory implementation of CollectionStore
// and EnvironmentStore. Requests keep insertion order per collection.
type MemoryStore struct {
	mu           sync.RWMutex
	collections  map[string]*collection.Collection
	requests     map[string][]*collection.Request // keyed by collection ID
	environments map[string]*collection.Environment
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections:  make(map[string]*collection.Collection),
		requests:     make(map[string][]*collection.Request),
		environments: make(map[string]*collection.Environment),
	}
}

// CreateCollection persists a new collection.
func (s *MemoryStore) CreateCollection(_ context.Context, c *collection.Collection) error {
	if c == nil || c.ID == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.collections[c.ID]; exists {
		return ErrAlreadyExists
	}
	s.collections[c.ID] = c
	return nil
}

// GetCollection returns a collection by ID, or ErrNotFound.
func (s *MemoryStore) GetCollection(_ context.Context, id string) (*collection.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

// ListCollections returns all collections in a workspace.
func (s *MemoryStore) ListCollections(_ context.Context, workspaceID string) ([]*collection.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*collection.Collection, 0)
	for _, c := range s.collections {
		if workspaceID == "" || c.WorkspaceID == workspaceID {
			result = append(result, c)
		}
	}
	return result, nil
}

// CreateRequest persists a new request under its collection.
func (s *MemoryStore) CreateRequest(_ context.Context, r *collection.Request) error {
	if r == nil || r.ID == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.collections[r.CollectionID]; !exists {
		return ErrNotFound
	}
	s.requests[r.CollectionID] = append(s.requests[r.CollectionID], r)
	return nil
}

// ListRequests returns a collection's requests in insertion order.
func (s *MemoryStore) ListRequests(_ context.Context, collectionID string) ([]*collection.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reqs := s.requests[collectionID]
	result := make([]*collection.Request, len(reqs))
	copy(result, reqs)
	return result, nil
}

// CreateEnvironment persists a new environment.
func (s *MemoryStore) CreateEnvironment(_ context.Context, e *collection.Environment) error {
	if e == nil || e.ID == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.environments[e.ID]; exists {
		return ErrAlreadyExists
	}
	s.environments[e.ID] = e
	return nil
}

// ListEnvironments returns all environments in a workspace.
func (s *MemoryStore) ListEnvironments(_ context.Context, workspaceID string) ([]*collection.Environment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*collection.Environment, 0)
	for _, e := range s.environments {
		if workspaceID == "" || e.WorkspaceID == workspaceID {
			result = append(result, e)
		}
	}
	return result, nil
}
