// Package store provides the persistence layer consumed by the conversion
// engine. The engine treats it purely as a sink/source and never assumes
// transactional atomicity across calls.
package store

import (
	"context"
	"errors"

	"github.com/xbklairith/postgirl-sub001/pkg/collection"
)

// Common errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidID     = errors.New("invalid id")
)

// CollectionStore handles collection and request persistence.
type CollectionStore interface {
	// CreateCollection persists a new collection.
	CreateCollection(ctx context.Context, c *collection.Collection) error

	// GetCollection returns a collection by ID, or ErrNotFound.
	GetCollection(ctx context.Context, id string) (*collection.Collection, error)

	// ListCollections returns all collections in a workspace.
	ListCollections(ctx context.Context, workspaceID string) ([]*collection.Collection, error)

	// CreateRequest persists a new request.
	CreateRequest(ctx context.Context, r *collection.Request) error

	// ListRequests returns a collection's requests in insertion order.
	ListRequests(ctx context.Context, collectionID string) ([]*collection.Request, error)
}

// EnvironmentStore handles environment persistence.
type EnvironmentStore interface {
	// CreateEnvironment persists a new environment.
	CreateEnvironment(ctx context.Context, e *collection.Environment) error

	// ListEnvironments returns all environments in a workspace.
	ListEnvironments(ctx context.Context, workspaceID string) ([]*collection.Environment, error)
}
