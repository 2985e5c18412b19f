package catalog

import (
	"context"

	"github.com/poiesic/matchit/core"
)

// Repository provides access to the catalog document store.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FetchCollection retrieves every record in the named collection in
	// stable storage order. Records in geo-enabled collections that
	// carry a location arrive with DistanceKm already derived against
	// the repository origin.
	FetchCollection(ctx context.Context, collection core.Collection) ([]*core.CatalogItem, error)

	// AddItems stores catalog items, assigning content-based IDs to
	// items with ID zero. Items failing validation are rejected.
	// Returns the stored items with IDs populated.
	AddItems(ctx context.Context, items ...*core.CatalogItem) ([]*core.CatalogItem, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
