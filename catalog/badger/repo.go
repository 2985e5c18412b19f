package badger

import (
	"context"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/matchit/catalog"
	"github.com/poiesic/matchit/core"
	"github.com/poiesic/matchit/geo"
)

// DefaultOrigin is the reference coordinate distances are derived
// against when no origin is configured.
var DefaultOrigin = geo.Origin{Lat: 13.041820, Lon: 77.528481}

// Repository implements catalog.Repository for BadgerDB.
type Repository struct {
	backend *Backend
	origin  geo.Origin
	logger  *slog.Logger
}

var _ catalog.Repository = (*Repository)(nil)

// RepositoryOption configures a Repository.
type RepositoryOption func(*Repository)

// WithOrigin sets the coordinate item distances are derived against.
// Default is DefaultOrigin.
func WithOrigin(origin geo.Origin) RepositoryOption {
	return func(r *Repository) {
		r.origin = origin
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) RepositoryOption {
	return func(r *Repository) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRepository creates a catalog repository over an open backend.
func NewRepository(backend *Backend, opts ...RepositoryOption) (*Repository, error) {
	if backend == nil {
		return nil, catalog.ErrBackendRequired
	}

	r := &Repository{
		backend: backend,
		origin:  DefaultOrigin,
		logger:  slog.Default().With("component", "catalog-badger"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Close is a no-op; the backend owns the database lifecycle.
func (r *Repository) Close() error {
	return nil
}

// AddItems stores catalog items, assigning content-based IDs to items
// with ID zero.
func (r *Repository) AddItems(ctx context.Context, items ...*core.CatalogItem) ([]*core.CatalogItem, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, item := range items {
			if err := item.Validate(); err != nil {
				return err
			}
			if item.Id == 0 {
				item.Id = core.IDFromContent(string(item.Collection) + "|" + item.Attributes.Text())
			}

			key := makeItemKey(item.Collection, item.Id)
			if err := tx.Set(key, catalog.MarshalCatalogItem(item)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FetchCollection retrieves every record in the named collection in
// key order. Geo-enabled items with a location get DistanceKm derived
// against the repository origin before they are returned.
func (r *Repository) FetchCollection(ctx context.Context, collection core.Collection) ([]*core.CatalogItem, error) {
	if !core.ValidCollection(collection) {
		return nil, core.ErrUnknownCollection
	}

	var items []*core.CatalogItem
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := makeCollectionPrefix(collection)
		opts.Prefix = prefix

		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(value []byte) error {
				item, err := catalog.UnmarshalCatalogItem(value)
				if err != nil {
					return err
				}
				items = append(items, item)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	if collection.Geo() {
		for _, item := range items {
			if item.HasLocation {
				item.DistanceKm = r.origin.DistanceTo(item.Latitude, item.Longitude)
			}
		}
	}

	r.logger.Debug("fetched collection", "collection", collection, "items", len(items))
	return items, nil
}
