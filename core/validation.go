package core

import "fmt"

// knownCollections is the fixed set of catalog collections.
var knownCollections = map[Collection]bool{
	CollectionJobs:     true,
	CollectionItems:    true,
	CollectionEvents:   true,
	CollectionShops:    true,
	CollectionServices: true,
}

// ValidCollection reports whether c is one of the five fixed collections.
func ValidCollection(c Collection) bool {
	return knownCollections[c]
}

// Validate checks a CatalogItem for storage.
// Items must belong to a known collection, have at least one non-empty
// attribute, and carry in-range coordinates when a location is set.
func (i *CatalogItem) Validate() error {
	if !ValidCollection(i.Collection) {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, i.Collection)
	}
	if i.Attributes.Text() == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCatalogItem, ErrEmptyAttributes)
	}
	if i.HasLocation {
		if i.Latitude < -90 || i.Latitude > 90 || i.Longitude < -180 || i.Longitude > 180 {
			return fmt.Errorf("%w: %w", ErrInvalidCatalogItem, ErrInvalidCoordinates)
		}
	}
	return nil
}
