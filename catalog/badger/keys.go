package badger

import (
	"fmt"

	"github.com/poiesic/matchit/core"
)

// Key prefixes for catalog data
const catalogItemPrefix = "catitem"

// makeItemKey generates a key for a catalog item by collection and ID.
// Format: catitem:<collection>:<id>
func makeItemKey(collection core.Collection, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%020d", catalogItemPrefix, collection, id))
}

// makeCollectionPrefix generates the iteration prefix for a collection.
func makeCollectionPrefix(collection core.Collection) []byte {
	return []byte(fmt.Sprintf("%s:%s:", catalogItemPrefix, collection))
}
