package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogItemValidate(t *testing.T) {
	valid := func() *CatalogItem {
		return &CatalogItem{
			Collection: CollectionItems,
			Attributes: Attributes{"type": "jacket", "color": "red"},
		}
	}

	t.Run("valid item", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("unknown collection", func(t *testing.T) {
		item := valid()
		item.Collection = "gadgets"
		assert.ErrorIs(t, item.Validate(), ErrUnknownCollection)
	})

	t.Run("no attributes", func(t *testing.T) {
		item := valid()
		item.Attributes = nil
		assert.ErrorIs(t, item.Validate(), ErrEmptyAttributes)
	})

	t.Run("all attribute values empty", func(t *testing.T) {
		item := valid()
		item.Attributes = Attributes{"color": ""}
		assert.ErrorIs(t, item.Validate(), ErrEmptyAttributes)
	})

	t.Run("valid location", func(t *testing.T) {
		item := valid()
		item.Collection = CollectionShops
		item.HasLocation = true
		item.Latitude = 13.04182
		item.Longitude = 77.528481
		assert.NoError(t, item.Validate())
	})

	t.Run("latitude out of range", func(t *testing.T) {
		item := valid()
		item.Collection = CollectionShops
		item.HasLocation = true
		item.Latitude = 91
		assert.ErrorIs(t, item.Validate(), ErrInvalidCoordinates)
	})

	t.Run("longitude out of range", func(t *testing.T) {
		item := valid()
		item.Collection = CollectionShops
		item.HasLocation = true
		item.Longitude = -181
		assert.ErrorIs(t, item.Validate(), ErrInvalidCoordinates)
	})
}

func TestValidCollection(t *testing.T) {
	for _, c := range ScanOrder() {
		assert.True(t, ValidCollection(c), string(c))
	}
	assert.False(t, ValidCollection("people"))
}
