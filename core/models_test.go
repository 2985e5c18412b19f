package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, IDFromContent("color: red"), IDFromContent("color: red"))
	})

	t.Run("distinct content distinct ids", func(t *testing.T) {
		assert.NotEqual(t, IDFromContent("color: red"), IDFromContent("color: blue"))
	})
}

func TestCollectionMatches(t *testing.T) {
	tests := []struct {
		name       string
		collection Collection
		typ        string
		want       bool
	}{
		{"exact singular", CollectionShops, "shop", true},
		{"exact plural", CollectionShops, "shops", true},
		{"uppercase", CollectionItems, "ITEM", true},
		{"type contains singular", CollectionShops, "coffee shop", true},
		{"singular contains type", CollectionServices, "service", true},
		{"unrelated", CollectionJobs, "shop", false},
		{"empty type", CollectionJobs, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.collection.Matches(tt.typ))
		})
	}
}

func TestCollectionGeo(t *testing.T) {
	assert.True(t, CollectionShops.Geo())
	assert.True(t, CollectionEvents.Geo())
	assert.True(t, CollectionJobs.Geo())
	assert.False(t, CollectionItems.Geo())
	assert.False(t, CollectionServices.Geo())
}

func TestScanOrder(t *testing.T) {
	order := ScanOrder()
	assert.Equal(t, []Collection{
		CollectionJobs,
		CollectionItems,
		CollectionEvents,
		CollectionShops,
		CollectionServices,
	}, order)
}

func TestAttributesText(t *testing.T) {
	t.Run("sorted and joined", func(t *testing.T) {
		a := Attributes{"type": "jacket", "color": "red"}
		assert.Equal(t, "color: red, type: jacket", a.Text())
	})

	t.Run("empty values skipped", func(t *testing.T) {
		a := Attributes{"color": "red", "size": ""}
		assert.Equal(t, "color: red", a.Text())
	})

	t.Run("empty map", func(t *testing.T) {
		assert.Equal(t, "", Attributes{}.Text())
		assert.Equal(t, "", Attributes(nil).Text())
	})
}

func TestAttributesSimplified(t *testing.T) {
	t.Run("keeps type and color", func(t *testing.T) {
		a := Attributes{"type": "shop", "color": "red", "size": "large", "material": "wool"}
		simplified := a.Simplified("red wool jacket")
		assert.Equal(t, Attributes{
			"type":  "shop",
			"color": "red",
			"query": "red wool jacket",
		}, simplified)
	})

	t.Run("query only when nothing else present", func(t *testing.T) {
		simplified := Attributes{"size": "small"}.Simplified("small thing")
		assert.Equal(t, Attributes{"query": "small thing"}, simplified)
	})
}

func TestAttributesMaxDistanceKm(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
		want  float64
	}{
		{"absent", Attributes{}, 10},
		{"numeric", Attributes{"distance": "5"}, 5},
		{"decimal", Attributes{"distance": "2.5"}, 2.5},
		{"with unit", Attributes{"distance": "5 km"}, 5},
		{"garbage", Attributes{"distance": "nearby"}, 10},
		{"negative", Attributes{"distance": "-3"}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.attrs.MaxDistanceKm(10))
		})
	}
}

func TestCatalogItemRoundTrip(t *testing.T) {
	item := CatalogItem{
		Id:          IDFromContent("color: red, type: jacket"),
		Collection:  CollectionShops,
		Attributes:  Attributes{"name": "corner store", "color": "red"},
		Latitude:    13.04182,
		Longitude:   77.528481,
		HasLocation: true,
		DistanceKm:  3.2, // derived, must not survive the round trip
	}

	buf := make([]byte, CatalogItemMUS.Size(item))
	n := CatalogItemMUS.Marshal(item, buf)
	assert.Equal(t, len(buf), n)

	decoded, read, err := CatalogItemMUS.Unmarshal(buf)
	assert.NoError(t, err)
	assert.Equal(t, n, read)
	assert.Equal(t, item.Id, decoded.Id)
	assert.Equal(t, item.Collection, decoded.Collection)
	assert.Equal(t, item.Attributes, decoded.Attributes)
	assert.Equal(t, item.Latitude, decoded.Latitude)
	assert.Equal(t, item.Longitude, decoded.Longitude)
	assert.True(t, decoded.HasLocation)
	assert.Zero(t, decoded.DistanceKm)
}
