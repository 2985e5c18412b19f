// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"sort"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the catalog types. The types are small and
// stable, so these are written by hand rather than generated.
var (
	IDMUS          = idMUS{}
	AttributesMUS  = attributesMUS{}
	CatalogItemMUS = catalogItemMUS{}
)

type idMUS struct{}

var _ mus.Serializer[ID] = idMUS{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

// attributesMUS serializes an Attributes map with sorted keys so the
// same map always produces the same bytes.
type attributesMUS struct{}

var _ mus.Serializer[Attributes] = attributesMUS{}

func (attributesMUS) Marshal(a Attributes, bs []byte) int {
	keys := sortedKeys(a)
	n := varint.Int.Marshal(len(keys), bs)
	for _, key := range keys {
		n += ord.String.Marshal(key, bs[n:])
		n += ord.String.Marshal(a[key], bs[n:])
	}
	return n
}

func (attributesMUS) Unmarshal(bs []byte) (Attributes, int, error) {
	count, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	a := make(Attributes, count)
	for i := 0; i < count; i++ {
		key, n1, err := ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return nil, n, err
		}
		value, n2, err := ord.String.Unmarshal(bs[n:])
		n += n2
		if err != nil {
			return nil, n, err
		}
		a[key] = value
	}
	return a, n, nil
}

func (attributesMUS) Size(a Attributes) int {
	size := varint.Int.Size(len(a))
	for key, value := range a {
		size += ord.String.Size(key)
		size += ord.String.Size(value)
	}
	return size
}

func (attributesMUS) Skip(bs []byte) (int, error) {
	count, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return n, err
	}
	for i := 0; i < 2*count; i++ {
		n1, err := ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// catalogItemMUS serializes a CatalogItem. DistanceKm is derived state
// and deliberately not part of the wire format.
type catalogItemMUS struct{}

var _ mus.Serializer[CatalogItem] = catalogItemMUS{}

func (catalogItemMUS) Marshal(item CatalogItem, bs []byte) int {
	n := IDMUS.Marshal(item.Id, bs)
	n += ord.String.Marshal(string(item.Collection), bs[n:])
	n += AttributesMUS.Marshal(item.Attributes, bs[n:])
	n += ord.Bool.Marshal(item.HasLocation, bs[n:])
	if item.HasLocation {
		n += raw.Float64.Marshal(item.Latitude, bs[n:])
		n += raw.Float64.Marshal(item.Longitude, bs[n:])
	}
	return n
}

func (catalogItemMUS) Unmarshal(bs []byte) (CatalogItem, int, error) {
	var item CatalogItem

	id, n, err := IDMUS.Unmarshal(bs)
	if err != nil {
		return item, n, err
	}
	item.Id = id

	collection, n1, err := ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return item, n, err
	}
	item.Collection = Collection(collection)

	attributes, n2, err := AttributesMUS.Unmarshal(bs[n:])
	n += n2
	if err != nil {
		return item, n, err
	}
	item.Attributes = attributes

	hasLocation, n3, err := ord.Bool.Unmarshal(bs[n:])
	n += n3
	if err != nil {
		return item, n, err
	}
	item.HasLocation = hasLocation

	if hasLocation {
		lat, n4, err := raw.Float64.Unmarshal(bs[n:])
		n += n4
		if err != nil {
			return item, n, err
		}
		lon, n5, err := raw.Float64.Unmarshal(bs[n:])
		n += n5
		if err != nil {
			return item, n, err
		}
		item.Latitude = lat
		item.Longitude = lon
	}
	return item, n, nil
}

func (catalogItemMUS) Size(item CatalogItem) int {
	size := IDMUS.Size(item.Id)
	size += ord.String.Size(string(item.Collection))
	size += AttributesMUS.Size(item.Attributes)
	size += ord.Bool.Size(item.HasLocation)
	if item.HasLocation {
		size += raw.Float64.Size(item.Latitude)
		size += raw.Float64.Size(item.Longitude)
	}
	return size
}

func (catalogItemMUS) Skip(bs []byte) (int, error) {
	n, err := IDMUS.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err := ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n2, err := AttributesMUS.Skip(bs[n:])
	n += n2
	if err != nil {
		return n, err
	}
	hasLocation, n3, err := ord.Bool.Unmarshal(bs[n:])
	n += n3
	if err != nil {
		return n, err
	}
	if hasLocation {
		n4, err := raw.Float64.Skip(bs[n:])
		n += n4
		if err != nil {
			return n, err
		}
		n5, err := raw.Float64.Skip(bs[n:])
		n += n5
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func sortedKeys(a Attributes) []string {
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
