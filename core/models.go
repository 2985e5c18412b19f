package core

import (
	"encoding/binary"
	"sort"
	"strconv"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Collection names a catalog category. Every catalog item belongs to
// exactly one collection.
type Collection string

const (
	CollectionJobs     Collection = "jobs"
	CollectionItems    Collection = "items"
	CollectionEvents   Collection = "events"
	CollectionShops    Collection = "shops"
	CollectionServices Collection = "services"
)

// ScanOrder returns the collections in their fixed default scan order.
// Callers must not mutate the returned slice.
func ScanOrder() []Collection {
	return []Collection{
		CollectionJobs,
		CollectionItems,
		CollectionEvents,
		CollectionShops,
		CollectionServices,
	}
}

// Geo reports whether items in the collection carry coordinates and
// participate in distance scoring.
func (c Collection) Geo() bool {
	switch c {
	case CollectionShops, CollectionEvents, CollectionJobs:
		return true
	}
	return false
}

// Singular returns the collection name with the plural 's' trimmed.
func (c Collection) Singular() string {
	return strings.TrimSuffix(string(c), "s")
}

// Matches reports whether a requested type refers to this collection.
// The comparison is case-insensitive and tolerates partial forms in
// either direction, so "shop", "shops" and "coffee shop" all match
// the shops collection.
func (c Collection) Matches(typ string) bool {
	if typ == "" {
		return false
	}
	typ = strings.ToLower(typ)
	singular := strings.ToLower(c.Singular())
	return strings.Contains(typ, singular) || strings.Contains(singular, typ)
}

// Attributes is a flat mapping of semantic attribute names to scalar
// values. It is produced once per query by attribute extraction and
// per item at catalog ingestion, and is not mutated afterwards.
type Attributes map[string]string

/// Text renders the attributes as "key: value" pairs joined by ", ".
// Keys are sorted so the same attribute set always produces the same
// text, which keeps embedding cache keys stable.
func (a Attributes) Text() string {
	if len(a) == 0 {
		return ""
	}
	keys := make([]string, 0, len(a))
	for key, value := range a {
		if value == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, key := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(a[key])
	}
	return sb.String()
}

// Simplified returns a reduced attribute set for the relaxation pass:
// only type and color survive, plus the raw query text.
func (a Attributes) Simplified(query string) Attributes {
	simplified := Attributes{}
	if typ, ok := a["type"]; ok && typ != "" {
		simplified["type"] = typ
	}
	if color, ok := a["color"]; ok && color != "" {
		simplified["color"] = color
	}
	simplified["query"] = query
	return simplified
}

// MaxDistanceKm parses the "distance" attribute as kilometers,
// returning def when the attribute is absent or not a number.
func (a Attributes) MaxDistanceKm(def float64) float64 {
	raw, ok := a["distance"]
	if !ok {
		return def
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "km")), 64)
	if err != nil || value < 0 {
		return def
	}
	return value
}

// CatalogItem is a single record in one catalog collection.
// DistanceKm is derived against the repository origin at fetch time
// and is never persisted.
type CatalogItem struct {
	Id          ID
	Collection  Collection
	Attributes  Attributes
	Latitude    float64
	Longitude   float64
	HasLocation bool
	DistanceKm  float64
}

// Match pairs a catalog item with its similarity scores for one query.
// Matches are immutable once created and ordered by AdjustedSimilarity
// descending, encounter order on ties.
type Match struct {
	Collection         Collection
	Item               *CatalogItem
	Similarity         float32 // base cosine similarity
	AdjustedSimilarity float32 // similarity plus heuristic boosts
	DistanceKm         float64
}

// MatchResult is the externally visible outcome of handling a prompt.
type MatchResult struct {
	Message string
	Items   []Match // at most three, best first
	Error   bool
}
