package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/matchit/ai/mock"
	"github.com/poiesic/matchit/core"
	"github.com/poiesic/matchit/embedding"
)

// stubRepository serves fixed collections from memory.
type stubRepository struct {
	collections map[core.Collection][]*core.CatalogItem
	fetchErr    map[core.Collection]error
	fetches     []core.Collection
}

func (s *stubRepository) FetchCollection(_ context.Context, collection core.Collection) ([]*core.CatalogItem, error) {
	s.fetches = append(s.fetches, collection)
	if err := s.fetchErr[collection]; err != nil {
		return nil, err
	}
	return s.collections[collection], nil
}

func (s *stubRepository) AddItems(_ context.Context, items ...*core.CatalogItem) ([]*core.CatalogItem, error) {
	return items, nil
}

func (s *stubRepository) Close() error { return nil }

// mappedEmbedder returns fixed vectors per text and nil for unknown texts.
func mappedEmbedder(vectors map[string]embedding.Vector) *mock.MockEmbedder {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(_ context.Context, text string) (embedding.Vector, error) {
		return vectors[text], nil
	}
	return embedder
}

// withCosine returns a vector whose cosine similarity with {1, 0} is score.
// Built from 3-4-5 style right triangles to keep the arithmetic exact-ish.
func withCosine(score float64) embedding.Vector {
	other := 1.0 - score*score
	if other < 0 {
		other = 0
	}
	// Second component only affects magnitude, sign is irrelevant here.
	return embedding.Vector{float32(score), float32(sqrt(other))}
}

func sqrt(v float64) float64 {
	if v <= 0 {
		return 0
	}
	guess := v
	for i := 0; i < 40; i++ {
		guess = (guess + v/guess) / 2
	}
	return guess
}

var queryAxis = embedding.Vector{1, 0}

func TestEngineRequiresDependencies(t *testing.T) {
	repo := &stubRepository{}
	embedder := mock.NewMockEmbedder()

	_, err := NewEngine(nil, embedder)
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewEngine(repo, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewEngine(repo, embedder, WithPoolSize(0))
	assert.ErrorIs(t, err, ErrInvalidPoolSize)
}

func TestMatchEmptyAttributes(t *testing.T) {
	repo := &stubRepository{}
	embedder := mock.NewMockEmbedder()
	eng, err := NewEngine(repo, embedder)
	require.NoError(t, err)
	defer eng.Release()

	assert.Nil(t, eng.Match(context.Background(), nil))
	assert.Nil(t, eng.Match(context.Background(), core.Attributes{}))
	assert.Nil(t, eng.Match(context.Background(), core.Attributes{"type": ""}))

	// No embedding requests and no catalog reads for an empty request.
	assert.Equal(t, 0, embedder.CallCount())
	assert.Empty(t, repo.fetches)
}

func TestMatchCategoryAndColorBoost(t *testing.T) {
	item := &core.CatalogItem{
		Id:         1,
		Collection: core.CollectionItems,
		Attributes: core.Attributes{"color": "red", "name": "ball"},
	}
	repo := &stubRepository{
		collections: map[core.Collection][]*core.CatalogItem{
			core.CollectionItems: {item},
		},
	}
	attrs := core.Attributes{"color": "red", "type": "item"}
	embedder := mappedEmbedder(map[string]embedding.Vector{
		attrs.Text():           queryAxis,
		item.Attributes.Text(): withCosine(0.5),
	})

	eng, err := NewEngine(repo, embedder)
	require.NoError(t, err)
	defer eng.Release()

	matches := eng.Match(context.Background(), attrs)
	require.Len(t, matches, 1)
	// 0.5 base, +0.2 category, +0.15 color
	assert.InDelta(t, 0.5, matches[0].Similarity, 0.001)
	assert.InDelta(t, 0.85, matches[0].AdjustedSimilarity, 0.001)
	assert.Equal(t, core.CollectionItems, matches[0].Collection)
}

func TestMatchThresholdIsStrict(t *testing.T) {
	atThreshold := &core.CatalogItem{
		Id:         1,
		Collection: core.CollectionServices,
		Attributes: core.Attributes{"name": "plumber"},
	}
	above := &core.CatalogItem{
		Id:         2,
		Collection: core.CollectionServices,
		Attributes: core.Attributes{"name": "electrician"},
	}
	repo := &stubRepository{
		collections: map[core.Collection][]*core.CatalogItem{
			core.CollectionServices: {atThreshold, above},
		},
	}
	attrs := core.Attributes{"query": "someone to fix pipes"}
	embedder := mappedEmbedder(map[string]embedding.Vector{
		attrs.Text():                  queryAxis,
		atThreshold.Attributes.Text(): {3, 4}, // cosine 0.6 exactly
		above.Attributes.Text():       withCosine(0.61),
	})

	eng, err := NewEngine(repo, embedder)
	require.NoError(t, err)
	defer eng.Release()

	matches := eng.Match(context.Background(), attrs)
	require.Len(t, matches, 1)
	assert.Equal(t, core.ID(2), matches[0].Item.Id)
}

func TestMatchDistanceAdjustments(t *testing.T) {
	near := &core.CatalogItem{
		Id:          1,
		Collection:  core.CollectionShops,
		Attributes:  core.Attributes{"name": "bakery"},
		HasLocation: true,
		DistanceKm:  3,
	}
	far := &core.CatalogItem{
		Id:          2,
		Collection:  core.CollectionShops,
		Attributes:  core.Attributes{"name": "grocer"},
		HasLocation: true,
		DistanceKm:  12,
	}
	unlocated := &core.CatalogItem{
		Id:         3,
		Collection: core.CollectionShops,
		Attributes: core.Attributes{"name": "florist"},
	}
	repo := &stubRepository{
		collections: map[core.Collection][]*core.CatalogItem{
			core.CollectionShops: {near, far, unlocated},
		},
	}
	attrs := core.Attributes{"query": "a shop nearby"}
	embedder := mappedEmbedder(map[string]embedding.Vector{
		attrs.Text():                queryAxis,
		near.Attributes.Text():      withCosine(0.7),
		far.Attributes.Text():       withCosine(0.7),
		unlocated.Attributes.Text(): withCosine(0.7),
	})

	eng, err := NewEngine(repo, embedder)
	require.NoError(t, err)
	defer eng.Release()

	matches := eng.Match(context.Background(), attrs)
	require.Len(t, matches, 3)

	scores := make(map[core.ID]float32, len(matches))
	for _, match := range matches {
		scores[match.Item.Id] = match.AdjustedSimilarity
	}
	assert.InDelta(t, 0.8, scores[near.Id], 0.001)      // within default 10 km
	assert.InDelta(t, 0.65, scores[far.Id], 0.001)      // beyond default 10 km
	assert.InDelta(t, 0.7, scores[unlocated.Id], 0.001) // no location, no adjustment

	// Best first.
	assert.Equal(t, near.Id, matches[0].Item.Id)
}

func TestMatchHonorsRequestedDistance(t *testing.T) {
	item := &core.CatalogItem{
		Id:          1,
		Collection:  core.CollectionShops,
		Attributes:  core.Attributes{"name": "bakery"},
		HasLocation: true,
		DistanceKm:  8,
	}
	repo := &stubRepository{
		collections: map[core.Collection][]*core.CatalogItem{
			core.CollectionShops: {item},
		},
	}
	attrs := core.Attributes{"query": "bakery", "distance": "5"}
	embedder := mappedEmbedder(map[string]embedding.Vector{
		attrs.Text():           queryAxis,
		item.Attributes.Text(): withCosine(0.7),
	})

	eng, err := NewEngine(repo, embedder)
	require.NoError(t, err)
	defer eng.Release()

	matches := eng.Match(context.Background(), attrs)
	require.Len(t, matches, 1)
	// 8 km exceeds the requested 5 km limit.
	assert.InDelta(t, 0.65, matches[0].AdjustedSimilarity, 0.001)
}

func TestMatchStableTieOrder(t *testing.T) {
	first := &core.CatalogItem{
		Id:         1,
		Collection: core.CollectionItems,
		Attributes: core.Attributes{"name": "ball"},
	}
	second := &core.CatalogItem{
		Id:         2,
		Collection: core.CollectionItems,
		Attributes: core.Attributes{"name": "bat"},
	}
	repo := &stubRepository{
		collections: map[core.Collection][]*core.CatalogItem{
			core.CollectionItems: {first, second},
		},
	}
	attrs := core.Attributes{"query": "sports gear"}
	tied := withCosine(0.7)
	embedder := mappedEmbedder(map[string]embedding.Vector{
		attrs.Text():             queryAxis,
		first.Attributes.Text():  tied,
		second.Attributes.Text(): tied,
	})

	eng, err := NewEngine(repo, embedder)
	require.NoError(t, err)
	defer eng.Release()

	for i := 0; i < 5; i++ {
		matches := eng.Match(context.Background(), attrs)
		require.Len(t, matches, 2)
		assert.Equal(t, first.Id, matches[0].Item.Id, "tied scores must keep catalog order")
		assert.Equal(t, second.Id, matches[1].Item.Id)
	}
}

func TestMatchSkipsFailedEmbeddings(t *testing.T) {
	good := &core.CatalogItem{
		Id:         1,
		Collection: core.CollectionItems,
		Attributes: core.Attributes{"name": "ball"},
	}
	bad := &core.CatalogItem{
		Id:         2,
		Collection: core.CollectionItems,
		Attributes: core.Attributes{"name": "bat"},
	}
	repo := &stubRepository{
		collections: map[core.Collection][]*core.CatalogItem{
			core.CollectionItems: {good, bad},
		},
	}
	attrs := core.Attributes{"query": "sports gear"}
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(_ context.Context, text string) (embedding.Vector, error) {
		switch text {
		case attrs.Text():
			return queryAxis, nil
		case good.Attributes.Text():
			return withCosine(0.7), nil
		default:
			return nil, errors.New("embedding service unavailable")
		}
	}

	eng, err := NewEngine(repo, embedder)
	require.NoError(t, err)
	defer eng.Release()

	matches := eng.Match(context.Background(), attrs)
	require.Len(t, matches, 1)
	assert.Equal(t, good.Id, matches[0].Item.Id)
}

func TestMatchSkipsFailedCollections(t *testing.T) {
	item := &core.CatalogItem{
		Id:         1,
		Collection: core.CollectionServices,
		Attributes: core.Attributes{"name": "plumber"},
	}
	repo := &stubRepository{
		collections: map[core.Collection][]*core.CatalogItem{
			core.CollectionServices: {item},
		},
		fetchErr: map[core.Collection]error{
			core.CollectionJobs: errors.New("backend unavailable"),
		},
	}
	attrs := core.Attributes{"query": "plumber"}
	embedder := mappedEmbedder(map[string]embedding.Vector{
		attrs.Text():           queryAxis,
		item.Attributes.Text(): withCosine(0.8),
	})

	eng, err := NewEngine(repo, embedder)
	require.NoError(t, err)
	defer eng.Release()

	matches := eng.Match(context.Background(), attrs)
	require.Len(t, matches, 1)
	assert.Equal(t, item.Id, matches[0].Item.Id)
}

func TestMatchAbortsWithoutQueryEmbedding(t *testing.T) {
	repo := &stubRepository{
		collections: map[core.Collection][]*core.CatalogItem{
			core.CollectionItems: {{
				Id:         1,
				Collection: core.CollectionItems,
				Attributes: core.Attributes{"name": "ball"},
			}},
		},
	}
	embedder := mappedEmbedder(nil) // every text embeds to nil

	eng, err := NewEngine(repo, embedder)
	require.NoError(t, err)
	defer eng.Release()

	matches := eng.Match(context.Background(), core.Attributes{"query": "ball"})
	assert.Nil(t, matches)
	// Query embedding failed, so no catalog reads happened.
	assert.Empty(t, repo.fetches)
}

func TestMatchUsesCache(t *testing.T) {
	item := &core.CatalogItem{
		Id:         1,
		Collection: core.CollectionItems,
		Attributes: core.Attributes{"name": "ball"},
	}
	repo := &stubRepository{
		collections: map[core.Collection][]*core.CatalogItem{
			core.CollectionItems: {item},
		},
	}
	attrs := core.Attributes{"query": "ball"}
	embedder := mappedEmbedder(map[string]embedding.Vector{
		attrs.Text():           queryAxis,
		item.Attributes.Text(): withCosine(0.8),
	})

	cache, err := NewCache(128)
	require.NoError(t, err)
	defer cache.Close()

	eng, err := NewEngine(repo, embedder, WithCache(cache))
	require.NoError(t, err)
	defer eng.Release()

	first := eng.Match(context.Background(), attrs)
	require.Len(t, first, 1)
	calls := embedder.CallCount()
	assert.Equal(t, 2, calls) // query text plus one item

	cache.Wait()

	second := eng.Match(context.Background(), attrs)
	require.Len(t, second, 1)
	assert.Equal(t, calls, embedder.CallCount(), "warm cache should avoid re-embedding")
}

// recordingMonitor captures collection visit order.
type recordingMonitor struct {
	noopMonitor
	visited []core.Collection
}

func (r *recordingMonitor) BeforeCollection(collection core.Collection, _ int) {
	r.visited = append(r.visited, collection)
}

func TestMatchPrioritizesTypedCollections(t *testing.T) {
	collections := make(map[core.Collection][]*core.CatalogItem)
	for i, collection := range core.ScanOrder() {
		collections[collection] = []*core.CatalogItem{{
			Id:         core.ID(i + 1),
			Collection: collection,
			Attributes: core.Attributes{"name": "thing"},
		}}
	}
	repo := &stubRepository{collections: collections}
	attrs := core.Attributes{"type": "shop", "query": "a shop"}
	embedder := mappedEmbedder(map[string]embedding.Vector{
		attrs.Text(): queryAxis,
		core.Attributes{"name": "thing"}.Text(): withCosine(0.3),
	})

	eng, err := NewEngine(repo, embedder)
	require.NoError(t, err)
	defer eng.Release()

	monitor := &recordingMonitor{}
	eng.MatchWithMonitor(context.Background(), attrs, monitor)

	require.NotEmpty(t, monitor.visited)
	assert.Equal(t, core.CollectionShops, monitor.visited[0])
	// Remaining collections keep their default relative order.
	assert.Equal(t, []core.Collection{
		core.CollectionShops,
		core.CollectionJobs,
		core.CollectionItems,
		core.CollectionEvents,
		core.CollectionServices,
	}, monitor.visited)
}
