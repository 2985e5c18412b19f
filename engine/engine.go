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


package engine

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/matchit/ai"
	"github.com/poiesic/matchit/catalog"
	"github.com/poiesic/matchit/core"
	"github.com/poiesic/matchit/embedding"
)

// DefaultPoolSize is the default number of concurrent embedding workers.
const DefaultPoolSize = 4

// Engine scores catalog items against a set of request attributes.
// Scoring is cosine similarity between the embedded request text and the
// embedded item text, adjusted by the policy's category, color and
// distance rules.
type Engine struct {
	repo      catalog.Repository
	embedder  ai.Embedder
	cache     *Cache
	ownsCache bool
	pool      *ants.Pool
	policy    Policy
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithPolicy sets a custom scoring policy.
// Default is DefaultPolicy().
func WithPolicy(policy Policy) Option {
	return func(e *Engine) error {
		e.policy = policy
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithCache sets an externally managed vector cache.
// The engine will not close it on Release.
func WithCache(cache *Cache) Option {
	return func(e *Engine) error {
		if e.ownsCache && e.cache != nil {
			e.cache.Close()
		}
		e.cache = cache
		e.ownsCache = false
		return nil
	}
}

// WithPoolSize sets the number of concurrent embedding workers.
// Default is DefaultPoolSize.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size <= 0 {
			return ErrInvalidPoolSize
		}
		e.pool.Release()
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// NewEngine creates a matching engine over the given repository and embedder.
func NewEngine(repo catalog.Repository, embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	pool, err := ants.NewPool(DefaultPoolSize)
	if err != nil {
		return nil, err
	}
	cache, err := NewCache(DefaultCacheSize)
	if err != nil {
		pool.Release()
		return nil, err
	}

	e := &Engine{
		repo:      repo,
		embedder:  embedder,
		cache:     cache,
		ownsCache: true,
		pool:      pool,
		policy:    DefaultPolicy(),
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.Release()
			return nil, err
		}
	}

	return e, nil
}

// Release releases the worker pool and any engine-owned cache.
// The engine should not be used after calling Release.
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
	if e.ownsCache && e.cache != nil {
		e.cache.Close()
	}
}

// Match scores the catalog against the request attributes and returns all
// matches above the policy threshold, best first. An empty attribute set
// yields no matches and touches no external service.
func (e *Engine) Match(ctx context.Context, attrs core.Attributes) []core.Match {
	return e.MatchWithMonitor(ctx, attrs, nil)
}

// MatchWithMonitor scores the catalog with monitoring.
// The monitor receives callbacks at each stage of the matching process.
func (e *Engine) MatchWithMonitor(ctx context.Context, attrs core.Attributes, monitor MatchMonitor) []core.Match {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if len(attrs) == 0 {
		monitor.Finish(nil)
		return nil
	}
	queryText := attrs.Text()
	if queryText == "" {
		monitor.Finish(nil)
		return nil
	}
	monitor.Start(queryText)

	queryVector := e.embedText(ctx, queryText)
	if queryVector == nil {
		e.logger.Warn("no embedding for request text, skipping match", "text", queryText)
		monitor.Finish(nil)
		return nil
	}
	monitor.QueryEmbedded(len(queryVector))

	var matches []core.Match
	for _, collection := range e.collectionOrder(attrs["type"]) {
		matches = append(matches, e.matchCollection(ctx, collection, attrs, queryVector, monitor)...)
	}

	// Within a collection results keep catalog order, so a stable sort
	// gives deterministic ranking for tied scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].AdjustedSimilarity > matches[j].AdjustedSimilarity
	})

	monitor.Finish(matches)
	return matches
}

// collectionOrder returns the scan order with collections matching the
// requested type moved to the front. Relative order is otherwise preserved.
func (e *Engine) collectionOrder(requestedType string) []core.Collection {
	order := core.ScanOrder()
	if strings.TrimSpace(requestedType) == "" {
		return order
	}
	preferred := make([]core.Collection, 0, len(order))
	rest := make([]core.Collection, 0, len(order))
	for _, collection := range order {
		if collection.Matches(requestedType) {
			preferred = append(preferred, collection)
		} else {
			rest = append(rest, collection)
		}
	}
	return append(preferred, rest...)
}

func (e *Engine) matchCollection(
	ctx context.Context,
	collection core.Collection,
	attrs core.Attributes,
	queryVector embedding.Vector,
	monitor MatchMonitor,
) []core.Match {
	items, err := e.repo.FetchCollection(ctx, collection)
	if err != nil {
		e.logger.Error("error fetching collection, skipping", "collection", collection, "err", err)
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	monitor.BeforeCollection(collection, len(items))

	// Score concurrently but collect into fixed slots so the result
	// keeps the catalog's encounter order.
	slots := make([]*core.Match, len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		score := func() {
			defer wg.Done()
			slots[i] = e.scoreItem(ctx, collection, attrs, queryVector, item, monitor)
		}
		if err := e.pool.Submit(score); err != nil {
			score()
		}
	}
	wg.Wait()

	matches := make([]core.Match, 0, len(items))
	for _, match := range slots {
		if match != nil {
			matches = append(matches, *match)
		}
	}
	return matches
}

// scoreItem embeds and scores a single catalog item.
// Returns nil when the item cannot be scored or falls below the threshold.
func (e *Engine) scoreItem(
	ctx context.Context,
	collection core.Collection,
	attrs core.Attributes,
	queryVector embedding.Vector,
	item *core.CatalogItem,
	monitor MatchMonitor,
) *core.Match {
	itemText := item.Attributes.Text()
	if itemText == "" {
		monitor.ItemSkipped(collection, item.Id, "empty attributes")
		return nil
	}
	itemVector := e.embedText(ctx, itemText)
	if itemVector == nil {
		monitor.ItemSkipped(collection, item.Id, "no embedding")
		return nil
	}

	similarity := embedding.Cosine(queryVector, itemVector)
	adjusted := e.adjust(similarity, collection, attrs, item)
	kept := adjusted > e.policy.Threshold
	monitor.ItemScored(collection, item.Id, similarity, adjusted, kept)
	if !kept {
		return nil
	}
	return &core.Match{
		Collection:         collection,
		Item:               item,
		Similarity:         similarity,
		AdjustedSimilarity: adjusted,
		DistanceKm:         item.DistanceKm,
	}
}

// adjust applies the policy boosts to a raw similarity score.
func (e *Engine) adjust(similarity float32, collection core.Collection, attrs core.Attributes, item *core.CatalogItem) float32 {
	adjusted := similarity

	if typ, ok := attrs["type"]; ok && collection.Matches(typ) {
		adjusted += e.policy.CategoryBoost
	}

	if color, ok := attrs["color"]; ok && color != "" {
		if strings.EqualFold(color, item.Attributes["color"]) {
			adjusted += e.policy.ColorBoost
		}
	}

	if collection.Geo() && item.HasLocation {
		maxDistance := attrs.MaxDistanceKm(e.policy.DefaultMaxDistanceKm)
		if item.DistanceKm <= maxDistance {
			adjusted += e.policy.NearBoost
		} else {
			adjusted -= e.policy.FarPenalty
		}
	}

	return adjusted
}

// embedText returns the vector for text, consulting the cache first.
// A nil result means the text could not be embedded.
func (e *Engine) embedText(ctx context.Context, text string) embedding.Vector {
	if e.cache != nil {
		if vector, ok := e.cache.Get(text); ok {
			return vector
		}
	}
	vector, err := e.embedder.EmbedText(ctx, text)
	if err != nil {
		e.logger.Warn("error embedding text", "err", err)
		return nil
	}
	if vector == nil {
		return nil
	}
	if e.cache != nil {
		e.cache.Set(text, vector)
	}
	return vector
}
