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
	"github.com/dgraph-io/ristretto/v2"

	"github.com/poiesic/matchit/core"
	"github.com/poiesic/matchit/embedding"
)

// DefaultCacheSize is the default maximum number of cached vectors.
const DefaultCacheSize = 4096

// Cache memoizes embedding vectors by the content ID of their source text.
// Catalog items change rarely compared to how often they are scored, so a
// warm cache turns repeat requests into pure cosine math.
type Cache struct {
	inner *ristretto.Cache[uint64, embedding.Vector]
}

// NewCache creates a vector cache holding up to maxEntries vectors.
func NewCache(maxEntries int64) (*Cache, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheSize
	}
	inner, err := ristretto.NewCache(&ristretto.Config[uint64, embedding.Vector]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{inner: inner}, nil
}

// Get returns the cached vector for text, if present.
func (c *Cache) Get(text string) (embedding.Vector, bool) {
	return c.inner.Get(uint64(core.IDFromContent(text)))
}

// Set stores the vector for text. Admission is best-effort.
func (c *Cache) Set(text string, vector embedding.Vector) {
	c.inner.Set(uint64(core.IDFromContent(text)), vector, 1)
}

// Wait blocks until buffered writes have been applied.
// Primarily useful in tests.
func (c *Cache) Wait() {
	c.inner.Wait()
}

// Close releases the cache resources.
func (c *Cache) Close() {
	c.inner.Close()
}
