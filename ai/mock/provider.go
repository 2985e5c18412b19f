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


package mock

import "github.com/poiesic/matchit/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock embedder, extractor, and composer instances.
type MockProvider struct {
	embedder  *MockEmbedder
	extractor *MockAttributeExtractor
	composer  *MockComposer
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production
// constructors. Use the GetMock* accessors for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		extractor: NewMockAttributeExtractor(),
		composer:  NewMockComposer(),
	}
}

// Embedder returns the mock embedder.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// AttributeExtractor returns the mock attribute extractor.
func (p *MockProvider) AttributeExtractor() ai.AttributeExtractor {
	return p.extractor
}

// Composer returns the mock composer.
func (p *MockProvider) Composer() ai.Composer {
	return p.composer
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying mock embedder for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
func (p *MockProvider) GetMockExtractor() *MockAttributeExtractor {
	return p.extractor
}

// GetMockComposer returns the underlying mock composer for test assertions.
func (p *MockProvider) GetMockComposer() *MockComposer {
	return p.composer
}
