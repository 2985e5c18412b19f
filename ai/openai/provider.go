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


package openai

import (
	"log/slog"

	"github.com/poiesic/matchit/ai"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages embedder, extractor, and composer instances.
type Provider struct {
	config    *ai.Config
	embedder  ai.Embedder
	extractor *AttributeExtractor
	composer  *Composer
	logger    *slog.Logger
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithEmbedderService overrides the embedding service, for deployments
// whose embedding endpoint is not OpenAI-compatible (see ai/hf).
func WithEmbedderService(embedder ai.Embedder) ProviderOption {
	return func(p *Provider) {
		if embedder != nil {
			p.embedder = embedder
		}
	}
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config, opts ...ProviderOption) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	extractor, err := newAttributeExtractor(config)
	if err != nil {
		return nil, err
	}

	composer, err := newComposer(config)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		config:    config,
		embedder:  embedder,
		extractor: extractor,
		composer:  composer,
		logger:    slog.Default().With("component", "openai-provider"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// AttributeExtractor returns the attribute extraction service.
func (p *Provider) AttributeExtractor() ai.AttributeExtractor {
	return p.extractor
}

// Composer returns the response composition service.
func (p *Provider) Composer() ai.Composer {
	return p.composer
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
