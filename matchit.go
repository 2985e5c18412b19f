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


package matchit

import (
	"log/slog"

	"github.com/poiesic/matchit/ai"
	"github.com/poiesic/matchit/ai/openai"
	"github.com/poiesic/matchit/assistant"
	"github.com/poiesic/matchit/catalog"
	"github.com/poiesic/matchit/catalog/badger"
	"github.com/poiesic/matchit/engine"
	"github.com/poiesic/matchit/geo"
)

// Service bundles the storage backend, the catalog repository, the AI
// provider and the matching engine behind a single lifecycle.
type Service struct {
	backend  *badger.Backend
	repo     catalog.Repository
	provider ai.Provider
	engine   *engine.Engine
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
	embedder ai.Embedder
	origin   geo.Origin
	policy   engine.Policy
	inMemory bool
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithEmbedderService swaps the provider's embedder, for example for a
// hosted inference endpoint.
func WithEmbedderService(embedder ai.Embedder) ServiceOption {
	return func(o *serviceOptions) {
		o.embedder = embedder
	}
}

// WithOrigin sets the reference point for distance derivation.
func WithOrigin(origin geo.Origin) ServiceOption {
	return func(o *serviceOptions) {
		o.origin = origin
	}
}

// WithPolicy sets the engine scoring policy.
func WithPolicy(policy engine.Policy) ServiceOption {
	return func(o *serviceOptions) {
		o.policy = policy
	}
}

// WithInMemoryStorage keeps the catalog in memory. Useful for tests
// and throwaway sessions.
func WithInMemoryStorage() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// NewService opens the catalog at filePath and wires the provider and
// engine around it.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	// Apply options
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
		origin:   badger.DefaultOrigin,
		policy:   engine.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create catalog repository
	repo, err := badger.NewRepository(backend, badger.WithOrigin(options.origin))
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	var providerOpts []openai.ProviderOption
	if options.embedder != nil {
		providerOpts = append(providerOpts, openai.WithEmbedderService(options.embedder))
	}
	provider, err := openai.NewProvider(options.aiConfig, providerOpts...)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	// Create matching engine
	eng, err := engine.NewEngine(repo, provider.Embedder(), engine.WithPolicy(options.policy))
	if err != nil {
		provider.Close()
		repo.Close()
		backend.Close()
		return nil, err
	}

	return &Service{
		backend:  backend,
		repo:     repo,
		provider: provider,
		engine:   eng,
		logger:   slog.Default(),
	}, nil
}

func (s *Service) Close() error {
	// Release the engine first so no scoring is in flight
	s.engine.Release()

	// Close AI provider
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	// Close repository
	if err := s.repo.Close(); err != nil {
		s.logger.Error("error closing catalog repository", "err", err)
		return err
	}

	// Close backend
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) Repository() catalog.Repository {
	return s.repo
}

func (s *Service) Engine() *engine.Engine {
	return s.engine
}

func (s *Service) NewAssistant(opts ...assistant.Option) (*assistant.Assistant, error) {
	return assistant.NewAssistant(
		s.provider.AttributeExtractor(),
		s.engine,
		s.provider.Composer(),
		opts...,
	)
}
