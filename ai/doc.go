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


// Package ai provides abstractions for the AI services used in Matchit.
//
// This package defines interfaces for text embeddings, attribute
// extraction, and response composition. The matching engine and the
// assistant depend only on these abstractions, never on a concrete
// provider.
//
// # Interfaces
//
//   - Embedder: generates flat vector embeddings from text
//   - AttributeExtractor: turns a free-text prompt into an attribute map
//   - Composer: describes the best match in natural language
//   - Provider: aggregates the three for convenient initialization
//
// # Implementation Packages
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//     via langchaingo (chat and embeddings)
//   - ai/hf: embedder for raw inference endpoints that return varying
//     payload shapes
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors in the implementation packages return the
// interface types to enforce abstraction; mock constructors return
// concrete types so tests can inject behavior and assert call counts.
package ai
