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


// Package hf implements ai.Embedder against raw text-inference
// endpoints in the Hugging Face Inference API style.
//
// Unlike OpenAI-compatible services, these endpoints return whatever
// shape the underlying model produces: a flat vector, nested hidden
// states, an object with a primary field, or an opaque object of
// numeric leaves. The response body is decoded through
// embedding.Decode, so callers always receive a flat vector or nil.
package hf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/matchit/ai"
	emb "github.com/poiesic/matchit/embedding"
)

// Embedder implements ai.Embedder over a raw inference HTTP endpoint.
type Embedder struct {
	endpoint string
	token    string
	client   *http.Client
	logger   *slog.Logger
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(e *Embedder) {
		e.token = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Embedder) {
		if client != nil {
			e.client = client
		}
	}
}

// WithTimeout bounds every inference request.
// Default is 30s.
func WithTimeout(timeout time.Duration) Option {
	return func(e *Embedder) {
		e.client.Timeout = timeout
	}
}

// NewEmbedder creates an embedder for the given inference endpoint.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(endpoint string, opts ...Option) (ai.Embedder, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("hf: endpoint required")
	}
	e := &Embedder{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   slog.Default().With("component", "hf-embedder"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// EmbedText posts the text to the inference endpoint and normalizes
// whatever payload shape comes back. A response without numeric data
// yields a nil vector and a nil error.
func (e *Embedder) EmbedText(ctx context.Context, text string) (emb.Vector, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		e.logger.Error("inference request failed", "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("hf: inference returned status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	vec := emb.Decode(payload)
	if vec == nil {
		e.logger.Warn("no numeric data in inference response", "bytes", len(payload))
	}
	return vec, nil
}
