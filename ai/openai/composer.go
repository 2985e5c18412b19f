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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/matchit/ai"
	"github.com/poiesic/matchit/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Composer implements ai.Composer using OpenAI-compatible chat APIs.
type Composer struct {
	client    llms.Model
	maxTokens int
	timeout   timeoutFunc
	logger    *slog.Logger
}

// newComposer is an internal constructor that returns the concrete
// type. Used by Provider to manage the instance.
func newComposer(config *ai.Config) (*Composer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Composer{
		client:    client,
		maxTokens: config.ComposeMaxTokens,
		timeout:   timeoutFor(config.RequestTimeout),
		logger:    slog.Default().With("component", "openai-composer"),
	}, nil
}

// NewComposer creates a new response composer using the provided
// configuration.
//
// Returns ai.Composer interface to enforce abstraction.
func NewComposer(config *ai.Config) (ai.Composer, error) {
	return newComposer(config)
}

// Compose describes the top match in short natural-language prose.
func (c *Composer) Compose(ctx context.Context, prompt string, attributes core.Attributes, top *core.Match) (string, error) {
	if top == nil {
		return "", fmt.Errorf("composer: top match required")
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(compositionSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(composeUserMessage(prompt, attributes, top)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(compositionInstructionsFor(c.maxTokens)),
			},
		},
	}

	ctx, cancel := c.timeout(ctx)
	defer cancel()

	response, err := c.client.GenerateContent(ctx, content, llms.WithMaxTokens(c.maxTokens))
	if err != nil {
		c.logger.Error("failed to compose response", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", fmt.Errorf("composer: no choices returned")
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}

// composeUserMessage renders the prompt, the query attributes, and the
// best match for the model. Only distance in kilometers accompanies
// the match; raw coordinates stay out of the conversation.
func composeUserMessage(prompt string, attributes core.Attributes, top *core.Match) string {
	attrsJSON, _ := json.Marshal(attributes)

	match := map[string]any{
		"category":   top.Collection,
		"attributes": top.Item.Attributes,
	}
	if top.Collection.Geo() && top.Item.HasLocation {
		match["distanceKm"] = fmt.Sprintf("%.2f", top.DistanceKm)
	}
	matchJSON, _ := json.Marshal(match)

	return fmt.Sprintf("Prompt: %s\nAttributes: %s\nHighest Similarity Item: %s",
		prompt, attrsJSON, matchJSON)
}
